package testutil

import (
	"testing"

	"github.com/lgbarn/movetree-go/internal/movetree"
	"github.com/lgbarn/movetree-go/internal/notation"
	"github.com/lgbarn/movetree-go/internal/rules"
)

// MustImport builds a tree from movetext with the standard rules oracle.
func MustImport(t *testing.T, text string) *movetree.Tree {
	t.Helper()
	return MustImportFrom(t, rules.NewStandard(), text)
}

// MustImportFrom builds a tree from movetext with the given oracle.
func MustImportFrom(t *testing.T, oracle rules.Oracle, text string) *movetree.Tree {
	t.Helper()
	tree, err := notation.Import(oracle, text)
	if err != nil {
		t.Fatalf("importing %q: %v", text, err)
	}
	return tree
}

// MustBuild builds a tree whose main line is moves, played from the
// standard initial position.
func MustBuild(t *testing.T, moves ...string) *movetree.Tree {
	t.Helper()
	oracle := rules.NewStandard()
	results, err := rules.Replay(oracle, oracle.InitialPosition(), moves)
	if err != nil {
		t.Fatalf("replaying %v: %v", moves, err)
	}

	tree := movetree.New()
	path, ply := movetree.Root(), -1
	for _, res := range results {
		path, ply, err = tree.InsertMove(path, ply, movetree.NewRecord(res))
		if err != nil {
			t.Fatalf("inserting %s: %v", res.Notation, err)
		}
	}
	return tree
}
