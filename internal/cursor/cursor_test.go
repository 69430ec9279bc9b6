package cursor_test

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/movetree-go/internal/cursor"
	"github.com/lgbarn/movetree-go/internal/errors"
	"github.com/lgbarn/movetree-go/internal/movetree"
	"github.com/lgbarn/movetree-go/internal/testutil"
)

// The Sicilian hangs off e4; inside it, 2. c3 is an alternative to 2. Nf3.
const branched = "1. e4 (1... c5 (2. c3 d5) 2. Nf3 d6) e5 2. Nf3 Nc6"

func notations(seq iter.Seq[*movetree.MoveRecord]) []string {
	var out []string
	for m := range seq {
		out = append(out, m.Notation)
	}
	return out
}

type position struct {
	path string
	ply  int
}

func where(c *cursor.Cursor) position {
	path, ply := c.Where()
	return position{path.String(), ply}
}

func mustPath(t *testing.T, s string) movetree.Path {
	t.Helper()
	p, err := movetree.ParsePath(s)
	require.NoError(t, err)
	return p
}

func TestCursor_UnsetIsInert(t *testing.T) {
	c := cursor.New(testutil.MustImport(t, branched))

	assert.False(t, c.IsSet())
	assert.False(t, c.StepForward())
	assert.False(t, c.StepBackward())
	assert.False(t, c.ToEnd())
	assert.Nil(t, c.Current())
	path, ply := c.Where()
	assert.Nil(t, path)
	assert.Equal(t, -1, ply)
	assert.Empty(t, notations(c.MovesUpToCursor()))
	assert.Empty(t, notations(c.MovesFromRoot()))
}

func TestCursor_ToStartAndToEnd(t *testing.T) {
	c := cursor.New(testutil.MustImport(t, branched))
	c.ToStart()

	assert.True(t, c.IsSet())
	assert.Equal(t, position{"0", -1}, where(c))
	assert.Nil(t, c.Current())

	assert.True(t, c.ToEnd())
	assert.Equal(t, position{"0", 3}, where(c))
	assert.Equal(t, "Nc6", c.Current().Notation)
	assert.False(t, c.ToEnd(), "already at the end")

	require.NoError(t, c.SwitchTo(mustPath(t, "0/0:1"), 0))
	assert.True(t, c.ToEnd())
	assert.Equal(t, position{"0/0:1", 2}, where(c), "ToEnd stays on the current branch")
}

func TestCursor_StepForwardEntersVariationAtTip(t *testing.T) {
	c := cursor.New(testutil.MustImport(t, "1. e4 (1... c5)"))
	c.ToStart()

	var visited []position
	for c.StepForward() {
		visited = append(visited, where(c))
	}

	assert.Equal(t, []position{
		{"0", 0},
		{"0/0:1", -1},
		{"0/0:1", 0},
	}, visited)
	assert.False(t, c.StepForward(), "a leaf is a no-op")
	assert.Equal(t, position{"0/0:1", 0}, where(c))
}

// Scenario C: stepping back from the start of a variation lands on the move
// the variation hangs off, not on the start of the tree.
func TestCursor_StepBackwardFromVariationStart(t *testing.T) {
	c := cursor.New(testutil.MustImport(t, branched))

	require.NoError(t, c.SwitchTo(mustPath(t, "0/0:1"), -1))
	require.True(t, c.StepBackward())
	assert.Equal(t, position{"0", 0}, where(c))
	assert.Equal(t, "e4", c.Current().Notation)

	require.NoError(t, c.SwitchTo(mustPath(t, "0/0:1/0:1"), -1))
	require.True(t, c.StepBackward())
	assert.Equal(t, position{"0/0:1", 0}, where(c))
	assert.Equal(t, "c5", c.Current().Notation)
}

func TestCursor_StepBackwardAtStartIsNoOp(t *testing.T) {
	c := cursor.New(testutil.MustImport(t, branched))
	c.ToStart()

	assert.False(t, c.StepBackward())
	assert.Equal(t, position{"0", -1}, where(c))
}

func TestCursor_ForwardBackwardSymmetry(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		ply   int
		steps int
	}{
		{"main line", "0", -1, 4},
		{"inside a variation", "0/0:1", 0, 3},
		{"from inside a nested variation", "0/0:1/0:1", -1, 2},
		{"more steps than moves", "0", 1, 10},
	}

	tree := testutil.MustImport(t, branched+" (3. Bc4 Bc5)")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cursor.New(tree)
			require.NoError(t, c.SwitchTo(mustPath(t, tt.path), tt.ply))

			trail := []position{where(c)}
			for i := 0; i < tt.steps && c.StepForward(); i++ {
				trail = append(trail, where(c))
			}
			for i := len(trail) - 2; i >= 0; i-- {
				require.True(t, c.StepBackward())
				assert.Equal(t, trail[i], where(c))
			}
		})
	}
}

func TestCursor_SwitchToRejectsBadTargets(t *testing.T) {
	tests := []struct {
		name      string
		path      movetree.Path
		ply       int
		alsoMatch error
	}{
		{"missing variation", movetree.Root().Child(0, 3), -1, errors.ErrPathNotFound},
		{"selector past the line", movetree.Root().Child(9, 1), -1, errors.ErrPathNotFound},
		{"no root selector", movetree.Path{}, -1, errors.ErrPathNotFound},
		{"ply past the end", movetree.Root(), 4, nil},
		{"ply below start", movetree.Root(), -2, nil},
	}

	c := cursor.New(testutil.MustImport(t, branched))
	require.NoError(t, c.SwitchTo(movetree.Root(), 1))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.SwitchTo(tt.path, tt.ply)
			testutil.AssertErrorIs(t, err, errors.ErrInvalidCursorTarget)
			if tt.alsoMatch != nil {
				testutil.AssertErrorIs(t, err, tt.alsoMatch)
			}
			assert.True(t, errors.IsNavigation(err))
			assert.Equal(t, position{"0", 1}, where(c), "failed jump leaves the cursor alone")
		})
	}
}

func TestCursor_SwitchToCopiesPath(t *testing.T) {
	c := cursor.New(testutil.MustImport(t, branched))
	path := mustPath(t, "0/0:1")
	require.NoError(t, c.SwitchTo(path, 0))

	path[1].Variation = 7
	assert.Equal(t, position{"0/0:1", 0}, where(c))
}

func TestCursor_MovesUpToCursor(t *testing.T) {
	tree := testutil.MustImport(t, branched)
	c := cursor.New(tree)
	require.NoError(t, c.SwitchTo(mustPath(t, "0/0:1"), 1))

	seq := c.MovesUpToCursor()
	assert.Equal(t, []string{"c5", "Nf3"}, notations(seq))
	assert.Equal(t, []string{"c5", "Nf3"}, notations(seq), "sequence is restartable")
	assert.Equal(t, []string{"e4", "c5", "Nf3"}, notations(c.MovesFromRoot()))

	c.ToStart()
	assert.Empty(t, notations(c.MovesUpToCursor()))
	assert.Equal(t, []string{"c5", "Nf3"}, notations(seq), "earlier sequence keeps its own position")
}

func TestCursor_MovesUpToCursorSeesEdits(t *testing.T) {
	tree := testutil.MustImport(t, "1. e4 e5")
	c := cursor.New(tree)
	require.NoError(t, c.SwitchTo(movetree.Root(), 0))

	seq := c.MovesUpToCursor()
	require.NoError(t, tree.SetComment(movetree.Root(), 0, "best by test"))

	var comments []string
	for m := range seq {
		comments = append(comments, m.Comment)
	}
	assert.Equal(t, []string{"best by test"}, comments)
}

func TestCursor_StalePathFallsBackToStart(t *testing.T) {
	tree := testutil.MustImport(t, branched)
	c := cursor.New(tree)
	require.NoError(t, c.SwitchTo(mustPath(t, "0/0:1"), 2))

	tree.Reset()

	assert.False(t, c.StepForward())
	assert.Equal(t, position{"0", -1}, where(c))
	assert.Nil(t, c.Current())
}
