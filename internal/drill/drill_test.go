package drill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/movetree-go/internal/chess"
	"github.com/lgbarn/movetree-go/internal/drill"
	"github.com/lgbarn/movetree-go/internal/errors"
	"github.com/lgbarn/movetree-go/internal/movetree"
	"github.com/lgbarn/movetree-go/internal/rules"
	"github.com/lgbarn/movetree-go/internal/testutil"
)

const italian = "1. e4 (1... c5 2. Nf3 d6) e5 2. Nf3 Nc6 3. Bc4"

func indexes(moves []drill.SideMove) []int {
	out := make([]int, len(moves))
	for i, m := range moves {
		out[i] = m.Index
	}
	return out
}

func TestSideMoves_Completeness(t *testing.T) {
	oracle := rules.NewStandard()
	tree := testutil.MustImport(t, italian)
	f := drill.New(oracle)

	for _, p := range []string{"0", "0/0:1"} {
		t.Run(p, func(t *testing.T) {
			path, err := movetree.ParsePath(p)
			require.NoError(t, err)
			start, line, err := f.ForPath(tree, path)
			require.NoError(t, err)

			white, err := f.SideMoves(start, line, chess.White)
			require.NoError(t, err)
			black, err := f.SideMoves(start, line, chess.Black)
			require.NoError(t, err)

			seen := make(map[int]chess.Colour)
			for _, m := range white {
				assert.Equal(t, chess.White, m.Move.Side)
				seen[m.Index] = chess.White
			}
			for _, m := range black {
				assert.Equal(t, chess.Black, m.Move.Side)
				_, dup := seen[m.Index]
				assert.False(t, dup, "index %d claimed by both sides", m.Index)
				seen[m.Index] = chess.Black
			}
			assert.Len(t, seen, line.Len(), "every move belongs to exactly one side")
			assert.IsIncreasing(t, indexes(white))
			assert.IsIncreasing(t, indexes(black))
		})
	}
}

func TestSideMoves_VariationOpeningWithBlack(t *testing.T) {
	tree := testutil.MustImport(t, italian)
	f := drill.New(rules.NewStandard())

	start, line, err := f.ForPath(tree, movetree.Root().Child(0, 1))
	require.NoError(t, err)
	assert.Equal(t, chess.Black, start.SideToMove())

	black, err := f.SideMoves(start, line, chess.Black)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, indexes(black))
	assert.Equal(t, "c5", black[0].Move.Notation)
}

func TestNextExpected(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		side      chess.Colour
		cursorPly int
		want      string
		wantIndex int
		done      bool
	}{
		// Scenario D: the opponent opens the line.
		{"black before any move", "0", chess.Black, -1, "e5", 1, false},
		{"black after white's first move", "0", chess.Black, 0, "e5", 1, false},
		{"black after e5", "0", chess.Black, 1, "Nc6", 3, false},
		{"white from the start", "0", chess.White, -1, "e4", 0, false},
		{"white after e4", "0", chess.White, 0, "Nf3", 2, false},
		{"white last move pending", "0", chess.White, 3, "Bc4", 4, false},
		{"black exhausted", "0", chess.Black, 3, "", 0, true},
		{"cursor at the end", "0", chess.White, 4, "", 0, true},
		{"cursor past the end", "0", chess.White, 9, "", 0, true},
		{"variation opened by black, white drills", "0/0:1", chess.White, -1, "Nf3", 1, false},
		{"variation opened by black, black drills", "0/0:1", chess.Black, -1, "c5", 0, false},
	}

	tree := testutil.MustImport(t, italian)
	f := drill.New(rules.NewStandard())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := movetree.ParsePath(tt.path)
			require.NoError(t, err)

			next, done, err := f.Next(tree, path, tt.side, tt.cursorPly)
			require.NoError(t, err)
			assert.Equal(t, tt.done, done)
			if tt.done {
				assert.Nil(t, next.Move)
				return
			}
			require.NotNil(t, next.Move)
			assert.Equal(t, tt.want, next.Move.Notation)
			assert.Equal(t, tt.wantIndex, next.Index)
		})
	}
}

func TestNextExpected_NoMovesForSide(t *testing.T) {
	tree := testutil.MustImport(t, "1. e4")
	f := drill.New(rules.NewStandard())

	next, done, err := f.Next(tree, movetree.Root(), chess.Black, -1)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Nil(t, next.Move)

	_, done, err = f.Next(movetree.New(), movetree.Root(), chess.White, -1)
	require.NoError(t, err)
	assert.True(t, done, "an empty line is complete")
}

// A drill that starts after White's first move: the oracle's start position
// has Black to move, so Black owns index 0.
func TestNextExpected_StartsWithOpponentMove(t *testing.T) {
	oracle, err := rules.NewStandardFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	require.NoError(t, err)
	tree := testutil.MustImportFrom(t, oracle, "1... e5 2. Nf3 Nc6")
	f := drill.New(oracle)

	next, done, err := f.Next(tree, movetree.Root(), chess.Black, -1)
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "e5", next.Move.Notation)
	assert.Equal(t, 0, next.Index)

	next, done, err = f.Next(tree, movetree.Root(), chess.White, -1)
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "Nf3", next.Move.Notation, "white's first move is second in the line")
}

func TestForPath_Errors(t *testing.T) {
	tree := testutil.MustImport(t, italian)
	f := drill.New(rules.NewStandard())

	_, _, err := f.ForPath(tree, movetree.Root().Child(0, 2))
	testutil.AssertErrorIs(t, err, errors.ErrPathNotFound)

	// A tree built under another start position does not replay here.
	other, err := rules.NewStandardFromFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)
	_, err = drill.New(other).SideMoves(other.InitialPosition(), tree.MainLine(), chess.White)
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
}
