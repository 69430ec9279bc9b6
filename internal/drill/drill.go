// Package drill derives "you play one side" exercises from a move tree. The
// side of every move is taken from the rules oracle while replaying, never
// from ply parity, because a line may open with either side to move.
package drill

import (
	"github.com/lgbarn/movetree-go/internal/chess"
	"github.com/lgbarn/movetree-go/internal/errors"
	"github.com/lgbarn/movetree-go/internal/movetree"
	"github.com/lgbarn/movetree-go/internal/rules"
)

// SideMove is one move of the drilled side together with its 0-based index
// in the underlying line.
type SideMove struct {
	Move  *movetree.MoveRecord
	Index int
}

// Filter replays lines through a rules oracle.
type Filter struct {
	oracle rules.Oracle
}

// New creates a filter backed by oracle. The oracle's initial position is
// taken as the start of the tree's main line.
func New(oracle rules.Oracle) *Filter {
	return &Filter{oracle: oracle}
}

// SideMoves replays line from start and returns, in order, the moves made
// by side. A line the oracle cannot replay yields an error wrapping
// errors.ErrIllegalMove.
func (f *Filter) SideMoves(start rules.Position, line *movetree.Line, side chess.Colour) ([]SideMove, error) {
	var out []SideMove
	pos := start
	for i := 0; i < line.Len(); i++ {
		rec := line.At(i)
		res, err := f.oracle.ApplyMove(pos, rec.Notation)
		if err != nil {
			return nil, &errors.MoveError{Err: err, Ply: i, MoveText: rec.Notation}
		}
		if res.MovingSide == side {
			out = append(out, SideMove{Move: rec, Index: i})
		}
		pos = res.Position
	}
	return out, nil
}

// NextExpected returns the next move side should play once the cursor sits
// at cursorPly of line. done reports completion: the cursor is past the end,
// side has no moves in the line, or every one of them has been played.
// Completion is not an error.
func (f *Filter) NextExpected(start rules.Position, line *movetree.Line, side chess.Colour, cursorPly int) (next SideMove, done bool, err error) {
	if cursorPly >= line.Len() {
		return SideMove{}, true, nil
	}
	moves, err := f.SideMoves(start, line, side)
	if err != nil {
		return SideMove{}, false, err
	}

	played := 0
	for _, m := range moves {
		if m.Index <= cursorPly {
			played++
		}
	}
	if played >= len(moves) {
		return SideMove{}, true, nil
	}
	return moves[played], false, nil
}

// ForPath resolves path and replays the moves leading into it, returning the
// addressed line and the position before its first move.
func (f *Filter) ForPath(tree *movetree.Tree, path movetree.Path) (rules.Position, *movetree.Line, error) {
	line, err := tree.Resolve(path)
	if err != nil {
		return nil, nil, err
	}
	pos := f.oracle.InitialPosition()
	for rec := range tree.PathMoves(path, -1) {
		res, err := f.oracle.ApplyMove(pos, rec.Notation)
		if err != nil {
			return nil, nil, &errors.MoveError{Err: err, Path: path.String(), MoveText: rec.Notation}
		}
		pos = res.Position
	}
	return pos, line, nil
}

// Next combines ForPath and NextExpected for a cursor at (path, ply).
func (f *Filter) Next(tree *movetree.Tree, path movetree.Path, side chess.Colour, ply int) (SideMove, bool, error) {
	start, line, err := f.ForPath(tree, path)
	if err != nil {
		return SideMove{}, false, err
	}
	return f.NextExpected(start, line, side, ply)
}
