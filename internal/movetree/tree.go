// Package movetree holds the annotated move tree: one main line whose moves
// may carry variations, each itself a line, to any depth. Lines are addressed
// by Path values and moves by (Path, ply) pairs, where ply -1 means the
// position before the line's first move.
package movetree

import (
	"fmt"
	"iter"

	"github.com/lgbarn/movetree-go/internal/errors"
)

// Tree is a move tree. It is not safe for concurrent use; each study owns
// its own tree.
type Tree struct {
	root *Line
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{root: &Line{}}
}

// MainLine returns the root line.
func (t *Tree) MainLine() *Line {
	return t.root
}

// Reset discards every move.
func (t *Tree) Reset() {
	t.root = &Line{}
}

// IsEmpty reports whether the tree holds no moves.
func (t *Tree) IsEmpty() bool {
	return t.root.Len() == 0
}

// Resolve walks the selectors of path from the root and returns the
// addressed line. It fails with ErrPathNotFound if any selector indexes past
// the moves or variations available at its depth.
func (t *Tree) Resolve(path Path) (*Line, error) {
	if len(path) == 0 || path[0] != (Selector{}) {
		return nil, errors.Wrapf(errors.ErrPathNotFound, "path %q has no root selector", path.String())
	}

	line := t.root
	for depth, sel := range path[1:] {
		owner := line.At(sel.Ply)
		if owner == nil || sel.Variation < 1 || sel.Variation > len(owner.variations) {
			return nil, errors.Wrapf(errors.ErrPathNotFound, "path %s: selector %d (%d:%d)",
				path, depth+1, sel.Ply, sel.Variation)
		}
		line = owner.variations[sel.Variation-1]
	}
	return line, nil
}

// Move returns the record at (path, ply).
func (t *Tree) Move(path Path, ply int) (*MoveRecord, error) {
	line, err := t.Resolve(path)
	if err != nil {
		return nil, err
	}
	rec := line.At(ply)
	if rec == nil {
		return nil, &errors.MoveError{Err: errors.ErrPlyIndexOutOfRange, Path: path.String(), Ply: ply}
	}
	return rec, nil
}

// InsertMove records rec after (path, ply) and returns where it landed.
//
// At the tip of the line the move is appended in place and the returned
// ply advances by one. Anywhere else it becomes a variation of the move at
// ply, reusing an existing variation that starts with the same move, and the
// returned position is (path of that variation, 0). From ply -1 of a nested
// line the move becomes a sibling variation of that line. A move equal to the
// existing next move is rejected with ErrIllegalMove and ErrDuplicateMove.
//
// The tree keeps its own copy of rec. Paths held by other callers stay valid.
func (t *Tree) InsertMove(path Path, ply int, rec *MoveRecord) (Path, int, error) {
	line, err := t.Resolve(path)
	if err != nil {
		return nil, 0, err
	}
	if ply < -1 || ply >= line.Len() {
		return nil, 0, &errors.MoveError{Err: errors.ErrPlyIndexOutOfRange, Path: path.String(), Ply: ply, MoveText: rec.Notation}
	}

	if ply == line.Len()-1 {
		if err := checkAlternation(line.Last(), rec); err != nil {
			return nil, 0, &errors.MoveError{Err: err, Path: path.String(), Ply: ply, MoveText: rec.Notation}
		}
		line.append(detach(rec))
		return path.Clone(), ply + 1, nil
	}

	if next := line.At(ply + 1); next.SameMove(rec) {
		return nil, 0, &errors.MoveError{
			Err:      fmt.Errorf("%w: %w", errors.ErrIllegalMove, errors.ErrDuplicateMove),
			Path:     path.String(),
			Ply:      ply,
			MoveText: rec.Notation,
		}
	}

	if ply == -1 {
		parentPath, sel, ok := path.Parent()
		if !ok {
			// The main line's first move has no owner to hang an alternative on
			return nil, 0, &errors.MoveError{
				Err:      fmt.Errorf("%w: %w", errors.ErrPlyIndexOutOfRange, errors.ErrNoFirstMoveAlternative),
				Path:     path.String(),
				Ply:      ply,
				MoveText: rec.Notation,
			}
		}
		return t.Branch(parentPath, sel.Ply, rec)
	}
	return t.Branch(path, ply, rec)
}

// Branch records rec as a variation of the move at (path, ply), which must
// exist, even when that move is the tip of its line. An existing variation
// starting with the same move is reused.
func (t *Tree) Branch(path Path, ply int, rec *MoveRecord) (Path, int, error) {
	line, err := t.Resolve(path)
	if err != nil {
		return nil, 0, err
	}
	owner := line.At(ply)
	if owner == nil {
		return nil, 0, &errors.MoveError{Err: errors.ErrPlyIndexOutOfRange, Path: path.String(), Ply: ply, MoveText: rec.Notation}
	}
	if err := checkAlternation(owner, rec); err != nil {
		return nil, 0, &errors.MoveError{Err: err, Path: path.String(), Ply: ply, MoveText: rec.Notation}
	}
	if next := line.At(ply + 1); next != nil && next.SameMove(rec) {
		return nil, 0, &errors.MoveError{
			Err:      fmt.Errorf("%w: %w", errors.ErrIllegalMove, errors.ErrDuplicateMove),
			Path:     path.String(),
			Ply:      ply,
			MoveText: rec.Notation,
		}
	}

	for i, v := range owner.variations {
		if first := v.At(0); first != nil && first.SameMove(rec) {
			return path.Child(ply, i+1), 0, nil
		}
	}

	variation := &Line{}
	variation.append(detach(rec))
	owner.variations = append(owner.variations, variation)
	return path.Child(ply, len(owner.variations)), 0, nil
}

// checkAlternation rejects a move by the side that made prev.
func checkAlternation(prev, rec *MoveRecord) error {
	if prev != nil && prev.Side == rec.Side {
		return errors.Wrapf(errors.ErrIllegalMove, "%s cannot move twice in a row", rec.Side)
	}
	return nil
}

// detach copies a record so the tree never shares it with the caller.
func detach(rec *MoveRecord) *MoveRecord {
	stored := *rec
	stored.variations = nil
	return &stored
}

// SetComment replaces the comment of the move at (path, ply).
func (t *Tree) SetComment(path Path, ply int, comment string) error {
	rec, err := t.Move(path, ply)
	if err != nil {
		return err
	}
	rec.Comment = comment
	return nil
}

// SetGlyph replaces the annotation symbol of the move at (path, ply).
func (t *Tree) SetGlyph(path Path, ply int, glyph Glyph) error {
	rec, err := t.Move(path, ply)
	if err != nil {
		return err
	}
	rec.Glyph = glyph
	return nil
}

// PathMoves yields every move from the start of the game to (path, ply):
// the enclosing lines up to each branch move, then the addressed line up to
// ply. It is lazy and restartable; an invalid path yields nothing further.
func (t *Tree) PathMoves(path Path, ply int) iter.Seq[*MoveRecord] {
	return func(yield func(*MoveRecord) bool) {
		if len(path) == 0 || path[0] != (Selector{}) {
			return
		}
		line := t.root
		for _, sel := range path[1:] {
			owner := line.At(sel.Ply)
			if owner == nil || sel.Variation < 1 || sel.Variation > len(owner.variations) {
				return
			}
			for i := 0; i <= sel.Ply; i++ {
				if !yield(line.moves[i]) {
					return
				}
			}
			line = owner.variations[sel.Variation-1]
		}
		for i := 0; i <= ply && i < line.Len(); i++ {
			if !yield(line.moves[i]) {
				return
			}
		}
	}
}

// Depth returns the deepest variation nesting; 0 for a tree without variations.
func (t *Tree) Depth() int {
	type frame struct {
		line  *Line
		depth int
	}
	deepest := 0
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		deepest = max(deepest, f.depth)
		for _, m := range f.line.moves {
			for _, v := range m.variations {
				stack = append(stack, frame{v, f.depth + 1})
			}
		}
	}
	return deepest
}

// Count returns the number of moves in the whole tree.
func (t *Tree) Count() int {
	count := 0
	stack := []*Line{t.root}
	for len(stack) > 0 {
		line := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count += line.Len()
		for _, m := range line.moves {
			stack = append(stack, m.variations...)
		}
	}
	return count
}
