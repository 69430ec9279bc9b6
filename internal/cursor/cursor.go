// Package cursor navigates a move tree. A Cursor is a (Path, ply) pair that
// starts unset; ToStart or a successful SwitchTo positions it.
package cursor

import (
	"fmt"
	"iter"

	"github.com/lgbarn/movetree-go/internal/errors"
	"github.com/lgbarn/movetree-go/internal/movetree"
)

// Cursor points at one move of a tree, or at the start of a line (ply -1).
// When the tree changes underneath it so that its path no longer resolves,
// the next verb falls back to the start of the main line.
type Cursor struct {
	tree *movetree.Tree
	path movetree.Path
	ply  int
	set  bool
}

// New returns an unset cursor over tree.
func New(tree *movetree.Tree) *Cursor {
	return &Cursor{tree: tree, ply: -1}
}

// IsSet reports whether the cursor has been positioned.
func (c *Cursor) IsSet() bool {
	return c.set
}

// Where returns a copy of the cursor's path and its ply. An unset cursor
// reports a nil path.
func (c *Cursor) Where() (movetree.Path, int) {
	if !c.set {
		return nil, -1
	}
	return c.path.Clone(), c.ply
}

// ToStart moves to ([0], -1).
func (c *Cursor) ToStart() {
	c.path = movetree.Root()
	c.ply = -1
	c.set = true
}

// line resolves the current line, falling back to the start when the path
// or ply went stale.
func (c *Cursor) line() *movetree.Line {
	line, err := c.tree.Resolve(c.path)
	if err != nil || c.ply >= line.Len() {
		c.ToStart()
		return c.tree.MainLine()
	}
	return line
}

// ToEnd moves to the last ply of the current line without changing branch.
func (c *Cursor) ToEnd() bool {
	if !c.set {
		return false
	}
	line := c.line()
	if c.ply == line.Len()-1 {
		return false
	}
	c.ply = line.Len() - 1
	return true
}

// StepForward advances one ply. At the tip of a line whose last move has
// variations it enters the first of them, before its first move. At a true
// leaf it does nothing and returns false.
func (c *Cursor) StepForward() bool {
	if !c.set {
		return false
	}
	line := c.line()
	if c.ply < line.Len()-1 {
		c.ply++
		return true
	}
	if c.ply >= 0 && line.At(c.ply).VariationCount() > 0 {
		c.path = c.path.Child(c.ply, 1)
		c.ply = -1
		return true
	}
	return false
}

// StepBackward retreats one ply. From the start of a variation it returns to
// the parent line at the move the variation branches from. At the start of
// the main line it does nothing and returns false.
func (c *Cursor) StepBackward() bool {
	if !c.set {
		return false
	}
	c.line()
	if c.ply > -1 {
		c.ply--
		return true
	}

	parent, sel, ok := c.path.Parent()
	if !ok {
		return false
	}
	parentLine, err := c.tree.Resolve(parent)
	if err != nil {
		c.ToStart()
		return true
	}
	c.path = parent
	c.ply = min(sel.Ply, parentLine.Len()-1)
	return true
}

// SwitchTo jumps to (path, ply). On failure the cursor is left unchanged and
// the error wraps errors.ErrInvalidCursorTarget.
func (c *Cursor) SwitchTo(path movetree.Path, ply int) error {
	line, err := c.tree.Resolve(path)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidCursorTarget, err)
	}
	if ply < -1 || ply >= line.Len() {
		return &errors.MoveError{Err: errors.ErrInvalidCursorTarget, Path: path.String(), Ply: ply}
	}
	c.path = path.Clone()
	c.ply = ply
	c.set = true
	return nil
}

// Current returns the move under the cursor, or nil at ply -1 or when unset.
func (c *Cursor) Current() *movetree.MoveRecord {
	if !c.set {
		return nil
	}
	return c.line().At(c.ply)
}

// MovesUpToCursor yields the addressed line from its first move through the
// cursor's ply. The cursor position is captured when this is called; the
// line is re-resolved on every iteration, so the sequence is restartable and
// never stale.
func (c *Cursor) MovesUpToCursor() iter.Seq[*movetree.MoveRecord] {
	path, ply := c.Where()
	tree := c.tree
	return func(yield func(*movetree.MoveRecord) bool) {
		if path == nil {
			return
		}
		line, err := tree.Resolve(path)
		if err != nil {
			return
		}
		for i := 0; i <= ply && i < line.Len(); i++ {
			if !yield(line.At(i)) {
				return
			}
		}
	}
}

// MovesFromRoot yields every move from the start of the game to the cursor,
// crossing branch points. Replaying these through the rules oracle gives
// the position the cursor denotes.
func (c *Cursor) MovesFromRoot() iter.Seq[*movetree.MoveRecord] {
	path, ply := c.Where()
	if path == nil {
		return func(func(*movetree.MoveRecord) bool) {}
	}
	return c.tree.PathMoves(path, ply)
}
