package movetree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/movetree-go/internal/errors"
)

// Selector picks one variation: the Variation-th (1-based) alternative hanging
// off the move at index Ply (0-based) of the enclosing line. The zero Selector
// is the root selector and only appears at the head of a Path.
type Selector struct {
	Ply       int
	Variation int
}

// Path locates one Line. Element 0 is always the root selector, which names
// the main line; every later element descends one variation. Paths are
// snapshot values: they hold no reference into the tree.
type Path []Selector

// Root returns the path of the main line.
func Root() Path {
	return Path{{}}
}

// String renders the path as "0", "0/3:1", "0/3:1/0:2".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('0')
	for _, s := range p[1:] {
		fmt.Fprintf(&sb, "/%d:%d", s.Ply, s.Variation)
	}
	return sb.String()
}

// ParsePath reads the String form back.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(s, "/")
	if parts[0] != "0" {
		return nil, errors.Wrapf(errors.ErrPathNotFound, "path %q must start at 0", s)
	}
	path := Root()
	for _, part := range parts[1:] {
		plyText, varText, ok := strings.Cut(part, ":")
		if !ok {
			return nil, errors.Wrapf(errors.ErrPathNotFound, "path %q: selector %q", s, part)
		}
		ply, err1 := strconv.Atoi(plyText)
		variation, err2 := strconv.Atoi(varText)
		if err1 != nil || err2 != nil || ply < 0 || variation < 1 {
			return nil, errors.Wrapf(errors.ErrPathNotFound, "path %q: selector %q", s, part)
		}
		path = append(path, Selector{Ply: ply, Variation: variation})
	}
	return path, nil
}

// Clone returns an independent copy.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}

// Child returns the path of a variation of the move at ply in p's line.
func (p Path) Child(ply, variation int) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, Selector{Ply: ply, Variation: variation})
}

// Parent returns the enclosing line's path and the selector that was popped.
// ok is false for the root path.
func (p Path) Parent() (parent Path, last Selector, ok bool) {
	if len(p) < 2 {
		return nil, Selector{}, false
	}
	return p[:len(p)-1].Clone(), p[len(p)-1], true
}

// Depth is the number of variations descended; 0 for the main line.
func (p Path) Depth() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Equal reports whether two paths address the same line.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
