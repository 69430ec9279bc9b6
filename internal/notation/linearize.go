// Package notation converts move trees to and from annotated movetext:
// "1. e4 (1... c5 2. Nf3) e5 2. Nf3 {the usual}". Variations are written
// immediately after the move they continue from.
package notation

import (
	"strconv"
	"strings"

	"github.com/lgbarn/movetree-go/internal/chess"
	"github.com/lgbarn/movetree-go/internal/movetree"
)

// Linearize renders the whole tree. An empty tree renders as "".
func Linearize(tree *movetree.Tree, opts ...Option) string {
	return LinearizeLine(tree.MainLine(), opts...)
}

// LinearizeLine renders one line and everything nested under it. Nesting is
// walked with an explicit stack, so depth is unbounded.
func LinearizeLine(line *movetree.Line, opts ...Option) string {
	o := newOptions(opts)
	w := newTextWriter(o.maxLineLength)

	type frame struct {
		line    *movetree.Line
		next    int
		pending []*movetree.Line // variations of the move at next-1
		nested  bool
	}

	stack := []frame{{line: line}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		if len(f.pending) > 0 {
			v := f.pending[0]
			f.pending = f.pending[1:]
			w.Open()
			stack = append(stack, frame{line: v, nested: true})
			continue
		}

		if f.next >= f.line.Len() {
			if f.nested {
				w.Close()
			}
			stack = stack[:len(stack)-1]
			continue
		}

		rec := f.line.At(f.next)
		writeMove(w, rec, f.next == 0, o)
		f.next++
		if o.keepVariations {
			f.pending = rec.Variations()
		}
	}
	return w.String()
}

// writeMove writes the number prefix, the move with its glyph and the comment.
func writeMove(w *textWriter, rec *movetree.MoveRecord, opensLine bool, o options) {
	switch {
	case rec.Side == chess.White:
		w.Write(strconv.Itoa(rec.MoveNumber) + ".")
	case opensLine:
		w.Write(strconv.Itoa(rec.MoveNumber) + "...")
	}

	text := rec.Notation
	if o.keepGlyphs {
		text += rec.Glyph.String()
	}
	w.Write(text)

	if !o.keepComments {
		return
	}
	if c := commentText(rec.Comment); c != "" {
		w.Write("{" + c + "}")
	}
}

// commentText keeps a comment from closing its braces early.
func commentText(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "}", ")")), " ")
}
