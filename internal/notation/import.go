package notation

import (
	"io"

	"github.com/lgbarn/movetree-go/internal/errors"
	"github.com/lgbarn/movetree-go/internal/movetree"
	"github.com/lgbarn/movetree-go/internal/parser"
	"github.com/lgbarn/movetree-go/internal/rules"
)

// Import parses movetext and replays it through oracle into a new tree,
// starting from oracle.InitialPosition(). Move numbers are informational,
// tag pairs and results are dropped, and NAGs $1..$6 become glyphs.
//
// A move the oracle rejects fails the import with an error wrapping
// errors.ErrIllegalMove; malformed text fails with errors.ErrParseFailure.
func Import(oracle rules.Oracle, text string, opts ...Option) (*movetree.Tree, error) {
	o := newOptions(opts)
	doc, err := parser.ParseString(text, o.maxDepth)
	if err != nil {
		return nil, err
	}
	return Build(oracle, doc)
}

// ImportAll reads every document in r, one tree each.
func ImportAll(oracle rules.Oracle, r io.Reader, opts ...Option) ([]*movetree.Tree, error) {
	o := newOptions(opts)
	p := parser.NewParser(r, o.maxDepth)

	var trees []*movetree.Tree
	for {
		doc, err := p.ParseDocument()
		if err != nil {
			return trees, err
		}
		if doc == nil {
			return trees, nil
		}
		tree, err := Build(oracle, doc)
		if err != nil {
			return trees, err
		}
		trees = append(trees, tree)
	}
}

// importJob is one parsed sequence waiting to be replayed. A job with
// branch set hangs its first move off (path, ply) as a variation.
type importJob struct {
	seq    *parser.Sequence
	path   movetree.Path
	ply    int
	pos    rules.Position
	branch bool
}

// Build replays a parsed document into a new tree. Sequences are processed
// breadth first from a queue, so nesting depth costs no stack.
func Build(oracle rules.Oracle, doc *parser.Document) (*movetree.Tree, error) {
	tree := movetree.New()
	if doc.Moves == nil {
		return tree, nil
	}

	queue := []importJob{{seq: doc.Moves, path: movetree.Root(), ply: -1, pos: oracle.InitialPosition()}}
	for len(queue) > 0 {
		job := queue[0]
		queue = queue[1:]

		path, ply, pos := job.path, job.ply, job.pos
		for i, node := range job.seq.Nodes {
			res, err := oracle.ApplyMove(pos, node.SAN)
			if err != nil {
				return nil, &errors.ParseError{Err: err, Line: node.Line, Column: node.Column, Expected: "legal move", Got: node.SAN}
			}

			rec := movetree.NewRecord(res)
			rec.Comment = node.Comment
			rec.Glyph = glyphOf(node.NAGs)

			if i == 0 && job.branch {
				path, ply, err = tree.Branch(path, ply, rec)
			} else {
				path, ply, err = place(tree, path, ply, rec)
			}
			if err != nil {
				return nil, &errors.ParseError{Err: err, Line: node.Line, Column: node.Column, Got: node.SAN}
			}

			for _, v := range node.Variations {
				queue = append(queue, importJob{seq: v, path: path, ply: ply, pos: res.Position, branch: true})
			}
			pos = res.Position
		}
	}
	return tree, nil
}

// place steps onto the next move when it is already rec, which happens
// when a variation repeats one written earlier, and inserts otherwise.
func place(tree *movetree.Tree, path movetree.Path, ply int, rec *movetree.MoveRecord) (movetree.Path, int, error) {
	line, err := tree.Resolve(path)
	if err != nil {
		return nil, 0, err
	}
	if next := line.At(ply + 1); next != nil && next.SameMove(rec) {
		return path, ply + 1, nil
	}
	return tree.InsertMove(path, ply, rec)
}

// glyphOf returns the first NAG that is one of the six move glyphs.
func glyphOf(nags []string) movetree.Glyph {
	for _, nag := range nags {
		if g, ok := movetree.ParseGlyph(nag); ok && g != movetree.GlyphNone {
			return g
		}
	}
	return movetree.GlyphNone
}
