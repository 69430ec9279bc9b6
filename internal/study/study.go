// Package study ties a move tree, its cursor and a rules oracle into one
// editable session, and keeps many sessions in a Registry.
package study

import (
	"github.com/lgbarn/movetree-go/internal/chess"
	"github.com/lgbarn/movetree-go/internal/cursor"
	"github.com/lgbarn/movetree-go/internal/drill"
	"github.com/lgbarn/movetree-go/internal/errors"
	"github.com/lgbarn/movetree-go/internal/movetree"
	"github.com/lgbarn/movetree-go/internal/notation"
	"github.com/lgbarn/movetree-go/internal/rules"
)

// Study is one editable game. It is not safe for concurrent use; the
// Registry serializes access.
type Study struct {
	ID       string
	StartFEN string

	oracle rules.Oracle
	tree   *movetree.Tree
	cursor *cursor.Cursor
	filter *drill.Filter
	opts   []notation.Option
}

// New creates an empty study positioned at the start. An empty startFEN
// means the standard initial position.
func New(id, startFEN string, opts ...notation.Option) (*Study, error) {
	oracle := rules.NewStandard()
	if startFEN != "" {
		var err error
		if oracle, err = rules.NewStandardFromFEN(startFEN); err != nil {
			return nil, err
		}
	}
	s := &Study{
		ID:       id,
		StartFEN: oracle.InitialPosition().FEN(),
		oracle:   oracle,
		filter:   drill.New(oracle),
		opts:     opts,
	}
	s.setTree(movetree.New())
	return s, nil
}

func (s *Study) setTree(tree *movetree.Tree) {
	s.tree = tree
	s.cursor = cursor.New(tree)
	s.cursor.ToStart()
}

// Tree returns the study's tree.
func (s *Study) Tree() *movetree.Tree {
	return s.tree
}

// Where returns the cursor position.
func (s *Study) Where() (movetree.Path, int) {
	return s.cursor.Where()
}

// Position replays the moves from the start to the cursor.
func (s *Study) Position() (rules.Position, error) {
	pos := s.oracle.InitialPosition()
	for rec := range s.cursor.MovesFromRoot() {
		res, err := s.oracle.ApplyMove(pos, rec.Notation)
		if err != nil {
			return nil, err
		}
		pos = res.Position
	}
	return pos, nil
}

// Play validates move at the cursor and records it. Replaying the move that
// already follows the cursor, or the first move of one of its variations,
// only moves the cursor there.
func (s *Study) Play(move string) (*movetree.MoveRecord, error) {
	pos, err := s.Position()
	if err != nil {
		return nil, err
	}
	res, err := s.oracle.ApplyMove(pos, move)
	if err != nil {
		return nil, err
	}
	rec := movetree.NewRecord(res)

	path, ply := s.cursor.Where()
	line, err := s.tree.Resolve(path)
	if err != nil {
		return nil, err
	}
	if next := line.At(ply + 1); next != nil && next.SameMove(rec) {
		if err := s.cursor.SwitchTo(path, ply+1); err != nil {
			return nil, err
		}
		return next, nil
	}
	// Before the first move of a variation the move it replaces is also
	// on offer.
	if parent, sel, ok := path.Parent(); ok && ply == -1 {
		parentLine, err := s.tree.Resolve(parent)
		if err != nil {
			return nil, err
		}
		if alt := parentLine.At(sel.Ply + 1); alt != nil && alt.SameMove(rec) {
			if err := s.cursor.SwitchTo(parent, sel.Ply+1); err != nil {
				return nil, err
			}
			return alt, nil
		}
	}

	path, ply, err = s.tree.InsertMove(path, ply, rec)
	if err != nil {
		return nil, err
	}
	if err := s.cursor.SwitchTo(path, ply); err != nil {
		return nil, err
	}
	return s.cursor.Current(), nil
}

// Forward steps the cursor forward.
func (s *Study) Forward() bool { return s.cursor.StepForward() }

// Back steps the cursor backward.
func (s *Study) Back() bool { return s.cursor.StepBackward() }

// Start moves the cursor before the first move.
func (s *Study) Start() { s.cursor.ToStart() }

// End moves the cursor to the end of its line.
func (s *Study) End() bool { return s.cursor.ToEnd() }

// Goto jumps to (path, ply). A bad target sends the cursor to the start and
// returns the error.
func (s *Study) Goto(path movetree.Path, ply int) error {
	if err := s.cursor.SwitchTo(path, ply); err != nil {
		s.cursor.ToStart()
		return err
	}
	return nil
}

// Annotate sets the glyph and comment of the move under the cursor.
func (s *Study) Annotate(glyph movetree.Glyph, comment string) error {
	path, ply := s.cursor.Where()
	if ply < 0 {
		return &errors.MoveError{Err: errors.ErrInvalidCursorTarget, Path: path.String(), Ply: ply}
	}
	if err := s.tree.SetGlyph(path, ply, glyph); err != nil {
		return err
	}
	return s.tree.SetComment(path, ply, comment)
}

// Drill returns the next move side is expected to find in the cursor's line.
func (s *Study) Drill(side chess.Colour) (drill.SideMove, bool, error) {
	path, ply := s.cursor.Where()
	return s.filter.Next(s.tree, path, side, ply)
}

// Text linearizes the tree.
func (s *Study) Text() string {
	return notation.Linearize(s.tree, s.opts...)
}

// Import replaces the tree with one read from text. On error the study is
// unchanged.
func (s *Study) Import(text string, opts ...notation.Option) error {
	tree, err := notation.Import(s.oracle, text, opts...)
	if err != nil {
		return err
	}
	s.setTree(tree)
	return nil
}

// Reset discards every move.
func (s *Study) Reset() {
	s.tree.Reset()
	s.cursor.ToStart()
}

// View is a read-only snapshot of a study for display.
type View struct {
	ID         string             `json:"id"`
	Path       string             `json:"path"`
	Ply        int                `json:"ply"`
	FEN        string             `json:"fen"`
	SideToMove string             `json:"sideToMove"`
	Status     string             `json:"status"`
	Current    string             `json:"current,omitempty"`
	LegalMoves []string           `json:"legalMoves"`
	Tree       *notation.JSONTree `json:"tree"`
}

// View describes the study at its cursor.
func (s *Study) View() (*View, error) {
	pos, err := s.Position()
	if err != nil {
		return nil, err
	}
	path, ply := s.cursor.Where()
	v := &View{
		ID:         s.ID,
		Path:       path.String(),
		Ply:        ply,
		FEN:        pos.FEN(),
		SideToMove: sideName(pos.SideToMove()),
		Status:     rules.StatusOf(pos).String(),
		LegalMoves: []string{},
		Tree:       notation.TreeToJSON(s.tree, s.opts...),
	}
	if rec := s.cursor.Current(); rec != nil {
		v.Current = rec.Notation
	}
	if lm, ok := s.oracle.(interface {
		LegalMoves(rules.Position) []string
	}); ok {
		v.LegalMoves = lm.LegalMoves(pos)
	}
	return v, nil
}

func sideName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// ParseSide reads "white"/"w" or "black"/"b".
func ParseSide(s string) (chess.Colour, bool) {
	switch s {
	case "white", "w", "White":
		return chess.White, true
	case "black", "b", "Black":
		return chess.Black, true
	}
	return chess.White, false
}
