package rules

import (
	"fmt"

	"github.com/lgbarn/movetree-go/internal/chess"
	"github.com/lgbarn/movetree-go/internal/engine"
	"github.com/lgbarn/movetree-go/internal/errors"
)

// boardPosition wraps an engine board. The board is never mutated after
// construction.
type boardPosition struct {
	board *chess.Board
}

func (p boardPosition) FEN() string {
	return engine.BoardToFEN(p.board)
}

func (p boardPosition) SideToMove() chess.Colour {
	return p.board.ToMove
}

// Standard is the orthodox chess oracle backed by the engine package.
type Standard struct {
	start *chess.Board
}

// NewStandard returns an oracle whose initial position is the usual start.
func NewStandard() *Standard {
	return &Standard{start: engine.NewInitialBoard()}
}

// NewStandardFromFEN returns an oracle starting from fen.
func NewStandardFromFEN(fen string) (*Standard, error) {
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Standard{start: board}, nil
}

// InitialPosition returns the oracle's starting position.
func (s *Standard) InitialPosition() Position {
	return boardPosition{board: s.start.Copy()}
}

// PositionFromFEN parses a position for use with this oracle.
func (s *Standard) PositionFromFEN(fen string) (Position, error) {
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return boardPosition{board: board}, nil
}

// ApplyMove validates proposed (SAN or long algebraic) against pos.
func (s *Standard) ApplyMove(pos Position, proposed string) (Result, error) {
	bp, ok := pos.(boardPosition)
	if !ok {
		return Result{}, fmt.Errorf("position %T is foreign to the standard oracle: %w", pos, errors.ErrIllegalMove)
	}

	move, err := engine.ResolveSAN(bp.board, proposed)
	if err != nil {
		return Result{}, err
	}

	notation := engine.SAN(bp.board, move)
	next := bp.board.Copy()
	if !engine.ApplyMove(next, move) {
		return Result{}, fmt.Errorf("applying %q: %w", proposed, errors.ErrIllegalMove)
	}

	res := Result{
		Position:   boardPosition{board: next},
		Notation:   notation,
		MovingSide: bp.board.ToMove,
		MoveNumber: int(bp.board.MoveNumber),
		From:       move.From,
		To:         move.To,
		Promotion:  chess.Empty,
		IsCapture:  move.IsCapture(),
		IsCastle:   move.IsCastle(),
	}
	if move.IsPromotion() {
		res.Promotion = move.PromotedPiece
	}
	return res, nil
}

// Status summarises how the game stands in pos.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "ongoing"
}

// StatusOf reports whether pos is mate, stalemate or still going. Positions
// from other oracles are reported as Ongoing.
func StatusOf(pos Position) Status {
	bp, ok := pos.(boardPosition)
	if !ok {
		return Ongoing
	}
	switch {
	case engine.IsCheckmate(bp.board):
		return Checkmate
	case engine.IsStalemate(bp.board):
		return Stalemate
	}
	return Ongoing
}

// LegalMoves lists the SAN of every legal move in pos.
func (s *Standard) LegalMoves(pos Position) []string {
	bp, ok := pos.(boardPosition)
	if !ok {
		return nil
	}
	moves := engine.LegalMoves(bp.board)
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, engine.SAN(bp.board, m))
	}
	return out
}
