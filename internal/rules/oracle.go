// Package rules defines the rules oracle the move tree consumes: it validates
// a proposed move against a position and reports the resulting position and
// the move's standard notation. The tree never looks inside a Position.
package rules

import "github.com/lgbarn/movetree-go/internal/chess"

// Position is an opaque board state. Implementations must be immutable:
// ApplyMove returns a new Position and never changes its argument.
type Position interface {
	// FEN renders the position for display, persistence and tests.
	FEN() string
	// SideToMove reports who moves next.
	SideToMove() chess.Colour
}

// Result describes a legal move and where it leads.
type Result struct {
	Position   Position
	Notation   string
	MovingSide chess.Colour
	// MoveNumber is the full-move number of the position the move was played from.
	MoveNumber int
	From       chess.Square
	To         chess.Square
	Promotion  chess.Piece
	IsCapture  bool
	IsCastle   bool
}

// Oracle validates moves. An illegal proposal yields an error wrapping
// errors.ErrIllegalMove and no Result.
type Oracle interface {
	InitialPosition() Position
	ApplyMove(pos Position, proposed string) (Result, error)
}

// Replay applies moves in order from start, stopping at the first failure.
func Replay(o Oracle, start Position, moves []string) ([]Result, error) {
	results := make([]Result, 0, len(moves))
	pos := start
	for _, m := range moves {
		res, err := o.ApplyMove(pos, m)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		pos = res.Position
	}
	return results, nil
}
