package chess

// Move is a single ply as understood by the rules engine: either a
// fully resolved legal move, or a decoded SAN move whose source square
// may still be partially unknown.
type Move struct {
	// The move text (e.g., "Nf3", "e4", "O-O").
	Text string

	// Class of move (pawn move, piece move, castle, etc.).
	Class MoveClass

	From Square
	To   Square

	// The piece being moved.
	PieceToMove Piece

	// The piece captured (Empty if no capture).
	CapturedPiece Piece

	// The piece promoted to (Empty if not a promotion).
	PromotedPiece Piece

	// Whether this move gives check or checkmate.
	CheckStatus CheckStatus
}

// NewMove creates a new empty move.
func NewMove() *Move {
	return &Move{
		CapturedPiece: Empty,
		PromotedPiece: Empty,
		CheckStatus:   NoCheck,
	}
}

// IsCapture returns true if this move is a capture.
func (m *Move) IsCapture() bool {
	return (m.CapturedPiece != Empty && m.CapturedPiece != Off) || m.Class == EnPassantPawnMove
}

// IsPromotion returns true if this move is a pawn promotion.
func (m *Move) IsPromotion() bool {
	return m.Class == PawnMoveWithPromotion
}

// IsCastle returns true if this move is a castling move.
func (m *Move) IsCastle() bool {
	switch m.Class {
	case KingsideCastle, QueensideCastle:
		return true
	default:
		return false
	}
}

// IsNull returns true if this is a null move.
func (m *Move) IsNull() bool {
	return m.Class == NullMove
}
