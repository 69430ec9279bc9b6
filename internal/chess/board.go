package chess

// Board represents a chess board with all state needed to play from it.
type Board struct {
	// The board squares with a hedge of 2 around for knight move calculation.
	// board[col][rank] where col and rank are 0-11 (with hedge).
	Squares [Hedge + BoardSize + Hedge][Hedge + BoardSize + Hedge]Piece

	// Who has the next move.
	ToMove Colour

	// The current full-move number.
	MoveNumber uint

	// Rook starting columns for the 4 castling options; 0 when the right is gone.
	WKingCastle  Col
	WQueenCastle Col
	BKingCastle  Col
	BQueenCastle Col

	// Where the two kings are, for check detection.
	WKing Square
	BKing Square

	// Is an en passant capture possible? If so EPSquare is the target.
	EnPassant bool
	EPSquare  Square

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock uint
}

// NewBoard creates a new empty board with White to move.
func NewBoard() *Board {
	b := &Board{
		ToMove:     White,
		MoveNumber: 1,
	}
	for col := 0; col < Hedge+BoardSize+Hedge; col++ {
		for rank := 0; rank < Hedge+BoardSize+Hedge; rank++ {
			if col >= Hedge && col < Hedge+BoardSize &&
				rank >= Hedge && rank < Hedge+BoardSize {
				b.Squares[col][rank] = Empty
			} else {
				b.Squares[col][rank] = Off
			}
		}
	}
	return b
}

// Get returns the piece on a square, or Off if the square is not on the board.
func (b *Board) Get(sq Square) Piece {
	c := ColConvert(sq.Col)
	r := RankConvert(sq.Rank)
	if c == 0 || r == 0 {
		return Off
	}
	return b.Squares[c][r]
}

// Set places a piece on a square. Squares off the board are ignored.
func (b *Board) Set(sq Square, piece Piece) {
	c := ColConvert(sq.Col)
	r := RankConvert(sq.Rank)
	if c != 0 && r != 0 {
		b.Squares[c][r] = piece
	}
}

// Owner reports the colour of the piece on sq and whether the square is occupied.
func (b *Board) Owner(sq Square) (Colour, bool) {
	p := b.Get(sq)
	if p == Empty || p == Off {
		return Black, false
	}
	return ExtractColour(p), true
}

// King returns the tracked square of the given colour's king.
func (b *Board) King(colour Colour) Square {
	if colour == White {
		return b.WKing
	}
	return b.BKing
}

// SetKing records where the given colour's king stands.
func (b *Board) SetKing(colour Colour, sq Square) {
	if colour == White {
		b.WKing = sq
	} else {
		b.BKing = sq
	}
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}
