// Package chess provides core chess types shared by the rules engine and the move tree.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// ParseColour accepts "white"/"w" and "black"/"b" in any case.
func ParseColour(s string) (Colour, bool) {
	switch s {
	case "white", "White", "WHITE", "w", "W":
		return White, true
	case "black", "Black", "BLACK", "b", "B":
		return Black, true
	}
	return Black, false
}

// Piece represents a chess piece type.
type Piece int

const (
	Off   Piece = iota // Off the board (hedge square)
	Empty              // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece.
func (p Piece) String() string {
	names := []string{"Off", "Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece (uppercase).
func (p Piece) Letter() byte {
	letters := []byte{' ', ' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// MoveClass categorizes different types of chess moves.
type MoveClass int

const (
	PawnMove MoveClass = iota
	PawnMoveWithPromotion
	EnPassantPawnMove
	PieceMove
	KingsideCastle
	QueensideCastle
	NullMove
	UnknownMove
)

// Rank represents a chess rank (row) - '1' to '8'.
type Rank byte

// Col represents a chess file (column) - 'a' to 'h'.
type Col byte

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8
	Hedge     = 2 // Hedge size for knight move calculations

	RankBase  = '1'
	ColBase   = 'a'
	FirstRank = RankBase
	LastRank  = RankBase + BoardSize - 1
	FirstCol  = ColBase
	LastCol   = ColBase + BoardSize - 1
)

// RankConvert converts a rank character to a board array index.
func RankConvert(rank Rank) int {
	if rank >= FirstRank && rank <= LastRank {
		return int(rank-RankBase) + Hedge
	}
	return 0
}

// ColConvert converts a column character to a board array index.
func ColConvert(col Col) int {
	if col >= FirstCol && col <= LastCol {
		return int(col-ColBase) + Hedge
	}
	return 0
}

// Square is a board coordinate. A zero Col or Rank means "unknown", which is
// how partially disambiguated SAN moves are represented before resolution.
type Square struct {
	Col  Col
	Rank Rank
}

// Sq builds a square from its algebraic name, e.g. Sq("e4").
// Invalid names yield the zero Square.
func Sq(name string) Square {
	if len(name) != 2 {
		return Square{}
	}
	s := Square{Col: Col(name[0]), Rank: Rank(name[1])}
	if !s.Valid() {
		return Square{}
	}
	return s
}

// Valid reports whether both coordinates are on the board.
func (s Square) Valid() bool {
	return ColConvert(s.Col) != 0 && RankConvert(s.Rank) != 0
}

// Offset returns the square shifted by the given file and rank deltas.
// The result may be off the board; check Valid.
func (s Square) Offset(dc, dr int) Square {
	return Square{Col: Col(int(s.Col) + dc), Rank: Rank(int(s.Rank) + dr)}
}

// String returns the algebraic name of the square, or "-" if it is unknown.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte(s.Col), byte(s.Rank)})
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// PieceShift is used for encoding coloured pieces.
const PieceShift = 3

// MakeColouredPiece creates a coloured piece value.
func MakeColouredPiece(colour Colour, piece Piece) Piece {
	return Piece((int(piece) << PieceShift) | int(colour))
}

// W creates a white piece.
func W(piece Piece) Piece {
	return MakeColouredPiece(White, piece)
}

// B creates a black piece.
func B(piece Piece) Piece {
	return MakeColouredPiece(Black, piece)
}

// ExtractColour extracts the colour from a coloured piece.
func ExtractColour(colouredPiece Piece) Colour {
	return Colour(colouredPiece & 0x01)
}

// ExtractPiece extracts the piece type from a coloured piece.
func ExtractPiece(colouredPiece Piece) Piece {
	return Piece(colouredPiece >> PieceShift)
}

// NullMoveString is the PGN representation of a null move.
const NullMoveString = "--"

// CheckStatus indicates whether a move gives check or checkmate.
type CheckStatus int

const (
	NoCheck CheckStatus = iota
	Check
	Checkmate
)
