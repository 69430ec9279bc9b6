package parser

import (
	"strings"

	"github.com/lgbarn/movetree-go/internal/chess"
)

// isCol returns true if c is a valid column (file) character.
func isCol(c byte) bool {
	return c >= chess.FirstCol && c <= chess.LastCol
}

// isRank returns true if c is a valid rank character.
func isRank(c byte) bool {
	return c >= chess.FirstRank && c <= chess.LastRank
}

// pieceLetter returns the piece type named by an upper-case SAN letter.
// Lower-case 'b' is always a pawn file, never a bishop.
func pieceLetter(c byte) chess.Piece {
	switch c {
	case 'K':
		return chess.King
	case 'Q':
		return chess.Queen
	case 'R':
		return chess.Rook
	case 'N':
		return chess.Knight
	case 'B':
		return chess.Bishop
	}
	return chess.Empty
}

// promotionLetter accepts both cases, since long algebraic uses e7e8q.
func promotionLetter(c byte) chess.Piece {
	switch c {
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'N', 'n':
		return chess.Knight
	case 'B', 'b':
		return chess.Bishop
	}
	return chess.Empty
}

// isCapture returns true if c is a capture or separator character.
func isCapture(c byte) bool {
	return c == 'x' || c == 'X' || c == ':' || c == '-'
}

// isCastlingChar returns true if c is a castling character.
func isCastlingChar(c byte) bool {
	return c == 'O' || c == '0' || c == 'o'
}

// isCheck returns true if c is a check indicator.
func isCheck(c byte) bool {
	return c == '+' || c == '#'
}

// moveScanner walks a move string one byte at a time.
type moveScanner struct {
	s   string
	pos int
}

func (m *moveScanner) current() byte {
	if m.pos >= len(m.s) {
		return 0
	}
	return m.s[m.pos]
}

func (m *moveScanner) advance() {
	if m.pos < len(m.s) {
		m.pos++
	}
}

func (m *moveScanner) remaining() string {
	if m.pos >= len(m.s) {
		return ""
	}
	return m.s[m.pos:]
}

// square consumes a full or partial square. Either coordinate may be zero.
func (m *moveScanner) square() chess.Square {
	var sq chess.Square
	if isCol(m.current()) {
		sq.Col = chess.Col(m.current())
		m.advance()
	}
	if isRank(m.current()) {
		sq.Rank = chess.Rank(m.current())
		m.advance()
	}
	return sq
}

// DecodeMove parses a move string and returns a Move with whatever the text
// itself tells us: class, piece, destination, promotion and any disambiguation
// of the source square. Resolving the source against a board is the rules
// engine's job. Undecodable text yields Class == chess.UnknownMove.
func DecodeMove(moveString string) *chess.Move {
	move := chess.NewMove()
	move.Text = moveString

	if moveString == chess.NullMoveString {
		move.Class = chess.NullMove
		return move
	}

	sc := &moveScanner{s: moveString}
	ok := true

	switch c := sc.current(); {
	case isCol(c):
		// e4, exd5, e8=Q, e2e4, e7e8q
		move.Class = chess.PawnMove
		move.PieceToMove = chess.Pawn
		first := sc.square()
		if isCapture(sc.current()) {
			sc.advance()
		}
		if isCol(sc.current()) {
			move.From = first
			move.To = sc.square()
		} else {
			move.To = first
		}
		if !move.To.Valid() {
			ok = false
			break
		}
		if sc.current() == '=' {
			sc.advance()
		}
		if p := promotionLetter(sc.current()); p != chess.Empty {
			move.Class = chess.PawnMoveWithPromotion
			move.PromotedPiece = p
			sc.advance()
		}

	case pieceLetter(c) != chess.Empty:
		// Nf3, Nbd7, R1e2, Qh4xe1, Nxe5
		move.Class = chess.PieceMove
		move.PieceToMove = pieceLetter(c)
		sc.advance()
		first := sc.square()
		if isCapture(sc.current()) {
			sc.advance()
		}
		if isCol(sc.current()) {
			move.From = first
			move.To = sc.square()
		} else {
			move.To = first
		}
		if !move.To.Valid() {
			ok = false
		}

	case isCastlingChar(c):
		sc.advance()
		if sc.current() == '-' {
			sc.advance()
		}
		if !isCastlingChar(sc.current()) {
			ok = false
			break
		}
		sc.advance()
		move.Class = chess.KingsideCastle
		move.PieceToMove = chess.King
		if sc.current() == '-' {
			sc.advance()
			if !isCastlingChar(sc.current()) {
				ok = false
				break
			}
		}
		if isCastlingChar(sc.current()) {
			move.Class = chess.QueensideCastle
			sc.advance()
		}

	default:
		ok = false
	}

	if ok {
		// Allow trailing checks
		for isCheck(sc.current()) {
			sc.advance()
		}

		rest := sc.remaining()
		switch {
		case rest == "":
		case (rest == "ep" || rest == "e.p.") && move.Class == chess.PawnMove:
			move.Class = chess.EnPassantPawnMove
		default:
			ok = false
		}
	}

	if !ok {
		move.Class = chess.UnknownMove
	}
	return move
}

// IsCoordinateMove reports whether s looks like a long algebraic move such
// as "e2e4" or "e7e8q". These carry a full source square.
func IsCoordinateMove(s string) bool {
	s = strings.TrimRight(s, "+#")
	if len(s) != 4 && len(s) != 5 {
		return false
	}
	if !isCol(s[0]) || !isRank(s[1]) || !isCol(s[2]) || !isRank(s[3]) {
		return false
	}
	return len(s) == 4 || promotionLetter(s[4]) != chess.Empty
}
