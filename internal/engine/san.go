package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/movetree-go/internal/chess"
	"github.com/lgbarn/movetree-go/internal/errors"
	"github.com/lgbarn/movetree-go/internal/parser"
)

// SAN returns the standard algebraic notation of a legal move on board,
// including the minimal disambiguation and a check or mate suffix.
func SAN(board *chess.Board, move *chess.Move) string {
	var sb strings.Builder

	switch move.Class {
	case chess.NullMove:
		return chess.NullMoveString
	case chess.KingsideCastle:
		sb.WriteString("O-O")
	case chess.QueensideCastle:
		sb.WriteString("O-O-O")
	default:
		if move.PieceToMove == chess.Pawn {
			if move.IsCapture() {
				sb.WriteByte(byte(move.From.Col))
				sb.WriteByte('x')
			}
			sb.WriteString(move.To.String())
			if move.IsPromotion() {
				sb.WriteByte('=')
				sb.WriteByte(move.PromotedPiece.Letter())
			}
		} else {
			sb.WriteByte(move.PieceToMove.Letter())
			sb.WriteString(disambiguation(board, move))
			if move.IsCapture() {
				sb.WriteByte('x')
			}
			sb.WriteString(move.To.String())
		}
	}

	after := board.Copy()
	if ApplyMove(after, move) && IsInCheck(after, after.ToMove) {
		if HasLegalMoves(after) {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	return sb.String()
}

// disambiguation returns the file, rank or full square needed to tell move
// apart from other legal moves of the same piece type to the same square.
func disambiguation(board *chess.Board, move *chess.Move) string {
	var rivals []*chess.Move
	for _, m := range LegalMoves(board) {
		if m.PieceToMove == move.PieceToMove && m.To == move.To && m.From != move.From && !m.IsCastle() {
			rivals = append(rivals, m)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameCol, sameRank := false, false
	for _, m := range rivals {
		if m.From.Col == move.From.Col {
			sameCol = true
		}
		if m.From.Rank == move.From.Rank {
			sameRank = true
		}
	}
	switch {
	case !sameCol:
		return string(byte(move.From.Col))
	case !sameRank:
		return string(byte(move.From.Rank))
	default:
		return move.From.String()
	}
}

// ResolveSAN finds the unique legal move on board described by text. Both
// SAN ("Nbd7", "exd5", "O-O", "e8=Q+") and long algebraic ("g1f3", "e7e8q")
// are accepted; trailing glyphs are ignored. A promotion written without a
// piece promotes to a queen. Errors wrap errors.ErrIllegalMove.
func ResolveSAN(board *chess.Board, text string) (*chess.Move, error) {
	text = strings.TrimRight(strings.TrimSpace(text), "!?")
	decoded := parser.DecodeMove(text)

	switch decoded.Class {
	case chess.UnknownMove:
		return nil, fmt.Errorf("unreadable move %q: %w", text, errors.ErrIllegalMove)
	case chess.NullMove:
		return nil, fmt.Errorf("null move: %w", errors.ErrIllegalMove)
	}

	coordinate := parser.IsCoordinateMove(text)
	var matches []*chess.Move
	for _, m := range LegalMoves(board) {
		var ok bool
		if coordinate {
			ok = m.From == decoded.From && m.To == decoded.To
		} else {
			ok = matchesSAN(m, decoded)
		}
		if ok && promotionMatches(m, decoded) {
			matches = append(matches, m)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no legal move matches %q: %w", text, errors.ErrIllegalMove)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous move %q: %w", text, errors.ErrIllegalMove)
	}
}

// matchesSAN compares a generated legal move against what the SAN text says.
func matchesSAN(m, decoded *chess.Move) bool {
	if decoded.IsCastle() || m.IsCastle() {
		return m.Class == decoded.Class
	}
	if m.PieceToMove != decoded.PieceToMove || m.To != decoded.To {
		return false
	}
	if decoded.From.Col != 0 && decoded.From.Col != m.From.Col {
		return false
	}
	if decoded.From.Rank != 0 && decoded.From.Rank != m.From.Rank {
		return false
	}
	// A pawn capture must name its file
	if m.PieceToMove == chess.Pawn && decoded.From.Col == 0 && m.From.Col != m.To.Col {
		return false
	}
	return true
}

func promotionMatches(m, decoded *chess.Move) bool {
	if !m.IsPromotion() {
		return decoded.PromotedPiece == chess.Empty
	}
	if decoded.PromotedPiece == chess.Empty {
		return m.PromotedPiece == chess.Queen
	}
	return m.PromotedPiece == decoded.PromotedPiece
}
