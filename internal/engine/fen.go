// Package engine provides chess move validation and board manipulation.
// It is the board-level backend of the standard rules oracle.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/movetree-go/internal/chess"
	"github.com/lgbarn/movetree-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ConvertFENCharToPiece converts a FEN character to a piece type.
func ConvertFENCharToPiece(c byte) chess.Piece {
	switch c {
	case 'K', 'k':
		return chess.King
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'N', 'n':
		return chess.Knight
	case 'B', 'b':
		return chess.Bishop
	case 'P', 'p':
		return chess.Pawn
	default:
		return chess.Empty
	}
}

// SANPieceLetter returns the SAN letter for a piece.
func SANPieceLetter(piece chess.Piece) byte {
	return piece.Letter()
}

// ColouredPieceToFENLetter returns the FEN letter for a coloured piece.
func ColouredPieceToFENLetter(colouredPiece chess.Piece) byte {
	letter := chess.ExtractPiece(colouredPiece).Letter()
	if chess.ExtractColour(colouredPiece) == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// NewBoardFromFEN creates a board from a FEN string.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(board, parts); err != nil {
		return nil, err
	}
	parseCastlingRights(board, parts)
	if err := parseEnPassant(board, parts); err != nil {
		return nil, err
	}
	if err := parseClocks(board, parts); err != nil {
		return nil, err
	}
	if !board.WKing.Valid() || !board.BKing.Valid() {
		return nil, fmt.Errorf("both kings are required: %w", errors.ErrInvalidFEN)
	}

	return board, nil
}

// MustBoardFromFEN is NewBoardFromFEN for trusted constants; it panics on error.
func MustBoardFromFEN(fen string) *chess.Board {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		panic(err)
	}
	return board
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	return MustBoardFromFEN(InitialFEN)
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	rank := chess.Rank('8')
	col := chess.Col('a')

	for _, c := range positions {
		switch {
		case c == '/':
			if col != 'i' {
				return fmt.Errorf("rank %c has %d files: %w", rank, col-'a', errors.ErrInvalidFEN)
			}
			rank--
			col = 'a'
		case c >= '1' && c <= '8':
			col += chess.Col(c - '0')
			if col > 'i' {
				return fmt.Errorf("rank %c overflows: %w", rank, errors.ErrInvalidFEN)
			}
		default:
			piece := ConvertFENCharToPiece(byte(c))
			if piece == chess.Empty {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			if col > 'h' || rank < '1' {
				return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}

			sq := chess.Square{Col: col, Rank: rank}
			board.Set(sq, chess.MakeColouredPiece(colour, piece))
			if piece == chess.King {
				board.SetKing(colour, sq)
			}
			col++
		}
	}
	if rank != '1' || col != 'i' {
		return fmt.Errorf("incomplete piece placement: %w", errors.ErrInvalidFEN)
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field. A right is only
// kept when king and rook actually stand on their original squares.
func parseCastlingRights(board *chess.Board, parts []string) {
	if len(parts) < 3 || parts[2] == "-" {
		return
	}

	for _, c := range parts[2] {
		switch c {
		case 'K':
			if castlePiecesInPlace(board, chess.White, 'h') {
				board.WKingCastle = 'h'
			}
		case 'Q':
			if castlePiecesInPlace(board, chess.White, 'a') {
				board.WQueenCastle = 'a'
			}
		case 'k':
			if castlePiecesInPlace(board, chess.Black, 'h') {
				board.BKingCastle = 'h'
			}
		case 'q':
			if castlePiecesInPlace(board, chess.Black, 'a') {
				board.BQueenCastle = 'a'
			}
		}
	}
}

func castlePiecesInPlace(board *chess.Board, colour chess.Colour, rookCol chess.Col) bool {
	rank := backRank(colour)
	return board.Get(chess.Square{Col: 'e', Rank: rank}) == chess.MakeColouredPiece(colour, chess.King) &&
		board.Get(chess.Square{Col: rookCol, Rank: rank}) == chess.MakeColouredPiece(colour, chess.Rook)
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(board *chess.Board, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	sq := chess.Sq(parts[3])
	if !sq.Valid() || (sq.Rank != '3' && sq.Rank != '6') {
		return fmt.Errorf("invalid en passant square %q: %w", parts[3], errors.ErrInvalidFEN)
	}
	board.EnPassant = true
	board.EPSquare = sq
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, parts []string) error {
	if len(parts) >= 5 {
		n, err := strconv.ParseUint(parts[4], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid halfmove clock %q: %w", parts[4], errors.ErrInvalidFEN)
		}
		board.HalfmoveClock = uint(n)
	}
	if len(parts) >= 6 {
		n, err := strconv.ParseUint(parts[5], 10, 32)
		if err != nil || n == 0 {
			return fmt.Errorf("invalid fullmove number %q: %w", parts[5], errors.ErrInvalidFEN)
		}
		board.MoveNumber = uint(n)
	}
	return nil
}

// BoardToFEN converts a board to a FEN string.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	if board.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	if board.EnPassant {
		sb.WriteString(board.EPSquare.String())
	} else {
		sb.WriteByte('-')
	}
	fmt.Fprintf(&sb, " %d %d", board.HalfmoveClock, board.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.Rank('8'); rank >= '1'; rank-- {
		emptyCount := 0
		for col := chess.Col('a'); col <= 'h'; col++ {
			piece := board.Get(chess.Square{Col: col, Rank: rank})
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(ColouredPieceToFENLetter(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > '1' {
			sb.WriteByte('/')
		}
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	start := sb.Len()
	if board.WKingCastle != 0 {
		sb.WriteByte('K')
	}
	if board.WQueenCastle != 0 {
		sb.WriteByte('Q')
	}
	if board.BKingCastle != 0 {
		sb.WriteByte('k')
	}
	if board.BQueenCastle != 0 {
		sb.WriteByte('q')
	}
	if sb.Len() == start {
		sb.WriteByte('-')
	}
}
