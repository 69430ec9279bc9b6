package engine

import "github.com/lgbarn/movetree-go/internal/chess"

var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// IsInCheck returns true if the given colour's king is in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king := board.King(colour)

	// If king position not tracked, search for it
	if !king.Valid() {
		king = findKing(board, colour)
		if !king.Valid() {
			return false
		}
	}

	return isSquareAttacked(board, king, colour.Opposite())
}

// findKing finds the king of the given colour on the board.
func findKing(board *chess.Board, colour chess.Colour) chess.Square {
	king := chess.MakeColouredPiece(colour, chess.King)
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			sq := chess.Square{Col: col, Rank: rank}
			if board.Get(sq) == king {
				return sq
			}
		}
	}
	return chess.Square{}
}

// isSquareAttacked returns true if the square is attacked by the given colour.
// Squares off the board read as chess.Off, so the hedge does the bounds checks.
func isSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	// Pawns attack from one rank behind, seen from the attacker
	pawn := chess.MakeColouredPiece(byColour, chess.Pawn)
	behind := -chess.ColourOffset(byColour)
	if board.Get(sq.Offset(-1, behind)) == pawn || board.Get(sq.Offset(1, behind)) == pawn {
		return true
	}

	knight := chess.MakeColouredPiece(byColour, chess.Knight)
	for _, o := range knightOffsets {
		if board.Get(sq.Offset(o[0], o[1])) == knight {
			return true
		}
	}

	king := chess.MakeColouredPiece(byColour, chess.King)
	for _, o := range kingOffsets {
		if board.Get(sq.Offset(o[0], o[1])) == king {
			return true
		}
	}

	queen := chess.MakeColouredPiece(byColour, chess.Queen)
	bishop := chess.MakeColouredPiece(byColour, chess.Bishop)
	rook := chess.MakeColouredPiece(byColour, chess.Rook)
	for _, dir := range diagonalDirs {
		if p := firstPieceAlong(board, sq, dir); p == bishop || p == queen {
			return true
		}
	}
	for _, dir := range straightDirs {
		if p := firstPieceAlong(board, sq, dir); p == rook || p == queen {
			return true
		}
	}

	return false
}

// firstPieceAlong returns the first non-empty square content along a ray,
// which is chess.Off when the ray leaves the board unblocked.
func firstPieceAlong(board *chess.Board, from chess.Square, dir [2]int) chess.Piece {
	sq := from.Offset(dir[0], dir[1])
	for {
		p := board.Get(sq)
		if p != chess.Empty {
			return p
		}
		sq = sq.Offset(dir[0], dir[1])
	}
}
