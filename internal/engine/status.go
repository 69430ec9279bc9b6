package engine

import "github.com/lgbarn/movetree-go/internal/chess"

// IsCheckmate reports whether the side to move is mated.
func IsCheckmate(board *chess.Board) bool {
	return IsInCheck(board, board.ToMove) && !HasLegalMoves(board)
}

// IsStalemate reports whether the side to move has no legal move and is not in check.
func IsStalemate(board *chess.Board) bool {
	return !IsInCheck(board, board.ToMove) && !HasLegalMoves(board)
}
