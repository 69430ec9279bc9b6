package engine

import "github.com/lgbarn/movetree-go/internal/chess"

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// backRank is the rank a side's king and rooks start on.
func backRank(colour chess.Colour) chess.Rank {
	if colour == chess.White {
		return '1'
	}
	return '8'
}

// pawnStartRank is the rank from which a side's pawns may double push.
func pawnStartRank(colour chess.Colour) chess.Rank {
	if colour == chess.White {
		return '2'
	}
	return '7'
}

// promotionRank is the rank on which a side's pawns promote.
func promotionRank(colour chess.Colour) chess.Rank {
	if colour == chess.White {
		return '8'
	}
	return '1'
}

// castleRights returns the rook columns still available for castling.
func castleRights(board *chess.Board, colour chess.Colour) (kingside, queenside chess.Col) {
	if colour == chess.White {
		return board.WKingCastle, board.WQueenCastle
	}
	return board.BKingCastle, board.BQueenCastle
}

// clearCastleRights removes both castling rights of a side.
func clearCastleRights(board *chess.Board, colour chess.Colour) {
	if colour == chess.White {
		board.WKingCastle = 0
		board.WQueenCastle = 0
	} else {
		board.BKingCastle = 0
		board.BQueenCastle = 0
	}
}
