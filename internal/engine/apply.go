package engine

import "github.com/lgbarn/movetree-go/internal/chess"

// ApplyMove plays a move whose source square is known onto the board and
// updates the side to move, castling rights, en passant square and clocks.
// It returns false, leaving the board in an unspecified state, when the move
// does not fit the board. Legality against check is not tested here; use
// LegalMoves or ResolveSAN to obtain legal moves.
func ApplyMove(board *chess.Board, move *chess.Move) bool {
	if move == nil {
		return false
	}

	colour := board.ToMove
	switch move.Class {
	case chess.NullMove:
		board.EnPassant = false
		finishMove(board, colour, false)
		return true
	case chess.KingsideCastle, chess.QueensideCastle:
		return applyCastle(board, move.Class == chess.KingsideCastle)
	case chess.UnknownMove:
		return false
	}

	piece := board.Get(move.From)
	if owner, ok := board.Owner(move.From); !ok || owner != colour || !move.To.Valid() {
		return false
	}
	captured := board.Get(move.To)
	if owner, ok := board.Owner(move.To); ok && owner == colour {
		return false
	}

	pieceType := chess.ExtractPiece(piece)
	resetClock := pieceType == chess.Pawn || captured != chess.Empty

	if move.Class == chess.EnPassantPawnMove {
		board.Set(chess.Square{Col: move.To.Col, Rank: move.From.Rank}, chess.Empty)
	}

	board.Set(move.From, chess.Empty)
	if move.Class == chess.PawnMoveWithPromotion && move.PromotedPiece != chess.Empty {
		board.Set(move.To, chess.MakeColouredPiece(colour, move.PromotedPiece))
	} else {
		board.Set(move.To, piece)
	}

	switch pieceType {
	case chess.King:
		board.SetKing(colour, move.To)
		clearCastleRights(board, colour)
	case chess.Rook:
		updateCastlingRightsForRook(board, colour, move.From)
	}
	if captured != chess.Empty && chess.ExtractPiece(captured) == chess.Rook {
		updateCastlingRightsForRook(board, colour.Opposite(), move.To)
	}

	board.EnPassant = false
	if pieceType == chess.Pawn && abs(int(move.To.Rank)-int(move.From.Rank)) == 2 {
		board.EnPassant = true
		board.EPSquare = move.From.Offset(0, chess.ColourOffset(colour))
	}

	finishMove(board, colour, resetClock)
	return true
}

// finishMove advances the clocks and hands the move to the other side.
func finishMove(board *chess.Board, colour chess.Colour, resetClock bool) {
	if resetClock {
		board.HalfmoveClock = 0
	} else {
		board.HalfmoveClock++
	}
	if colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = colour.Opposite()
}

// applyCastle applies a castling move.
func applyCastle(board *chess.Board, kingside bool) bool {
	colour := board.ToMove
	rank := backRank(colour)
	kingFrom := board.King(colour)

	kingsideRook, queensideRook := castleRights(board, colour)
	kingTo := chess.Square{Col: 'g', Rank: rank}
	rookFrom := chess.Square{Col: kingsideRook, Rank: rank}
	rookTo := chess.Square{Col: 'f', Rank: rank}
	if !kingside {
		kingTo.Col = 'c'
		rookFrom.Col = queensideRook
		rookTo.Col = 'd'
	}
	if rookFrom.Col == 0 || kingFrom.Rank != rank {
		return false
	}

	king := board.Get(kingFrom)
	rook := board.Get(rookFrom)
	board.Set(kingFrom, chess.Empty)
	board.Set(rookFrom, chess.Empty)
	board.Set(kingTo, king)
	board.Set(rookTo, rook)

	board.SetKing(colour, kingTo)
	clearCastleRights(board, colour)
	board.EnPassant = false
	finishMove(board, colour, false)

	return true
}

// updateCastlingRightsForRook removes castling rights when a rook moves or is captured.
func updateCastlingRightsForRook(board *chess.Board, colour chess.Colour, sq chess.Square) {
	if sq.Rank != backRank(colour) {
		return
	}
	if colour == chess.White {
		if sq.Col == board.WKingCastle {
			board.WKingCastle = 0
		}
		if sq.Col == board.WQueenCastle {
			board.WQueenCastle = 0
		}
	} else {
		if sq.Col == board.BKingCastle {
			board.BKingCastle = 0
		}
		if sq.Col == board.BQueenCastle {
			board.BQueenCastle = 0
		}
	}
}
