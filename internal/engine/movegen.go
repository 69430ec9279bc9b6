package engine

import "github.com/lgbarn/movetree-go/internal/chess"

var promotionPieces = [4]chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// LegalMoves returns every legal move for the side to move. Each move carries
// its full From and To squares, the moving piece and any captured or promoted
// piece. The order is deterministic: board order, then generation order.
func LegalMoves(board *chess.Board) []*chess.Move {
	var moves []*chess.Move
	forEachLegalMove(board, func(m *chess.Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(board *chess.Board) bool {
	found := false
	forEachLegalMove(board, func(*chess.Move) bool {
		found = true
		return false
	})
	return found
}

// forEachLegalMove calls yield for each legal move until yield returns false.
func forEachLegalMove(board *chess.Board, yield func(*chess.Move) bool) {
	colour := board.ToMove
	keepGoing := true
	emit := func(m *chess.Move) {
		if keepGoing && tryMove(board, m) {
			keepGoing = yield(m)
		}
	}

	for col := chess.Col('a'); col <= 'h' && keepGoing; col++ {
		for rank := chess.Rank('1'); rank <= '8' && keepGoing; rank++ {
			from := chess.Square{Col: col, Rank: rank}
			owner, occupied := board.Owner(from)
			if !occupied || owner != colour {
				continue
			}

			switch pieceType := chess.ExtractPiece(board.Get(from)); pieceType {
			case chess.Pawn:
				pawnMoves(board, from, colour, emit)
			case chess.Knight:
				stepMoves(board, from, colour, pieceType, knightOffsets[:], emit)
			case chess.King:
				stepMoves(board, from, colour, pieceType, kingOffsets[:], emit)
			case chess.Bishop:
				slidingMoves(board, from, colour, pieceType, diagonalDirs[:], emit)
			case chess.Rook:
				slidingMoves(board, from, colour, pieceType, straightDirs[:], emit)
			case chess.Queen:
				slidingMoves(board, from, colour, pieceType, diagonalDirs[:], emit)
				slidingMoves(board, from, colour, pieceType, straightDirs[:], emit)
			}
		}
	}
	if keepGoing {
		castlingMoves(board, colour, emit)
	}
}

// tryMove makes a move on a copied board and checks it does not leave the
// mover's king in check.
func tryMove(board *chess.Board, move *chess.Move) bool {
	testBoard := board.Copy()
	if !ApplyMove(testBoard, move) {
		return false
	}
	return !IsInCheck(testBoard, board.ToMove)
}

func newBoardMove(class chess.MoveClass, piece chess.Piece, from, to chess.Square, captured chess.Piece) *chess.Move {
	m := chess.NewMove()
	m.Class = class
	m.PieceToMove = piece
	m.From = from
	m.To = to
	if captured != chess.Off {
		m.CapturedPiece = captured
	}
	return m
}

// pawnMoves generates pushes, captures, en passant and promotions.
func pawnMoves(board *chess.Board, from chess.Square, colour chess.Colour, emit func(*chess.Move)) {
	dir := chess.ColourOffset(colour)

	addPawnMove := func(to chess.Square, captured chess.Piece) {
		if to.Rank == promotionRank(colour) {
			for _, promoted := range promotionPieces {
				m := newBoardMove(chess.PawnMoveWithPromotion, chess.Pawn, from, to, captured)
				m.PromotedPiece = promoted
				emit(m)
			}
			return
		}
		emit(newBoardMove(chess.PawnMove, chess.Pawn, from, to, captured))
	}

	one := from.Offset(0, dir)
	if board.Get(one) == chess.Empty {
		addPawnMove(one, chess.Empty)
		two := from.Offset(0, 2*dir)
		if from.Rank == pawnStartRank(colour) && board.Get(two) == chess.Empty {
			addPawnMove(two, chess.Empty)
		}
	}

	enemyPawn := chess.MakeColouredPiece(colour.Opposite(), chess.Pawn)
	for _, dc := range [2]int{-1, 1} {
		to := from.Offset(dc, dir)
		target := board.Get(to)
		switch {
		case target == chess.Off:
		case target != chess.Empty:
			if chess.ExtractColour(target) != colour {
				addPawnMove(to, target)
			}
		case board.EnPassant && to == board.EPSquare &&
			board.Get(to.Offset(0, -dir)) == enemyPawn:
			emit(newBoardMove(chess.EnPassantPawnMove, chess.Pawn, from, to, enemyPawn))
		}
	}
}

// stepMoves generates knight and king moves.
func stepMoves(board *chess.Board, from chess.Square, colour chess.Colour, piece chess.Piece, offsets [][2]int, emit func(*chess.Move)) {
	for _, o := range offsets {
		to := from.Offset(o[0], o[1])
		target := board.Get(to)
		if target == chess.Off {
			continue
		}
		if target != chess.Empty && chess.ExtractColour(target) == colour {
			continue
		}
		emit(newBoardMove(chess.PieceMove, piece, from, to, target))
	}
}

// slidingMoves generates moves along rays until blocked.
func slidingMoves(board *chess.Board, from chess.Square, colour chess.Colour, piece chess.Piece, dirs [][2]int, emit func(*chess.Move)) {
	for _, dir := range dirs {
		to := from.Offset(dir[0], dir[1])
		for {
			target := board.Get(to)
			if target == chess.Off {
				break
			}
			if target != chess.Empty {
				if chess.ExtractColour(target) != colour {
					emit(newBoardMove(chess.PieceMove, piece, from, to, target))
				}
				break // Blocked
			}
			emit(newBoardMove(chess.PieceMove, piece, from, to, chess.Empty))
			to = to.Offset(dir[0], dir[1])
		}
	}
}

// castlingMoves generates castling when the right exists, the squares between
// king and rook are empty, and the king neither starts in, passes through nor
// lands on an attacked square.
func castlingMoves(board *chess.Board, colour chess.Colour, emit func(*chess.Move)) {
	rank := backRank(colour)
	kingSq := chess.Square{Col: 'e', Rank: rank}
	if board.King(colour) != kingSq || IsInCheck(board, colour) {
		return
	}
	opponent := colour.Opposite()
	rook := chess.MakeColouredPiece(colour, chess.Rook)
	at := func(col chess.Col) chess.Square { return chess.Square{Col: col, Rank: rank} }

	kingside, queenside := castleRights(board, colour)
	if kingside != 0 && board.Get(at(kingside)) == rook &&
		board.Get(at('f')) == chess.Empty && board.Get(at('g')) == chess.Empty &&
		!isSquareAttacked(board, at('f'), opponent) && !isSquareAttacked(board, at('g'), opponent) {
		emit(newBoardMove(chess.KingsideCastle, chess.King, kingSq, at('g'), chess.Empty))
	}
	if queenside != 0 && board.Get(at(queenside)) == rook &&
		board.Get(at('b')) == chess.Empty && board.Get(at('c')) == chess.Empty && board.Get(at('d')) == chess.Empty &&
		!isSquareAttacked(board, at('d'), opponent) && !isSquareAttacked(board, at('c'), opponent) {
		emit(newBoardMove(chess.QueensideCastle, chess.King, kingSq, at('c'), chess.Empty))
	}
}
