package parser

import (
	"testing"

	"github.com/lgbarn/movetree-go/internal/chess"
)

func TestDecodeMove(t *testing.T) {
	tests := []struct {
		input     string
		wantClass chess.MoveClass
		wantPiece chess.Piece
		wantFrom  chess.Square
		wantTo    chess.Square
		wantPromo chess.Piece
	}{
		{"e4", chess.PawnMove, chess.Pawn, chess.Square{}, chess.Sq("e4"), chess.Empty},
		{"exd5", chess.PawnMove, chess.Pawn, chess.Square{Col: 'e'}, chess.Sq("d5"), chess.Empty},
		{"e8=Q", chess.PawnMoveWithPromotion, chess.Pawn, chess.Square{}, chess.Sq("e8"), chess.Queen},
		{"e7e8n", chess.PawnMoveWithPromotion, chess.Pawn, chess.Sq("e7"), chess.Sq("e8"), chess.Knight},
		{"exd6ep", chess.EnPassantPawnMove, chess.Pawn, chess.Square{Col: 'e'}, chess.Sq("d6"), chess.Empty},
		{"Nf3", chess.PieceMove, chess.Knight, chess.Square{}, chess.Sq("f3"), chess.Empty},
		{"Nbd7", chess.PieceMove, chess.Knight, chess.Square{Col: 'b'}, chess.Sq("d7"), chess.Empty},
		{"R1e2", chess.PieceMove, chess.Rook, chess.Square{Rank: '1'}, chess.Sq("e2"), chess.Empty},
		{"Qh4xe1+", chess.PieceMove, chess.Queen, chess.Sq("h4"), chess.Sq("e1"), chess.Empty},
		{"Nxe5#", chess.PieceMove, chess.Knight, chess.Square{}, chess.Sq("e5"), chess.Empty},
		{"O-O", chess.KingsideCastle, chess.King, chess.Square{}, chess.Square{}, chess.Empty},
		{"0-0-0", chess.QueensideCastle, chess.King, chess.Square{}, chess.Square{}, chess.Empty},
		{"--", chess.NullMove, chess.Off, chess.Square{}, chess.Square{}, chess.Empty},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := DecodeMove(tt.input)
			if m.Class != tt.wantClass {
				t.Errorf("Class = %v, want %v", m.Class, tt.wantClass)
			}
			if m.PieceToMove != tt.wantPiece {
				t.Errorf("PieceToMove = %v, want %v", m.PieceToMove, tt.wantPiece)
			}
			if m.From != tt.wantFrom || m.To != tt.wantTo {
				t.Errorf("squares = %+v -> %+v, want %+v -> %+v", m.From, m.To, tt.wantFrom, tt.wantTo)
			}
			if m.PromotedPiece != tt.wantPromo {
				t.Errorf("PromotedPiece = %v, want %v", m.PromotedPiece, tt.wantPromo)
			}
			if m.Text != tt.input {
				t.Errorf("Text = %q, want %q", m.Text, tt.input)
			}
		})
	}
}

func TestDecodeMove_Unknown(t *testing.T) {
	for _, input := range []string{"", "z9", "Ne", "O-", "e9", "Kxx1", "e4?"} {
		if m := DecodeMove(input); m.Class != chess.UnknownMove {
			t.Errorf("DecodeMove(%q).Class = %v, want UnknownMove", input, m.Class)
		}
	}
}

func TestIsCoordinateMove(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"e2e4", true},
		{"g1f3", true},
		{"e7e8q", true},
		{"e7e8Q+", true},
		{"e4", false},
		{"Nf3", false},
		{"e7e8k", false},
		{"e2e9", false},
	}
	for _, tt := range tests {
		if got := IsCoordinateMove(tt.input); got != tt.want {
			t.Errorf("IsCoordinateMove(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
