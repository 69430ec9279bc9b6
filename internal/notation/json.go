package notation

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/movetree-go/internal/chess"
	"github.com/lgbarn/movetree-go/internal/movetree"
)

// JSONTree represents a move tree in JSON format.
type JSONTree struct {
	Moves    []JSONMove `json:"moves"`
	MoveText string     `json:"moveText"`
	Count    int        `json:"count"`
	Depth    int        `json:"depth"`
}

// JSONMove represents a move in JSON format. Path and Ply address the move
// for cursor jumps.
type JSONMove struct {
	Path       string       `json:"path"`
	Ply        int          `json:"ply"`
	MoveNumber int          `json:"moveNumber"`
	Color      string       `json:"color"` // "white" or "black"
	SAN        string       `json:"san"`
	UCI        string       `json:"uci,omitempty"`
	Promotion  string       `json:"promotion,omitempty"`
	Capture    bool         `json:"capture,omitempty"`
	Castle     bool         `json:"castle,omitempty"`
	Glyph      string       `json:"glyph,omitempty"`
	Comment    string       `json:"comment,omitempty"`
	Variations [][]JSONMove `json:"variations,omitempty"`
}

// TreeToJSON converts a tree. The walk uses an explicit stack; each line's
// slice is allocated at full length before its variations are filled in,
// so the pointers on the stack stay valid.
func TreeToJSON(tree *movetree.Tree, opts ...Option) *JSONTree {
	jt := &JSONTree{
		MoveText: Linearize(tree, opts...),
		Count:    tree.Count(),
		Depth:    tree.Depth(),
	}

	type pending struct {
		line   *movetree.Line
		path   movetree.Path
		target *[]JSONMove
	}
	stack := []pending{{tree.MainLine(), movetree.Root(), &jt.Moves}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		moves := make([]JSONMove, p.line.Len())
		for i := range moves {
			rec := p.line.At(i)
			moves[i] = convertMove(rec, p.path, i)
			if n := rec.VariationCount(); n > 0 {
				moves[i].Variations = make([][]JSONMove, n)
				for k, v := range rec.Variations() {
					stack = append(stack, pending{v, p.path.Child(i, k+1), &moves[i].Variations[k]})
				}
			}
		}
		*p.target = moves
	}
	return jt
}

// WriteJSON encodes the tree as indented JSON.
func WriteJSON(w io.Writer, tree *movetree.Tree, opts ...Option) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(TreeToJSON(tree, opts...))
}

func convertMove(rec *movetree.MoveRecord, path movetree.Path, ply int) JSONMove {
	jm := JSONMove{
		Path:       path.String(),
		Ply:        ply,
		MoveNumber: rec.MoveNumber,
		Color:      colorName(rec.Side),
		SAN:        rec.Notation,
		Capture:    rec.IsCapture,
		Castle:     rec.IsCastle,
		Glyph:      rec.Glyph.String(),
		Comment:    rec.Comment,
	}
	if rec.From.Valid() && rec.To.Valid() {
		jm.UCI = rec.From.String() + rec.To.String()
	}
	if rec.Promotion != chess.Empty {
		jm.Promotion = pieceTypeName(rec.Promotion)
		jm.UCI += string(rune(rec.Promotion.Letter() + 'a' - 'A'))
	}
	return jm
}

// colorName returns "white" or "black".
func colorName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// pieceTypeName returns the piece type as a string.
func pieceTypeName(p chess.Piece) string {
	switch p {
	case chess.Pawn:
		return "pawn"
	case chess.Knight:
		return "knight"
	case chess.Bishop:
		return "bishop"
	case chess.Rook:
		return "rook"
	case chess.Queen:
		return "queen"
	case chess.King:
		return "king"
	default:
		return ""
	}
}
