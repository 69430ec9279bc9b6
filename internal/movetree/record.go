package movetree

import (
	"strconv"

	"github.com/lgbarn/movetree-go/internal/chess"
	"github.com/lgbarn/movetree-go/internal/rules"
)

// Glyph is a move annotation symbol.
type Glyph int

const (
	GlyphNone Glyph = iota
	GlyphGood
	GlyphMistake
	GlyphBrilliant
	GlyphBlunder
	GlyphInteresting
	GlyphDubious
)

var glyphSymbols = [...]string{
	GlyphNone:        "",
	GlyphGood:        "!",
	GlyphMistake:     "?",
	GlyphBrilliant:   "!!",
	GlyphBlunder:     "??",
	GlyphInteresting: "!?",
	GlyphDubious:     "?!",
}

// String returns the symbol, or "" for GlyphNone.
func (g Glyph) String() string {
	if g < 0 || int(g) >= len(glyphSymbols) {
		return ""
	}
	return glyphSymbols[g]
}

// NAG returns the numeric annotation glyph ($1..$6), 0 for none.
// The constants are ordered so that the value is the NAG number.
func (g Glyph) NAG() int {
	return int(g)
}

// ParseGlyph accepts a symbol ("!?"), a NAG ("$5") or "" for none.
func ParseGlyph(s string) (Glyph, bool) {
	if len(s) > 1 && s[0] == '$' {
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 || n >= len(glyphSymbols) {
			return GlyphNone, false
		}
		return Glyph(n), true
	}
	for g, sym := range glyphSymbols {
		if sym == s {
			return Glyph(g), true
		}
	}
	return GlyphNone, false
}

// MoveRecord is one ply as stored in the tree.
type MoveRecord struct {
	Notation   string
	Side       chess.Colour
	Ply        int // 1-based index within the containing line
	MoveNumber int
	From       chess.Square
	To         chess.Square
	Promotion  chess.Piece
	IsCapture  bool
	IsCastle   bool
	Comment    string
	Glyph      Glyph

	variations []*Line
}

// NewRecord copies an oracle result into a record ready for insertion.
func NewRecord(res rules.Result) *MoveRecord {
	return &MoveRecord{
		Notation:   res.Notation,
		Side:       res.MovingSide,
		MoveNumber: res.MoveNumber,
		From:       res.From,
		To:         res.To,
		Promotion:  res.Promotion,
		IsCapture:  res.IsCapture,
		IsCastle:   res.IsCastle,
	}
}

// Variations returns the lines branching after this move, in order.
// The slice is a copy; the lines are shared.
func (m *MoveRecord) Variations() []*Line {
	return append([]*Line(nil), m.variations...)
}

// VariationCount returns the number of variations after this move.
func (m *MoveRecord) VariationCount() int {
	return len(m.variations)
}

// SameMove reports whether two records play the same move. Squares are
// compared when both records carry them, otherwise the notation.
func (m *MoveRecord) SameMove(o *MoveRecord) bool {
	if m.From.Valid() && m.To.Valid() && o.From.Valid() && o.To.Valid() {
		return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
	}
	return m.Notation == o.Notation
}
