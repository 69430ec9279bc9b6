package movetree

import "iter"

// Line is an unbranched run of moves with strictly alternating sides.
// Lines are only changed through the Tree that owns them.
type Line struct {
	moves []*MoveRecord
}

// Len returns the number of moves in the line.
func (l *Line) Len() int {
	return len(l.moves)
}

// At returns the move at 0-based index i, or nil when out of range.
func (l *Line) At(i int) *MoveRecord {
	if i < 0 || i >= len(l.moves) {
		return nil
	}
	return l.moves[i]
}

// Last returns the final move, or nil for an empty line.
func (l *Line) Last() *MoveRecord {
	return l.At(len(l.moves) - 1)
}

// Moves yields the moves in order.
func (l *Line) Moves() iter.Seq[*MoveRecord] {
	return func(yield func(*MoveRecord) bool) {
		for _, m := range l.moves {
			if !yield(m) {
				return
			}
		}
	}
}

// Notations returns the notation of every move in order.
func (l *Line) Notations() []string {
	out := make([]string, len(l.moves))
	for i, m := range l.moves {
		out[i] = m.Notation
	}
	return out
}

func (l *Line) append(rec *MoveRecord) {
	rec.Ply = len(l.moves) + 1
	l.moves = append(l.moves, rec)
}
