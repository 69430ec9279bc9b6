package parser

// Document is one parsed game: optional tag pairs, the main sequence and
// an optional terminating result.
type Document struct {
	Tags   []Tag
	Moves  *Sequence
	Result string
}

// Tag is a [Name "Value"] pair.
type Tag struct {
	Name  string
	Value string
}

// GetTag returns the value of the named tag, or "" if it is absent.
func (d *Document) GetTag(name string) string {
	for _, t := range d.Tags {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}

// Sequence is an unbranched run of moves. Variations hang off its nodes.
type Sequence struct {
	// LeadingComment is a comment that appears before the first move.
	LeadingComment string
	Nodes          []*Node
}

// Node is one move as written, with what followed it in the text.
type Node struct {
	SAN     string
	NAGs    []string
	Comment string

	// Variations are the parenthesized sequences written after this move.
	Variations []*Sequence

	Line   int
	Column int
}

// last returns the final node of the sequence, or nil when it is empty.
func (s *Sequence) last() *Node {
	if len(s.Nodes) == 0 {
		return nil
	}
	return s.Nodes[len(s.Nodes)-1]
}

// CountNodes returns the number of moves in the sequence and all of its
// nested variations.
func (s *Sequence) CountNodes() int {
	count := 0
	stack := []*Sequence{s}
	for len(stack) > 0 {
		seq := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count += len(seq.Nodes)
		for _, n := range seq.Nodes {
			stack = append(stack, n.Variations...)
		}
	}
	return count
}
