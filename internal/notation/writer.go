package notation

import "strings"

// textWriter accumulates space-separated tokens with optional line wrapping.
type textWriter struct {
	sb            strings.Builder
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// newTextWriter creates a writer; maxLineLength <= 0 disables wrapping.
func newTextWriter(maxLineLength int) *textWriter {
	return &textWriter{maxLineLength: maxLineLength}
}

// Write writes a token, preceded by a space or a line break when needed.
func (o *textWriter) Write(s string) {
	if s == "" {
		return
	}
	o.separate(len(s))
	o.sb.WriteString(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// Open starts a variation. The next token follows the parenthesis directly.
func (o *textWriter) Open() {
	o.Write("(")
	o.needsSpace = false
}

// Close ends a variation, attached to the preceding token.
func (o *textWriter) Close() {
	o.sb.WriteByte(')')
	o.lineLength++
	o.needsSpace = true
}

func (o *textWriter) separate(next int) {
	if !o.needsSpace {
		return
	}
	if o.maxLineLength > 0 && o.lineLength+1+next > o.maxLineLength {
		o.sb.WriteByte('\n')
		o.lineLength = 0
		return
	}
	o.sb.WriteByte(' ')
	o.lineLength++
}

func (o *textWriter) String() string {
	return o.sb.String()
}
