// Package parser provides movetext lexing and parsing: annotated move text
// with comments, glyphs and parenthesized variations is turned into a
// neutral syntax tree that callers replay through a rules oracle.
package parser

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Tokens returned to the parser
	EOFToken TokenType = iota
	TagToken
	StringToken
	CommentToken
	NAGToken
	MoveNumber
	RAVStart
	RAVEnd
	MoveToken
	TerminatingResult
	ErrorToken

	// Internal tokens used for identification
	Whitespace
	TagStart
	TagEnd
	DoubleQuote
	CommentStart
	CommentEnd
	CheckSymbol
	Annotate
	Dot
	Percent
	Alpha
	Digit
	Star
	Dash
	NoToken
)

// tokenTypeNames maps token types to their string representations.
var tokenTypeNames = [...]string{
	EOFToken:          "EOF",
	TagToken:          "TAG",
	StringToken:       "STRING",
	CommentToken:      "COMMENT",
	NAGToken:          "NAG",
	MoveNumber:        "MOVE_NUMBER",
	RAVStart:          "RAV_START",
	RAVEnd:            "RAV_END",
	MoveToken:         "MOVE",
	TerminatingResult: "TERMINATING_RESULT",
	ErrorToken:        "ERROR_TOKEN",
	Whitespace:        "WHITESPACE",
	TagStart:          "TAG_START",
	TagEnd:            "TAG_END",
	DoubleQuote:       "DOUBLE_QUOTE",
	CommentStart:      "COMMENT_START",
	CommentEnd:        "COMMENT_END",
	CheckSymbol:       "CHECK_SYMBOL",
	Annotate:          "ANNOTATE",
	Dot:               "DOT",
	Percent:           "PERCENT",
	Alpha:             "ALPHA",
	Digit:             "DIGIT",
	Star:              "STAR",
	Dash:              "DASH",
	NoToken:           "NO_TOKEN",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token represents a lexical token with its value.
type Token struct {
	Type TokenType

	// Text holds the move, tag name, string, comment, NAG ("$5") or result.
	// For ErrorToken it holds the offending input.
	Text string

	// MoveNum holds move numbers
	MoveNum uint

	// Line and column of the first character, both 1-based
	Line   int
	Column int
}

// Describe renders the token for error messages.
func (t *Token) Describe() string {
	switch t.Type {
	case EOFToken:
		return "end of input"
	case RAVStart:
		return "'('"
	case RAVEnd:
		return "')'"
	case CommentToken:
		return "comment"
	case MoveNumber:
		return "move number"
	}
	if t.Text != "" {
		return "'" + t.Text + "'"
	}
	return t.Type.String()
}
