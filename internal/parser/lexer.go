package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Lexer tokenizes movetext input.
type Lexer struct {
	reader  *bufio.Reader
	line    string
	pos     int
	lineNum int
	eof     bool
}

// Character classification table
var chTab [256]TokenType

// Move character classification table
var moveChars [256]bool

func init() {
	initLexTables()
}

// initLexTables initializes the character classification tables.
func initLexTables() {
	// Initialize all to error
	for i := range chTab {
		chTab[i] = ErrorToken
	}

	// Whitespace
	for _, c := range []byte{' ', '\t', '\r', '\n'} {
		chTab[c] = Whitespace
	}

	// Brackets and quotes
	chTab['['] = TagStart
	chTab[']'] = TagEnd
	chTab['"'] = DoubleQuote
	chTab['{'] = CommentStart
	chTab['}'] = CommentEnd

	// Special symbols
	chTab['$'] = NAGToken
	chTab['!'] = Annotate
	chTab['?'] = Annotate
	chTab['+'] = CheckSymbol
	chTab['#'] = CheckSymbol
	chTab['.'] = Dot
	chTab['('] = RAVStart
	chTab[')'] = RAVEnd
	chTab['%'] = Percent
	chTab['*'] = Star
	chTab['-'] = Dash

	// Digits
	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = Digit
	}

	// Alpha characters (upper and lowercase)
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = Alpha
		chTab[c+32] = Alpha
	}
	chTab['_'] = Alpha

	initMoveChars()
}

// initMoveChars initializes the move character classification table.
func initMoveChars() {
	// Files (a-h) and ranks (1-8)
	for c := byte('a'); c <= 'h'; c++ {
		moveChars[c] = true
	}
	for c := byte('1'); c <= '8'; c++ {
		moveChars[c] = true
	}

	for _, c := range []byte{'K', 'Q', 'R', 'N', 'B', 'k', 'q', 'r', 'n', 'b'} {
		moveChars[c] = true
	}

	// Capture/separators, promotion, castling, en passant
	for _, c := range []byte{'x', 'X', ':', '-', '=', 'O', 'o', '0', 'p'} {
		moveChars[c] = true
	}
}

// NewLexer creates a new lexer for the given reader.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// readLine reads the next line from input.
func (l *Lexer) readLine() bool {
	if l.eof {
		return false
	}
	line, err := l.reader.ReadString('\n')
	if err != nil {
		l.eof = true
		if len(line) == 0 {
			return false
		}
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true
}

// currentChar returns the current character or 0 if at end of line.
func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

// advance moves to the next character.
func (l *Lexer) advance() {
	if l.pos < len(l.line) {
		l.pos++
	}
}

// skipWhile advances over characters of the given class.
func (l *Lexer) skipWhile(class TokenType) {
	for l.pos < len(l.line) && chTab[l.currentChar()] == class {
		l.advance()
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() *Token {
	for {
		if l.pos >= len(l.line) {
			if !l.readLine() {
				return &Token{Type: EOFToken, Line: l.lineNum, Column: len(l.line) + 1}
			}
			continue
		}

		line, column := l.lineNum, l.pos+1
		token := l.getNextSymbol()
		if token.Type != NoToken {
			if token.Line == 0 {
				token.Line, token.Column = line, column
			}
			return token
		}
	}
}

// getNextSymbol identifies the next symbol.
func (l *Lexer) getNextSymbol() *Token {
	ch := l.currentChar()
	symbolStart := l.pos
	l.advance()

	switch chTab[ch] {
	case Whitespace:
		l.skipWhile(Whitespace)
		return &Token{Type: NoToken}

	case TagStart:
		return l.gatherTag()

	case TagEnd:
		return &Token{Type: NoToken}

	case DoubleQuote:
		return l.gatherString()

	case CommentStart:
		return l.gatherComment()

	case CommentEnd:
		return &Token{Type: ErrorToken, Text: "}"}

	case NAGToken:
		start := l.pos
		for l.pos < len(l.line) && unicode.IsDigit(rune(l.currentChar())) {
			l.advance()
		}
		if l.pos == start {
			return &Token{Type: ErrorToken, Text: "$"}
		}
		return &Token{Type: NAGToken, Text: "$" + l.line[start:l.pos]}

	case Annotate:
		// Gather annotation symbols (!, ?, !!, ??, !?, ?!)
		l.skipWhile(Annotate)
		text := l.line[symbolStart:l.pos]
		nag := annotationToNAG(text)
		if nag == "" {
			return &Token{Type: ErrorToken, Text: text}
		}
		return &Token{Type: NAGToken, Text: nag}

	case CheckSymbol:
		// Check marks carry no information the rules engine cannot recompute
		l.skipWhile(CheckSymbol)
		return &Token{Type: NoToken}

	case Dot:
		l.skipWhile(Dot)
		return &Token{Type: NoToken}

	case RAVStart:
		return &Token{Type: RAVStart}

	case RAVEnd:
		return &Token{Type: RAVEnd}

	case Percent:
		// Escape line: skip the rest of it
		if symbolStart == 0 {
			l.pos = len(l.line)
			return &Token{Type: NoToken}
		}
		return &Token{Type: ErrorToken, Text: "%"}

	case Alpha:
		return l.gatherAlpha(ch, symbolStart)

	case Digit:
		return l.gatherNumeric(ch, symbolStart)

	case Star:
		return &Token{Type: TerminatingResult, Text: "*"}

	case Dash:
		if chTab[l.currentChar()] == Dash {
			l.advance()
			return &Token{Type: MoveToken, Text: "--"}
		}
		return &Token{Type: ErrorToken, Text: "-"}

	default:
		return &Token{Type: ErrorToken, Text: string(rune(ch))}
	}
}

// gatherTag gathers a tag name after '['.
func (l *Lexer) gatherTag() *Token {
	l.skipWhile(Whitespace)

	start := l.pos
	for l.pos < len(l.line) {
		ch := l.currentChar()
		if unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_' {
			l.advance()
		} else {
			break
		}
	}

	if l.pos == start {
		return &Token{Type: ErrorToken, Text: "["}
	}
	return &Token{Type: TagToken, Text: l.line[start:l.pos]}
}

// gatherString gathers a quoted string.
func (l *Lexer) gatherString() *Token {
	var sb strings.Builder
	escaped := false

	for l.pos < len(l.line) {
		ch := l.currentChar()
		l.advance()

		if escaped {
			sb.WriteByte(ch)
			escaped = false
			continue
		}

		if ch == '\\' {
			escaped = true
			continue
		}

		if ch == '"' {
			return &Token{Type: StringToken, Text: sb.String()}
		}

		sb.WriteByte(ch)
	}

	return &Token{Type: ErrorToken, Text: `"` + sb.String()}
}

// gatherComment gathers a comment block, which may span lines.
func (l *Lexer) gatherComment() *Token {
	line, column := l.lineNum, l.pos
	var sb strings.Builder

	for {
		for l.pos < len(l.line) {
			ch := l.currentChar()
			l.advance()
			if ch == '}' {
				return &Token{Type: CommentToken, Text: normalizeComment(sb.String()), Line: line, Column: column}
			}
			sb.WriteByte(ch)
		}

		if !l.readLine() {
			break
		}
	}

	return &Token{Type: ErrorToken, Text: "{", Line: line, Column: column}
}

// normalizeComment trims a comment and collapses line breaks to spaces.
func normalizeComment(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// gatherAlpha handles alpha characters (potential moves).
func (l *Lexer) gatherAlpha(ch byte, symbolStart int) *Token {
	// Check for null move Z0
	if ch == 'Z' && l.currentChar() == '0' {
		l.advance()
		return &Token{Type: MoveToken, Text: "--"}
	}

	if !moveChars[ch] {
		l.skipWhile(Alpha)
		return &Token{Type: ErrorToken, Text: l.line[symbolStart:l.pos]}
	}

	for l.pos < len(l.line) && moveChars[l.currentChar()] {
		l.advance()
	}

	moveText := l.line[symbolStart:l.pos]
	if moveSeemValid(moveText) {
		return &Token{Type: MoveToken, Text: moveText}
	}
	return &Token{Type: ErrorToken, Text: moveText}
}

// gatherNumeric handles numeric tokens (move numbers, results, castling).
func (l *Lexer) gatherNumeric(initialDigit byte, symbolStart int) *Token {
	remaining := l.line[l.pos:]

	switch initialDigit {
	case '0':
		// Could be 0-1 (result) or 0-0 / 0-0-0 (castling)
		if strings.HasPrefix(remaining, "-1") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "0-1"}
		}
		if strings.HasPrefix(remaining, "-0-0") {
			l.pos += 4
			return &Token{Type: MoveToken, Text: "O-O-O"}
		}
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return &Token{Type: MoveToken, Text: "O-O"}
		}
	case '1':
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "1-0"}
		}
		if strings.HasPrefix(remaining, "/2-1/2") {
			l.pos += 6
			return &Token{Type: TerminatingResult, Text: "1/2-1/2"}
		}
	}

	return l.gatherMoveNumber(symbolStart)
}

// gatherMoveNumber parses a move number token.
func (l *Lexer) gatherMoveNumber(start int) *Token {
	for l.pos < len(l.line) && unicode.IsDigit(rune(l.currentChar())) {
		l.advance()
	}
	numStr := l.line[start:l.pos]

	// Skip trailing dots
	l.skipWhile(Dot)

	moveNum, err := strconv.ParseUint(numStr, 10, 32)
	if err != nil || moveNum == 0 {
		return &Token{Type: ErrorToken, Text: numStr}
	}
	return &Token{Type: MoveNumber, MoveNum: uint(moveNum)}
}

// annotationToNAG converts annotation symbols to NAG strings.
func annotationToNAG(text string) string {
	switch text {
	case "!":
		return "$1"
	case "?":
		return "$2"
	case "!!":
		return "$3"
	case "??":
		return "$4"
	case "!?":
		return "$5"
	case "?!":
		return "$6"
	default:
		return ""
	}
}

// moveSeemValid does a basic check if the move text looks valid.
func moveSeemValid(text string) bool {
	switch text {
	case "O-O", "O-O-O", "o-o", "o-o-o", "0-0", "0-0-0":
		return true
	}
	if len(text) < 2 {
		return false
	}

	// Must contain at least one file (a-h) and one rank (1-8)
	hasFile := false
	hasRank := false
	for _, c := range text {
		if c >= 'a' && c <= 'h' {
			hasFile = true
		}
		if c >= '1' && c <= '8' {
			hasRank = true
		}
	}

	return hasFile && hasRank
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() int {
	return l.lineNum
}
