package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/movetree-go/internal/errors"
)

// Parser parses movetext into Documents.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
	maxDepth     int
}

// NewParser creates a new parser for the given reader. maxDepth bounds
// variation nesting; zero or less means unbounded.
func NewParser(r io.Reader, maxDepth int) *Parser {
	return &Parser{
		lexer:    NewLexer(r),
		maxDepth: maxDepth,
	}
}

// ParseString parses a single document from text.
func ParseString(text string, maxDepth int) (*Document, error) {
	p := NewParser(strings.NewReader(text), maxDepth)
	doc, err := p.ParseDocument()
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = &Document{Moves: &Sequence{}}
	}
	if p.currentToken.Type != EOFToken {
		return nil, p.errorf("end of input")
	}
	return doc, nil
}

// nextToken gets the next token from the lexer.
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

// errorf builds a ParseError positioned at the current token.
func (p *Parser) errorf(expected string) error {
	tok := p.currentToken
	return &errors.ParseError{
		Err:      errors.ErrParseFailure,
		Line:     tok.Line,
		Column:   tok.Column,
		Expected: expected,
		Got:      tok.Describe(),
	}
}

// ParseDocument parses the next document from the input.
// Returns nil, nil if no more documents are available.
// A document ends at its result, at end of input, or where the tags of the
// next document begin.
func (p *Parser) ParseDocument() (*Document, error) {
	if p.currentToken == nil {
		p.nextToken()
	}
	if p.currentToken.Type == EOFToken {
		return nil, nil
	}

	doc := &Document{}
	if err := p.parseOptTagList(doc); err != nil {
		return nil, err
	}

	moves, err := p.parseMoveText()
	if err != nil {
		return nil, err
	}
	doc.Moves = moves

	if p.currentToken.Type == TerminatingResult {
		doc.Result = p.currentToken.Text
		p.nextToken()
	}
	return doc, nil
}

// parseOptTagList parses zero or more [Name "Value"] pairs.
func (p *Parser) parseOptTagList(doc *Document) error {
	for p.currentToken.Type == TagToken {
		name := p.currentToken.Text
		p.nextToken()
		if p.currentToken.Type != StringToken {
			return p.errorf("tag value")
		}
		doc.Tags = append(doc.Tags, Tag{Name: name, Value: p.currentToken.Text})
		p.nextToken()
	}
	return nil
}

// parseMoveText parses the main sequence and its variations. Nesting is
// tracked on an explicit stack so deep input cannot exhaust the call stack.
func (p *Parser) parseMoveText() (*Sequence, error) {
	root := &Sequence{}
	stack := []*Sequence{root}

	for {
		top := stack[len(stack)-1]
		tok := p.currentToken

		switch tok.Type {
		case MoveNumber:
			// Numbers are informational; the rules oracle knows the real ones

		case MoveToken:
			top.Nodes = append(top.Nodes, &Node{SAN: tok.Text, Line: tok.Line, Column: tok.Column})

		case NAGToken:
			node := top.last()
			if node == nil {
				return nil, p.errorf("move before annotation")
			}
			node.NAGs = append(node.NAGs, tok.Text)

		case CommentToken:
			node := top.last()
			switch {
			case node != nil:
				node.Comment = joinComment(node.Comment, tok.Text)
			default:
				top.LeadingComment = joinComment(top.LeadingComment, tok.Text)
			}

		case RAVStart:
			owner := top.last()
			if owner == nil {
				return nil, p.errorf("move before '('")
			}
			if p.maxDepth > 0 && len(stack) > p.maxDepth {
				return nil, p.errorf("variation depth at most " + strconv.Itoa(p.maxDepth))
			}
			variation := &Sequence{}
			owner.Variations = append(owner.Variations, variation)
			stack = append(stack, variation)

		case RAVEnd:
			if len(stack) == 1 {
				return nil, p.errorf("move")
			}
			if len(top.Nodes) == 0 {
				return nil, p.errorf("move in variation")
			}
			stack = stack[:len(stack)-1]

		case TerminatingResult, EOFToken, TagToken:
			if len(stack) > 1 {
				return nil, p.errorf("')'")
			}
			return root, nil

		default:
			return nil, p.errorf("move")
		}

		p.nextToken()
	}
}

func joinComment(existing, next string) string {
	switch {
	case existing == "":
		return next
	case next == "":
		return existing
	}
	return existing + " " + next
}
