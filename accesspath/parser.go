// Package accesspath parses the access shorthand used in diagnostics and on
// the command line, such as `s.mem[i].val[0:4]`, into the left-deep host tree
// the parser would produce for the same source.
//
//	path    = ident { "." ident | "[" key "]" }
//	key     = operand | [operand] ":" [operand] [":" [operand]]
//	operand = integer | path
//
// Attribute and Subscript nodes carry the position of the start of the whole
// path, as the host parser does.
package accesspath

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/shibukawa/pyhdl/ast"
	"github.com/shopspring/decimal"
)

// ErrInvalidPath indicates that an access path string could not be parsed.
var ErrInvalidPath = errors.New("accesspath: invalid path")

// Parse parses expr. startLine/startColumn give the 1-based location of the
// first rune of expr within a larger source.
func Parse(expr string, startLine, startColumn int) (ast.Expr, error) {
	p := newParser(expr, startLine, startColumn)

	e, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	p.skipWhitespace()

	if !p.eof() {
		return nil, fmt.Errorf("%w: unexpected character '%c' at position %d", ErrInvalidPath, p.peek(), p.pos+1)
	}

	return e, nil
}

type parser struct {
	src        []rune
	pos        int
	baseLine   int
	baseColumn int
}

func newParser(expr string, startLine, startColumn int) *parser {
	if startLine < 1 {
		startLine = 1
	}

	if startColumn < 1 {
		startColumn = 1
	}

	return &parser{src: []rune(expr), baseLine: startLine, baseColumn: startColumn}
}

func (p *parser) parsePath() (ast.Expr, error) {
	p.skipWhitespace()

	start := p.position(p.pos)

	ident, ok := p.readIdentifier()
	if !ok {
		if p.eof() {
			return nil, fmt.Errorf("%w: expected identifier at position %d", ErrInvalidPath, p.pos+1)
		}

		return nil, fmt.Errorf("%w: unexpected character '%c' at position %d", ErrInvalidPath, p.peek(), p.pos+1)
	}

	var e ast.Expr = &ast.Name{Position: start, ID: ident}

	for {
		p.skipWhitespace()

		switch p.peek() {
		case '.':
			p.pos++
			p.skipWhitespace()

			attr, ok := p.readIdentifier()
			if !ok {
				return nil, fmt.Errorf("%w: expected identifier after '.' at position %d", ErrInvalidPath, p.pos+1)
			}

			e = &ast.Attribute{Position: start, Value: e, Attr: attr}
		case '[':
			p.pos++

			key, err := p.parseKey()
			if err != nil {
				return nil, err
			}

			if !p.match(']') {
				return nil, fmt.Errorf("%w: expected ']' to close subscript at position %d", ErrInvalidPath, p.pos+1)
			}

			e = &ast.Subscript{Position: start, Value: e, Slice: key}
		default:
			return e, nil
		}
	}
}

// parseKey returns an Index wrapper or a Slice.
func (p *parser) parseKey() (ast.Expr, error) {
	p.skipWhitespace()

	start := p.position(p.pos)

	lower, err := p.parseOptionalOperand()
	if err != nil {
		return nil, err
	}

	p.skipWhitespace()

	if !p.match(':') {
		if lower == nil {
			return nil, fmt.Errorf("%w: expected index at position %d", ErrInvalidPath, p.pos+1)
		}

		return &ast.Index{Position: start, Value: lower}, nil
	}

	slice := &ast.Slice{Position: start, Lower: lower}

	if slice.Upper, err = p.parseOptionalOperand(); err != nil {
		return nil, err
	}

	p.skipWhitespace()

	if p.match(':') {
		if slice.Step, err = p.parseOptionalOperand(); err != nil {
			return nil, err
		}
	}

	return slice, nil
}

func (p *parser) parseOptionalOperand() (ast.Expr, error) {
	p.skipWhitespace()

	switch r := p.peek(); {
	case unicode.IsDigit(r):
		return p.readNumber()
	case isIdentStart(r):
		return p.parsePath()
	default:
		return nil, nil
	}
}

func (p *parser) skipWhitespace() {
	for unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

func (p *parser) match(r rune) bool {
	if p.peek() != r {
		return false
	}

	p.pos++

	return true
}

func (p *parser) readIdentifier() (string, bool) {
	if !isIdentStart(p.peek()) {
		return "", false
	}

	start := p.pos

	p.pos++
	for isIdentPart(p.peek()) {
		p.pos++
	}

	return string(p.src[start:p.pos]), true
}

func (p *parser) readNumber() (*ast.Num, error) {
	start := p.pos
	for unicode.IsDigit(p.peek()) {
		p.pos++
	}

	value, err := decimal.NewFromString(string(p.src[start:p.pos]))
	if err != nil {
		return nil, fmt.Errorf("%w: bad integer at position %d: %w", ErrInvalidPath, start+1, err)
	}

	return &ast.Num{Position: p.position(start), Value: value}, nil
}

func (p *parser) peek() rune {
	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) position(offset int) ast.Position {
	line := p.baseLine

	col := p.baseColumn
	for i := 0; i < offset; i++ {
		if p.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return ast.Position{Offset: offset, Line: line, Column: col}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
