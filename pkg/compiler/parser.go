package compiler

import (
	"fmt"
	"strconv"

	"skard/pkg/value"
)

// Syntax error messages.
const (
	msgExpectExpression = "Expected expression."
	msgExpectRParen     = "Expected ')' after expression."
	msgExpectEnd        = "Expected end of expression."
	msgBadReal          = "Invalid real literal."
	msgBadInteger       = "Integer literal out of range."
)

// Parser is a Pratt parser over the tokens of one source text. It owns the
// tree it builds until Free is called.
//
// Only the first syntax error is reported: once panicMode is set it stays
// set for the rest of the parse.
type Parser struct {
	lexer    *Lexer
	current  Token
	previous Token
	diags    *Diagnostics

	hadError  bool
	panicMode bool
	root      Expr
}

// NewParser prepares a parser for src. A nil diags reports to os.Stderr.
func NewParser(src string, diags *Diagnostics) *Parser {
	if diags == nil {
		diags = NewDiagnostics(nil)
	}
	return &Parser{lexer: NewLexer(src), diags: diags}
}

// Parse reads one expression followed by the end of input. Blank lines
// around the expression are allowed. ok is false if any syntax error was
// reported; the partial tree is still returned.
func (p *Parser) Parse() (expr Expr, ok bool) {
	p.advance()
	p.skipLines()
	expr = p.parseExpression()
	p.skipLines()
	p.consume(EOF, msgExpectEnd)
	p.root = expr
	return expr, !p.hadError
}

func (p *Parser) skipLines() {
	for p.current.Type == EOL {
		p.advance()
	}
}

// HadError reports whether a syntax error was seen.
func (p *Parser) HadError() bool { return p.hadError }

// Free releases the tree returned by Parse.
func (p *Parser) Free() {
	Free(p.root)
	p.root = nil
}

func (p *Parser) parseExpression() Expr {
	return p.parsePrecedence(PrecAssignment)
}

// parsePrecedence parses an expression whose operators bind at least as
// tightly as min.
func (p *Parser) parsePrecedence(min Precedence) Expr {
	p.advance()
	prefix := getRule(p.previous.Type).prefix
	if prefix == nil {
		p.errorAtPrevious(msgExpectExpression)
		return nil
	}
	left := prefix(p)

	for min <= getRule(p.current.Type).precedence {
		p.advance()
		left = getRule(p.previous.Type).infix(p, left)
	}
	return left
}

func (p *Parser) parseGrouping() Expr {
	open := p.previous
	inner := p.parseExpression()
	p.consume(RPAREN, msgExpectRParen)
	return NewGrouping(inner, open.Line, open.Column)
}

func (p *Parser) parseUnary() Expr {
	opTok := p.previous
	operand := p.parsePrecedence(PrecUnary)
	return NewUnary(OpSub, operand, opTok.Line, opTok.Column)
}

// parseBinary parses the right operand one level tighter than the operator
// so that chains associate to the left.
func (p *Parser) parseBinary(left Expr) Expr {
	opTok := p.previous
	rule := getRule(opTok.Type)
	right := p.parsePrecedence(rule.precedence + 1)
	op, _ := operatorFor(opTok.Type)
	return NewBinary(op, left, right, opTok.Line, opTok.Column)
}

func (p *Parser) parseReal() Expr {
	tok := p.previous
	f, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil && !isRangeError(err) {
		p.errorAtPrevious(msgBadReal)
	}
	return NewValue(value.Real(f), tok.Line, tok.Column)
}

func (p *Parser) parseInteger() Expr {
	tok := p.previous
	i, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		p.errorAtPrevious(msgBadInteger)
	}
	return NewValue(value.Int(i), tok.Line, tok.Column)
}

func isRangeError(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// advance moves to the next token, reporting and skipping ERROR tokens.
func (p *Parser) advance() {
	p.previous = p.current
	for {
		p.current = p.lexer.Scan()
		if p.current.Type != ERROR {
			return
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

func (p *Parser) consume(tt TokenType, msg string) {
	if p.current.Type == tt {
		p.advance()
		return
	}
	p.errorAtCurrent(msg)
}

func (p *Parser) errorAtCurrent(msg string)  { p.errorAt(p.current, msg) }
func (p *Parser) errorAtPrevious(msg string) { p.errorAt(p.previous, msg) }

func (p *Parser) errorAt(tok Token, msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true

	d := Diagnostic{Kind: SyntaxError, Line: tok.Line, Column: tok.Column, Message: msg}
	switch tok.Type {
	case EOF:
		d.Where = " at end of file"
	case EOL:
		d.Where = " at end of line"
	case ERROR:
	default:
		d.Where = fmt.Sprintf(" at '%s'", tok.Lexeme)
	}
	p.diags.Report(d)
}
