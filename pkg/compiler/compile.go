// Package compiler is the skard front end: a lexer, a Pratt parser
// producing an AST, and a type checker over that AST.
//
// Pipeline: source → Lex → Parse → Typecheck → typed AST
package compiler

import "errors"

var (
	ErrSyntax = errors.New("syntax error")
	ErrType   = errors.New("type error")
)

// Compile parses src and type checks the result. Diagnostics go to diags as
// they are found (os.Stderr when nil). The tree is returned even on failure
// so callers can print it.
func Compile(src string, diags *Diagnostics) (Expr, error) {
	if diags == nil {
		diags = NewDiagnostics(nil)
	}
	expr, ok := NewParser(src, diags).Parse()
	if !ok {
		return expr, ErrSyntax
	}
	if !NewChecker(diags).Typecheck(expr) {
		return expr, ErrType
	}
	return expr, nil
}
