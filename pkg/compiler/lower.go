package compiler

import (
	"errors"
	"fmt"

	"skard/pkg/chunk"
)

// ErrUnsupportedLowering is returned for nodes the instruction set cannot
// express yet.
var ErrUnsupportedLowering = errors.New("cannot lower expression")

// Lower emits code that loads e, prints it and returns. Only literals, bare
// or parenthesised, are supported: the instruction set has no arithmetic.
// e must already be type checked.
func Lower(e Expr, c *chunk.Chunk) error {
	if isNil(e) {
		return fmt.Errorf("%w: empty tree", ErrUnsupportedLowering)
	}
	if !e.Type().IsNumeric() {
		return fmt.Errorf("%w: node has type %s", ErrUnsupportedLowering, e.Type())
	}
	lit, err := literalOf(e)
	if err != nil {
		return err
	}

	line, column := e.Pos()
	if _, err := c.EmitConstant(lit.Value, line, column); err != nil {
		return err
	}
	if err := c.EmitOp(chunk.OpDump, line, column); err != nil {
		return err
	}
	return c.EmitOp(chunk.OpReturn, line, column)
}

func literalOf(e Expr) (*ValueExpr, error) {
	switch n := e.(type) {
	case *ValueExpr:
		return n, nil
	case *GroupingExpr:
		if isNil(n.Inner) {
			return nil, fmt.Errorf("%w: empty grouping", ErrUnsupportedLowering)
		}
		return literalOf(n.Inner)
	case *UnaryExpr:
		return nil, fmt.Errorf("%w: unary '%s'", ErrUnsupportedLowering, n.Op)
	case *BinaryExpr:
		return nil, fmt.Errorf("%w: binary '%s'", ErrUnsupportedLowering, n.Op)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedLowering, e)
}
