package compiler

import (
	"fmt"

	"skard/pkg/value"
)

// Checker infers expression types. Results are cached in each node's type
// slot, so asking twice about the same node costs nothing the second time.
type Checker struct {
	diags *Diagnostics

	// Computations counts inferences that were not answered from a node's
	// cache.
	Computations int
}

// NewChecker returns a checker reporting to diags. A nil diags reports to
// os.Stderr.
func NewChecker(diags *Diagnostics) *Checker {
	if diags == nil {
		diags = NewDiagnostics(nil)
	}
	return &Checker{diags: diags}
}

// Infer returns the type of e, computing and caching it on first use.
// Literals keep the type they were built with.
func (c *Checker) Infer(e Expr) value.Type {
	if isNil(e) {
		return value.TypeInvalid
	}
	if v, ok := e.(*ValueExpr); ok {
		return v.typ
	}
	if t := e.Type(); t != value.TypeUnknown {
		return t
	}
	c.Computations++
	t := c.compute(e)
	e.setType(t)
	return t
}

func (c *Checker) compute(e Expr) value.Type {
	switch n := e.(type) {
	case *UnaryExpr:
		return c.inferUnary(n)
	case *BinaryExpr:
		return c.inferBinary(n)
	case *GroupingExpr:
		return c.Infer(n.Inner)
	}
	return value.TypeUnknown
}

func (c *Checker) inferUnary(n *UnaryExpr) value.Type {
	t := c.Infer(n.Operand)
	if n.Op == OpSub && t.IsNumeric() {
		return t
	}
	c.report(n, "Invalid operand of type '%s' to unary '%s'", t, n.Op)
	return value.TypeInvalid
}

// inferBinary always infers both operands, left first. True division is
// Real and integer division is Int whatever the operands are.
func (c *Checker) inferBinary(n *BinaryExpr) value.Type {
	left := c.Infer(n.Left)
	right := c.Infer(n.Right)

	switch n.Op {
	case OpDiv:
		return value.TypeReal
	case OpIntDiv:
		return value.TypeInt
	}

	switch {
	case left == value.TypeInvalid || right == value.TypeInvalid:
		// already reported further down
		return value.TypeInvalid
	case left == value.TypeInt && right == value.TypeInt:
		return value.TypeInt
	case left.IsNumeric() && right.IsNumeric():
		return value.TypeReal
	}
	c.report(n, "Invalid operands of types '%s' and '%s' to binary '%s'", left, right, n.Op)
	return value.TypeInvalid
}

// Typecheck infers e and accepts it only if the result is a concrete type.
// An Unknown result means no rule covered the node.
func (c *Checker) Typecheck(e Expr) bool {
	switch c.Infer(e) {
	case value.TypeInvalid:
		c.report(e, "Invalid expression type.")
		return false
	case value.TypeUnknown:
		c.report(e, "Could not infer expression type.")
		return false
	}
	return true
}

func (c *Checker) report(e Expr, format string, args ...any) {
	var line, column int
	if !isNil(e) {
		line, column = e.Pos()
	}
	c.diags.Report(Diagnostic{
		Kind:    TypeError,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	})
}
