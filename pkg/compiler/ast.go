package compiler

import (
	"fmt"
	"strings"

	"skard/pkg/value"
)

// NodeKind is the top-level category of an AST node. Expressions are the
// only kind the grammar produces so far.
type NodeKind int

const (
	NodeExpression NodeKind = iota
)

// Operator is an arithmetic operator. Unary expressions only use OpSub.
type Operator int

const (
	OpAdd    Operator = iota // +
	OpSub                    // -
	OpMul                    // *
	OpDiv                    // / (true division)
	OpIntDiv                 // | (integer division)
)

var operatorSymbols = [...]string{
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpIntDiv: "|",
}

func (op Operator) String() string {
	if int(op) >= 0 && int(op) < len(operatorSymbols) {
		return operatorSymbols[op]
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// operatorFor maps an operator token to its Operator.
func operatorFor(tt TokenType) (Operator, bool) {
	switch tt {
	case PLUS:
		return OpAdd, true
	case MINUS:
		return OpSub, true
	case STAR:
		return OpMul, true
	case SLASH:
		return OpDiv, true
	case DIV:
		return OpIntDiv, true
	}
	return 0, false
}

// Expr is implemented by every expression node. Each node owns its children
// and carries a type slot that starts out Unknown and is filled in by the
// Checker.
//
//	1 + 2 * 3
//
//	      BinaryExpr(+)
//	      /          \
//	 ValueExpr(1)  BinaryExpr(*)
//	               /         \
//	         ValueExpr(2)  ValueExpr(3)
type Expr interface {
	Kind() NodeKind
	Pos() (line, column int)
	Type() value.Type
	String() string
	setType(value.Type)
	children() []Expr
	detach()
}

type exprBase struct {
	typ    value.Type
	Line   int
	Column int
}

func (b *exprBase) Kind() NodeKind          { return NodeExpression }
func (b *exprBase) Pos() (line, column int) { return b.Line, b.Column }
func (b *exprBase) Type() value.Type        { return b.typ }
func (b *exprBase) setType(t value.Type)    { b.typ = t }

// ValueExpr is a literal. Its type is the literal's own.
type ValueExpr struct {
	exprBase
	Value value.Value
}

// UnaryExpr is a prefix operator applied to Operand.
type UnaryExpr struct {
	exprBase
	Op      Operator
	Operand Expr
}

// BinaryExpr evaluates Left, then Right, then applies Op.
type BinaryExpr struct {
	exprBase
	Op    Operator
	Left  Expr
	Right Expr
}

// GroupingExpr is a parenthesised expression.
type GroupingExpr struct {
	exprBase
	Inner Expr
}

func NewValue(v value.Value, line, column int) *ValueExpr {
	return &ValueExpr{exprBase: exprBase{typ: v.Type, Line: line, Column: column}, Value: v}
}

func NewUnary(op Operator, operand Expr, line, column int) *UnaryExpr {
	return &UnaryExpr{exprBase: exprBase{Line: line, Column: column}, Op: op, Operand: operand}
}

func NewBinary(op Operator, left, right Expr, line, column int) *BinaryExpr {
	return &BinaryExpr{exprBase: exprBase{Line: line, Column: column}, Op: op, Left: left, Right: right}
}

func NewGrouping(inner Expr, line, column int) *GroupingExpr {
	return &GroupingExpr{exprBase: exprBase{Line: line, Column: column}, Inner: inner}
}

func (e *ValueExpr) children() []Expr    { return nil }
func (e *UnaryExpr) children() []Expr    { return []Expr{e.Operand} }
func (e *BinaryExpr) children() []Expr   { return []Expr{e.Left, e.Right} }
func (e *GroupingExpr) children() []Expr { return []Expr{e.Inner} }

func (e *ValueExpr) detach()    {}
func (e *UnaryExpr) detach()    { e.Operand = nil }
func (e *BinaryExpr) detach()   { e.Left, e.Right = nil, nil }
func (e *GroupingExpr) detach() { e.Inner = nil }

// String renders the node with its current type:
//
//	(Real + (Real 1.5) (Int 2))
func (e *ValueExpr) String() string {
	return fmt.Sprintf("(%s %s)", e.typ, e.Value)
}

func (e *UnaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.typ, e.Op, exprString(e.Operand))
}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s %s)", e.typ, e.Op, exprString(e.Left), exprString(e.Right))
}

func (e *GroupingExpr) String() string {
	return fmt.Sprintf("(%s (x) %s)", e.typ, exprString(e.Inner))
}

func exprString(e Expr) string {
	if isNil(e) {
		return "INVALID"
	}
	return e.String()
}

// Shape renders the tree without types or grouping markers, e.g.
// "(+ 1.0 (* 2.0 3.0))". Handy for comparing parse results.
func Shape(e Expr) string {
	var sb strings.Builder
	writeShape(&sb, e)
	return sb.String()
}

func writeShape(sb *strings.Builder, e Expr) {
	if isNil(e) {
		sb.WriteString("INVALID")
		return
	}
	switch n := e.(type) {
	case *ValueExpr:
		sb.WriteString(n.Value.String())
	case *UnaryExpr:
		fmt.Fprintf(sb, "(%s ", n.Op)
		writeShape(sb, n.Operand)
		sb.WriteString(")")
	case *BinaryExpr:
		fmt.Fprintf(sb, "(%s ", n.Op)
		writeShape(sb, n.Left)
		sb.WriteString(" ")
		writeShape(sb, n.Right)
		sb.WriteString(")")
	case *GroupingExpr:
		writeShape(sb, n.Inner)
	}
}

// Walk visits every node below and including e, children before parents,
// first child before second.
func Walk(e Expr, fn func(Expr)) {
	if isNil(e) {
		return
	}
	for _, c := range e.children() {
		Walk(c, fn)
	}
	fn(e)
}

// Free tears the tree down depth-first, unlinking every node from its
// children after they have been released.
func Free(e Expr) {
	Walk(e, func(n Expr) { n.detach() })
}

// isNil catches typed nil pointers stored in an Expr.
func isNil(e Expr) bool {
	switch n := e.(type) {
	case nil:
		return true
	case *ValueExpr:
		return n == nil
	case *UnaryExpr:
		return n == nil
	case *BinaryExpr:
		return n == nil
	case *GroupingExpr:
		return n == nil
	}
	return false
}
