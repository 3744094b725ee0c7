package ast

import "strings"

// Expr is a node of a condition tree.
type Expr interface {
	// String renders the node in condition syntax with every binary
	// operation parenthesized, so the grouping chosen by the parser is visible.
	String() string

	exprNode() // restricts Expr to the types defined here
}

// Literal is a constant value.
type Literal struct {
	Value Lit
}

// Identifier is an unresolved reference to a flight plan field.
type Identifier struct {
	Name string
}

// UnOp is a prefix operator.
type UnOp int

const (
	Not UnOp = iota + 1
)

func (op UnOp) String() string {
	if op == Not {
		return "!"
	}
	return "?"
}

// Unary applies a prefix operator to its operand.
type Unary struct {
	Op      UnOp
	Operand Expr
}

// BinOp is an infix operator.
type BinOp int

const (
	And BinOp = iota + 1
	Or
	Eq
	Neq
	Ge
	Gt
	Le
	Lt
	Mod
	In
)

var binOpSymbols = map[BinOp]string{
	And: "and",
	Or:  "or",
	Eq:  "==",
	Neq: "!=",
	Ge:  ">=",
	Gt:  ">",
	Le:  "<=",
	Lt:  "<",
	Mod: "%",
	In:  "in",
}

func (op BinOp) String() string {
	if s, ok := binOpSymbols[op]; ok {
		return s
	}
	return "?"
}

// Binary applies an infix operator to two operands.
type Binary struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

// Array is a bracketed, comma separated list of expressions.
type Array struct {
	Elements []Expr
}

func (*Literal) exprNode()    {}
func (*Identifier) exprNode() {}
func (*Unary) exprNode()      {}
func (*Binary) exprNode()     {}
func (*Array) exprNode()      {}

func (e *Literal) String() string    { return e.Value.String() }
func (e *Identifier) String() string { return e.Name }
func (e *Unary) String() string      { return e.Op.String() + e.Operand.String() }

func (e *Binary) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

func (e *Array) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.Value == y.Value
	case *Identifier:
		y, ok := b.(*Identifier)
		return ok && x.Name == y.Name
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && Equal(x.Operand, y.Operand)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Array:
		y, ok := b.(*Array)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	default:
		return false
	}
}
