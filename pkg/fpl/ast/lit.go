package ast

import "strconv"

// LitKind identifies the type of a literal value.
type LitKind int

const (
	BoolLit LitKind = iota + 1
	IntLit
	TextLit
)

// String returns the type name used in error messages.
func (k LitKind) String() string {
	switch k {
	case BoolLit:
		return "bool"
	case IntLit:
		return "int"
	case TextLit:
		return "text"
	default:
		return "invalid"
	}
}

// Lit is a scalar value: a boolean, a 64-bit signed integer or a text.
// Only the field matching Kind is meaningful. Lit is comparable, and two
// literals are equal exactly when == holds, so a Text never equals an Int.
type Lit struct {
	Kind LitKind
	Bool bool
	Int  int64
	Text string
}

// Bool returns a boolean literal.
func Bool(b bool) Lit { return Lit{Kind: BoolLit, Bool: b} }

// Int returns an integer literal.
func Int(i int64) Lit { return Lit{Kind: IntLit, Int: i} }

// Text returns a text literal.
func Text(s string) Lit { return Lit{Kind: TextLit, Text: s} }

// Equal reports whether l and o have the same kind and value.
func (l Lit) Equal(o Lit) bool { return l == o }

// String renders the literal in condition syntax.
func (l Lit) String() string {
	switch l.Kind {
	case BoolLit:
		return strconv.FormatBool(l.Bool)
	case IntLit:
		return strconv.FormatInt(l.Int, 10)
	case TextLit:
		return "'" + l.Text + "'"
	default:
		return "<invalid>"
	}
}
