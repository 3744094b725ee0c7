package evaluator

import (
	"strings"

	"esfpc/fpcheck/pkg/fpl/ast"
)

// Value is the result of reducing an expression: a literal, or an array of
// values when the expression was an array literal.
type Value struct {
	lit   ast.Lit
	elems []Value
	array bool
}

// LitValue wraps a literal.
func LitValue(l ast.Lit) Value { return Value{lit: l} }

// ArrayValue builds an array value.
func ArrayValue(elems ...Value) Value { return Value{elems: elems, array: true} }

// IsArray reports whether v is an array.
func (v Value) IsArray() bool { return v.array }

// Lit returns the literal held by v; ok is false for arrays.
func (v Value) Lit() (l ast.Lit, ok bool) { return v.lit, !v.array }

// Elements returns the elements of an array value.
func (v Value) Elements() []Value { return v.elems }

// Equal is structural equality. Values of different types are never equal.
func (v Value) Equal(o Value) bool {
	if v.array != o.array {
		return false
	}
	if !v.array {
		return v.lit == o.lit
	}
	if len(v.elems) != len(o.elems) {
		return false
	}
	for i := range v.elems {
		if !v.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

// TypeName names the type of v for error messages.
func (v Value) TypeName() string {
	if v.array {
		return "array"
	}
	return v.lit.Kind.String()
}

func (v Value) String() string {
	if !v.array {
		return v.lit.String()
	}
	parts := make([]string, len(v.elems))
	for i, el := range v.elems {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
