// Package validator statically checks parsed conditions before they are
// evaluated against any flight plan.
//
// It reports, all at once, every problem the evaluator would be guaranteed
// to hit regardless of the flight plan: unknown identifiers (with a
// suggestion), operators applied to operands of the wrong type, equality
// between values of different types (always false), and a root that is not a
// boolean.
package validator

import (
	"errors"

	"esfpc/fpcheck/pkg/fpl/ast"
	fplerrors "esfpc/fpcheck/pkg/fpl/errors"
	"esfpc/fpcheck/pkg/fpl/evaluator"
)

// ErrMixedEquality is reported for == or != between different types.
var ErrMixedEquality = errors.New("equality between different types is constant")

type staticType int

const (
	typeUnknown staticType = iota // an error was already reported below this node
	typeBool
	typeInt
	typeText
	typeArray
)

func (t staticType) String() string {
	switch t {
	case typeBool:
		return "bool"
	case typeInt:
		return "int"
	case typeText:
		return "text"
	case typeArray:
		return "array"
	default:
		return "unknown"
	}
}

func fromLitKind(k ast.LitKind) staticType {
	switch k {
	case ast.BoolLit:
		return typeBool
	case ast.IntLit:
		return typeInt
	case ast.TextLit:
		return typeText
	default:
		return typeUnknown
	}
}

// Validator checks a single condition.
type Validator struct {
	errors *fplerrors.ErrorList
}

// New creates a validator.
func New() *Validator {
	return &Validator{errors: fplerrors.NewErrorList()}
}

// Validate checks expr and returns an *fplerrors.ErrorList with every
// problem found, or nil.
func Validate(expr ast.Expr) error {
	return New().Validate(expr)
}

// Validate checks expr and returns an *fplerrors.ErrorList with every
// problem found, or nil.
func (v *Validator) Validate(expr ast.Expr) error {
	v.errors = fplerrors.NewErrorList()

	if t := v.check(expr); t != typeBool && t != typeUnknown {
		v.report(evaluator.ErrNotBoolean, "%s is %s", expr, t)
	}
	return v.errors.ToError()
}

func (v *Validator) report(kind error, format string, args ...any) {
	v.errors.Add(fplerrors.New(fplerrors.ErrorTypeSemantic, kind, fplerrors.NoPos, format, args...))
}

func (v *Validator) check(expr ast.Expr) staticType {
	switch e := expr.(type) {
	case *ast.Literal:
		return fromLitKind(e.Value.Kind)

	case *ast.Identifier:
		kind, ok := evaluator.IdentifierKind(e.Name)
		if !ok {
			err := fplerrors.New(fplerrors.ErrorTypeSemantic, evaluator.ErrUnknownIdentifier, fplerrors.NoPos, "%q", e.Name)
			err.Suggestion = fplerrors.SuggestIdentifier(e.Name, evaluator.Identifiers())
			v.errors.Add(err)
			return typeUnknown
		}
		return fromLitKind(kind)

	case *ast.Unary:
		t := v.check(e.Operand)
		if t != typeBool && t != typeUnknown {
			v.report(evaluator.ErrCannotNegate, "%s is %s", e, t)
		}
		return typeBool

	case *ast.Binary:
		return v.checkBinary(e)

	case *ast.Array:
		for _, el := range e.Elements {
			v.check(el)
		}
		return typeArray

	default:
		return typeUnknown
	}
}

func (v *Validator) checkBinary(e *ast.Binary) staticType {
	l := v.check(e.Left)
	r := v.check(e.Right)
	known := l != typeUnknown && r != typeUnknown

	switch e.Op {
	case ast.And, ast.Or:
		if known && (l != typeBool || r != typeBool) {
			v.report(evaluator.ErrNonBoolOperand, "%s has operands %s and %s", e, l, r)
		}
		return typeBool

	case ast.Eq, ast.Neq:
		if known && l != r {
			v.report(ErrMixedEquality, "%s compares %s with %s", e, l, r)
		}
		return typeBool

	case ast.Ge, ast.Gt, ast.Le, ast.Lt:
		if known && (l != typeInt || r != typeInt) {
			v.report(evaluator.ErrNonIntOperand, "%s has operands %s and %s", e, l, r)
		}
		return typeBool

	case ast.Mod:
		if known && (l != typeInt || r != typeInt) {
			v.report(evaluator.ErrNonIntOperand, "%s has operands %s and %s", e, l, r)
		}
		if lit, ok := e.Right.(*ast.Literal); ok && lit.Value == ast.Int(0) {
			v.report(evaluator.ErrModuloByZero, "%s", e)
		}
		return typeInt

	case ast.In:
		if known && r != typeArray && (l != typeText || r != typeText) {
			v.report(evaluator.ErrInvalidBinaryOp, "%s has operands %s and %s", e, l, r)
		}
		return typeBool

	default:
		return typeUnknown
	}
}
