// Package evaluator reduces condition trees against a flight plan.
//
// Evaluation is pure: it reads the flight plan, never modifies it, and always
// terminates. Every failure is returned as an error; nothing defaults
// silently. Both operands of a binary operator are always evaluated, so a
// type error on either side is reported even when the other side alone would
// decide the result.
package evaluator

import (
	"strings"

	"esfpc/fpcheck/pkg/flightplan"
	"esfpc/fpcheck/pkg/fpl/ast"
)

// Eval reduces expr to a value. fp must not be nil.
func Eval(expr ast.Expr, fp *flightplan.FlightPlan) (Value, error) {
	if fp == nil {
		return Value{}, evalError(ErrNilFlightPlan, "")
	}
	return eval(expr, fp)
}

func eval(expr ast.Expr, fp *flightplan.FlightPlan) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return LitValue(e.Value), nil

	case *ast.Identifier:
		l, err := Resolve(e.Name, fp)
		if err != nil {
			return Value{}, err
		}
		return LitValue(l), nil

	case *ast.Unary:
		v, err := eval(e.Operand, fp)
		if err != nil {
			return Value{}, err
		}
		l, ok := v.Lit()
		if !ok || l.Kind != ast.BoolLit {
			return Value{}, evalError(ErrCannotNegate, "%s is %s", e, v.TypeName())
		}
		return LitValue(ast.Bool(!l.Bool)), nil

	case *ast.Binary:
		lhs, err := eval(e.Left, fp)
		if err != nil {
			return Value{}, err
		}
		rhs, err := eval(e.Right, fp)
		if err != nil {
			return Value{}, err
		}
		return evalBinary(e, lhs, rhs)

	case *ast.Array:
		elems := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := eval(el, fp)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return ArrayValue(elems...), nil

	default:
		return Value{}, evalError(ErrInvalidBinaryOp, "unsupported node %T", expr)
	}
}

func evalBinary(e *ast.Binary, lhs, rhs Value) (Value, error) {
	switch e.Op {
	case ast.Eq:
		return LitValue(ast.Bool(lhs.Equal(rhs))), nil
	case ast.Neq:
		return LitValue(ast.Bool(!lhs.Equal(rhs))), nil

	case ast.And, ast.Or:
		l, lok := lhs.Lit()
		r, rok := rhs.Lit()
		if !lok || !rok || l.Kind != ast.BoolLit || r.Kind != ast.BoolLit {
			return Value{}, evalError(ErrNonBoolOperand, "%s has operands %s and %s", e, lhs.TypeName(), rhs.TypeName())
		}
		if e.Op == ast.And {
			return LitValue(ast.Bool(l.Bool && r.Bool)), nil
		}
		return LitValue(ast.Bool(l.Bool || r.Bool)), nil

	case ast.Ge, ast.Gt, ast.Le, ast.Lt, ast.Mod:
		l, lok := lhs.Lit()
		r, rok := rhs.Lit()
		if !lok || !rok || l.Kind != ast.IntLit || r.Kind != ast.IntLit {
			return Value{}, evalError(ErrNonIntOperand, "%s has operands %s and %s", e, lhs.TypeName(), rhs.TypeName())
		}
		return compareInts(e, l.Int, r.Int)

	case ast.In:
		if rhs.IsArray() {
			for _, el := range rhs.Elements() {
				if lhs.Equal(el) {
					return LitValue(ast.Bool(true)), nil
				}
			}
			return LitValue(ast.Bool(false)), nil
		}
		needle, lok := lhs.Lit()
		haystack, rok := rhs.Lit()
		if lok && rok && needle.Kind == ast.TextLit && haystack.Kind == ast.TextLit {
			return LitValue(ast.Bool(strings.Contains(haystack.Text, needle.Text))), nil
		}
		return Value{}, evalError(ErrInvalidBinaryOp, "%s has operands %s and %s", e, lhs.TypeName(), rhs.TypeName())

	default:
		return Value{}, evalError(ErrInvalidBinaryOp, "unknown operator in %s", e)
	}
}

func compareInts(e *ast.Binary, l, r int64) (Value, error) {
	switch e.Op {
	case ast.Ge:
		return LitValue(ast.Bool(l >= r)), nil
	case ast.Gt:
		return LitValue(ast.Bool(l > r)), nil
	case ast.Le:
		return LitValue(ast.Bool(l <= r)), nil
	case ast.Lt:
		return LitValue(ast.Bool(l < r)), nil
	default:
		if r == 0 {
			return Value{}, evalError(ErrModuloByZero, "%s", e)
		}
		// Go's % truncates toward zero, so the sign follows the dividend.
		return LitValue(ast.Int(l % r)), nil
	}
}

// EvalCond evaluates a rule condition, which must reduce to a boolean.
func EvalCond(expr ast.Expr, fp *flightplan.FlightPlan) (bool, error) {
	v, err := Eval(expr, fp)
	if err != nil {
		return false, err
	}
	l, ok := v.Lit()
	if !ok || l.Kind != ast.BoolLit {
		return false, evalError(ErrNotBoolean, "%s is %s", expr, v.TypeName())
	}
	return l.Bool, nil
}
