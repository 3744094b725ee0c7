package evaluator

import (
	"errors"
	"fmt"

	fplerrors "esfpc/fpcheck/pkg/fpl/errors"
)

// ErrTypeMismatch is the parent of every operand type error.
var ErrTypeMismatch = errors.New("type mismatch")

// Sentinel errors for evaluation failures.
var (
	ErrUnknownIdentifier = errors.New("identifier not implemented")
	ErrCannotNegate      = fmt.Errorf("%w: cannot negate this expression", ErrTypeMismatch)
	ErrNonBoolOperand    = fmt.Errorf("%w: logical operator on non-boolean type", ErrTypeMismatch)
	ErrNonIntOperand     = fmt.Errorf("%w: cannot compare or operate on non-integer type", ErrTypeMismatch)
	ErrInvalidBinaryOp   = fmt.Errorf("%w: invalid binary operation", ErrTypeMismatch)
	ErrNotBoolean        = errors.New("expression did not evaluate to a boolean")
	ErrModuloByZero      = errors.New("modulo by zero")
	ErrNilFlightPlan     = errors.New("nil flight plan")
)

func evalError(kind error, format string, args ...any) *fplerrors.Error {
	return fplerrors.New(fplerrors.ErrorTypeEvaluation, kind, fplerrors.NoPos, format, args...)
}

func unknownIdentifier(name string) *fplerrors.Error {
	err := evalError(ErrUnknownIdentifier, "%q", name)
	err.Suggestion = fplerrors.SuggestIdentifier(name, identifierNames)
	return err
}
