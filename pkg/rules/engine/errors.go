package engine

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNoRuleSet indicates Check was called before any rule set was swapped in.
	ErrNoRuleSet = errors.New("no rule set loaded")

	// ErrInvalidConfig indicates invalid engine configuration.
	ErrInvalidConfig = errors.New("invalid engine configuration")

	// ErrInvalidActionKind indicates an action kind other than success, info, warning or error.
	ErrInvalidActionKind = errors.New("invalid action kind")

	// ErrTooManyRules indicates a rule set larger than EngineConfig.MaxRules.
	ErrTooManyRules = errors.New("too many rules")
)

// EvaluationError reports a rule whose condition failed to evaluate. The
// check that hit it is aborted.
type EvaluationError struct {
	Source    string
	Index     int
	Line      int
	Condition string
	Cause     error
}

// Error returns the error message.
func (e *EvaluationError) Error() string {
	loc := fmt.Sprintf("rule %d", e.Index)
	if e.Source != "" {
		loc = fmt.Sprintf("%s rule %d", e.Source, e.Index)
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s (line %d)", loc, e.Line)
	}
	return fmt.Sprintf("%s: condition %q: %v", loc, e.Condition, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

func newEvaluationError(r *Rule, cause error) *EvaluationError {
	cond := r.Text
	if cond == "" && r.Condition != nil {
		cond = r.Condition.String()
	}
	return &EvaluationError{
		Source:    r.Source,
		Index:     r.Index,
		Line:      r.Line,
		Condition: cond,
		Cause:     cause,
	}
}
