package source

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRules is returned for documents without a top-level rules key.
	ErrMissingRules = errors.New("missing 'rules' key")

	// ErrMalformed is returned for documents that do not have the rule file shape.
	ErrMalformed = errors.New("malformed rule file")
)

// DecodeError locates a problem in a rule document.
type DecodeError struct {
	Source string
	// Index is the rule position, or -1 when the problem is not in a rule.
	Index int
	// Line is the 1-based YAML line, 0 when unknown.
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	loc := e.Source
	if e.Index >= 0 {
		loc = fmt.Sprintf("%s: rule %d", loc, e.Index)
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s (line %d)", loc, e.Line)
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
