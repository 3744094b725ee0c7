package errors

import (
	"fmt"
	"strings"
)

// ErrorType categorizes where in the pipeline an error was raised.
type ErrorType string

const (
	ErrorTypeLexical    ErrorType = "lexical"    // Tokenizer failure
	ErrorTypeSyntax     ErrorType = "syntax"     // Parser failure
	ErrorTypeSemantic   ErrorType = "semantic"   // Static validation failure
	ErrorTypeEvaluation ErrorType = "evaluation" // Runtime evaluation failure
)

// NoPos marks an error without a known source offset.
const NoPos = -1

// Error is a condition language error with optional position and suggestion.
type Error struct {
	Type       ErrorType // Category of error
	Kind       error     // Sentinel identifying the failure, matched with errors.Is
	Message    string    // Detail appended to the kind
	Pos        int       // Byte offset into Source, or NoPos
	Source     string    // Condition source the offset refers to (optional)
	Suggestion string    // Suggested fix (optional)
	Cause      error     // Underlying error, e.g. the lexical error behind a premature EOF
}

// New creates an error of the given type and kind at pos.
func New(typ ErrorType, kind error, pos int, format string, args ...any) *Error {
	return &Error{
		Type:    typ,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

// Error implements the error interface.
// The first line is always "<type> error: <kind>[: <message>][ at offset N]".
// When the source is known a caret line is appended.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(string(e.Type))
	sb.WriteString(" error")
	if e.Kind != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Kind.Error())
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Pos != NoPos {
		fmt.Fprintf(&sb, " at offset %d", e.Pos)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, " (caused by %v)", e.Cause)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&sb, "; %s", e.Suggestion)
	}
	if e.Source != "" && e.Pos != NoPos {
		sb.WriteString("\n")
		sb.WriteString(Caret(e.Source, e.Pos))
	}

	return sb.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// WithSource returns a copy of e that renders a caret under the offending offset.
func (e *Error) WithSource(src string) *Error {
	c := *e
	c.Source = src
	return &c
}

// ErrorList accumulates several errors, used by the validator which reports
// every problem in a condition instead of stopping at the first.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}
	if len(el.Errors) == 1 {
		return el.Errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "found %d errors:", el.Count())
	for _, err := range el.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n    "))
	}
	return sb.String()
}

// Unwrap returns the accumulated errors so errors.Is matches any of them.
func (el *ErrorList) Unwrap() []error {
	errs := make([]error, len(el.Errors))
	for i, err := range el.Errors {
		errs[i] = err
	}
	return errs
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// HasErrorType returns true if the error list contains at least one error of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}
