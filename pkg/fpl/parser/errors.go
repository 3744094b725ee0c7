package parser

import (
	"errors"

	fplerrors "esfpc/fpcheck/pkg/fpl/errors"
	"esfpc/fpcheck/pkg/fpl/lexer"
)

// Sentinel errors for syntactic failures. Parse returns them inside a
// *ParseError whose Err also carries the offset and, when the token stream
// ended because of a lexical error, that error as the cause.
var (
	ErrPrematureEOF     = errors.New("premature end of input")
	ErrUnmatchedParen   = errors.New("unmatched parenthesis, expected ')'")
	ErrUnmatchedBracket = errors.New("unmatched bracket, expected ']'")
	ErrBadToken         = errors.New("bad token")
)

// ParseError is a syntax error. Token is the offending token for
// ErrBadToken and nil otherwise.
type ParseError struct {
	Err   *fplerrors.Error
	Token *lexer.Token
}

func (e *ParseError) Error() string { return e.Err.Error() }

// Unwrap exposes the positioned error, so errors.Is matches the sentinel
// kind and errors.As finds the *fplerrors.Error.
func (e *ParseError) Unwrap() error { return e.Err }

// WithSource returns a copy whose message renders src with a caret.
func (e *ParseError) WithSource(src string) *ParseError {
	return &ParseError{Err: e.Err.WithSource(src), Token: e.Token}
}
