package lexer

import "errors"

// Sentinel errors for lexical failures. They are wrapped in a
// *fplerrors.Error carrying the offset.
var (
	ErrUnterminatedText  = errors.New("unterminated text literal")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrUnrecognizedChar  = errors.New("unrecognized character")
	ErrMalformedInt      = errors.New("malformed integer")
	ErrExpectedEquals    = errors.New("expected '='")
)
