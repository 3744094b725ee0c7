// Package errors provides the error taxonomy shared by the condition language
// packages (lexer, parser, evaluator and validator).
//
// Every failure is a *Error carrying an ErrorType, a human readable message,
// the byte offset into the condition source when one is known, and an optional
// suggestion. Package specific sentinel values are attached as the error kind
// so callers can match them with errors.Is:
//
//	if errors.Is(err, parser.ErrPrematureEOF) {
//	    ...
//	}
//
// # Error Types
//
// ErrorTypeLexical: unterminated text, invalid identifier, unrecognized character,
// malformed integer, malformed '='
//
// ErrorTypeSyntax: premature end of input, unmatched parenthesis or bracket, bad token
//
// ErrorTypeSemantic: static problems found by the validator (unknown identifiers,
// operand types that can never match)
//
// ErrorTypeEvaluation: failures while evaluating against a flight plan
package errors
