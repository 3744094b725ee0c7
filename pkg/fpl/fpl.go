// Package fpl is the flight plan rule condition language.
//
// A condition is a boolean expression over flight plan fields:
//
//	dep == 'EDDF' and sidwpt in ['MTR', 'RID', 'TAU'] and rfl > 9000
//
// The language is organized into subpackages:
//
//   - lexer: source text to tokens
//   - parser: tokens to an ast.Expr (Pratt parser)
//   - ast: syntax tree and structural equality
//   - evaluator: reduction against a flight plan
//   - validator: static checks independent of any flight plan
//   - errors: shared error taxonomy
//
// Compile is the usual entry point for rule loaders.
package fpl

import (
	"esfpc/fpcheck/pkg/fpl/ast"
	"esfpc/fpcheck/pkg/fpl/parser"
	"esfpc/fpcheck/pkg/fpl/validator"
)

// Parse parses a condition. Syntax errors render the source with a caret.
func Parse(src string) (ast.Expr, error) {
	expr, err := parser.Parse(src)
	if err != nil {
		if pe, ok := err.(*parser.ParseError); ok {
			return nil, pe.WithSource(src)
		}
		return nil, err
	}
	return expr, nil
}

// Compile parses a condition and runs static validation on it.
func Compile(src string) (ast.Expr, error) {
	expr, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(expr); err != nil {
		return nil, err
	}
	return expr, nil
}
