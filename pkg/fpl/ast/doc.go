// Package ast defines the syntax tree of flight plan rule conditions.
//
// A condition such as
//
//	dep == 'EDDF' and sidwpt in ['ANEKI', 'TOBAK'] and rfl % 2000 != 0
//
// parses into a tree of Expr nodes: Literal, Identifier, Unary, Binary and
// Array. Every node owns its children; trees are never shared or cyclic and
// are immutable once built.
//
// Equality between trees is structural (see Equal), which is also what the
// evaluator relies on for ==, != and membership in array literals.
package ast
