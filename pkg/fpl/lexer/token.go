package lexer

import (
	"fmt"
	"strconv"
)

// TokenKind identifies the kind of a token.
type TokenKind int

const (
	ILLEGAL TokenKind = iota

	// Literals
	INT   // -42, 35000
	BOOL  // true, false
	TEXT  // 'EDDF'
	IDENT // rfl, ac_wtc

	// Punctuation
	COMMA    // ,
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	PERCENT  // %

	// Operators
	EQ  // ==
	NEQ // !=
	NOT // !
	LT  // <
	LE  // <=
	GT  // >
	GE  // >=

	// Keywords
	AND // and
	OR  // or
	IN  // in
)

var kindNames = map[TokenKind]string{
	ILLEGAL:  "ILLEGAL",
	INT:      "INT",
	BOOL:     "BOOL",
	TEXT:     "TEXT",
	IDENT:    "IDENT",
	COMMA:    ",",
	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	PERCENT:  "%",
	EQ:       "==",
	NEQ:      "!=",
	NOT:      "!",
	LT:       "<",
	LE:       "<=",
	GT:       ">",
	GE:       ">=",
	AND:      "and",
	OR:       "or",
	IN:       "in",
}

func (k TokenKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// keywords are reserved words; they never lex as identifiers.
var keywords = map[string]Token{
	"and":   {Kind: AND},
	"or":    {Kind: OR},
	"in":    {Kind: IN},
	"true":  {Kind: BOOL, Bool: true},
	"false": {Kind: BOOL, Bool: false},
}

// Token is a single lexical unit. Only the payload field matching Kind is set:
// Int for INT, Bool for BOOL, Text for TEXT and IDENT.
type Token struct {
	Kind TokenKind
	Int  int64
	Bool bool
	Text string
	Pos  int // byte offset of the first character
}

// String renders the token the way it appears in source.
func (t Token) String() string {
	switch t.Kind {
	case INT:
		return strconv.FormatInt(t.Int, 10)
	case BOOL:
		return strconv.FormatBool(t.Bool)
	case TEXT:
		return "'" + t.Text + "'"
	case IDENT:
		return t.Text
	default:
		return t.Kind.String()
	}
}

// Same reports whether two tokens carry the same kind and payload,
// ignoring their positions.
func (t Token) Same(o Token) bool {
	return t.Kind == o.Kind && t.Int == o.Int && t.Bool == o.Bool && t.Text == o.Text
}
