// Package lexer turns a condition source string into tokens.
//
// The lexer is lazy: each call to Next scans one more token. It is not
// restartable; construct a new Lexer to scan the input again. A lexical error
// ends the stream early, Next returns false from then on and Err reports what
// went wrong.
package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	fplerrors "esfpc/fpcheck/pkg/fpl/errors"
)

// Lexer scans a condition source string.
type Lexer struct {
	input        string
	position     int  // offset of ch
	readPosition int  // offset after ch
	ch           rune // current char, 0 at end of input
	err          *fplerrors.Error
}

// New creates a lexer positioned at the start of input.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// Next returns the next token. The second result is false once the input is
// exhausted or a lexical error occurred.
func (l *Lexer) Next() (Token, bool) {
	if l.err != nil {
		return Token{}, false
	}

	l.skipWhitespace()
	if l.atEnd() {
		return Token{}, false
	}

	tok, err := l.scan()
	if err != nil {
		l.err = err
		return Token{}, false
	}
	return tok, true
}

// Err returns the lexical error that terminated the stream, or nil if the
// stream ended at the end of input (or has not ended yet).
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) scan() (Token, *fplerrors.Error) {
	start := l.position
	single := func(kind TokenKind) (Token, *fplerrors.Error) {
		l.readChar()
		return Token{Kind: kind, Pos: start}, nil
	}
	pair := func(kind, withEquals TokenKind) (Token, *fplerrors.Error) {
		if l.peekChar() == '=' {
			l.readChar()
			kind = withEquals
		}
		l.readChar()
		return Token{Kind: kind, Pos: start}, nil
	}

	switch ch := l.ch; {
	case ch == ',':
		return single(COMMA)
	case ch == '(':
		return single(LPAREN)
	case ch == ')':
		return single(RPAREN)
	case ch == '[':
		return single(LBRACKET)
	case ch == ']':
		return single(RBRACKET)
	case ch == '%':
		return single(PERCENT)
	case ch == '!':
		return pair(NOT, NEQ)
	case ch == '<':
		return pair(LT, LE)
	case ch == '>':
		return pair(GT, GE)
	case ch == '=':
		l.readChar()
		if l.atEnd() || l.ch != '=' {
			return Token{}, l.fail(ErrExpectedEquals, l.position, "")
		}
		l.readChar()
		return Token{Kind: EQ, Pos: start}, nil
	case ch == '\'':
		return l.readText()
	case ch == '-' || isDigit(ch):
		return l.readInt()
	case 'a' <= ch && ch <= 'z':
		return l.readIdentifier()
	default:
		return Token{}, l.fail(ErrUnrecognizedChar, start, "%q", ch)
	}
}

// readText consumes a quoted text literal. There are no escape sequences;
// the literal ends at the next quote.
func (l *Lexer) readText() (Token, *fplerrors.Error) {
	start := l.position
	l.readChar()
	textStart := l.position
	for !l.atEnd() && l.ch != '\'' {
		l.readChar()
	}
	if l.atEnd() {
		return Token{}, l.fail(ErrUnterminatedText, start, "")
	}
	text := l.input[textStart:l.position]
	l.readChar()
	return Token{Kind: TEXT, Text: text, Pos: start}, nil
}

// readInt consumes an optional leading '-' followed by decimal digits.
func (l *Lexer) readInt() (Token, *fplerrors.Error) {
	start := l.position
	l.readChar()
	for !l.atEnd() && isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return Token{}, l.fail(ErrMalformedInt, start, "%q", lit)
	}
	return Token{Kind: INT, Int: n, Pos: start}, nil
}

// readIdentifier consumes a run of letters, digits and underscores. An
// underscore must be followed by another identifier character, so names
// never end in '_'.
func (l *Lexer) readIdentifier() (Token, *fplerrors.Error) {
	start := l.position
	for !l.atEnd() && isIdentChar(l.ch) {
		if l.ch == '_' && !isIdentChar(l.peekChar()) {
			return Token{}, l.fail(ErrInvalidIdentifier, start, "%q ends with '_'", l.input[start:l.readPosition])
		}
		l.readChar()
	}

	word := l.input[start:l.position]
	if kw, ok := keywords[word]; ok {
		kw.Pos = start
		return kw, nil
	}
	return Token{Kind: IDENT, Text: word, Pos: start}, nil
}

func (l *Lexer) fail(kind error, pos int, format string, args ...any) *fplerrors.Error {
	return fplerrors.New(fplerrors.ErrorTypeLexical, kind, pos, format, args...)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentChar(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// Tokenize scans the whole input. It returns the tokens read before the
// first lexical error together with that error.
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var toks []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return toks, l.Err()
		}
		toks = append(toks, tok)
	}
}
