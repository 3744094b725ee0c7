package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fplerrors "esfpc/fpcheck/pkg/fpl/errors"
)

func kinds(toks []Token) []TokenKind {
	if len(toks) == 0 {
		return nil
	}
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  Token
	}{
		{"true", Token{Kind: BOOL, Bool: true}},
		{"false", Token{Kind: BOOL, Bool: false}},
		{"-42", Token{Kind: INT, Int: -42}},
		{"55", Token{Kind: INT, Int: 55}},
		{"9223372036854775807", Token{Kind: INT, Int: 9223372036854775807}},
		{"-9223372036854775808", Token{Kind: INT, Int: -9223372036854775808}},
		{"'Hello World! :)'", Token{Kind: TEXT, Text: "Hello World! :)"}},
		{"''", Token{Kind: TEXT, Text: ""}},
		{"ac_eng_count", Token{Kind: IDENT, Text: "ac_eng_count"}},
		{"a__b", Token{Kind: IDENT, Text: "a__b"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			tok, ok := l.Next()
			require.True(t, ok, "Next() returned no token, err = %v", l.Err())
			assert.True(t, tt.want.Same(tok), "Next() = %+v, want %+v", tok, tt.want)

			_, ok = l.Next()
			assert.False(t, ok)
			assert.NoError(t, l.Err())
		})
	}
}

func TestLexKeywordsAreReserved(t *testing.T) {
	toks, err := Tokenize("and or in true false android")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{AND, OR, IN, BOOL, BOOL, IDENT}, kinds(toks))
	assert.Equal(t, "android", toks[5].Text)
}

func TestLexConditionTokens(t *testing.T) {
	input := "dep == 'EDDF' and sidwpt in ['TOBAK', 'ANEKI'] and iseven(rfl)"
	toks, err := Tokenize(input)
	require.NoError(t, err)

	assert.Equal(t, []TokenKind{
		IDENT, EQ, TEXT, AND, IDENT, IN, LBRACKET, TEXT, COMMA, TEXT, RBRACKET,
		AND, IDENT, LPAREN, IDENT, RPAREN,
	}, kinds(toks))
	assert.Equal(t, "EDDF", toks[2].Text)
	assert.Equal(t, "iseven", toks[12].Text)
}

func TestLexOperators(t *testing.T) {
	toks, err := Tokenize("! == != < <= > >= % , ( ) [ ]")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{
		NOT, EQ, NEQ, LT, LE, GT, GE, PERCENT, COMMA, LPAREN, RPAREN, LBRACKET, RBRACKET,
	}, kinds(toks))
}

func TestLexNotFollowedByOperand(t *testing.T) {
	toks, err := Tokenize("!true")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{NOT, BOOL}, kinds(toks))

	toks, err = Tokenize("!")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{NOT}, kinds(toks))
}

func TestLexPositions(t *testing.T) {
	toks, err := Tokenize("rfl  % 2000")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, 0, toks[0].Pos)
	assert.Equal(t, 5, toks[1].Pos)
	assert.Equal(t, 7, toks[2].Pos)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		before  []TokenKind
		pos     int
	}{
		{"identifier ending in underscore", "test_", ErrInvalidIdentifier, nil, 0},
		{"underscore before space", "rfl_ == 1", ErrInvalidIdentifier, nil, 0},
		{"unrecognized character", "te.st", ErrUnrecognizedChar, []TokenKind{IDENT}, 2},
		{"unterminated text", "dep == 'EDDF", ErrUnterminatedText, []TokenKind{IDENT, EQ}, 7},
		{"integer overflow", "-100000000000000000000000000000000000000000000", ErrMalformedInt, nil, 0},
		{"lone minus", "- 5", ErrMalformedInt, nil, 0},
		{"single equals", "rfl = 5", ErrExpectedEquals, []TokenKind{IDENT}, 5},
		{"equals at end", "rfl =", ErrExpectedEquals, []TokenKind{IDENT}, 5},
		{"uppercase identifier", "RFL", ErrUnrecognizedChar, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.before, kinds(toks))

			var fe *fplerrors.Error
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, fplerrors.ErrorTypeLexical, fe.Type)
			assert.Equal(t, tt.pos, fe.Pos)
		})
	}
}

func TestLexStopsAfterError(t *testing.T) {
	l := New("te.st and more")
	_, ok := l.Next()
	require.True(t, ok)

	for i := 0; i < 3; i++ {
		_, ok = l.Next()
		assert.False(t, ok)
	}
	assert.ErrorIs(t, l.Err(), ErrUnrecognizedChar)
}
