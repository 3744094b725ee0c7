package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = errors.New("sentinel")

func TestErrorFormat(t *testing.T) {
	err := New(ErrorTypeSyntax, errSentinel, 4, "unexpected %s", "token")
	assert.Equal(t, "syntax error: sentinel: unexpected token at offset 4", err.Error())

	err.Pos = NoPos
	err.Suggestion = "did you mean 'x'?"
	assert.Equal(t, "syntax error: sentinel: unexpected token; did you mean 'x'?", err.Error())
}

func TestErrorWithSourceRendersCaret(t *testing.T) {
	base := New(ErrorTypeSyntax, errSentinel, 4, "")
	err := base.WithSource("rfl = 1")

	assert.Empty(t, base.Source, "WithSource must not modify the receiver")
	assert.Equal(t, "syntax error: sentinel at offset 4\n  | rfl = 1\n  |     ^", err.Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := New(ErrorTypeSyntax, errSentinel, NoPos, "x")
	err.Cause = cause

	assert.ErrorIs(t, err, errSentinel)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "(caused by cause)")
}

func TestCaret(t *testing.T) {
	assert.Equal(t, "  | ab\n  | ^", Caret("ab", 0))
	assert.Equal(t, "  | ab\n  |   ^", Caret("ab", 10))
	assert.Equal(t, "  | 'ä' x\n  |     ^", Caret("'ä' x", 5))
	assert.Empty(t, Caret("ab", NoPos))
}

func TestErrorList(t *testing.T) {
	list := NewErrorList()
	assert.NoError(t, list.ToError())
	assert.Empty(t, list.Error())

	list.Add(New(ErrorTypeSemantic, errSentinel, NoPos, "first"))
	assert.Equal(t, "semantic error: sentinel: first", list.Error())

	list.Add(New(ErrorTypeEvaluation, errSentinel, NoPos, "second"))
	assert.Equal(t, 2, list.Count())
	assert.True(t, list.HasErrorType(ErrorTypeEvaluation))
	assert.False(t, list.HasErrorType(ErrorTypeLexical))
	assert.ErrorIs(t, list.ToError(), errSentinel)
	assert.Equal(t,
		"found 2 errors:\n  - semantic error: sentinel: first\n  - evaluation error: sentinel: second",
		list.Error())
}

func TestSuggestIdentifier(t *testing.T) {
	known := []string{"ac_eng_count", "ac_eng_type", "cfl", "rfl", "route"}

	assert.Equal(t, "did you mean 'rfl'?", SuggestIdentifier("rlf", known))
	assert.Contains(t, SuggestIdentifier("eng", known), "did you mean 'ac_eng_")
	assert.Equal(t, "known identifiers: alpha, beta", SuggestIdentifier("zzzzzzzz", []string{"alpha", "beta"}))
	assert.Empty(t, SuggestIdentifier("x", nil))
}
