package source

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esfpc/fpcheck/pkg/fpl/parser"
	"esfpc/fpcheck/pkg/rules/engine"
)

const aneki = `# ANEKI departures
rules:
  - condition: "sid == 'ANEKI1L' and arr != 'EDDS'"
    action:
      kind: error
      msg: DST
  - condition: "sid == 'ANEKI1L' and rfl > 33000"
    action: {kind: error, msg: RFL}
  - condition: "sid == 'ANEKI1L'"
    action: {typ: success, msg: OK}
`

func TestDecode(t *testing.T) {
	rules, err := Decode("eddf/aneki.yaml", []byte(aneki))
	require.NoError(t, err)
	require.Len(t, rules, 3)

	first := rules[0]
	assert.Equal(t, "eddf/aneki.yaml", first.Source)
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, 3, first.Line)
	assert.Equal(t, "sid == 'ANEKI1L' and arr != 'EDDS'", first.Text)
	assert.Equal(t, engine.Action{Kind: engine.KindError, Msg: "DST"}, first.Action)
	assert.Equal(t, "((sid == 'ANEKI1L') and (arr != 'EDDS'))", first.Condition.String())

	assert.Equal(t, 7, rules[1].Line)
	assert.Equal(t, engine.Action{Kind: engine.KindSuccess, Msg: "OK"}, rules[2].Action)
}

func TestDecodeEmptyList(t *testing.T) {
	rules, err := Decode("empty.yaml", []byte("rules: []\n"))
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantIndex int
		wantLine  int
		wantIs    error
	}{
		{name: "empty document", data: "", wantIndex: -1, wantIs: ErrMissingRules},
		{name: "no rules key", data: "other: 1\n", wantIndex: -1, wantLine: 1, wantIs: ErrMalformed},
		{name: "top level list", data: "- a\n", wantIndex: -1, wantLine: 1, wantIs: ErrMalformed},
		{name: "rules not a list", data: "rules: 3\n", wantIndex: -1, wantLine: 1, wantIs: ErrMalformed},
		{
			name:      "bad condition",
			data:      "rules:\n  - condition: \"rfl >\"\n    action: {kind: error, msg: X}\n",
			wantIndex: 0,
			wantLine:  2,
			wantIs:    parser.ErrPrematureEOF,
		},
		{
			name:      "unknown kind",
			data:      "rules:\n  - condition: \"true\"\n    action: {kind: fatal, msg: X}\n",
			wantIndex: 0,
			wantLine:  3,
			wantIs:    engine.ErrInvalidActionKind,
		},
		{
			name:      "missing action",
			data:      "rules:\n  - condition: \"true\"\n  - condition: \"false\"\n",
			wantIndex: 0,
			wantLine:  2,
			wantIs:    ErrMalformed,
		},
		{
			name:      "missing msg",
			data:      "rules:\n  - condition: \"true\"\n    action: {kind: info}\n",
			wantIndex: 0,
			wantLine:  3,
			wantIs:    ErrMalformed,
		},
		{
			name:      "kind and typ",
			data:      "rules:\n  - condition: \"true\"\n    action: {kind: info, typ: info, msg: X}\n",
			wantIndex: 0,
			wantLine:  3,
			wantIs:    ErrMalformed,
		},
		{
			name:      "unknown rule key",
			data:      "rules:\n  - condition: \"true\"\n    action: {kind: info, msg: X}\n    when: now\n",
			wantIndex: 0,
			wantLine:  4,
			wantIs:    ErrMalformed,
		},
		{
			name:      "second rule broken",
			data:      "rules:\n  - condition: \"true\"\n    action: {kind: info, msg: X}\n  - condition: \"a ==\"\n    action: {kind: info, msg: Y}\n",
			wantIndex: 1,
			wantLine:  4,
			wantIs:    parser.ErrPrematureEOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("r.yaml", []byte(tt.data))
			require.Error(t, err)

			var de *DecodeError
			require.True(t, errors.As(err, &de), "error %T is not a DecodeError", err)
			assert.Equal(t, "r.yaml", de.Source)
			assert.Equal(t, tt.wantIndex, de.Index)
			assert.Equal(t, tt.wantLine, de.Line)
			assert.ErrorIs(t, err, tt.wantIs)
		})
	}
}

func TestDecodeInvalidYAML(t *testing.T) {
	_, err := Decode("r.yaml", []byte("rules: [\n"))
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, -1, de.Index)
}

func TestDecodeErrorMessage(t *testing.T) {
	err := &DecodeError{Source: "a.yaml", Index: 2, Line: 9, Err: errors.New("boom")}
	assert.Equal(t, "a.yaml: rule 2 (line 9): boom", err.Error())

	err = &DecodeError{Source: "a.yaml", Index: -1, Err: ErrMissingRules}
	assert.Equal(t, "a.yaml: missing 'rules' key", err.Error())
}
