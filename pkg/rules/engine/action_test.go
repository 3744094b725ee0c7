package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseActionKind(t *testing.T) {
	for name, want := range map[string]ActionKind{
		"success": KindSuccess,
		"info":    KindInfo,
		"warning": KindWarning,
		"error":   KindError,
		"ERROR":   KindError,
	} {
		got, err := ParseActionKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseActionKind("fatal")
	assert.ErrorIs(t, err, ErrInvalidActionKind)
}

func TestActionKindTag(t *testing.T) {
	assert.Equal(t, TagEmergency, KindError.Tag())
	assert.Equal(t, TagAssumed, KindWarning.Tag())
	assert.Equal(t, TagNotified, KindInfo.Tag())
	assert.Equal(t, TagDefault, KindSuccess.Tag())
}

func TestActionYAML(t *testing.T) {
	var a Action
	require.NoError(t, yaml.Unmarshal([]byte("kind: error\nmsg: RFL\n"), &a))
	assert.Equal(t, Action{Kind: KindError, Msg: "RFL"}, a)

	assert.Error(t, yaml.Unmarshal([]byte("kind: fatal\nmsg: X\n"), &a))
}

func TestRuleSet(t *testing.T) {
	rules := []Rule{
		rule(t, "true", KindSuccess, "OK"),
		rule(t, "false", KindError, "X"),
	}
	rules[1].Source = "b.yaml"

	rs := NewRuleSet(rules...)
	rules[0].Action.Msg = "changed"

	assert.Equal(t, 2, rs.Len())
	assert.Equal(t, "OK", rs.Rule(0).Action.Msg, "rule set must not alias the caller's slice")
	assert.Equal(t, []string{"test.yaml", "b.yaml"}, rs.Sources())
	assert.Equal(t, "test.yaml#0", rs.Rule(0).Ref())

	assert.Equal(t, NewRuleSet(rs.Rules()...).Version(), rs.Version())
	assert.NotEqual(t, NewRuleSet(rules...).Version(), rs.Version())
}
