package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"esfpc/fpcheck/pkg/fpl/ast"
)

// Rule is a compiled condition and the action reported when it holds.
type Rule struct {
	Condition ast.Expr
	Action    Action

	// Source names the rule file the rule was read from.
	Source string
	// Index is the position of the rule within its source.
	Index int
	// Line is the line of the rule in its source, or 0 when unknown.
	Line int
	// Text is the condition as written.
	Text string
}

// Ref identifies the rule in messages, e.g. "rules/eddf.yaml#3".
func (r *Rule) Ref() string {
	if r.Source == "" {
		return "#" + strconv.Itoa(r.Index)
	}
	return r.Source + "#" + strconv.Itoa(r.Index)
}

// RuleSet is an ordered, immutable list of rules. Order decides priority:
// the first matching rule wins.
type RuleSet struct {
	rules    []Rule
	version  string
	loadedAt time.Time
}

// NewRuleSet builds a rule set from rules in priority order. The slice is
// copied; later changes to it do not affect the set.
func NewRuleSet(rules ...Rule) *RuleSet {
	rs := &RuleSet{
		rules:    append([]Rule(nil), rules...),
		loadedAt: time.Now(),
	}
	rs.version = rs.fingerprint()
	return rs
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Rule returns the i-th rule.
func (rs *RuleSet) Rule(i int) *Rule { return &rs.rules[i] }

// Rules returns a copy of the rules in priority order.
func (rs *RuleSet) Rules() []Rule { return append([]Rule(nil), rs.rules...) }

// Version is a content hash of the rules, stable across reloads of
// unchanged rule files.
func (rs *RuleSet) Version() string { return rs.version }

// LoadedAt is when the set was built.
func (rs *RuleSet) LoadedAt() time.Time { return rs.loadedAt }

// Sources returns the distinct rule sources in order of first appearance.
func (rs *RuleSet) Sources() []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range rs.rules {
		if !seen[r.Source] {
			seen[r.Source] = true
			out = append(out, r.Source)
		}
	}
	return out
}

func (rs *RuleSet) fingerprint() string {
	h := sha256.New()
	for _, r := range rs.rules {
		cond := r.Text
		if r.Condition != nil {
			cond = r.Condition.String()
		}
		h.Write([]byte(r.Source))
		h.Write([]byte{0})
		h.Write([]byte(cond))
		h.Write([]byte{0})
		h.Write([]byte(r.Action.String()))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}
