package source

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"esfpc/fpcheck/pkg/fpl"
	"esfpc/fpcheck/pkg/rules/engine"
)

// Decode parses a rule document into rules in document order. Every
// condition is parsed; the first problem fails the whole document.
//
// The action kind is read from "kind"; "typ" is accepted as an alias.
func Decode(name string, data []byte) ([]engine.Rule, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &DecodeError{Source: name, Index: -1, Err: err}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &DecodeError{Source: name, Index: -1, Err: ErrMissingRules}
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, malformed(name, -1, doc, "expected a mapping at the top level")
	}

	var list *yaml.Node
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i], doc.Content[i+1]
		if key.Value != "rules" {
			return nil, malformed(name, -1, key, "unknown key %q", key.Value)
		}
		list = val
	}
	if list == nil {
		return nil, &DecodeError{Source: name, Index: -1, Line: doc.Line, Err: ErrMissingRules}
	}
	if list.Kind == yaml.ScalarNode && list.Tag == "!!null" {
		return nil, nil
	}
	if list.Kind != yaml.SequenceNode {
		return nil, malformed(name, -1, list, "'rules' must be a list")
	}

	rules := make([]engine.Rule, 0, len(list.Content))
	for i, item := range list.Content {
		r, err := decodeRule(name, i, item)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func decodeRule(name string, index int, node *yaml.Node) (engine.Rule, error) {
	if node.Kind != yaml.MappingNode {
		return engine.Rule{}, malformed(name, index, node, "rule must be a mapping")
	}

	var cond, action *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "condition":
			cond = val
		case "action":
			action = val
		default:
			return engine.Rule{}, malformed(name, index, key, "unknown rule key %q", key.Value)
		}
	}
	if cond == nil {
		return engine.Rule{}, malformed(name, index, node, "missing 'condition'")
	}
	if action == nil {
		return engine.Rule{}, malformed(name, index, node, "missing 'action'")
	}
	if cond.Kind != yaml.ScalarNode {
		return engine.Rule{}, malformed(name, index, cond, "'condition' must be a string")
	}

	expr, err := fpl.Parse(cond.Value)
	if err != nil {
		return engine.Rule{}, &DecodeError{Source: name, Index: index, Line: cond.Line, Err: err}
	}

	act, err := decodeAction(name, index, action)
	if err != nil {
		return engine.Rule{}, err
	}

	return engine.Rule{
		Condition: expr,
		Action:    act,
		Source:    name,
		Index:     index,
		Line:      node.Line,
		Text:      cond.Value,
	}, nil
}

func decodeAction(name string, index int, node *yaml.Node) (engine.Action, error) {
	if node.Kind != yaml.MappingNode {
		return engine.Action{}, malformed(name, index, node, "'action' must be a mapping")
	}

	var kind, msg *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "kind", "typ":
			if kind != nil {
				return engine.Action{}, malformed(name, index, key, "action kind given twice")
			}
			kind = val
		case "msg":
			msg = val
		default:
			return engine.Action{}, malformed(name, index, key, "unknown action key %q", key.Value)
		}
	}
	if kind == nil {
		return engine.Action{}, malformed(name, index, node, "missing action 'kind'")
	}
	if msg == nil || msg.Kind != yaml.ScalarNode {
		return engine.Action{}, malformed(name, index, node, "action 'msg' must be a string")
	}

	k, err := engine.ParseActionKind(kind.Value)
	if err != nil {
		return engine.Action{}, &DecodeError{Source: name, Index: index, Line: kind.Line, Err: err}
	}
	return engine.Action{Kind: k, Msg: msg.Value}, nil
}

func malformed(name string, index int, node *yaml.Node, format string, args ...any) error {
	return &DecodeError{
		Source: name,
		Index:  index,
		Line:   node.Line,
		Err:    fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...)),
	}
}
