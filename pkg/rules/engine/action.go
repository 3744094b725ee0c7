package engine

import (
	"fmt"
	"strings"
)

// ActionKind is the severity of an action.
type ActionKind int

const (
	KindSuccess ActionKind = iota
	KindInfo
	KindWarning
	KindError
)

var actionKindNames = map[ActionKind]string{
	KindSuccess: "success",
	KindInfo:    "info",
	KindWarning: "warning",
	KindError:   "error",
}

// ParseActionKind decodes "success", "info", "warning" or "error".
func ParseActionKind(s string) (ActionKind, error) {
	for k, name := range actionKindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w %q (want success, info, warning or error)", ErrInvalidActionKind, s)
}

func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k ActionKind) MarshalText() ([]byte, error) {
	if _, ok := actionKindNames[k]; !ok {
		return nil, fmt.Errorf("%w %d", ErrInvalidActionKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes the kind by name.
func (k *ActionKind) UnmarshalText(b []byte) error {
	v, err := ParseActionKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Display tags a host uses to colour a check result.
const (
	TagDefault   = "default"
	TagNotified  = "notified"
	TagAssumed   = "assumed"
	TagEmergency = "emergency"
)

// FailedMsg is shown instead of an action message when a check fails.
const FailedMsg = "ERR"

// Tag returns the display tag for the kind.
func (k ActionKind) Tag() string {
	switch k {
	case KindError:
		return TagEmergency
	case KindWarning:
		return TagAssumed
	case KindInfo:
		return TagNotified
	default:
		return TagDefault
	}
}

// Action is what a matching rule reports.
type Action struct {
	Kind ActionKind `yaml:"kind" json:"kind"`
	Msg  string     `yaml:"msg" json:"msg"`
}

// DefaultAction is returned when no rule matches.
func DefaultAction() Action {
	return Action{Kind: KindWarning, Msg: "UNK"}
}

func (a Action) String() string {
	return a.Kind.String() + " " + a.Msg
}
