package flightplan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a flight plan document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode reads a single flight plan and validates it.
func Decode(r io.Reader, format Format) (*FlightPlan, error) {
	var fp FlightPlan
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&fp); err != nil {
			return nil, fmt.Errorf("failed to decode flight plan: %w", err)
		}
	default:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&fp); err != nil {
			return nil, fmt.Errorf("failed to decode flight plan: %w", err)
		}
	}

	if err := fp.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flight plan: %w", err)
	}
	return &fp, nil
}

// DecodeAll reads every flight plan in data. YAML input may hold several
// documents separated by "---"; JSON input is either one object or an array.
func DecodeAll(data []byte, format Format) ([]*FlightPlan, error) {
	if format == FormatJSON {
		return decodeJSONAll(data)
	}

	var plans []*FlightPlan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	for i := 0; ; i++ {
		var fp FlightPlan
		err := dec.Decode(&fp)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: failed to decode flight plan: %w", i, err)
		}
		if err := fp.Validate(); err != nil {
			return nil, fmt.Errorf("document %d: invalid flight plan: %w", i, err)
		}
		plans = append(plans, &fp)
	}
	return plans, nil
}

func decodeJSONAll(data []byte) ([]*FlightPlan, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var plans []*FlightPlan
		if err := json.Unmarshal(trimmed, &plans); err != nil {
			return nil, fmt.Errorf("failed to decode flight plans: %w", err)
		}
		for i, fp := range plans {
			if fp == nil {
				return nil, fmt.Errorf("flight plan %d: null entry", i)
			}
			if err := fp.Validate(); err != nil {
				return nil, fmt.Errorf("flight plan %d: %w", i, err)
			}
		}
		return plans, nil
	}

	fp, err := Decode(bytes.NewReader(trimmed), FormatJSON)
	if err != nil {
		return nil, err
	}
	return []*FlightPlan{fp}, nil
}

// Override returns a copy of fp with the fields present in node replaced.
// Fields absent from node keep their values from fp.
func Override(fp *FlightPlan, node *yaml.Node) (*FlightPlan, error) {
	out := *fp
	if node == nil || node.Kind == 0 {
		return &out, nil
	}
	if err := node.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to apply flight plan overrides: %w", err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flight plan after overrides: %w", err)
	}
	return &out, nil
}
