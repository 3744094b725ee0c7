package suite

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"esfpc/fpcheck/pkg/flightplan"
	"esfpc/fpcheck/pkg/rules/engine"
)

// ErrInvalidSuite is wrapped by every suite validation error.
var ErrInvalidSuite = errors.New("invalid suite")

// Suite is a decoded test suite.
type Suite struct {
	Name  string    `yaml:"name"`
	Rules string    `yaml:"rules"`
	Base  yaml.Node `yaml:"base"`
	Cases []Case    `yaml:"cases"`

	// Path is the file the suite was read from; relative paths resolve
	// against its directory.
	Path string `yaml:"-"`
}

// Case is one flight plan variation and its expected outcome.
type Case struct {
	Name      string       `yaml:"name"`
	Overrides yaml.Node    `yaml:"overrides"`
	Expect    *Expectation `yaml:"expect"`
	Error     bool         `yaml:"error"`
}

// Expectation is the action a case expects. An empty Kind matches any kind.
type Expectation struct {
	Kind string `yaml:"kind"`
	Msg  string `yaml:"msg"`
}

func (e Expectation) String() string {
	if e.Kind == "" {
		return e.Msg
	}
	return e.Kind + " " + e.Msg
}

// LoadFile reads and validates the suite at path.
func LoadFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Parse decodes and validates a suite.
func Parse(data []byte) (*Suite, error) {
	var s Suite
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode suite: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the suite structure. It does not load rules or decode
// flight plans.
func (s *Suite) Validate() error {
	var errs []error
	if s.Rules == "" {
		errs = append(errs, fmt.Errorf("%w: rules is required", ErrInvalidSuite))
	}
	if s.Base.Kind == 0 {
		errs = append(errs, fmt.Errorf("%w: base is required", ErrInvalidSuite))
	}
	if len(s.Cases) == 0 {
		errs = append(errs, fmt.Errorf("%w: no cases", ErrInvalidSuite))
	}
	for i, c := range s.Cases {
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		switch {
		case c.Expect == nil && !c.Error:
			errs = append(errs, fmt.Errorf("%w: case %s: one of expect or error is required", ErrInvalidSuite, name))
		case c.Expect != nil && c.Error:
			errs = append(errs, fmt.Errorf("%w: case %s: expect and error are exclusive", ErrInvalidSuite, name))
		case c.Expect != nil && c.Expect.Kind != "":
			if _, err := engine.ParseActionKind(c.Expect.Kind); err != nil {
				errs = append(errs, fmt.Errorf("%w: case %s: %w", ErrInvalidSuite, name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// RulesPath resolves the rules path against the suite directory.
func (s *Suite) RulesPath() string {
	return s.resolve(s.Rules)
}

func (s *Suite) resolve(p string) string {
	if filepath.IsAbs(p) || s.Path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(s.Path), p)
}

// BaseFlightPlan decodes the base flight plan, reading it from a file when
// base is a scalar path.
func (s *Suite) BaseFlightPlan() (*flightplan.FlightPlan, error) {
	if s.Base.Kind == yaml.ScalarNode {
		path := s.resolve(s.Base.Value)
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open base flight plan: %w", err)
		}
		defer f.Close()
		return flightplan.Decode(f, flightplan.FormatFromPath(path))
	}

	var fp flightplan.FlightPlan
	if err := s.Base.Decode(&fp); err != nil {
		return nil, fmt.Errorf("failed to decode base flight plan: %w", err)
	}
	if err := fp.Validate(); err != nil {
		return nil, fmt.Errorf("invalid base flight plan: %w", err)
	}
	return &fp, nil
}
