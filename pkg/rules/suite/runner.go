package suite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"esfpc/fpcheck/pkg/flightplan"
	"esfpc/fpcheck/pkg/rules/engine"
	"esfpc/fpcheck/pkg/rules/manager"
	"esfpc/fpcheck/pkg/rules/source"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name     string        `json:"name"`
	Passed   bool          `json:"passed"`
	Expected string        `json:"expected"`
	Actual   string        `json:"actual"`
	Rule     string        `json:"rule,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Result is the outcome of a suite.
type Result struct {
	Suite    string        `json:"suite"`
	Path     string        `json:"path,omitempty"`
	Rules    int           `json:"rules"`
	Cases    []CaseResult  `json:"cases"`
	Duration time.Duration `json:"duration_ns"`
}

// Failed returns the number of failed cases.
func (r *Result) Failed() int {
	n := 0
	for _, c := range r.Cases {
		if !c.Passed {
			n++
		}
	}
	return n
}

// Passed reports whether every case passed.
func (r *Result) Passed() bool { return r.Failed() == 0 }

// Runner executes suites.
type Runner struct {
	loader *manager.Loader
	logger *slog.Logger
}

// NewRunner creates a runner. strict enables static condition validation
// when loading suite rules.
func NewRunner(strict bool, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		loader: manager.NewLoader(manager.LoaderConfig{Strict: strict}),
		logger: logger.With("component", "suite"),
	}
}

// Run loads the suite rules and checks every case. The error is non-nil
// only when the suite cannot run at all; failing cases are reported in the
// result.
func (r *Runner) Run(ctx context.Context, s *Suite) (*Result, error) {
	start := time.Now()

	src := source.NewFileSource(s.RulesPath(), source.FileOptions{Logger: r.logger})
	loaded, err := r.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load suite rules: %w", err)
	}
	eng, err := engine.New(nil, engine.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}
	if _, err := eng.Swap(loaded.RuleSet); err != nil {
		return nil, err
	}

	base, err := s.BaseFlightPlan()
	if err != nil {
		return nil, err
	}

	res := &Result{Suite: s.Name, Path: s.Path, Rules: loaded.RuleSet.Len()}
	for i := range s.Cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.Cases = append(res.Cases, r.runCase(ctx, eng, base, &s.Cases[i]))
	}
	res.Duration = time.Since(start)

	r.logger.Debug("suite finished",
		"suite", s.Name,
		"cases", len(res.Cases),
		"failed", res.Failed(),
		"duration", res.Duration,
	)
	return res, nil
}

func (r *Runner) runCase(ctx context.Context, eng *engine.Engine, base *flightplan.FlightPlan, c *Case) CaseResult {
	start := time.Now()
	cr := CaseResult{Name: c.Name, Expected: "evaluation error"}
	if c.Expect != nil {
		cr.Expected = c.Expect.String()
	}

	fp, err := flightplan.Override(base, &c.Overrides)
	if err != nil {
		cr.Error = err.Error()
		cr.Actual = "invalid flight plan"
		cr.Duration = time.Since(start)
		return cr
	}

	res, err := eng.Check(ctx, fp)
	cr.Duration = time.Since(start)

	var evalErr *engine.EvaluationError
	switch {
	case errors.As(err, &evalErr):
		cr.Actual = "evaluation error"
		cr.Error = err.Error()
		cr.Passed = c.Error
	case err != nil:
		cr.Actual = "check failed"
		cr.Error = err.Error()
	default:
		cr.Actual = res.Action.String()
		if res.Rule != nil {
			cr.Rule = res.Rule.Ref()
		}
		cr.Passed = c.Expect != nil && matches(*c.Expect, res.Action)
	}
	return cr
}

func matches(want Expectation, got engine.Action) bool {
	if want.Msg != got.Msg {
		return false
	}
	if want.Kind == "" {
		return true
	}
	kind, err := engine.ParseActionKind(want.Kind)
	return err == nil && kind == got.Kind
}
