package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"esfpc/fpcheck/pkg/flightplan"
	"esfpc/fpcheck/pkg/fpl/evaluator"
)

// Check outcomes reported to a Recorder.
const (
	OutcomeMatched = "matched"
	OutcomeDefault = "default"
	OutcomeError   = "error"
)

// Recorder receives per-check measurements. It is satisfied by the metrics
// collector in pkg/telemetry/metrics.
type Recorder interface {
	RecordCheck(outcome string, kind ActionKind, d time.Duration)
	RecordRuleHit(source string)
	RecordEvaluationError(source string)
	RecordRuleSet(rules int, version string)
}

type noopRecorder struct{}

func (noopRecorder) RecordCheck(string, ActionKind, time.Duration) {}
func (noopRecorder) RecordRuleHit(string)                          {}
func (noopRecorder) RecordEvaluationError(string)                  {}
func (noopRecorder) RecordRuleSet(int, string)                     {}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger.With("component", "engine")
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithTracer sets the tracer used to span checks.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// Result is the outcome of a single check.
type Result struct {
	// CheckID uniquely identifies the check in logs and traces.
	CheckID string

	// Action is the action of the matching rule, or the default action.
	Action Action

	// Rule is the matching rule, nil when the default action applied.
	Rule *Rule

	// RuleSetVersion is the version of the rule set the check ran against.
	RuleSetVersion string

	// Duration is the time spent scanning rules.
	Duration time.Duration
}

// Matched reports whether a rule matched.
func (r *Result) Matched() bool { return r.Rule != nil }

// Step is the verdict of one evaluated rule.
type Step struct {
	Rule    *Rule
	Matched bool
	Err     error
}

// Explanation is a Result together with every rule evaluated to reach it.
type Explanation struct {
	*Result
	Steps []Step
}

// Engine checks flight plans against the active rule set. It is safe for
// concurrent use.
type Engine struct {
	config   *EngineConfig
	rules    atomic.Pointer[RuleSet]
	logger   *slog.Logger
	recorder Recorder
	tracer   trace.Tracer
}

// New creates an engine with no rule set. Checks fail with ErrNoRuleSet
// until the first Swap.
func New(config *EngineConfig, opts ...Option) (*Engine, error) {
	if config == nil {
		config = DefaultEngineConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:   config,
		logger:   slog.Default().With("component", "engine"),
		recorder: noopRecorder{},
		tracer:   noop.NewTracerProvider().Tracer("fpcheck/engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Swap publishes rs as the active rule set and returns the previous one.
func (e *Engine) Swap(rs *RuleSet) (*RuleSet, error) {
	if rs == nil {
		return nil, errors.New("rule set cannot be nil")
	}
	if rs.Len() > e.config.MaxRules {
		return nil, fmt.Errorf("%w: %d (max: %d)", ErrTooManyRules, rs.Len(), e.config.MaxRules)
	}

	prev := e.rules.Swap(rs)
	e.recorder.RecordRuleSet(rs.Len(), rs.Version())

	attrs := []any{"version", rs.Version(), "rule_count", rs.Len(), "sources", len(rs.Sources())}
	if prev != nil {
		attrs = append(attrs, "previous_version", prev.Version())
	}
	e.logger.Info("rule set activated", attrs...)
	return prev, nil
}

// RuleSet returns the active rule set, or nil.
func (e *Engine) RuleSet() *RuleSet {
	return e.rules.Load()
}

// Config returns the engine configuration.
func (e *Engine) Config() *EngineConfig {
	return e.config
}

// Check returns the action of the first rule in the active set whose
// condition holds for fp, or the default action when none does. A rule whose
// condition fails to evaluate aborts the check with an *EvaluationError.
func (e *Engine) Check(ctx context.Context, fp *flightplan.FlightPlan) (*Result, error) {
	x, err := e.run(ctx, fp, false)
	if err != nil {
		return nil, err
	}
	return x.Result, nil
}

// Explain is Check with a record of every rule evaluated. On an evaluation
// error the returned explanation holds the steps up to and including the
// failing rule.
func (e *Engine) Explain(ctx context.Context, fp *flightplan.FlightPlan) (*Explanation, error) {
	return e.run(ctx, fp, true)
}

func (e *Engine) run(ctx context.Context, fp *flightplan.FlightPlan, explain bool) (*Explanation, error) {
	if fp == nil {
		return nil, errors.New("flight plan cannot be nil")
	}
	rs := e.rules.Load()
	if rs == nil {
		return nil, ErrNoRuleSet
	}

	res := &Result{
		CheckID:        uuid.NewString(),
		RuleSetVersion: rs.Version(),
	}
	_, span := e.tracer.Start(ctx, "engine.Check", trace.WithAttributes(
		attribute.String("fpcheck.check_id", res.CheckID),
		attribute.String("fpcheck.flightplan", fp.Name()),
		attribute.String("fpcheck.ruleset.version", rs.Version()),
		attribute.Int("fpcheck.ruleset.rules", rs.Len()),
	))
	defer span.End()

	x := &Explanation{Result: res}
	start := time.Now()
	rule, err := e.scan(rs, fp, x, explain)
	res.Duration = time.Since(start)

	if err != nil {
		e.recorder.RecordEvaluationError(err.Source)
		e.recorder.RecordCheck(OutcomeError, 0, res.Duration)
		span.RecordError(err)
		span.SetStatus(codes.Error, "rule evaluation failed")
		e.logger.Warn("rule evaluation failed",
			"check_id", res.CheckID,
			"flightplan", fp.Name(),
			"rule", err.Source,
			"index", err.Index,
			"error", err.Cause,
		)
		if explain {
			return x, err
		}
		return nil, err
	}

	outcome := OutcomeDefault
	if rule != nil {
		outcome = OutcomeMatched
		res.Rule = rule
		res.Action = rule.Action
		e.recorder.RecordRuleHit(rule.Source)
		span.SetAttributes(attribute.String("fpcheck.rule", rule.Ref()))
	} else {
		res.Action = DefaultAction()
	}
	e.recorder.RecordCheck(outcome, res.Action.Kind, res.Duration)
	span.SetAttributes(
		attribute.String("fpcheck.outcome", outcome),
		attribute.String("fpcheck.action.kind", res.Action.Kind.String()),
	)

	e.logger.Debug("flight plan checked",
		"check_id", res.CheckID,
		"flightplan", fp.Name(),
		"outcome", outcome,
		"action", res.Action.String(),
		"duration", res.Duration,
	)
	if t := e.config.SlowCheckThreshold; t > 0 && res.Duration > t {
		e.logger.Warn("slow flight plan check",
			"check_id", res.CheckID,
			"duration", res.Duration,
			"threshold", t,
			"rule_count", rs.Len(),
		)
	}
	return x, nil
}

// scan evaluates rules in order and stops at the first match or error.
func (e *Engine) scan(rs *RuleSet, fp *flightplan.FlightPlan, x *Explanation, explain bool) (*Rule, *EvaluationError) {
	for i := range rs.rules {
		r := &rs.rules[i]
		ok, err := evaluator.EvalCond(r.Condition, fp)
		if explain {
			x.Steps = append(x.Steps, Step{Rule: r, Matched: ok, Err: err})
		}
		if err != nil {
			return nil, newEvaluationError(r, err)
		}
		if ok {
			return r, nil
		}
	}
	return nil, nil
}
