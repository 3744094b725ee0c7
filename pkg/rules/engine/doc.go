// Package engine evaluates an ordered rule set against flight plans.
//
// A rule pairs a compiled condition with an action. Check walks the active
// RuleSet in order and returns the action of the first rule whose condition
// holds. Later rules are never evaluated once a rule matched. When no rule
// matches the engine returns its default action (warning "UNK").
//
// A condition that fails to evaluate aborts the check: the engine returns an
// *EvaluationError naming the offending rule instead of skipping to the next
// one. A malformed rule must be fixed by its author, not silently ignored.
//
// # Rule Sets
//
// A RuleSet is immutable once built. The engine publishes the active set
// through an atomic pointer, so checks never take a lock and a reload is a
// single Swap of a fully built replacement:
//
//	rs := engine.NewRuleSet(rules...)
//	eng, err := engine.New(engine.DefaultEngineConfig())
//	if err != nil {
//	    return err
//	}
//	eng.Swap(rs)
//
//	res, err := eng.Check(ctx, fp)
//	if err != nil {
//	    return err // malformed rule
//	}
//	fmt.Println(res.Action.Kind, res.Action.Msg)
//
// Checks already running keep evaluating the set they started with.
//
// # Explain
//
// Explain performs the same scan as Check but records the verdict of every
// rule it evaluated, which is what "fpcheck check --explain" prints.
//
// # Observability
//
// Pass WithRecorder to receive per-check metrics and WithTracer to wrap each
// check in an OpenTelemetry span. Both default to no-ops.
package engine
