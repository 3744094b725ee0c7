// Package metrics exposes Prometheus metrics for flight plan checks.
//
// A Collector owns its own registry. It satisfies engine.Recorder and
// manager.ReloadRecorder, so wiring it is a matter of passing it to both:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	eng, _ := engine.New(engineCfg, engine.WithRecorder(collector))
//	mgr, _ := manager.New(&cfg.Rules, eng, manager.WithRecorder(collector))
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// # Metrics
//
//   - <ns>_checks_total{outcome,kind}: checks by outcome (matched, default, error)
//   - <ns>_check_duration_seconds{outcome}: time to scan the rule set
//   - <ns>_rule_hits_total{source}: first matches per rule file
//   - <ns>_evaluation_errors_total{source}: failing conditions per rule file
//   - <ns>_rule_set_rules: rules in the active set
//   - <ns>_rule_set_info{version}: 1 for the active rule set version
//   - <ns>_reloads_total{result}: rule loads by result (success, failure)
//   - <ns>_reload_duration_seconds: rule load time
//   - <ns>_last_reload_success_timestamp_seconds
//   - <ns>_http_requests_total{route,code} and <ns>_http_request_duration_seconds{route}
package metrics
