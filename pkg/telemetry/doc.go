// Package telemetry groups the observability packages used by fpcheck.
//
// # Components
//
//   - logging: slog construction from configuration, with request and check
//     ids carried on the context
//   - metrics: Prometheus collector for checks, rule hits, evaluation errors,
//     reloads and HTTP requests
//   - tracing: OpenTelemetry tracer, a no-op unless enabled, exporting over
//     OTLP/gRPC
//   - health: liveness and readiness checks; readiness requires an active
//     rule set
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	defer tracer.Shutdown(ctx)
//
//	eng, err := engine.New(nil,
//		engine.WithLogger(logger),
//		engine.WithRecorder(collector),
//		engine.WithTracer(tracer.Tracer()),
//	)
//
// The engine and the rules manager accept the collector through small
// recorder interfaces, so neither depends on Prometheus directly.
package telemetry
