// Package tracing sets up OpenTelemetry tracing.
//
// When tracing is disabled New returns a Tracer backed by the noop
// provider. When enabled, spans are batched and exported over OTLP/gRPC to
// the configured collector, and W3C trace context is installed as the global
// propagator so incoming traceparent headers continue the caller's trace:
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	defer tracer.Shutdown(context.Background())
//	eng, _ := engine.New(engineCfg, engine.WithTracer(tracer.Tracer()))
package tracing
