// Package middleware provides the HTTP middleware chain of the fpcheck
// server: request ids, trace context extraction, access logging with
// per-route metrics, and panic recovery.
//
// Logging must wrap the ServeMux directly: it reads the matched route
// pattern from the request the mux received.
//
//	handler = middleware.Logging(logger, recorder)(mux)
//	handler = middleware.Tracing(tracer)(handler)
//	handler = middleware.RequestID(handler)
//	handler = middleware.Recovery(logger)(handler)
//
// APIKey wraps individual routes rather than the whole chain, so health
// and metrics endpoints stay reachable without a key.
package middleware
