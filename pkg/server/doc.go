// Package server hosts the rule engine over HTTP.
//
// Routes:
//
//	POST /v1/check          check one JSON flight plan (?explain=true for the rule trace)
//	GET  /v1/check/stream   websocket; one flight plan per message, one report per reply
//	GET  /v1/rules          active rules, manager status and revision history
//	POST /v1/rules/reload   reload the rule source
//	GET  /health, /ready, /version
//	GET  <metrics path>     Prometheus metrics, when enabled
//
// A check answers 200 with an engine.Report, 422 when a rule failed to
// evaluate (the report then carries msg "ERR" and the emergency tag), 503
// before any rule set is loaded and 400 for an undecodable flight plan.
//
// With server.auth.api_keys set, the /v1 routes answer 401 without a valid
// key. With server.tls.enabled, the listener serves HTTPS and picks up
// renewed certificates without a restart.
package server
