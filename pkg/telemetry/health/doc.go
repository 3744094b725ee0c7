// Package health provides liveness, readiness and version endpoints for the
// fpcheck server.
//
// Liveness answers 200 as long as the process serves HTTP. Readiness runs
// every registered CheckFunc and answers 503 until all of them pass; the
// server registers RuleSetCheck so that it reports ready only once a rule set
// has been loaded into the engine.
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("rules", health.RuleSetCheck(eng))
//	health.Register(mux, checker, version, commit, buildTime)
package health
