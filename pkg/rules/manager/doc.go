// Package manager loads rule sets into an engine and keeps them current.
//
// A Manager owns the rule source chosen by configuration (a directory of
// rule files or a git repository), turns its documents into an immutable
// engine.RuleSet and swaps that set into the engine. Loading is all or
// nothing: a set is only activated when every document decodes, so a bad
// edit never leaves the engine with half a rule set.
//
// # Basic Usage
//
//	eng, _ := engine.New(engine.DefaultEngineConfig())
//	mgr, err := manager.New(&cfg.Rules, eng, manager.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	if err := mgr.Load(ctx); err != nil {
//	    return err
//	}
//
// # Hot Reload
//
// Watch blocks until the context ends. In file mode it reloads on file
// system events after a quiet period (the debounce interval); in git mode it
// pulls the repository on the configured cron schedule and reloads when HEAD
// moved:
//
//	go func() {
//	    if err := mgr.Watch(ctx); err != nil {
//	        logger.Error("rule watch stopped", "error", err)
//	    }
//	}()
//
// A failed reload is logged and recorded; the previous rule set stays
// active until a later reload succeeds.
package manager
