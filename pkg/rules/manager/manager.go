package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"esfpc/fpcheck/pkg/config"
	"esfpc/fpcheck/pkg/rules/engine"
	"esfpc/fpcheck/pkg/rules/git"
	"esfpc/fpcheck/pkg/rules/source"
)

// ReloadRecorder observes rule loads.
type ReloadRecorder interface {
	RecordReload(success bool, d time.Duration)
}

type noopReloadRecorder struct{}

func (noopReloadRecorder) RecordReload(bool, time.Duration) {}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRecorder sets the reload recorder.
func WithRecorder(r ReloadRecorder) Option {
	return func(m *Manager) {
		if r != nil {
			m.recorder = r
		}
	}
}

// WithSource replaces the source derived from configuration.
func WithSource(src source.Source) Option {
	return func(m *Manager) { m.source = src }
}

// Status describes the state of a manager.
type Status struct {
	Source    string    `json:"source"`
	Version   string    `json:"version,omitempty"`
	Rules     int       `json:"rules"`
	LoadedAt  time.Time `json:"loaded_at"`
	LastError string    `json:"last_error,omitempty"`
}

// Manager loads rules from a source into an engine.
type Manager struct {
	config   *config.RulesConfig
	engine   *engine.Engine
	source   source.Source
	loader   *Loader
	registry *Registry
	recorder ReloadRecorder
	logger   *slog.Logger

	// reloadMu serializes loads so swaps happen in load order.
	reloadMu sync.Mutex

	mu       sync.RWMutex
	lastErr  error
	lastLoad time.Time

	watchMu     sync.Mutex
	watchCancel context.CancelFunc
	watchGen    uint64 // identifies the Watch that owns watchCancel
}

// New creates a manager for cfg feeding eng. The source is a FileSource
// over cfg.Path in file mode and a GitSource in git mode, unless WithSource
// overrides it.
func New(cfg *config.RulesConfig, eng *engine.Engine, opts ...Option) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("rules config cannot be nil")
	}
	if eng == nil {
		return nil, errors.New("engine cannot be nil")
	}

	m := &Manager{
		config:   cfg,
		engine:   eng,
		loader:   NewLoader(LoaderConfig{MaxFileSize: cfg.MaxFileSize, Strict: cfg.Strict}),
		registry: NewRegistry(DefaultHistorySize),
		recorder: noopReloadRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "manager")

	if m.source == nil {
		src, err := m.sourceFromConfig()
		if err != nil {
			return nil, err
		}
		m.source = src
	}
	return m, nil
}

func (m *Manager) sourceFromConfig() (source.Source, error) {
	opts := source.FileOptions{Extensions: m.config.Extensions, Logger: m.logger}

	switch m.config.Mode {
	case "git":
		repo, err := git.NewRepository(&m.config.Git)
		if err != nil {
			return nil, fmt.Errorf("failed to create git repository: %w", err)
		}
		return source.NewGitSource(repo, opts), nil
	case "file", "":
		return source.NewFileSource(m.config.Path, opts), nil
	default:
		return nil, fmt.Errorf("unknown rules mode %q", m.config.Mode)
	}
}

// Load builds a rule set from the source and activates it.
func (m *Manager) Load(ctx context.Context) error {
	return m.reload(ctx, "loading rules")
}

// Reload rebuilds the rule set. On failure the active set is kept.
func (m *Manager) Reload(ctx context.Context) error {
	return m.reload(ctx, "reloading rules")
}

func (m *Manager) reload(ctx context.Context, what string) error {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	start := time.Now()
	m.logger.Info(what, "source", m.source.String())

	err := m.activate(ctx)
	m.recorder.RecordReload(err == nil, time.Since(start))

	m.mu.Lock()
	m.lastErr = err
	if err == nil {
		m.lastLoad = time.Now()
	}
	m.mu.Unlock()

	if err != nil {
		attrs := []any{"error", err, "duration_ms", time.Since(start).Milliseconds()}
		if prev := m.engine.RuleSet(); prev != nil {
			attrs = append(attrs, "active_version", prev.Version())
		}
		m.logger.Error("failed to load rules, keeping previous rule set", attrs...)
		return err
	}
	return nil
}

func (m *Manager) activate(ctx context.Context) error {
	res, err := m.loader.Load(ctx, m.source)
	if err != nil {
		return err
	}
	if _, err := m.engine.Swap(res.RuleSet); err != nil {
		return err
	}

	origin := m.origin()
	m.registry.Record(res.RuleSet, origin)

	m.logger.Info("rules loaded",
		"version", res.RuleSet.Version(),
		"rules", res.RuleSet.Len(),
		"documents", res.Documents,
		"origin", origin,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return nil
}

// origin names the commit for git sources.
func (m *Manager) origin() string {
	gs, ok := m.source.(*source.GitSource)
	if !ok {
		return ""
	}
	commit, err := gs.Commit()
	if err != nil {
		return ""
	}
	return commit.ShortSHA()
}

// Watch reloads rules on changes until ctx is done or Close is called. It
// returns ErrWatchDisabled when the file source is not configured to watch.
func (m *Manager) Watch(ctx context.Context) error {
	m.watchMu.Lock()
	if m.watchCancel != nil {
		m.watchMu.Unlock()
		return errors.New("watch already started")
	}
	ctx, cancel := context.WithCancel(ctx)
	m.watchCancel = cancel
	m.watchGen++
	gen := m.watchGen
	m.watchMu.Unlock()
	defer func() {
		cancel()
		m.watchMu.Lock()
		if m.watchGen == gen {
			m.watchCancel = nil
		}
		m.watchMu.Unlock()
	}()

	switch src := m.source.(type) {
	case *source.GitSource:
		poller, err := NewGitPoller(src, m.config.Git.PollSchedule, m.Reload, m.logger)
		if err != nil {
			return err
		}
		if err := poller.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		poller.Stop()
		return nil

	case *source.FileSource:
		if !m.config.Watch {
			return ErrWatchDisabled
		}
		watcher, err := NewFileWatcher(FileWatcherConfig{
			Path:       src.Path(),
			Debounce:   m.config.Debounce,
			Extensions: m.config.Extensions,
		}, m.logger)
		if err != nil {
			return err
		}
		errCh := make(chan error, 1)
		go func() { errCh <- watcher.Watch(ctx, m.Reload) }()

		select {
		case err = <-errCh:
		case <-ctx.Done():
		}
		if stopErr := watcher.Stop(); err == nil {
			err = stopErr
		}
		return err

	default:
		return fmt.Errorf("source %s cannot be watched", m.source)
	}
}

// Close stops a running Watch.
func (m *Manager) Close() error {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	return nil
}

// Status reports the active rule set and the outcome of the last load.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st := Status{Source: m.source.String(), LoadedAt: m.lastLoad}
	if rs := m.engine.RuleSet(); rs != nil {
		st.Version = rs.Version()
		st.Rules = rs.Len()
	}
	if m.lastErr != nil {
		st.LastError = m.lastErr.Error()
	}
	return st
}

// LastError returns the error of the most recent load, nil on success.
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// Registry returns the revision history.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Source returns the rule source.
func (m *Manager) Source() source.Source {
	return m.source
}
