package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"

	"esfpc/fpcheck/pkg/config"
	"esfpc/fpcheck/pkg/rules/engine"
	"esfpc/fpcheck/pkg/rules/manager"
	"esfpc/fpcheck/pkg/server/certs"
	"esfpc/fpcheck/pkg/server/middleware"
	"esfpc/fpcheck/pkg/telemetry/health"
	"esfpc/fpcheck/pkg/telemetry/metrics"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger.With("component", "server")
		}
	}
}

// WithManager exposes the rule manager through /v1/rules and the reload
// endpoint, and adds its last load error to readiness.
func WithManager(m *manager.Manager) Option {
	return func(s *Server) { s.manager = m }
}

// WithMetrics records request metrics and serves them on path.
func WithMetrics(c *metrics.Collector, path string) Option {
	return func(s *Server) {
		s.metrics = c
		s.metricsPath = path
	}
}

// WithTracer spans every request.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// WithBuildInfo sets what /version reports.
func WithBuildInfo(version, commit, buildTime string) Option {
	return func(s *Server) {
		s.version, s.commit, s.buildTime = version, commit, buildTime
	}
}

// Server is the HTTP host of the engine.
type Server struct {
	config      *config.ServerConfig
	engine      *engine.Engine
	manager     *manager.Manager
	metrics     *metrics.Collector
	metricsPath string
	tracer      trace.Tracer
	health      *health.Checker
	certs       *certs.Reloader
	logger      *slog.Logger
	upgrader    websocket.Upgrader

	version, commit, buildTime string

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

// New creates a server checking flight plans against eng. A nil cfg uses
// the defaults.
func New(cfg *config.ServerConfig, eng *engine.Engine, opts ...Option) (*Server, error) {
	if eng == nil {
		return nil, errors.New("engine cannot be nil")
	}
	if cfg == nil {
		d := config.Default().Server
		cfg = &d
	}

	s := &Server{
		config:  cfg,
		engine:  eng,
		logger:  slog.Default().With("component", "server"),
		health:  health.New(2 * time.Second),
		version: "dev",
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.TLS.Enabled {
		r, err := certs.NewReloader(&cfg.TLS, s.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
		}
		s.certs = r
	}

	s.health.RegisterCheck("rules", health.RuleSetCheck(eng))
	if s.manager != nil {
		m := s.manager
		s.health.RegisterCheck("rules_source", func(context.Context) error {
			if err := m.LastError(); err != nil && eng.RuleSet() == nil {
				return err
			}
			return nil
		})
	}
	return s, nil
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	protect := middleware.APIKey(middleware.NewAPIKeyValidator(s.config.Auth.APIKeys), s.logger)
	mux := http.NewServeMux()
	mux.Handle("POST /v1/check", protect(http.HandlerFunc(s.handleCheck)))
	mux.Handle("GET /v1/check/stream", protect(http.HandlerFunc(s.handleStream)))
	mux.Handle("GET /v1/rules", protect(http.HandlerFunc(s.handleRules)))
	mux.Handle("POST /v1/rules/reload", protect(http.HandlerFunc(s.handleReload)))
	health.Register(mux, s.health, s.version, s.commit, s.buildTime)
	if s.metrics != nil && s.metricsPath != "" {
		mux.Handle("GET "+s.metricsPath, s.metrics.Handler())
	}

	var recorder middleware.RequestRecorder
	if s.metrics != nil {
		recorder = s.metrics
	}
	var handler http.Handler = middleware.Logging(s.logger, recorder)(mux)
	handler = middleware.Tracing(s.tracer)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(s.logger)(handler)
	return handler
}

// Start listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.httpServer != nil {
		s.mu.Unlock()
		return errors.New("server is already running")
	}
	if s.certs != nil {
		ln = tls.NewListener(ln, certs.ServerConfig(&s.config.TLS, s.certs))
		go s.certs.Run(ctx)
	}
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	s.listener = ln
	srv := s.httpServer
	s.mu.Unlock()

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting check server", "address", ln.Addr().String(), "tls", s.certs != nil)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("server error: %w", err)
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.logger.Info("check server stopped")
	return <-errc
}

// Addr returns the listening address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
