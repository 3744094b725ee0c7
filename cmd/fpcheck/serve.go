package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"esfpc/fpcheck/pkg/cli"
	"esfpc/fpcheck/pkg/config"
	"esfpc/fpcheck/pkg/rules/engine"
	"esfpc/fpcheck/pkg/rules/manager"
	"esfpc/fpcheck/pkg/server"
	"esfpc/fpcheck/pkg/telemetry/metrics"
	"esfpc/fpcheck/pkg/telemetry/tracing"
)

var serveFlags struct {
	listenAddress string
	watch         bool
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve flight plan checks over HTTP",
	Long: `Start the check server.

The server answers POST /v1/check with the action for a JSON flight plan and
streams checks over a websocket at /v1/check/stream. Rules are loaded from the
configured source and reloaded when files change (rules.watch) or when the git
repository advances (rules.git.poll_schedule). A failed reload keeps the
previous rules active.

Examples:
  # Start with fpcheck.yaml from the working directory
  fpcheck serve

  # Custom config and listen address
  fpcheck serve --config /etc/fpcheck/fpcheck.yaml --listen 0.0.0.0:8470

  # Validate config without starting the server
  fpcheck serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().BoolVarP(&serveFlags.watch, "watch", "w", false, "reload rules when files change (also rules.watch)")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.watch {
		cfg.Rules.Watch = true
	}

	if serveFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := cli.SetupSignalHandler(parent)
	defer cancel()

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewConfigError("telemetry.tracing", err.Error())
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	eng, err := engine.New(nil,
		engine.WithLogger(logger),
		engine.WithRecorder(collector),
		engine.WithTracer(tracer.Tracer()),
	)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}

	mgr, err := manager.New(&cfg.Rules, eng,
		manager.WithLogger(logger),
		manager.WithRecorder(collector),
	)
	if err != nil {
		return cli.NewConfigError("rules", err.Error())
	}
	defer mgr.Close()

	// The server starts without rules so that a watched source can recover;
	// readiness stays false until a load succeeds.
	if err := mgr.Load(ctx); err != nil {
		logger.Error("initial rule load failed", "source", mgr.Source().String(), "error", err)
	}

	go func() {
		if err := mgr.Watch(ctx); err != nil && !errors.Is(err, manager.ErrWatchDisabled) {
			logger.Error("rule watch stopped", "error", err)
		}
	}()

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithManager(mgr),
		server.WithTracer(tracer.Tracer()),
		server.WithBuildInfo(Version, GitCommit, BuildDate),
	}
	if cfg.Telemetry.Metrics.Enabled {
		opts = append(opts, server.WithMetrics(collector, cfg.Telemetry.Metrics.Path))
	}
	srv, err := server.New(&cfg.Server, eng, opts...)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}

	printBanner(cmd.OutOrStdout(), cfg, mgr.Status())

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	return nil
}

func printBanner(w io.Writer, cfg *config.Config, st manager.Status) {
	fmt.Fprintf(w, "fpcheck %s\n", Version)
	scheme := "http"
	if cfg.Server.TLS.Enabled {
		scheme = "https"
	}
	fmt.Fprintf(w, "  listen:  %s://%s\n", scheme, cfg.Server.ListenAddress)
	fmt.Fprintf(w, "  rules:   %s (%d rules", st.Source, st.Rules)
	if st.Version != "" {
		fmt.Fprintf(w, ", version %s", st.Version)
	}
	fmt.Fprintln(w, ")")
	if cfg.Rules.Watch || cfg.Rules.Mode == "git" {
		fmt.Fprintln(w, "  reload:  enabled")
	}
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Fprintf(w, "  metrics: %s\n", cfg.Telemetry.Metrics.Path)
	}
}
