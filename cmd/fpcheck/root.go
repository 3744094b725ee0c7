package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"esfpc/fpcheck/pkg/cli"
	"esfpc/fpcheck/pkg/config"
	"esfpc/fpcheck/pkg/telemetry/logging"
)

// DefaultConfigFile is read when --config is not given. It may be absent.
const DefaultConfigFile = "fpcheck.yaml"

var (
	// Global flags
	cfgFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "fpcheck",
	Short: "fpcheck - flight plan rule checker",
	Long: `fpcheck checks flight plans against ordered rule files.

A rule file lists conditions written in a small expression language over
flight plan fields (sid, rfl, arr, route, rnav, ...) together with the action
to report when the condition holds. Rules are evaluated in order and the first
match decides the result.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the command's exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default "+DefaultConfigFile+" when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log format (text, json)")
}

// loadConfig reads the configuration named by --config, or the optional
// default file, and applies the logging flag overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile == "" {
		cfg, err = config.LoadOptional(DefaultConfigFile)
	} else {
		cfg, err = config.LoadWithEnvOverrides(cfgFile)
	}
	if err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}

	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Telemetry.Logging.Format = logFormat
	}
	return cfg, nil
}

// newLogger builds the command logger. Offline commands log to stderr so
// that results on stdout stay machine readable.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, w))
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return logger, nil
}

// rulesConfig returns the rules section with the --rules flag applied. A
// path given on the command line always selects file mode.
func rulesConfig(cfg *config.Config, path string) *config.RulesConfig {
	rc := cfg.Rules
	if path != "" {
		rc.Mode = "file"
		rc.Path = path
	}
	rc.Watch = false
	return &rc
}
