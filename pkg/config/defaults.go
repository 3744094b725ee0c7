package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values for configuration fields.
const (
	// Rules defaults
	DefaultRulesMode        = "file"
	DefaultRulesPath        = "./rules"
	DefaultRulesMaxFileSize = int64(1 << 20)
	DefaultRulesDebounce    = 100 * time.Millisecond

	// Git defaults
	DefaultGitBranch       = "main"
	DefaultGitDepth        = 1
	DefaultGitPollSchedule = "@every 1m"
	DefaultGitTimeout      = 30 * time.Second
	DefaultGitAuthType     = "none"

	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8470"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxBodySize     = int64(64 << 10)
	DefaultTLSMinVersion   = "1.3"
	DefaultTLSReload       = 5 * time.Minute
	MinAPIKeyLength        = 16

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "text"
	DefaultMetricsEnabled   = true
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "fpcheck"
	DefaultTracingEndpoint  = "localhost:4317"
	DefaultTracingInsecure  = true
	DefaultTracingSampler   = "always"
	DefaultTracingRatio     = 1.0
	DefaultTracingService   = "fpcheck"

	// DefaultConfigFileName is looked up in the working directory when no
	// configuration file is named explicitly.
	DefaultConfigFileName = "fpcheck.yaml"

	defaultGitLocalDirectory = "fpcheck-rules"
)

// DefaultRulesExtensions are the file extensions loaded as rule files.
var DefaultRulesExtensions = []string{".yaml", ".yml"}

// Default returns a configuration with every default applied, used when no
// configuration file exists.
func Default() *Config {
	cfg := withBoolDefaults()
	ApplyDefaults(cfg)
	return cfg
}

// withBoolDefaults returns a Config whose booleans that default to true are
// set, so that decoding a file over it keeps them unless the file says
// otherwise.
func withBoolDefaults() *Config {
	cfg := &Config{}
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	cfg.Telemetry.Tracing.Insecure = DefaultTracingInsecure
	return cfg
}

// ApplyDefaults fills every zero-valued field with its default. Booleans
// are left alone: their zero value is a valid choice.
func ApplyDefaults(cfg *Config) {
	// Rules defaults
	if cfg.Rules.Mode == "" {
		cfg.Rules.Mode = DefaultRulesMode
	}
	if cfg.Rules.Path == "" {
		cfg.Rules.Path = DefaultRulesPath
	}
	if len(cfg.Rules.Extensions) == 0 {
		cfg.Rules.Extensions = append([]string(nil), DefaultRulesExtensions...)
	}
	if cfg.Rules.MaxFileSize == 0 {
		cfg.Rules.MaxFileSize = DefaultRulesMaxFileSize
	}
	if cfg.Rules.Debounce == 0 {
		cfg.Rules.Debounce = DefaultRulesDebounce
	}

	// Git defaults
	git := &cfg.Rules.Git
	if git.Branch == "" {
		git.Branch = DefaultGitBranch
	}
	if git.LocalPath == "" {
		git.LocalPath = filepath.Join(os.TempDir(), defaultGitLocalDirectory)
	}
	if git.Depth == 0 {
		git.Depth = DefaultGitDepth
	}
	if git.PollSchedule == "" {
		git.PollSchedule = DefaultGitPollSchedule
	}
	if git.Timeout == 0 {
		git.Timeout = DefaultGitTimeout
	}
	if git.Auth.Type == "" {
		git.Auth.Type = DefaultGitAuthType
	}

	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}
	if cfg.Server.TLS.MinVersion == "" {
		cfg.Server.TLS.MinVersion = DefaultTLSMinVersion
	}
	if cfg.Server.TLS.ReloadInterval == 0 {
		cfg.Server.TLS.ReloadInterval = DefaultTLSReload
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingRatio
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
}
