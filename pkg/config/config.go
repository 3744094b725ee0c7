package config

import "time"

// Config is the root configuration.
type Config struct {
	// Rules configures where rule files come from and how they are loaded.
	Rules RulesConfig `yaml:"rules"`

	// Server configures the HTTP check server.
	Server ServerConfig `yaml:"server"`

	// Telemetry configures logging, metrics and tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// RulesConfig configures the rule source.
type RulesConfig struct {
	// Mode selects the rule source.
	// Options: "file", "git"
	// Default: "file"
	Mode string `yaml:"mode"`

	// Path is the directory (or single file) holding rule files in file mode.
	// Default: "./rules"
	Path string `yaml:"path"`

	// Extensions lists the file extensions treated as rule files.
	// Default: [".yaml", ".yml"]
	Extensions []string `yaml:"extensions"`

	// MaxFileSize is the largest rule file accepted, in bytes.
	// Default: 1048576 (1 MiB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// Watch reloads rules when files under Path change.
	// Default: false
	Watch bool `yaml:"watch"`

	// Debounce is the quiet period after a change before reloading.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Strict runs static validation on every condition at load time, so
	// unknown identifiers and type errors fail the load instead of the check.
	// Default: false
	Strict bool `yaml:"strict"`

	// Git configures the git rule source used when Mode is "git".
	Git GitConfig `yaml:"git"`
}

// GitConfig configures a git repository holding rule files.
type GitConfig struct {
	// Repository URL (HTTPS or SSH).
	// Example: "https://github.com/vacc/fpcheck-rules.git"
	Repository string `yaml:"repository"`

	// Branch to track.
	// Default: "main"
	Branch string `yaml:"branch"`

	// Path within the repository to the rule files.
	// Default: "" (repository root)
	Path string `yaml:"path"`

	// LocalPath is where the repository is cloned.
	// Default: <tmp>/fpcheck-rules
	LocalPath string `yaml:"local_path"`

	// Depth limits the clone history (0 = full clone).
	// Default: 1
	Depth int `yaml:"depth"`

	// PollSchedule is a cron expression or descriptor for pulling changes.
	// Empty disables polling.
	// Default: "@every 1m"
	PollSchedule string `yaml:"poll_schedule"`

	// Timeout bounds each clone or pull.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// Auth configures git authentication.
	Auth GitAuthConfig `yaml:"auth"`
}

// GitAuthConfig configures git authentication.
type GitAuthConfig struct {
	// Type: "token", "ssh" or "none".
	// Default: "none"
	Type string `yaml:"type"`

	// Token for HTTPS authentication. Required when Type is "token".
	Token string `yaml:"token"`

	// SSHKeyPath for SSH authentication. Required when Type is "ssh".
	SSHKeyPath string `yaml:"ssh_key_path"`

	// SSHKeyPassphrase for encrypted SSH keys.
	SSHKeyPassphrase string `yaml:"ssh_key_passphrase"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address the server binds to.
	// Default: "127.0.0.1:8470"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxBodySize is the largest accepted request body, in bytes.
	// Default: 65536
	MaxBodySize int64 `yaml:"max_body_size"`

	// TLS configures HTTPS.
	TLS TLSConfig `yaml:"tls"`

	// Auth configures API keys for the /v1 routes.
	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig configures API key authentication. With no keys the API is
// open; health, version and metrics endpoints are always open.
type AuthConfig struct {
	APIKeys []APIKeyConfig `yaml:"api_keys"`
}

// APIKeyConfig is one accepted API key.
type APIKeyConfig struct {
	// Name identifies the client in logs.
	Name string `yaml:"name"`

	// Key is the secret sent as "Authorization: Bearer <key>" or in the
	// X-API-Key header. At least 16 characters.
	Key string `yaml:"key"`
}

// TLSConfig configures HTTPS for the check server.
type TLSConfig struct {
	// Enabled serves HTTPS instead of plain HTTP.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// CertFile is the PEM-encoded certificate chain.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the PEM-encoded private key.
	KeyFile string `yaml:"key_file"`

	// MinVersion is the lowest accepted TLS version.
	// Options: "1.2", "1.3"
	// Default: "1.3"
	MinVersion string `yaml:"min_version"`

	// ReloadInterval is how often the certificate files are checked for
	// changes. Zero disables reloading.
	// Default: 5m
	ReloadInterval time.Duration `yaml:"reload_interval"`
}

// TelemetryConfig groups the observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "fpcheck"
	Namespace string `yaml:"namespace"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP/gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the collector.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces sampled when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// ServiceName is the service name in traces.
	// Default: "fpcheck"
	ServiceName string `yaml:"service_name"`
}
