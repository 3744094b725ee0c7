// Package config provides configuration management for fpcheck.
//
// Configuration is read from a YAML file (fpcheck.yaml by convention),
// completed with defaults, overridden from the environment and validated:
//
//	cfg, err := config.LoadWithEnvOverrides("fpcheck.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variable Overrides
//
// Environment variables use the FPCHECK_ prefix:
//
//   - FPCHECK_RULES_PATH overrides rules.path
//   - FPCHECK_RULES_MODE overrides rules.mode
//   - FPCHECK_RULES_WATCH overrides rules.watch
//   - FPCHECK_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - FPCHECK_LOG_LEVEL and FPCHECK_LOG_FORMAT override telemetry.logging
//   - FPCHECK_METRICS_ENABLED overrides telemetry.metrics.enabled
//   - FPCHECK_TRACING_ENABLED and FPCHECK_TRACING_ENDPOINT override telemetry.tracing
//   - FPCHECK_GIT_REPOSITORY, FPCHECK_GIT_BRANCH and FPCHECK_GIT_TOKEN override rules.git
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
//  1. Default values (defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation, which reports every invalid field at once
//
// There is no package-level configuration. The loaded *Config is passed to
// the components that need it.
package config
