package engine

import (
	"fmt"
	"time"
)

// EngineConfig contains configuration for the rule engine.
type EngineConfig struct {
	// MaxRules is the largest rule set Swap accepts.
	// Default: 10000.
	MaxRules int

	// SlowCheckThreshold logs checks that take longer than this at WARN.
	// Zero disables the warning.
	// Default: 10ms.
	SlowCheckThreshold time.Duration
}

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		MaxRules:           10000,
		SlowCheckThreshold: 10 * time.Millisecond,
	}
}

// Validate validates the engine configuration.
func (c *EngineConfig) Validate() error {
	if c.MaxRules <= 0 {
		return fmt.Errorf("%w: max rules must be positive", ErrInvalidConfig)
	}
	if c.SlowCheckThreshold < 0 {
		return fmt.Errorf("%w: slow check threshold cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// WithMaxRules sets the maximum rule set size.
func (c *EngineConfig) WithMaxRules(max int) *EngineConfig {
	c.MaxRules = max
	return c
}

// WithSlowCheckThreshold sets the slow check warning threshold.
func (c *EngineConfig) WithSlowCheckThreshold(d time.Duration) *EngineConfig {
	c.SlowCheckThreshold = d
	return c
}
