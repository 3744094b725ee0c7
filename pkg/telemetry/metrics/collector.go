package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"esfpc/fpcheck/pkg/config"
	"esfpc/fpcheck/pkg/rules/engine"
)

// Collector records all fpcheck metrics. A disabled collector records
// nothing but still serves an empty registry.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	checks   *CheckMetrics
	rules    *RuleSetMetrics
	requests *RequestMetrics
}

// NewCollector creates a collector registering into registry, or into a
// fresh registry when nil.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if cfg == nil {
		cfg = &config.MetricsConfig{Enabled: true}
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Collector{
		config:   cfg,
		registry: registry,
		checks:   NewCheckMetrics(cfg.Namespace, registry),
		rules:    NewRuleSetMetrics(cfg.Namespace, registry),
		requests: NewRequestMetrics(cfg.Namespace, registry),
	}
}

// Registry returns the registry the collector writes to.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordCheck implements engine.Recorder.
func (c *Collector) RecordCheck(outcome string, kind engine.ActionKind, d time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.checks.RecordCheck(outcome, kind.String(), d)
}

// RecordRuleHit implements engine.Recorder.
func (c *Collector) RecordRuleHit(source string) {
	if !c.config.Enabled {
		return
	}
	c.checks.hits.WithLabelValues(source).Inc()
}

// RecordEvaluationError implements engine.Recorder.
func (c *Collector) RecordEvaluationError(source string) {
	if !c.config.Enabled {
		return
	}
	c.checks.errors.WithLabelValues(source).Inc()
}

// RecordRuleSet implements engine.Recorder.
func (c *Collector) RecordRuleSet(rules int, version string) {
	if !c.config.Enabled {
		return
	}
	c.rules.SetActive(rules, version)
}

// RecordReload implements manager.ReloadRecorder.
func (c *Collector) RecordReload(success bool, d time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.rules.RecordReload(success, d)
}

// RecordHTTPRequest records a served HTTP request.
func (c *Collector) RecordHTTPRequest(route string, code int, d time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.requests.Record(route, code, d)
}
