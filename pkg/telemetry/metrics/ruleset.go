package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RuleSetMetrics tracks the active rule set and reloads.
type RuleSetMetrics struct {
	rules       prometheus.Gauge
	info        *prometheus.GaugeVec
	reloads     *prometheus.CounterVec
	duration    prometheus.Histogram
	lastSuccess prometheus.Gauge

	mu      sync.Mutex
	version string
}

// NewRuleSetMetrics creates and registers rule set metrics.
func NewRuleSetMetrics(namespace string, registry prometheus.Registerer) *RuleSetMetrics {
	m := &RuleSetMetrics{
		rules: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rule_set_rules",
			Help:      "Number of rules in the active rule set",
		}),
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rule_set_info",
			Help:      "Version of the active rule set, value is always 1",
		}, []string{"version"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Total number of rule loads by result",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reload_duration_seconds",
			Help:      "Duration of rule loads in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_reload_success_timestamp_seconds",
			Help:      "Unix time of the last successful rule load",
		}),
	}

	registry.MustRegister(m.rules, m.info, m.reloads, m.duration, m.lastSuccess)
	return m
}

// SetActive publishes the active rule set.
func (m *RuleSetMetrics) SetActive(rules int, version string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rules.Set(float64(rules))
	if m.version != "" && m.version != version {
		m.info.DeleteLabelValues(m.version)
	}
	m.info.WithLabelValues(version).Set(1)
	m.version = version
}

// RecordReload records a load attempt.
func (m *RuleSetMetrics) RecordReload(success bool, d time.Duration) {
	result := "failure"
	if success {
		result = "success"
		m.lastSuccess.SetToCurrentTime()
	}
	m.reloads.WithLabelValues(result).Inc()
	m.duration.Observe(d.Seconds())
}
