package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckMetrics tracks flight plan checks.
type CheckMetrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	hits     *prometheus.CounterVec
	errors   *prometheus.CounterVec
}

// NewCheckMetrics creates and registers check metrics.
func NewCheckMetrics(namespace string, registry prometheus.Registerer) *CheckMetrics {
	m := &CheckMetrics{
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checks_total",
				Help:      "Total number of flight plan checks",
			},
			[]string{"outcome", "kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "check_duration_seconds",
				Help:      "Duration of a rule set scan in seconds",
				// A scan over a few hundred rules takes microseconds.
				Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10),
			},
			[]string{"outcome"},
		),
		hits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_hits_total",
				Help:      "Total number of first matches by rule file",
			},
			[]string{"source"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluation_errors_total",
				Help:      "Total number of conditions that failed to evaluate by rule file",
			},
			[]string{"source"},
		),
	}

	registry.MustRegister(m.total, m.duration, m.hits, m.errors)
	return m
}

// RecordCheck records one completed check.
func (m *CheckMetrics) RecordCheck(outcome, kind string, d time.Duration) {
	m.total.WithLabelValues(outcome, kind).Inc()
	m.duration.WithLabelValues(outcome).Observe(d.Seconds())
}
