package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esfpc/fpcheck/pkg/config"
	"esfpc/fpcheck/pkg/rules/engine"
	"esfpc/fpcheck/pkg/rules/manager"
)

var (
	_ engine.Recorder        = (*Collector)(nil)
	_ manager.ReloadRecorder = (*Collector)(nil)
)

func newCollector(enabled bool) *Collector {
	return NewCollector(&config.MetricsConfig{Enabled: enabled, Namespace: "fpcheck"}, nil)
}

func TestRecordCheck(t *testing.T) {
	c := newCollector(true)

	c.RecordCheck(engine.OutcomeMatched, engine.KindError, time.Millisecond)
	c.RecordCheck(engine.OutcomeMatched, engine.KindError, time.Millisecond)
	c.RecordCheck(engine.OutcomeDefault, engine.KindWarning, time.Millisecond)
	c.RecordRuleHit("eddf.yaml")
	c.RecordEvaluationError("broken.yaml")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.checks.total.WithLabelValues("matched", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.checks.total.WithLabelValues("default", "warning")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.checks.hits.WithLabelValues("eddf.yaml")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.checks.errors.WithLabelValues("broken.yaml")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.checks.duration))
}

func TestRecordRuleSetReplacesVersion(t *testing.T) {
	c := newCollector(true)

	c.RecordRuleSet(12, "aaaaaaaaaaaa")
	c.RecordRuleSet(14, "bbbbbbbbbbbb")

	assert.Equal(t, 14.0, testutil.ToFloat64(c.rules.rules))
	assert.Equal(t, 1, testutil.CollectAndCount(c.rules.info))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rules.info.WithLabelValues("bbbbbbbbbbbb")))
}

func TestRecordReload(t *testing.T) {
	c := newCollector(true)

	c.RecordReload(true, 5*time.Millisecond)
	c.RecordReload(false, 5*time.Millisecond)
	c.RecordReload(false, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.rules.reloads.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.rules.reloads.WithLabelValues("failure")))
	assert.Greater(t, testutil.ToFloat64(c.rules.lastSuccess), 0.0)
}

func TestDisabledCollectorRecordsNothing(t *testing.T) {
	c := newCollector(false)

	c.RecordCheck(engine.OutcomeMatched, engine.KindInfo, time.Millisecond)
	c.RecordRuleSet(3, "v")
	c.RecordReload(true, time.Millisecond)
	c.RecordHTTPRequest("/v1/check", 200, time.Millisecond)

	assert.Equal(t, 0, testutil.CollectAndCount(c.checks.total))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.rules.rules))
	assert.Equal(t, 0, testutil.CollectAndCount(c.requests.total))
}

func TestHandler(t *testing.T) {
	c := newCollector(true)
	c.RecordHTTPRequest("/v1/check", 200, 3*time.Millisecond)
	c.RecordRuleSet(4, "abc")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `fpcheck_http_requests_total{code="200",route="/v1/check"} 1`), body)
	assert.Contains(t, body, "fpcheck_rule_set_rules 4")
}

func TestNewCollectorDefaults(t *testing.T) {
	c := NewCollector(nil, nil)
	require.NotNil(t, c.Registry())
	c.RecordRuleSet(1, "x")
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rules.rules))
}
