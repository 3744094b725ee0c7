package tracing

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"esfpc/fpcheck/pkg/config"
)

func TestNewDisabled(t *testing.T) {
	tr, err := New(&config.TracingConfig{Enabled: false}, "test")
	require.NoError(t, err)
	assert.False(t, tr.Enabled())

	ctx, span := tr.Start(context.Background(), "op")
	span.End()
	assert.Empty(t, TraceID(ctx))
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestNewNilConfig(t *testing.T) {
	_, err := New(nil, "test")
	assert.Error(t, err)
}

func TestNewEnabled(t *testing.T) {
	prevProvider := otel.GetTracerProvider()
	prevPropagator := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevProvider)
		otel.SetTextMapPropagator(prevPropagator)
	})

	tr, err := New(&config.TracingConfig{
		Enabled:     true,
		Endpoint:    "127.0.0.1:4317",
		Insecure:    true,
		Sampler:     SamplerAlways,
		ServiceName: "fpcheck-test",
	}, "test")
	require.NoError(t, err)
	assert.True(t, tr.Enabled())

	ctx, span := tr.Start(context.Background(), "op")
	assert.Len(t, TraceID(ctx), 32)
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Export to the absent collector fails; shutdown must still return.
	_ = tr.Shutdown(ctx)
}

func TestNewInvalidSampler(t *testing.T) {
	_, err := New(&config.TracingConfig{Enabled: true, Sampler: "sometimes"}, "test")
	assert.Error(t, err)
}

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		strategy string
		ratio    float64
		wantErr  bool
		contains string
	}{
		{strategy: SamplerAlways, contains: "AlwaysOnSampler"},
		{strategy: SamplerNever, contains: "AlwaysOffSampler"},
		{strategy: SamplerRatio, ratio: 0.25, contains: "TraceIDRatioBased{0.25}"},
		{strategy: SamplerRatio, ratio: 1.5, wantErr: true},
		{strategy: "weird", wantErr: true},
	}
	for _, tt := range tests {
		s, err := createSampler(tt.strategy, tt.ratio)
		if tt.wantErr {
			assert.Error(t, err, tt.strategy)
			continue
		}
		require.NoError(t, err)
		assert.True(t, strings.Contains(s.Description(), tt.contains), s.Description())
	}
}

func TestPropagation(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	h := http.Header{}
	h.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	ctx := Extract(context.Background(), h)
	sc := trace.SpanContextFromContext(ctx)
	require.True(t, sc.IsValid())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", TraceID(ctx))

	provider := sdktrace.NewTracerProvider()
	defer provider.Shutdown(context.Background())
	child, span := provider.Tracer("t").Start(ctx, "child")
	defer span.End()

	out := http.Header{}
	Inject(child, out)
	assert.True(t, strings.HasPrefix(out.Get("traceparent"), "00-4bf92f3577b34da6a3ce929d0e0e4736-"))
}
