package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"intervu/internal/career"
	"intervu/internal/config"
)

func allOn() MetricsOptions {
	return MetricsOptions{
		AIOperations: true, TrackDuration: true, TrackTokenUsage: true,
		Business: true, TrackQuality: true, Infrastructure: true, TrackRateLimits: true,
	}
}

func newTestMetrics(t *testing.T, opts MetricsOptions) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp.Meter("test"), opts)
	require.NoError(t, err)
	return m, reader
}

// counterTotal sums every data point of the named counter.
func counterTotal(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestRecordEvaluationCountsFallbacks(t *testing.T) {
	m, reader := newTestMetrics(t, allOn())
	ctx := context.Background()

	fallback := career.NewEvaluator(nil).WithClock(time.Now).Evaluate(ctx, "Q", "A", "")
	require.True(t, fallback.IsFallback())
	m.RecordEvaluation(ctx, fallback)
	m.RecordEvaluation(ctx, career.EvaluationRecord{JobField: "General", Quality: career.Quality{QualityScore: 4}})

	assert.Equal(t, int64(2), counterTotal(t, reader, "intervu_answers_evaluated_total"))
	assert.Equal(t, int64(1), counterTotal(t, reader, "intervu_evaluation_fallbacks_total"))
}

func TestTrackAIOperation(t *testing.T) {
	m, reader := newTestMetrics(t, allOn())
	ctx := context.Background()

	err := m.TrackAIOperation(ctx, "score_answer", func(context.Context) *AIOperationResult {
		return &AIOperationResult{TokenUsage: &TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}}
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = m.TrackAIOperation(ctx, "score_answer", func(context.Context) *AIOperationResult {
		return &AIOperationResult{Error: boom}
	})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, int64(2), counterTotal(t, reader, "intervu_ai_requests_total"))
	assert.Equal(t, int64(1), counterTotal(t, reader, "intervu_ai_errors_total"))
}

func TestDisabledGroupsRecordNothing(t *testing.T) {
	m, reader := newTestMetrics(t, MetricsOptions{})
	ctx := context.Background()

	m.RecordProfile(ctx, career.BuildProfile("Ann", career.NewEvaluationSet(), time.Now()))
	m.RecordRateLimitHit(ctx, "api_key")
	m.RecordSessionStarted(ctx, "IT Support")

	assert.Zero(t, counterTotal(t, reader, "intervu_profiles_generated_total"))
	assert.Zero(t, counterTotal(t, reader, "intervu_rate_limit_hits_total"))
	assert.Zero(t, counterTotal(t, reader, "intervu_sessions_started_total"))
}

func TestDisabledManagerHandsOutNoopMetrics(t *testing.T) {
	om, err := NewObservabilityManager(config.ObservabilityConfig{Enabled: false}, "test")
	require.NoError(t, err)

	assert.NotNil(t, om.GetMetrics())
	assert.Nil(t, om.MetricsHandler())
	assert.Equal(t, "/metrics", om.MetricsEndpoint())
	om.GetMetrics().RecordSessionStarted(context.Background(), "IT Support")
	assert.NoError(t, om.Shutdown(context.Background()))
}

func TestPrometheusHandlerExposesDomainMetrics(t *testing.T) {
	om, err := NewObservabilityManager(config.ObservabilityConfig{
		Enabled:       true,
		ServiceName:   "intervu-test",
		Metrics:       config.MetricsConfig{Enabled: true},
		Prometheus:    config.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
		CustomMetrics: config.CustomMetricsConfig{BusinessMetrics: config.BusinessMetricsConfig{Enabled: true}},
	}, "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = om.Shutdown(context.Background()) })

	om.GetMetrics().RecordSessionStarted(context.Background(), "IT Support")
	handler := om.MetricsHandler()
	require.NotNil(t, handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "intervu_sessions_started_total")
}
