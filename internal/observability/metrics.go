package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"

	"intervu/internal/career"
	"intervu/internal/config"
)

// MetricsOptions switches metric groups on and off
type MetricsOptions struct {
	AIOperations    bool
	TrackDuration   bool
	TrackTokenUsage bool
	Business        bool
	TrackQuality    bool
	Infrastructure  bool
	TrackRateLimits bool
}

// OptionsFromConfig maps the custom metrics configuration to MetricsOptions
func OptionsFromConfig(c config.CustomMetricsConfig) MetricsOptions {
	return MetricsOptions{
		AIOperations:    c.AIOperations.Enabled,
		TrackDuration:   c.AIOperations.TrackDuration,
		TrackTokenUsage: c.AIOperations.TrackTokenUsage,
		Business:        c.BusinessMetrics.Enabled,
		TrackQuality:    c.BusinessMetrics.TrackQuality,
		Infrastructure:  c.Infrastructure.Enabled,
		TrackRateLimits: c.Infrastructure.TrackRateLimits,
	}
}

// Metrics holds all custom metrics for intervu. The zero value is not usable;
// build one with NewMetrics or NoopMetrics.
type Metrics struct {
	opts MetricsOptions

	// AI operation metrics
	AIProcessingTime metric.Float64Histogram
	AIRequestCount   metric.Int64Counter
	AIErrorCount     metric.Int64Counter
	AITokenUsage     metric.Int64Histogram

	// Interview metrics
	AnswersEvaluated    metric.Int64Counter
	EvaluationFallbacks metric.Int64Counter
	AnswerQuality       metric.Int64Histogram
	ProfilesGenerated   metric.Int64Counter
	SessionsStarted     metric.Int64Counter
	CoachRequests       metric.Int64Counter

	// Infrastructure metrics
	RateLimitHits       metric.Int64Counter
	QuestionBankReloads metric.Int64Counter
}

// NoopMetrics returns metrics that record nothing
func NoopMetrics() *Metrics {
	m, _ := NewMetrics(metricnoop.NewMeterProvider().Meter("intervu"), MetricsOptions{})
	return m
}

// NewMetrics creates every instrument on meter
func NewMetrics(meter metric.Meter, opts MetricsOptions) (*Metrics, error) {
	m := &Metrics{opts: opts}
	var err error

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.AIRequestCount, "intervu_ai_requests_total", "Total number of AI requests"},
		{&m.AIErrorCount, "intervu_ai_errors_total", "Total number of AI request errors"},
		{&m.AnswersEvaluated, "intervu_answers_evaluated_total", "Total number of interview answers evaluated"},
		{&m.EvaluationFallbacks, "intervu_evaluation_fallbacks_total", "Answers scored with the fallback record"},
		{&m.ProfilesGenerated, "intervu_profiles_generated_total", "Total number of career profiles generated"},
		{&m.SessionsStarted, "intervu_sessions_started_total", "Total number of interview sessions started"},
		{&m.CoachRequests, "intervu_coach_requests_total", "Total number of résumé coach requests"},
		{&m.RateLimitHits, "intervu_rate_limit_hits_total", "Total number of rate limit hits"},
		{&m.QuestionBankReloads, "intervu_question_bank_reloads_total", "Question bank reload attempts"},
	}
	for _, c := range counters {
		if *c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, fmt.Errorf("failed to create %s metric: %w", c.name, err)
		}
	}

	if m.AIProcessingTime, err = meter.Float64Histogram(
		"intervu_ai_processing_duration_seconds",
		metric.WithDescription("Time spent processing AI requests"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create AI processing time metric: %w", err)
	}

	if m.AITokenUsage, err = meter.Int64Histogram(
		"intervu_ai_token_usage",
		metric.WithDescription("Token usage for AI requests (input, output, total)"),
		metric.WithUnit("tokens"),
	); err != nil {
		return nil, fmt.Errorf("failed to create AI token usage metric: %w", err)
	}

	if m.AnswerQuality, err = meter.Int64Histogram(
		"intervu_answer_quality_tier",
		metric.WithDescription("Heuristic quality tier (1-5) of evaluated answers"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 4, 5),
	); err != nil {
		return nil, fmt.Errorf("failed to create answer quality metric: %w", err)
	}

	return m, nil
}

// AIOperationResult holds the result of an AI operation including token usage
type AIOperationResult struct {
	Error      error
	TokenUsage *TokenUsage
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// TrackAIOperation runs fn inside a span and records duration, outcome and
// token usage for it.
func (m *Metrics) TrackAIOperation(ctx context.Context, operation string, fn func(context.Context) *AIOperationResult) error {
	ctx, span := otel.Tracer("intervu.ai").Start(ctx, "ai."+operation)
	defer span.End()

	start := time.Now()
	result := fn(ctx)
	duration := time.Since(start).Seconds()

	var err error
	if result != nil {
		err = result.Error
	}

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}
	span.SetAttributes(attrs...)

	if m.opts.AIOperations {
		if m.opts.TrackDuration {
			m.AIProcessingTime.Record(ctx, duration, metric.WithAttributes(attrs...))
		}
		m.AIRequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
		if err != nil {
			m.AIErrorCount.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	}

	if result != nil && result.TokenUsage != nil {
		usage := result.TokenUsage
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", usage.InputTokens),
			attribute.Int64("ai.tokens.output", usage.OutputTokens),
			attribute.Int64("ai.tokens.total", usage.TotalTokens),
		)
		if m.opts.AIOperations && m.opts.TrackTokenUsage {
			for _, tt := range []struct {
				kind  string
				value int64
			}{{"input", usage.InputTokens}, {"output", usage.OutputTokens}, {"total", usage.TotalTokens}} {
				m.AITokenUsage.Record(ctx, tt.value, metric.WithAttributes(
					attribute.String("operation", operation),
					attribute.String("token_type", tt.kind),
				))
			}
		}
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// RecordEvaluation counts an evaluated answer and whether it fell back
func (m *Metrics) RecordEvaluation(ctx context.Context, rec career.EvaluationRecord) {
	if !m.opts.Business {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("job_field", rec.JobField),
		attribute.Bool("fallback", rec.IsFallback()),
	)
	m.AnswersEvaluated.Add(ctx, 1, attrs)
	if rec.IsFallback() {
		m.EvaluationFallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("job_field", rec.JobField)))
	}
	if m.opts.TrackQuality {
		m.AnswerQuality.Record(ctx, int64(rec.Quality.QualityScore), metric.WithAttributes(attribute.String("job_field", rec.JobField)))
	}
}

// RecordProfile counts a generated career profile
func (m *Metrics) RecordProfile(ctx context.Context, p career.CareerProfile) {
	if !m.opts.Business {
		return
	}
	m.ProfilesGenerated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("job_field", p.CareerInsights.JobField),
		attribute.String("confidence", string(p.CareerInsights.AssessmentReliability.ConfidenceLevel)),
	))
}

// RecordSessionStarted counts a new interview session
func (m *Metrics) RecordSessionStarted(ctx context.Context, jobField string) {
	if !m.opts.Business {
		return
	}
	m.SessionsStarted.Add(ctx, 1, metric.WithAttributes(attribute.String("job_field", jobField)))
}

// RecordCoachRequest counts a résumé coach call
func (m *Metrics) RecordCoachRequest(ctx context.Context, operation string, success bool) {
	if !m.opts.Business {
		return
	}
	m.CoachRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	))
}

// RecordRateLimitHit counts a rejected request
func (m *Metrics) RecordRateLimitHit(ctx context.Context, limitedBy string) {
	if !m.opts.Infrastructure || !m.opts.TrackRateLimits {
		return
	}
	m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("limited_by", limitedBy)))
}

// RecordQuestionBankReload counts a question bank reload attempt
func (m *Metrics) RecordQuestionBankReload(ctx context.Context, success bool) {
	if !m.opts.Infrastructure {
		return
	}
	m.QuestionBankReloads.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}
