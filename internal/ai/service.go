package ai

import (
	"context"
	"fmt"

	"intervu/internal/career"
	"intervu/internal/config"
	"intervu/internal/errors"
	"intervu/internal/observability"
)

// Service runs AI operations for one configured operation type
type Service struct {
	Provider AIProvider // Exported for access from server package
	config   *config.OperationAIConfig
	logger   *errors.Logger
	metrics  *observability.Metrics
}

// Ensure Service can score answers for the evaluator
var _ career.Oracle = (*Service)(nil)

// NewService creates a new AI service instance with configuration for a specific operation
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger, metrics *observability.Metrics, opts ...ProviderOption) (*Service, error) {
	var provider AIProvider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger, opts...)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	s := NewServiceWithProvider(provider, logger, metrics)
	s.config = cfg
	return s, nil
}

// NewServiceWithProvider wraps an existing provider
func NewServiceWithProvider(provider AIProvider, logger *errors.Logger, metrics *observability.Metrics) *Service {
	if metrics == nil {
		metrics = observability.NoopMetrics()
	}
	return &Service{
		Provider: provider,
		logger:   logger,
		metrics:  metrics,
	}
}

// ScoreAnswer asks the provider to score one answer and returns its raw reply
func (s *Service) ScoreAnswer(ctx context.Context, req career.OracleRequest) (string, error) {
	var reply string
	err := s.metrics.TrackAIOperation(ctx, "evaluate_answer", func(ctx context.Context) *observability.AIOperationResult {
		out, usage, err := s.Provider.EvaluateAnswer(ctx, req)
		reply = out
		return &observability.AIOperationResult{Error: err, TokenUsage: usage}
	})
	return reply, err
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetModelInfo(ctx)
}

// Stats returns provider circuit breaker statistics when available
func (s *Service) Stats() map[string]any {
	if g, ok := s.Provider.(*GeminiProvider); ok {
		return g.GetCircuitBreakerStats()
	}
	return map[string]any{}
}

// Close releases the provider
func (s *Service) Close() error {
	return s.Provider.Close()
}
