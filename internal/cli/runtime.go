package cli

import (
	"context"
	"fmt"

	"intervu/internal/ai"
	"intervu/internal/career"
	"intervu/internal/config"
	"intervu/internal/errors"
	"intervu/internal/interview"
	"intervu/internal/observability"
	"intervu/internal/questions"
	"intervu/internal/session"
)

// newAIService creates the AI service for one operation ("evaluate" or "coach")
func newAIService(cfg *config.Config, operation string, logger *errors.Logger, metrics *observability.Metrics) (*ai.Service, error) {
	if err := cfg.ValidateAI(); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeMissingAPIKey, err.Error(), nil)
	}

	var opCfg config.OperationAIConfig
	switch operation {
	case "evaluate":
		opCfg = cfg.GetEvaluateConfig()
	case "coach":
		opCfg = cfg.GetCoachConfig()
	default:
		return nil, fmt.Errorf("unknown AI operation: %s", operation)
	}

	svc, err := ai.NewService(&opCfg, operation, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI service: %w", err)
	}
	return svc, nil
}

// interviewRuntime bundles what the interview operations need
type interviewRuntime struct {
	service   *interview.Service
	evaluator *ai.Service
	questions *questions.Source
	store     session.Store
}

func (r *interviewRuntime) Close() error {
	var first error
	if r.store != nil {
		first = r.store.Close()
	}
	if r.evaluator != nil {
		if err := r.evaluator.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// newInterviewRuntime wires the evaluator, question bank and session store
func newInterviewRuntime(ctx context.Context, cfg *config.Config, logger *errors.Logger, metrics *observability.Metrics) (*interviewRuntime, error) {
	src, err := questions.NewSource(cfg.Interview.QuestionBankFile, logger)
	if err != nil {
		return nil, err
	}

	evaluator, err := newAIService(cfg, "evaluate", logger, metrics)
	if err != nil {
		return nil, err
	}

	store, err := session.NewStore(ctx, cfg.Session)
	if err != nil {
		_ = evaluator.Close()
		return nil, err
	}

	svc := interview.NewService(career.NewEvaluator(evaluator), src, store, cfg.Interview, metrics, logger)
	return &interviewRuntime{service: svc, evaluator: evaluator, questions: src, store: store}, nil
}
