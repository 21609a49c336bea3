package ai

import (
	"context"

	"intervu/internal/career"
	"intervu/internal/observability"
	"intervu/internal/types"
)

// TokenUsage represents token usage information from AI responses
type TokenUsage = observability.TokenUsage

// AIProvider interface for different AI implementations.
// Every call reports token usage; callers can ignore it if not needed.
type AIProvider interface {
	// EvaluateAnswer returns the raw scoring reply; the career package parses it.
	EvaluateAnswer(ctx context.Context, req career.OracleRequest) (string, *TokenUsage, error)
	SummarizeResume(ctx context.Context, resume string) (types.ResumeSummary, *TokenUsage, error)
	RecommendCareers(ctx context.Context, summary types.ResumeSummary) (types.CareerRecommendations, *TokenUsage, error)
	CoachReply(ctx context.Context, input types.CoachChatInput) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}
