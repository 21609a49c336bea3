package ai

import (
	"context"
	"strings"

	"intervu/internal/errors"
	"intervu/internal/observability"
	"intervu/internal/types"
)

const (
	// MaxResumeChars bounds the résumé text sent for summarising
	MaxResumeChars = 3000
	// ChatHistoryWindow is how many recent messages accompany a chat turn
	ChatHistoryWindow = 5
	// ChatApology is the reply given when the coach cannot answer
	ChatApology = "I apologize, but I'm having trouble processing your request right now. Please try again later."
)

// Coach turns résumés into summaries, recommendations and chat replies
type Coach struct {
	service *Service
}

// NewCoach creates a coach backed by service
func NewCoach(service *Service) *Coach {
	return &Coach{service: service}
}

// SummarizeResume extracts a structured summary from résumé text
func (c *Coach) SummarizeResume(ctx context.Context, resume string) (types.ResumeSummary, error) {
	resume = strings.TrimSpace(resume)
	if resume == "" {
		return types.ResumeSummary{}, errors.NewValidationError(errors.ErrCodeInvalidRequest, "résumé text is empty", nil)
	}
	resume = truncateRunes(resume, MaxResumeChars)

	var summary types.ResumeSummary
	err := c.service.metrics.TrackAIOperation(ctx, "summarize_resume", func(ctx context.Context) *observability.AIOperationResult {
		out, usage, err := c.service.Provider.SummarizeResume(ctx, resume)
		summary = out
		return &observability.AIOperationResult{Error: err, TokenUsage: usage}
	})
	c.service.metrics.RecordCoachRequest(ctx, "summarize_resume", err == nil)
	if err != nil {
		return types.ResumeSummary{}, err
	}
	return normalizeSummary(summary), nil
}

// RecommendCareers suggests roles and next steps for a summarised candidate
func (c *Coach) RecommendCareers(ctx context.Context, summary types.ResumeSummary) (types.CareerRecommendations, error) {
	if summary.IsEmpty() {
		return types.CareerRecommendations{}, errors.NewValidationError(errors.ErrCodeInvalidRequest, "résumé summary is empty", nil)
	}

	var recs types.CareerRecommendations
	err := c.service.metrics.TrackAIOperation(ctx, "recommend_careers", func(ctx context.Context) *observability.AIOperationResult {
		out, usage, err := c.service.Provider.RecommendCareers(ctx, summary)
		recs = out
		return &observability.AIOperationResult{Error: err, TokenUsage: usage}
	})
	c.service.metrics.RecordCoachRequest(ctx, "recommend_careers", err == nil)
	if err != nil {
		return types.CareerRecommendations{}, err
	}
	return normalizeRecommendations(recs), nil
}

// Reply answers one chat message. Only the last ChatHistoryWindow messages of
// history are sent. Failures produce ChatApology, never an error.
func (c *Coach) Reply(ctx context.Context, summary types.ResumeSummary, history []types.ChatMessage, message string) string {
	if len(history) > ChatHistoryWindow {
		history = history[len(history)-ChatHistoryWindow:]
	}
	input := types.CoachChatInput{Summary: summary, History: history, Message: message}

	var reply string
	err := c.service.metrics.TrackAIOperation(ctx, "coach_chat", func(ctx context.Context) *observability.AIOperationResult {
		out, usage, err := c.service.Provider.CoachReply(ctx, input)
		reply = out
		return &observability.AIOperationResult{Error: err, TokenUsage: usage}
	})
	if err == nil && strings.TrimSpace(reply) == "" {
		err = errors.NewAIError(errors.ErrCodeAIInvalidResponse, "empty coach reply", nil)
	}
	c.service.metrics.RecordCoachRequest(ctx, "coach_chat", err == nil)
	if err != nil {
		if c.service.logger != nil {
			c.service.logger.LogError(err, "Coach reply failed, sending apology")
		}
		return ChatApology
	}
	return strings.TrimSpace(reply)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func normalizeSummary(s types.ResumeSummary) types.ResumeSummary {
	s.Skills = nonNil(s.Skills)
	s.Strengths = nonNil(s.Strengths)
	s.AreasForImprovement = nonNil(s.AreasForImprovement)
	return s
}

func normalizeRecommendations(r types.CareerRecommendations) types.CareerRecommendations {
	r.SuitableRoles = nonNil(r.SuitableRoles)
	r.GrowthOpportunities = nonNil(r.GrowthOpportunities)
	r.SkillRecommendations = nonNil(r.SkillRecommendations)
	r.IndustryInsights = nonNil(r.IndustryInsights)
	r.NextSteps = nonNil(r.NextSteps)
	r.InterviewFocusAreas = nonNil(r.InterviewFocusAreas)
	return r
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
