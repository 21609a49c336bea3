package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervu/internal/career"
	appErrors "intervu/internal/errors"
	"intervu/internal/types"
)

// fakeProvider records what it was asked and returns canned results
type fakeProvider struct {
	evaluateReply string
	summary       types.ResumeSummary
	recs          types.CareerRecommendations
	reply         string
	err           error

	gotResume string
	gotChat   types.CoachChatInput
}

func (f *fakeProvider) EvaluateAnswer(ctx context.Context, req career.OracleRequest) (string, *TokenUsage, error) {
	return f.evaluateReply, &TokenUsage{TotalTokens: 1}, f.err
}

func (f *fakeProvider) SummarizeResume(ctx context.Context, resume string) (types.ResumeSummary, *TokenUsage, error) {
	f.gotResume = resume
	return f.summary, nil, f.err
}

func (f *fakeProvider) RecommendCareers(ctx context.Context, summary types.ResumeSummary) (types.CareerRecommendations, *TokenUsage, error) {
	return f.recs, nil, f.err
}

func (f *fakeProvider) CoachReply(ctx context.Context, input types.CoachChatInput) (string, *TokenUsage, error) {
	f.gotChat = input
	return f.reply, nil, f.err
}

func (f *fakeProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	return &ModelInfo{Name: "fake", Available: true}
}

func (f *fakeProvider) Close() error { return nil }

func newFakeCoach(p *fakeProvider) *Coach {
	return NewCoach(NewServiceWithProvider(p, quietLogger(), nil))
}

func TestSummarizeResumeTruncatesLongInput(t *testing.T) {
	p := &fakeProvider{summary: types.ResumeSummary{Name: "Ana"}}
	coach := newFakeCoach(p)

	long := strings.Repeat("é", MaxResumeChars+500)
	summary, err := coach.SummarizeResume(context.Background(), long)
	require.NoError(t, err)

	assert.Equal(t, MaxResumeChars+3, len([]rune(p.gotResume)))
	assert.True(t, strings.HasSuffix(p.gotResume, "..."))
	assert.Equal(t, "Ana", summary.Name)
	assert.NotNil(t, summary.Skills)
}

func TestSummarizeResumeRejectsEmptyText(t *testing.T) {
	_, err := newFakeCoach(&fakeProvider{}).SummarizeResume(context.Background(), "  \n ")
	require.Error(t, err)
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeValidation))
}

func TestRecommendCareers(t *testing.T) {
	p := &fakeProvider{recs: types.CareerRecommendations{SuitableRoles: []string{"Staff Engineer"}, SalaryRange: "$150k-$190k"}}
	coach := newFakeCoach(p)

	_, err := coach.RecommendCareers(context.Background(), types.ResumeSummary{})
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeValidation))

	recs, err := coach.RecommendCareers(context.Background(), types.ResumeSummary{Name: "Ana", Skills: []string{"Go"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Staff Engineer"}, recs.SuitableRoles)
	assert.Equal(t, []string{}, recs.NextSteps)
}

func TestReplyKeepsRecentHistoryOnly(t *testing.T) {
	p := &fakeProvider{reply: "  Practice the STAR format.  "}
	coach := newFakeCoach(p)

	var history []types.ChatMessage
	for i := 0; i < 8; i++ {
		role := types.RoleUser
		if i%2 == 1 {
			role = types.RoleAssistant
		}
		history = append(history, types.ChatMessage{Role: role, Content: string(rune('a' + i))})
	}

	reply := coach.Reply(context.Background(), types.ResumeSummary{Name: "Ana"}, history, "How do I prepare?")
	assert.Equal(t, "Practice the STAR format.", reply)
	require.Len(t, p.gotChat.History, ChatHistoryWindow)
	assert.Equal(t, "d", p.gotChat.History[0].Content)
	assert.Equal(t, "How do I prepare?", p.gotChat.Message)
}

func TestReplyApologisesOnFailure(t *testing.T) {
	coach := newFakeCoach(&fakeProvider{err: errors.New("quota exceeded")})
	assert.Equal(t, ChatApology, coach.Reply(context.Background(), types.ResumeSummary{}, nil, "Hello"))

	coach = newFakeCoach(&fakeProvider{reply: "   "})
	assert.Equal(t, ChatApology, coach.Reply(context.Background(), types.ResumeSummary{}, nil, "Hello"))
}

func TestServiceScoresAnswersForEvaluator(t *testing.T) {
	svc := NewServiceWithProvider(&fakeProvider{evaluateReply: oracleReply}, quietLogger(), nil)

	rec := career.NewEvaluator(svc).Evaluate(context.Background(),
		"Tell me about a hard bug.",
		"I traced a race condition in our payment worker using the race detector, added a mutex around the ledger update, and wrote a regression test that reproduced the interleaving. Latency stayed flat and the incident never recurred.",
		"Software Engineering")
	assert.False(t, rec.IsFallback())
	assert.Contains(t, rec.SkillsDemonstrated, "Go")

	failing := NewServiceWithProvider(&fakeProvider{err: errors.New("down")}, quietLogger(), nil)
	rec = career.NewEvaluator(failing).Evaluate(context.Background(), "q", "a", "Software Engineering")
	assert.True(t, rec.IsFallback())
}
