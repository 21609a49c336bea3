package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervu/internal/ai"
	"intervu/internal/career"
	"intervu/internal/config"
	appErrors "intervu/internal/errors"
	"intervu/internal/interview"
	"intervu/internal/questions"
	"intervu/internal/session"
	"intervu/internal/types"
)

const oracleReply = `{"scores":{"content":7,"clarity":7,"technical_accuracy":7,"confidence":7,"overall":7},` +
	`"feedback":{"strengths":["Clear structure"],"areas_for_improvement":["More numbers"],"missing_elements":[]},` +
	`"skills_demonstrated":["Communication"],"skill_levels":{"Communication":60},"improved_answer":"Lead with the result.","keywords":[]}`

type scriptedProvider struct {
	reply   string
	gotChat []types.CoachChatInput
}

func (p *scriptedProvider) EvaluateAnswer(ctx context.Context, req career.OracleRequest) (string, *ai.TokenUsage, error) {
	return oracleReply, nil, nil
}

func (p *scriptedProvider) SummarizeResume(ctx context.Context, resume string) (types.ResumeSummary, *ai.TokenUsage, error) {
	return types.ResumeSummary{Name: "Ana"}, nil, nil
}

func (p *scriptedProvider) RecommendCareers(ctx context.Context, summary types.ResumeSummary) (types.CareerRecommendations, *ai.TokenUsage, error) {
	return types.CareerRecommendations{}, nil, nil
}

func (p *scriptedProvider) CoachReply(ctx context.Context, input types.CoachChatInput) (string, *ai.TokenUsage, error) {
	p.gotChat = append(p.gotChat, input)
	return p.reply, nil, nil
}

func (p *scriptedProvider) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "scripted", Available: true}
}

func (p *scriptedProvider) Close() error { return nil }

func quietLogger() *appErrors.Logger {
	return appErrors.NewLoggerWithWriter(io.Discard, slog.LevelError)
}

func newTestInterview(p *scriptedProvider) *interview.Service {
	svc := ai.NewServiceWithProvider(p, quietLogger(), nil)
	return interview.NewService(
		career.NewEvaluator(svc),
		questions.StaticSource(questions.Default()),
		session.NewMemoryStore(time.Hour),
		config.InterviewConfig{DefaultJobField: "IT Support", QuestionCount: 3},
		nil, quietLogger(),
	)
}

func TestConductInterview(t *testing.T) {
	svc := newTestInterview(&scriptedProvider{})
	in := strings.NewReader("I reset the router first.\nThen I checked the logs.\n\n\nquit\n")
	var out bytes.Buffer

	profile, err := conductInterview(context.Background(), svc, in, &out, "Jo", "", 3)
	require.NoError(t, err)

	assert.Equal(t, "Jo", profile.Interviewee)
	require.Equal(t, 1, profile.Responses.Len())
	assert.Equal(t, "I reset the router first.\nThen I checked the logs.", profile.Responses.Records()[0].Answer)

	text := out.String()
	assert.Contains(t, text, "Mock interview: IT Support (3 questions)")
	assert.Contains(t, text, "Question 1/3 [Background]")
	assert.Contains(t, text, "## Feedback on Your Answer")
	assert.Contains(t, text, "(skipped)")
	assert.NotContains(t, text, "Question 3/3")
}

func TestConductInterviewStopsAtEOF(t *testing.T) {
	svc := newTestInterview(&scriptedProvider{})
	var out bytes.Buffer

	profile, err := conductInterview(context.Background(), svc, strings.NewReader("Only answer"), &out, "", "", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Responses.Len())
	assert.Equal(t, "Anonymous", profile.Interviewee)
}

func TestConductInterviewUnknownField(t *testing.T) {
	svc := newTestInterview(&scriptedProvider{})
	_, err := conductInterview(context.Background(), svc, strings.NewReader(""), io.Discard, "", "Astronaut", 3)
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeValidation))
}

func TestReadAnswer(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		answer string
		quit   bool
		eof    bool
	}{
		{"single line", "yes\n\n", "yes", false, false},
		{"multi line", "a\nb\n\n", "a\nb", false, false},
		{"skip", "\n", "", false, false},
		{"quit", "QUIT\n", "", true, false},
		{"quit inside answer is text", "a\nquit\n\n", "a\nquit", false, false},
		{"eof", "tail", "tail", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, quit, eof := readAnswer(bufio.NewScanner(strings.NewReader(tt.input)))
			assert.Equal(t, tt.answer, answer)
			assert.Equal(t, tt.quit, quit)
			assert.Equal(t, tt.eof, eof)
		})
	}
}

func TestChatLoopKeepsHistory(t *testing.T) {
	p := &scriptedProvider{reply: "Keep going."}
	coach := ai.NewCoach(ai.NewServiceWithProvider(p, quietLogger(), nil))
	var out bytes.Buffer

	err := chatLoop(context.Background(), coach, types.ResumeSummary{Name: "Ana"},
		strings.NewReader("Hello\n\nWhat next?\nquit\nignored\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Hi Ana!")
	assert.Equal(t, 2, strings.Count(out.String(), "coach> Keep going."))
	require.Len(t, p.gotChat, 2)
	assert.Empty(t, p.gotChat[0].History)
	assert.Equal(t, []types.ChatMessage{
		{Role: types.RoleUser, Content: "Hello"},
		{Role: types.RoleAssistant, Content: "Keep going."},
	}, p.gotChat[1].History)
}

func TestParseRecords(t *testing.T) {
	set, err := parseRecords(`[{"question":"Q","answer":"A","scores":{"overall":5}},{"question":"Q","answer":"A","scores":{"overall":5}}]`)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())

	_, err = parseRecords(`{"question":"Q"}`)
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeValidation))

	_, err = parseRecords(`[{"question":"Q","answer":"A","skillLevels":{"SQL":-60}}]`)
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeValidation))
}

func TestApplyServeFlags(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("port", "", "")
	cmd.Flags().String("host", "", "")
	cmd.Flags().String("tls-mode", "", "")
	require.NoError(t, cmd.Flags().Set("port", "9090"))

	cfg := &config.Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.TLS.Mode = "disabled"
	applyServeFlags(cmd, cfg)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "disabled", cfg.Server.TLS.Mode)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, out.String(), "intervu version dev")
}
