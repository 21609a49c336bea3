package interview

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervu/internal/career"
	"intervu/internal/config"
	appErrors "intervu/internal/errors"
	"intervu/internal/questions"
	"intervu/internal/session"
)

const reply = `{"scores":{"content":8,"clarity":8,"technical_accuracy":8,"confidence":8,"overall":8},` +
	`"feedback":{"strengths":["Specific"],"areas_for_improvement":["Shorter"],"missing_elements":[]},` +
	`"skills_demonstrated":["Go"],"skill_levels":{"Go":70},"improved_answer":"Better.","keywords":[]}`

var fixed = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, oracle career.Oracle) *Service {
	t.Helper()
	svc := NewService(
		career.NewEvaluator(oracle),
		questions.StaticSource(questions.Default()),
		session.NewMemoryStore(time.Hour),
		config.InterviewConfig{DefaultJobField: "Software Engineering", QuestionCount: 4},
		nil, nil,
	)
	return svc.WithClock(func() time.Time { return fixed })
}

func scripted() career.Oracle {
	return career.OracleFunc(func(ctx context.Context, req career.OracleRequest) (string, error) {
		return reply, nil
	})
}

func TestEvaluateRequiresQuestionAndAnswer(t *testing.T) {
	svc := newService(t, scripted())

	_, err := svc.Evaluate(context.Background(), "", "answer", "")
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeValidation))

	rec, err := svc.Evaluate(context.Background(), "Why Go?", "Because it is simple.", "")
	require.NoError(t, err)
	assert.Equal(t, "Software Engineering", rec.JobField)
	assert.Equal(t, fixed, rec.Timestamp)
}

func TestSessionLifecycle(t *testing.T) {
	svc := newService(t, scripted())
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "  Riley  ", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "Riley", sess.Interviewee)
	assert.Equal(t, "Software Engineering", sess.JobField)
	require.Len(t, sess.Questions, 4)
	assert.Equal(t, questions.CategoryBackground, sess.Questions[0].Category)

	q := sess.Questions[1].Text
	res, err := svc.Answer(ctx, sess.ID, q, "I profile first, then fix the hot path.")
	require.NoError(t, err)
	assert.True(t, res.Recorded)
	assert.Equal(t, 3, res.Session.Remaining())

	res, err = svc.Answer(ctx, sess.ID, q, "I profile first, then fix the hot path.")
	require.NoError(t, err)
	assert.False(t, res.Recorded)
	assert.Equal(t, 1, res.Session.Records.Len())

	profile, err := svc.Complete(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Riley", profile.Interviewee)
	assert.Equal(t, fixed, profile.Timestamp)
	assert.Equal(t, 1, profile.Responses.Len())
	assert.Equal(t, career.ConfidenceLow, profile.CareerInsights.AssessmentReliability.ConfidenceLevel)

	_, err = svc.Answer(ctx, sess.ID, q, "A different answer")
	require.Error(t, err)
	appErr, ok := appErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeSessionCompleted, appErr.Code)
}

func TestAnswerDuplicateSkipsOracle(t *testing.T) {
	var calls atomic.Int32
	svc := newService(t, career.OracleFunc(func(ctx context.Context, req career.OracleRequest) (string, error) {
		calls.Add(1)
		return reply, nil
	}))
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "Riley", "", 2)
	require.NoError(t, err)
	q := sess.Questions[0].Text

	first, err := svc.Answer(ctx, sess.ID, q, "I ship small changes.")
	require.NoError(t, err)
	require.True(t, first.Recorded)

	again, err := svc.Answer(ctx, sess.ID, q, "I ship small changes.")
	require.NoError(t, err)
	assert.False(t, again.Recorded)
	assert.Equal(t, first.Record, again.Record)
	assert.Equal(t, 1, again.Session.Records.Len())
	assert.Equal(t, int32(1), calls.Load())
}

func TestStartSessionRejectsUnknownField(t *testing.T) {
	svc := newService(t, scripted())
	_, err := svc.StartSession(context.Background(), "Riley", "Astronaut", 3)
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeValidation))
}

func TestAnswerUnknownSession(t *testing.T) {
	svc := newService(t, scripted())
	_, err := svc.Answer(context.Background(), uuid.New(), "q", "a")
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeNotFound))
}

func TestOracleFailureStillRecordsFallback(t *testing.T) {
	svc := newService(t, career.OracleFunc(func(ctx context.Context, req career.OracleRequest) (string, error) {
		return "", errors.New("quota exceeded")
	}))
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, "Riley", "IT Support", 2)
	require.NoError(t, err)
	res, err := svc.Answer(ctx, sess.ID, sess.Questions[0].Text, "I like helping people.")
	require.NoError(t, err)
	assert.True(t, res.Record.IsFallback())
	assert.True(t, res.Recorded)
}

func TestSampleWithSeedIsReproducible(t *testing.T) {
	svc := newService(t, scripted())
	seed := int64(7)

	a, err := svc.Sample("Cybersecurity", 6, &seed)
	require.NoError(t, err)
	b, err := svc.Sample("Cybersecurity", 6, &seed)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestProfileDeduplicatesSuppliedRecords(t *testing.T) {
	svc := newService(t, scripted())
	rec, err := svc.Evaluate(context.Background(), "Why Go?", "Because it is simple.", "")
	require.NoError(t, err)

	profile := svc.Profile(context.Background(), "", []career.EvaluationRecord{rec, rec})
	assert.Equal(t, "Anonymous", profile.Interviewee)
	assert.Equal(t, 1, profile.Responses.Len())
}
