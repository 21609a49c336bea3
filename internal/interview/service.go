// Package interview ties the evaluator, question bank and session store into
// the operations exposed by the CLI and the HTTP API.
package interview

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"intervu/internal/career"
	"intervu/internal/config"
	"intervu/internal/errors"
	"intervu/internal/observability"
	"intervu/internal/questions"
	"intervu/internal/session"
)

// Service runs mock interviews
type Service struct {
	evaluator    *career.Evaluator
	questions    *questions.Source
	store        session.Store
	metrics      *observability.Metrics
	logger       *errors.Logger
	now          func() time.Time
	defaultField string
	defaultCount int
}

// NewService wires the interview operations. A nil metrics records nothing.
func NewService(evaluator *career.Evaluator, src *questions.Source, store session.Store,
	cfg config.InterviewConfig, metrics *observability.Metrics, logger *errors.Logger) *Service {
	if metrics == nil {
		metrics = observability.NoopMetrics()
	}
	count := cfg.QuestionCount
	if count < 1 {
		count = 5
	}
	return &Service{
		evaluator:    evaluator,
		questions:    src,
		store:        store,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
		defaultField: cfg.DefaultJobField,
		defaultCount: count,
	}
}

// WithClock returns a copy of s using now for timestamps
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now
	c.evaluator = s.evaluator.WithClock(now)
	return &c
}

// Questions returns the current question bank
func (s *Service) Questions() *questions.Bank {
	return s.questions.Bank()
}

func (s *Service) jobField(field string) string {
	if f := strings.TrimSpace(field); f != "" {
		return f
	}
	return s.defaultField
}

// Evaluate scores one answer outside any session
func (s *Service) Evaluate(ctx context.Context, question, answer, jobField string) (career.EvaluationRecord, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return career.EvaluationRecord{}, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"question and answer are required", nil)
	}
	rec := s.evaluator.Evaluate(ctx, question, answer, s.jobField(jobField))
	s.recordEvaluation(ctx, rec)
	return rec, nil
}

// Profile builds a career profile from already evaluated records
func (s *Service) Profile(ctx context.Context, interviewee string, records []career.EvaluationRecord) career.CareerProfile {
	profile := career.BuildProfile(interviewee, career.NewEvaluationSet(records...), s.now())
	s.metrics.RecordProfile(ctx, profile)
	return profile
}

// Sample picks questions for field. A nil seed draws fresh randomness.
func (s *Service) Sample(field string, count int, seed *int64) ([]questions.Question, error) {
	if count == 0 {
		count = s.defaultCount
	}
	var rng *rand.Rand
	if seed != nil {
		rng = rand.New(rand.NewPCG(uint64(*seed), uint64(*seed)))
	}
	return s.questions.Bank().Sample(s.jobField(field), count, rng)
}

// StartSession samples questions and stores a new session
func (s *Service) StartSession(ctx context.Context, interviewee, jobField string, count int) (*session.Session, error) {
	field := s.jobField(jobField)
	qs, err := s.Sample(field, count, nil)
	if err != nil {
		return nil, err
	}

	sess := session.New(strings.TrimSpace(interviewee), field, qs, s.now())
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	s.metrics.RecordSessionStarted(ctx, field)
	s.info("Interview session started", "session_id", sess.ID.String(), "job_field", field, "questions", len(qs))
	return sess, nil
}

// GetSession loads a session
func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	return s.store.Get(ctx, id)
}

// DeleteSession discards a session
func (s *Service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.info("Interview session deleted", "session_id", id.String())
	return nil
}

// AnswerResult is the outcome of submitting one answer to a session
type AnswerResult struct {
	Record   career.EvaluationRecord
	Session  *session.Session
	Recorded bool
}

// Answer evaluates an answer and appends it to the session. A repeated
// (question, answer) pair returns the stored record without a new evaluation.
func (s *Service) Answer(ctx context.Context, id uuid.UUID, question, answer string) (AnswerResult, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return AnswerResult{}, err
	}
	if sess.Completed {
		return AnswerResult{}, errors.NewValidationError(errors.ErrCodeSessionCompleted, "session is already completed", nil).
			WithContext("session_id", id.String())
	}

	if rec, ok := sess.Records.Find(question, answer); ok {
		s.info("Duplicate answer not recorded", "session_id", id.String())
		return AnswerResult{Record: rec, Session: sess, Recorded: false}, nil
	}

	rec, err := s.Evaluate(ctx, question, answer, sess.JobField)
	if err != nil {
		return AnswerResult{}, err
	}

	updated, added, err := s.store.AppendRecord(ctx, id, rec)
	if err != nil {
		return AnswerResult{}, err
	}
	if !added {
		s.info("Duplicate answer not recorded", "session_id", id.String())
	}
	return AnswerResult{Record: rec, Session: updated, Recorded: added}, nil
}

// Complete closes the session and builds its career profile
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (career.CareerProfile, error) {
	sess, err := s.store.Complete(ctx, id, s.now())
	if err != nil {
		return career.CareerProfile{}, err
	}
	at := sess.CreatedAt
	if sess.CompletedAt != nil {
		at = *sess.CompletedAt
	}
	profile := career.BuildProfile(sess.Interviewee, sess.Records, at)
	s.metrics.RecordProfile(ctx, profile)
	s.info("Interview session completed", "session_id", id.String(), "answers", sess.Records.Len())
	return profile, nil
}

func (s *Service) recordEvaluation(ctx context.Context, rec career.EvaluationRecord) {
	s.metrics.RecordEvaluation(ctx, rec)
	if rec.IsFallback() && s.logger != nil {
		s.logger.Warn("Answer scored with fallback record", "job_field", rec.JobField, "reason", rec.Error)
	}
}

func (s *Service) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}
