package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"intervu/internal/career"
	"intervu/internal/errors"
	"intervu/internal/questions"
)

// Session is one mock interview in progress
type Session struct {
	ID          uuid.UUID            `json:"id"`
	Interviewee string               `json:"interviewee"`
	JobField    string               `json:"jobField"`
	Questions   []questions.Question `json:"questions"`
	Records     career.EvaluationSet `json:"records"`
	CreatedAt   time.Time            `json:"createdAt"`
	Completed   bool                 `json:"completed"`
	CompletedAt *time.Time           `json:"completedAt,omitempty"`
}

// New returns a session with a fresh ID
func New(interviewee, jobField string, qs []questions.Question, at time.Time) *Session {
	return &Session{
		ID:          uuid.New(),
		Interviewee: interviewee,
		JobField:    jobField,
		Questions:   qs,
		CreatedAt:   at.UTC(),
	}
}

// Remaining returns how many sampled questions have no recorded answer yet
func (s *Session) Remaining() int {
	answered := make(map[string]bool, s.Records.Len())
	for _, r := range s.Records.Records() {
		answered[r.Question] = true
	}
	n := 0
	for _, q := range s.Questions {
		if !answered[q.Text] {
			n++
		}
	}
	return n
}

func (s *Session) clone() *Session {
	c := *s
	c.Questions = append([]questions.Question(nil), s.Questions...)
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// appendRecord adds rec unless the session is completed or already holds the
// same question and answer.
func (s *Session) appendRecord(rec career.EvaluationRecord) (bool, error) {
	if s.Completed {
		return false, errors.NewValidationError(errors.ErrCodeSessionCompleted, "session is already completed", nil).
			WithContext("session_id", s.ID.String())
	}
	var added bool
	s.Records, added = s.Records.With(rec)
	return added, nil
}

// complete marks the session finished. Completing twice keeps the first time.
func (s *Session) complete(at time.Time) bool {
	if s.Completed {
		return false
	}
	t := at.UTC()
	s.Completed = true
	s.CompletedAt = &t
	return true
}

// Store persists interview sessions
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	// AppendRecord adds rec to the session and reports whether it was new.
	AppendRecord(ctx context.Context, id uuid.UUID, rec career.EvaluationRecord) (*Session, bool, error)
	Complete(ctx context.Context, id uuid.UUID, at time.Time) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}

func notFound(id uuid.UUID) error {
	return errors.NewNotFoundError(errors.ErrCodeSessionNotFound, "session not found").
		WithContext("session_id", id.String())
}
