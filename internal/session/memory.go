package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"intervu/internal/career"
	"intervu/internal/errors"
)

// MemoryStore keeps sessions in process memory. Sessions older than the TTL
// are dropped when next touched.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	expires  map[uuid.UUID]time.Time
	ttl      time.Duration
	now      func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory store. A zero ttl never expires.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*Session),
		expires:  make(map[uuid.UUID]time.Time),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.ID]; ok {
		return errors.NewStorageError(errors.ErrCodeSessionStoreFailed, "session already exists", nil).
			WithContext("session_id", s.ID.String())
	}
	m.sessions[s.ID] = s.clone()
	m.touch(s.ID)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.clone(), nil
}

func (m *MemoryStore) AppendRecord(ctx context.Context, id uuid.UUID, rec career.EvaluationRecord) (*Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(id)
	if err != nil {
		return nil, false, err
	}
	added, err := s.appendRecord(rec)
	if err != nil {
		return nil, false, err
	}
	if added {
		m.touch(id)
	}
	return s.clone(), added, nil
}

func (m *MemoryStore) Complete(ctx context.Context, id uuid.UUID, at time.Time) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	if s.complete(at) {
		m.touch(id)
	}
	return s.clone(), nil
}

func (m *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	delete(m.expires, id)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// Len returns the number of live sessions
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// lookup must be called with mu held
func (m *MemoryStore) lookup(id uuid.UUID) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, notFound(id)
	}
	if exp, ok := m.expires[id]; ok && !m.now().Before(exp) {
		delete(m.sessions, id)
		delete(m.expires, id)
		return nil, notFound(id)
	}
	return s, nil
}

// touch must be called with mu held
func (m *MemoryStore) touch(id uuid.UUID) {
	if m.ttl > 0 {
		m.expires[id] = m.now().Add(m.ttl)
	}
}
