package session

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervu/internal/career"
	"intervu/internal/config"
	"intervu/internal/errors"
	"intervu/internal/questions"
)

var created = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newSession() *Session {
	return New("Jordan", "Software Engineering", []questions.Question{
		{Category: questions.CategoryBackground, Text: "Tell me about yourself."},
		{Category: questions.CategoryTechnical, Text: "Explain a goroutine leak."},
	}, created)
}

func record(question, answer string) career.EvaluationRecord {
	return career.EvaluationRecord{
		Question: question,
		Answer:   answer,
		JobField: "Software Engineering",
		Scores:   map[string]int{career.CategoryOverall: 6},
	}
}

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, "test:session:", ttl)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func stores(t *testing.T) map[string]Store {
	redisStore, _ := newRedisStore(t, time.Hour)
	return map[string]Store{
		"memory": NewMemoryStore(time.Hour),
		"redis":  redisStore,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newSession()
			require.NoError(t, store.Create(ctx, s))

			got, err := store.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, s.ID, got.ID)
			assert.Equal(t, "Jordan", got.Interviewee)
			assert.Equal(t, s.Questions, got.Questions)
			assert.True(t, created.Equal(got.CreatedAt))
			assert.Equal(t, 0, got.Records.Len())
			assert.Equal(t, 2, got.Remaining())

			assert.Error(t, store.Create(ctx, s), "duplicate create")
		})
	}
}

func TestStoreAppendRecordDeduplicates(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newSession()
			require.NoError(t, store.Create(ctx, s))

			got, added, err := store.AppendRecord(ctx, s.ID, record("Tell me about yourself.", "I build APIs."))
			require.NoError(t, err)
			assert.True(t, added)
			assert.Equal(t, 1, got.Records.Len())
			assert.Equal(t, 1, got.Remaining())

			got, added, err = store.AppendRecord(ctx, s.ID, record("Tell me about yourself.", "I build APIs."))
			require.NoError(t, err)
			assert.False(t, added)
			assert.Equal(t, 1, got.Records.Len())

			_, added, err = store.AppendRecord(ctx, s.ID, record("Tell me about yourself.", "I also mentor."))
			require.NoError(t, err)
			assert.True(t, added)

			stored, err := store.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, 2, stored.Records.Len())
			assert.Equal(t, "I also mentor.", stored.Records.Records()[1].Answer)
		})
	}
}

func TestStoreCompleteBlocksFurtherAnswers(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newSession()
			require.NoError(t, store.Create(ctx, s))

			done, err := store.Complete(ctx, s.ID, created.Add(time.Hour))
			require.NoError(t, err)
			assert.True(t, done.Completed)
			require.NotNil(t, done.CompletedAt)

			again, err := store.Complete(ctx, s.ID, created.Add(2*time.Hour))
			require.NoError(t, err)
			assert.True(t, done.CompletedAt.Equal(*again.CompletedAt))

			_, _, err = store.AppendRecord(ctx, s.ID, record("q", "a"))
			require.Error(t, err)
			appErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeSessionCompleted, appErr.Code)
		})
	}
}

func TestStoreMissingSession(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id := uuid.New()

			_, err := store.Get(ctx, id)
			assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

			_, _, err = store.AppendRecord(ctx, id, record("q", "a"))
			assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

			_, err = store.Complete(ctx, id, created)
			assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

			s := newSession()
			require.NoError(t, store.Create(ctx, s))
			require.NoError(t, store.Delete(ctx, s.ID))
			_, err = store.Get(ctx, s.ID)
			assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
		})
	}
}

func TestStoreConcurrentAppends(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newSession()
			require.NoError(t, store.Create(ctx, s))

			answers := []string{"one", "two", "three", "four", "five", "six"}
			var wg sync.WaitGroup
			for _, a := range answers {
				wg.Add(2)
				for range 2 {
					go func() {
						defer wg.Done()
						_, _, err := store.AppendRecord(ctx, s.ID, record("Explain a goroutine leak.", a))
						assert.NoError(t, err)
					}()
				}
			}
			wg.Wait()

			got, err := store.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, len(answers), got.Records.Len())
		})
	}
}

func TestRedisStoreExpiresSessions(t *testing.T) {
	store, mr := newRedisStore(t, 10*time.Minute)
	ctx := context.Background()
	s := newSession()
	require.NoError(t, store.Create(ctx, s))

	assert.Equal(t, 10*time.Minute, mr.TTL("test:session:"+s.ID.String()))
	mr.FastForward(11 * time.Minute)

	_, err := store.Get(ctx, s.ID)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestMemoryStoreExpiresSessions(t *testing.T) {
	store := NewMemoryStore(10 * time.Minute)
	now := created
	store.now = func() time.Time { return now }

	ctx := context.Background()
	s := newSession()
	require.NoError(t, store.Create(ctx, s))

	now = now.Add(9 * time.Minute)
	_, added, err := store.AppendRecord(ctx, s.ID, record("q", "a"))
	require.NoError(t, err)
	assert.True(t, added)

	now = now.Add(9 * time.Minute)
	_, err = store.Get(ctx, s.ID)
	require.NoError(t, err, "append refreshes the TTL")

	now = now.Add(11 * time.Minute)
	_, err = store.Get(ctx, s.ID)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	assert.Equal(t, 0, store.Len())
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	store, err := NewStore(ctx, config.SessionConfig{Backend: "memory", TTL: time.Hour})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	mr := miniredis.RunT(t)
	store, err = NewStore(ctx, config.SessionConfig{
		Backend: "redis",
		TTL:     time.Hour,
		Redis:   config.RedisConfig{Addr: mr.Addr(), KeyPrefix: "intervu:session:"},
	})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, store)
	require.NoError(t, store.Close())

	_, err = NewStore(ctx, config.SessionConfig{Backend: "etcd"})
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
