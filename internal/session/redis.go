package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"intervu/internal/career"
	"intervu/internal/config"
	"intervu/internal/errors"
)

const maxTxRetries = 32

// RedisStore keeps each session as a JSON value under its own key. Every
// write refreshes the key's TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore wraps an existing client
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// DialRedis connects to the configured server and checks it responds
func DialRedis(ctx context.Context, cfg config.SessionConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewStorageError(errors.ErrCodeSessionStoreFailed, "failed to connect to redis", err).
			WithContext("addr", cfg.Redis.Addr)
	}
	return NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.TTL), nil
}

func (r *RedisStore) key(id uuid.UUID) string {
	return r.prefix + id.String()
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeSessionStoreFailed, "failed to encode session", err)
	}
	ok, err := r.client.SetNX(ctx, r.key(s.ID), data, r.ttl).Result()
	if err != nil {
		return storeFailed("create", s.ID, err)
	}
	if !ok {
		return errors.NewStorageError(errors.ErrCodeSessionStoreFailed, "session already exists", nil).
			WithContext("session_id", s.ID.String())
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, storeFailed("get", id, err)
	}
	return decode(id, data)
}

func (r *RedisStore) AppendRecord(ctx context.Context, id uuid.UUID, rec career.EvaluationRecord) (*Session, bool, error) {
	return r.update(ctx, id, func(s *Session) (bool, error) {
		return s.appendRecord(rec)
	})
}

func (r *RedisStore) Complete(ctx context.Context, id uuid.UUID, at time.Time) (*Session, error) {
	s, _, err := r.update(ctx, id, func(s *Session) (bool, error) {
		return s.complete(at), nil
	})
	return s, err
}

func (r *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return storeFailed("delete", id, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// update applies fn to the stored session inside an optimistic WATCH
// transaction and writes the result back when fn reports a change.
func (r *RedisStore) update(ctx context.Context, id uuid.UUID, fn func(*Session) (bool, error)) (*Session, bool, error) {
	key := r.key(id)
	var out *Session
	var changed bool

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if stderrors.Is(err, redis.Nil) {
			return notFound(id)
		}
		if err != nil {
			return err
		}
		s, err := decode(id, data)
		if err != nil {
			return err
		}
		if changed, err = fn(s); err != nil {
			return err
		}
		out = s
		if !changed {
			return nil
		}

		payload, err := json.Marshal(s)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		return err
	}

	for range maxTxRetries {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return out, changed, nil
		}
		if stderrors.Is(err, redis.TxFailedErr) {
			continue
		}
		if _, ok := errors.As(err); ok {
			return nil, false, err
		}
		return nil, false, storeFailed("update", id, err)
	}
	return nil, false, errors.NewStorageError(errors.ErrCodeSessionStoreFailed, "session update kept conflicting", nil).
		WithContext("session_id", id.String()).
		WithContext("attempts", maxTxRetries)
}

func decode(id uuid.UUID, data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeSessionStoreFailed, "stored session is corrupt", err).
			WithContext("session_id", id.String())
	}
	return &s, nil
}

func storeFailed(op string, id uuid.UUID, err error) error {
	return errors.NewStorageError(errors.ErrCodeSessionStoreFailed, "session store "+op+" failed", err).
		WithContext("session_id", id.String())
}
