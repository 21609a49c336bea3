package session

import (
	"context"
	"fmt"

	"intervu/internal/config"
	"intervu/internal/errors"
)

// NewStore builds the store selected by cfg.Backend
func NewStore(ctx context.Context, cfg config.SessionConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(cfg.TTL), nil
	case "redis":
		return DialRedis(ctx, cfg)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown session backend: %s", cfg.Backend), nil)
	}
}
