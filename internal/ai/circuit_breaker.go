package ai

import (
	"fmt"

	"github.com/sony/gobreaker/v2"

	"intervu/internal/config"
	"intervu/internal/errors"
)

// Breaker guards calls returning T with a circuit breaker. A nil Breaker
// passes every call straight through.
type Breaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// tripPolicy decides when the breaker opens
type tripPolicy func(counts gobreaker.Counts) bool

// ratioPolicy opens once minRequests have been seen and the failure ratio
// reaches threshold.
func ratioPolicy(minRequests uint32, threshold float64) tripPolicy {
	return func(counts gobreaker.Counts) bool {
		if counts.Requests == 0 {
			return false
		}
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= minRequests && failureRatio >= threshold
	}
}

func newBreaker[T any](name string, cfg config.CircuitBreakerConfig, trip tripPolicy, logger *errors.Logger) *Breaker[T] {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: trip,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.Info("Circuit breaker state changed",
					"name", name,
					"from", from.String(),
					"to", to.String(),
					"failure_threshold", cfg.FailureThreshold)
			}
		},
	}
	return &Breaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// NewGenerateBreaker guards content generation for one operation
func NewGenerateBreaker[T any](operationType string, cfg *config.OperationAIConfig, logger *errors.Logger) *Breaker[T] {
	return newBreaker[T](
		fmt.Sprintf("AI-%s", operationType),
		cfg.CircuitBreaker,
		ratioPolicy(cfg.CircuitBreaker.MinRequests, cfg.CircuitBreaker.FailureThreshold),
		logger,
	)
}

// NewModelBreaker guards model info lookups, which trip more leniently than
// generation.
func NewModelBreaker[T any](operationType string, cfg *config.OperationAIConfig, logger *errors.Logger) *Breaker[T] {
	return newBreaker[T](fmt.Sprintf("AI-Model-%s", operationType), cfg.CircuitBreaker, ratioPolicy(5, 0.8), logger)
}

// Execute executes fn with circuit breaker protection
func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// IsHealthy returns true if the breaker is closed or absent
func (b *Breaker[T]) IsHealthy() bool {
	if b == nil || b.cb == nil {
		return true
	}
	return b.cb.State() == gobreaker.StateClosed
}

// Stats returns circuit breaker statistics
func (b *Breaker[T]) Stats() map[string]any {
	if b == nil || b.cb == nil {
		return map[string]any{"enabled": false}
	}
	counts := b.cb.Counts()
	return map[string]any{
		"enabled":               true,
		"name":                  b.cb.Name(),
		"state":                 b.cb.State().String(),
		"requests":              counts.Requests,
		"total_failures":        counts.TotalFailures,
		"consecutive_failures":  counts.ConsecutiveFailures,
		"consecutive_successes": counts.ConsecutiveSuccesses,
	}
}
