package ai

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"

	"intervu/internal/config"
)

func breakerConfig(enabled bool, minRequests uint32, threshold float64) *config.OperationAIConfig {
	return &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          enabled,
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			MinRequests:      minRequests,
			FailureThreshold: threshold,
		},
	}
}

func TestGenerateBreakerTripsOnFailureRatio(t *testing.T) {
	cb := NewGenerateBreaker[string]("Evaluate", breakerConfig(true, 3, 0.6), nil)
	if cb == nil {
		t.Fatal("Expected a breaker when enabled")
	}

	boom := errors.New("upstream unavailable")
	for i := 0; i < 3; i++ {
		if _, err := cb.Execute(func() (string, error) { return "", boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d: expected upstream error, got %v", i, err)
		}
	}

	if cb.IsHealthy() {
		t.Error("Expected breaker to be open after three failures")
	}
	calls := 0
	_, err := cb.Execute(func() (string, error) {
		calls++
		return "ok", nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected ErrOpenState, got %v", err)
	}
	if calls != 0 {
		t.Error("Expected open breaker to short-circuit the call")
	}
	if got := cb.Stats()["state"]; got != "open" {
		t.Errorf("Expected state open in stats, got %v", got)
	}
}

func TestGenerateBreakerStaysClosedBelowMinRequests(t *testing.T) {
	cb := NewGenerateBreaker[string]("Coach", breakerConfig(true, 5, 0.5), nil)

	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(func() (string, error) { return "", errors.New("fail") })
	}
	if !cb.IsHealthy() {
		t.Error("Expected breaker to stay closed before MinRequests is reached")
	}
}

func TestModelBreakerIsMoreLenient(t *testing.T) {
	cb := NewModelBreaker[int]("Evaluate", breakerConfig(true, 1, 0.1), nil)

	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(func() (int, error) { return 0, errors.New("fail") })
	}
	if !cb.IsHealthy() {
		t.Error("Expected model breaker to ignore operation thresholds and stay closed")
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	cb := NewGenerateBreaker[string]("Evaluate", breakerConfig(false, 1, 0.1), nil)
	if cb != nil {
		t.Fatal("Expected nil breaker when disabled")
	}

	got, err := cb.Execute(func() (string, error) { return "direct", nil })
	if err != nil || got != "direct" {
		t.Errorf("Expected pass-through execution, got %q, %v", got, err)
	}
	if !cb.IsHealthy() {
		t.Error("Expected disabled breaker to report healthy")
	}
	if enabled := cb.Stats()["enabled"]; enabled != false {
		t.Errorf("Expected enabled=false in stats, got %v", enabled)
	}
}
