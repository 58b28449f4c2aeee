package backoff

import (
	"context"

	"github.com/kinoflow/kinoflow/internal/metrics"
	"github.com/sony/gobreaker/v2"
)

// CircuitBreakerConfig configures a per-backend circuit breaker, grounded
// on the teacher's internal/eventprocessor/circuitbreaker.go.
type CircuitBreakerConfig struct {
	Name                string
	MaxRequests         uint32
	ConsecutiveFailures uint32
}

// NewCircuitBreaker builds a gobreaker wrapping calls that return T,
// tripping open after ConsecutiveFailures consecutive failures and
// recording state transitions to internal/metrics.
func NewCircuitBreaker[T any](cfg CircuitBreakerConfig) *gobreaker.CircuitBreaker[T] {
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 5
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetCircuitBreakerState(name, stateGauge(to))
		},
	}

	return gobreaker.NewCircuitBreaker[T](settings)
}

func stateGauge(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// ExecuteWithBreaker runs fn through cb, recording the outcome.
func ExecuteWithBreaker[T any](ctx context.Context, cb *gobreaker.CircuitBreaker[T], name string, fn func(context.Context) (T, error)) (T, error) {
	result, err := cb.Execute(func() (T, error) {
		return fn(ctx)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			metrics.RecordCircuitBreakerRequest(name, "rejected")
		} else {
			metrics.RecordCircuitBreakerRequest(name, "failure")
		}
		return result, err
	}
	metrics.RecordCircuitBreakerRequest(name, "success")
	return result, nil
}
