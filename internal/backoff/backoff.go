// Package backoff implements the cross-cutting retry wrapper named in
// spec.md §4.2 and §9 ("model Backoff as a wrapper over any fallible
// operation; do not inline retry loops inside producers or loaders").
// The exponential schedule is grounded on the teacher's
// internal/wal.RetryLoop.calculateBackoff, generalized from a hardcoded
// factor of 2 to the spec's t_n = min(cap, initial * factor^n).
package backoff

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/kinoflow/kinoflow/internal/apierr"
	"github.com/kinoflow/kinoflow/internal/logging"
	"github.com/kinoflow/kinoflow/internal/metrics"
)

// Policy configures a Retry call.
type Policy struct {
	// Initial is the delay before the first retry (t_0).
	Initial time.Duration
	// Factor is the exponential growth rate per attempt.
	Factor float64
	// Cap bounds every computed delay.
	Cap time.Duration
	// MaxAttempts bounds the number of retries; 0 means unbounded (retry
	// forever, honoring context cancellation between attempts). The ETL
	// loader's policy uses 0.
	MaxAttempts int
	// Retryable decides whether err should trigger a retry. Defaults to
	// apierr's Kind.Retryable() classification when nil.
	Retryable func(error) bool
	// Name identifies this policy's call site for metrics, e.g.
	// "search_port.bulk_index".
	Name string
}

// Delay returns t_n = min(cap, initial * factor^n) for attempt n (0-based).
func (p Policy) Delay(n int) time.Duration {
	if p.Factor <= 0 {
		p.Factor = 2
	}
	t := float64(p.Initial) * math.Pow(p.Factor, float64(n))
	if t > float64(p.Cap) || math.IsInf(t, 1) {
		return p.Cap
	}
	return time.Duration(t)
}

func (p Policy) retryable(err error) bool {
	if p.Retryable != nil {
		return p.Retryable(err)
	}
	return apierr.As(err).Retryable()
}

// Retry runs op, retrying on retryable errors per the policy's schedule.
// Attempt numbering resets after every successful call (it is local to
// this invocation). Cancellation is honored between attempts, not while
// op is running.
func Retry[T any](ctx context.Context, op func(ctx context.Context) (T, error), policy Policy) (T, error) {
	var zero T
	attempt := 0
	for {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if !policy.retryable(err) {
			return zero, err
		}
		if policy.MaxAttempts > 0 && attempt >= policy.MaxAttempts {
			if policy.Name != "" {
				metrics.RecordRetryExhausted(policy.Name)
			}
			return zero, err
		}

		delay := policy.Delay(attempt)
		attempt++

		if policy.Name != "" {
			metrics.RecordRetryAttempt(policy.Name)
			logging.Ctx(ctx).Warn().
				Err(err).
				Str("operation", policy.Name).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("retrying after failure")
		}

		select {
		case <-ctx.Done():
			return zero, errors.Join(err, ctx.Err())
		case <-time.After(delay):
		}
	}
}
