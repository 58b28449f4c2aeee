package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kinoflow/kinoflow/internal/apierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Delay_ExponentialWithCap(t *testing.T) {
	p := Policy{Initial: 100 * time.Millisecond, Factor: 2, Cap: 10 * time.Second}

	assert.Equal(t, 100*time.Millisecond, p.Delay(0))
	assert.Equal(t, 200*time.Millisecond, p.Delay(1))
	assert.Equal(t, 400*time.Millisecond, p.Delay(2))
	assert.Equal(t, 10*time.Second, p.Delay(20)) // far past the cap
}

func TestRetry_SucceedsAfterRetryableFailures(t *testing.T) {
	attempts := 0
	result, err := Retry(context.Background(), func(ctx context.Context) (int, error) {
		attempts++
		if attempts < 3 {
			return 0, apierr.BackendUnavailable("test", errors.New("down"))
		}
		return 42, nil
	}, Policy{Initial: time.Millisecond, Factor: 2, Cap: 10 * time.Millisecond})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, attempts)
}

func TestRetry_NonRetryablePropagatesImmediately(t *testing.T) {
	attempts := 0
	_, err := Retry(context.Background(), func(ctx context.Context) (int, error) {
		attempts++
		return 0, apierr.Validation("test", errors.New("bad input"))
	}, Policy{Initial: time.Millisecond, Factor: 2, Cap: 10 * time.Millisecond})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetry_HonorsMaxAttempts(t *testing.T) {
	attempts := 0
	_, err := Retry(context.Background(), func(ctx context.Context) (int, error) {
		attempts++
		return 0, apierr.SourceTransient("test", errors.New("deadlock"))
	}, Policy{Initial: time.Millisecond, Factor: 2, Cap: time.Millisecond, MaxAttempts: 2})

	require.Error(t, err)
	assert.Equal(t, 3, attempts) // initial try + 2 retries
}

func TestRetry_HonorsCancellationBetweenAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	_, err := Retry(ctx, func(ctx context.Context) (int, error) {
		attempts++
		return 0, apierr.BackendUnavailable("test", errors.New("down"))
	}, Policy{Initial: time.Second, Factor: 2, Cap: time.Second})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}
