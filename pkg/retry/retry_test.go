package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(3), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	cause := errors.New("down")
	calls := 0
	err := Do(context.Background(), fastConfig(2), func(context.Context) error {
		calls++
		return cause
	}, nil)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestDo_SingleAttemptReturnsCause(t *testing.T) {
	cause := errors.New("down")
	err := Do(context.Background(), Config{}, func(context.Context) error { return cause }, nil)
	assert.Equal(t, cause, err)
}

func TestDo_NotRetryable(t *testing.T) {
	permanent := errors.New("bad request")
	calls := 0
	err := Do(context.Background(), fastConfig(5), func(context.Context) error {
		calls++
		return permanent
	}, func(err error) bool { return !errors.Is(err, permanent) })

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDo_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{MaxAttempts: 3, InitialDelay: time.Hour}

	err := Do(ctx, cfg, func(context.Context) error {
		cancel()
		return errors.New("temporary")
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelay(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}

	assert.Equal(t, 100*time.Millisecond, Delay(1, cfg))
	assert.Equal(t, 400*time.Millisecond, Delay(3, cfg))
	assert.Equal(t, time.Second, Delay(10, cfg))

	cfg.Jitter = true
	for i := 0; i < 20; i++ {
		d := Delay(1, cfg)
		assert.GreaterOrEqual(t, d, 75*time.Millisecond)
		assert.LessOrEqual(t, d, 125*time.Millisecond)
	}
}
