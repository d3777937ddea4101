package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// noSleep records requested delays without waiting.
func noSleep(delays *[]time.Duration) SleepFunc {
	return func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func TestUntil_SucceedsWithinBudget(t *testing.T) {
	var delays []time.Duration
	calls := 0

	ok, err := UntilWithSleep(context.Background(), 5, 120*time.Millisecond, func(ctx context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	}, noSleep(&delays))

	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, calls)
	// No sleep before the first attempt
	assert.Equal(t, []time.Duration{120 * time.Millisecond, 120 * time.Millisecond}, delays)
}

func TestUntil_ExhaustsDeterministically(t *testing.T) {
	var delays []time.Duration
	calls := 0

	ok, err := UntilWithSleep(context.Background(), 5, 100*time.Millisecond, func(ctx context.Context) (bool, error) {
		calls++
		return false, nil
	}, noSleep(&delays))

	assert.Nil(t, err)
	assert.False(t, ok)
	assert.Equal(t, 5, calls)
	assert.Len(t, delays, 4)
}

func TestUntil_ProbeErrorAborts(t *testing.T) {
	probeErr := errors.New("store unavailable")
	calls := 0

	ok, err := UntilWithSleep(context.Background(), 5, time.Millisecond, func(ctx context.Context) (bool, error) {
		calls++
		return false, probeErr
	}, func(ctx context.Context, d time.Duration) error { return nil })

	assert.False(t, ok)
	assert.Equal(t, probeErr, err)
	assert.Equal(t, 1, calls)
}

func TestUntil_ContextCancelledDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := UntilWithSleep(ctx, 3, time.Millisecond, func(ctx context.Context) (bool, error) {
		return false, nil
	}, Sleep)

	assert.False(t, ok)
	assert.Equal(t, context.Canceled, err)
}

func TestUntil_AtLeastOneAttempt(t *testing.T) {
	calls := 0
	ok, err := UntilWithSleep(context.Background(), 0, time.Millisecond, func(ctx context.Context) (bool, error) {
		calls++
		return true, nil
	}, func(ctx context.Context, d time.Duration) error { return nil })

	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, calls)
}
