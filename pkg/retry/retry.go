// Package retry provides a bounded retry helper for probes against
// eventually consistent backends.
package retry

import (
	"context"
	"time"
)

// Probe reports whether the awaited condition holds. A non-nil error aborts
// the retry loop immediately.
type Probe func(ctx context.Context) (bool, error)

// SleepFunc waits for the given duration. Injectable so tests run without
// real latency.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc. It honors context cancellation.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Until runs probe up to attempts times, sleeping delay between attempts.
// It returns true as soon as the probe reports true, and false once the
// attempt budget is exhausted. The first probe runs immediately, so the
// worst case adds (attempts-1) * delay of latency.
func Until(ctx context.Context, attempts int, delay time.Duration, probe Probe) (bool, error) {
	return UntilWithSleep(ctx, attempts, delay, probe, Sleep)
}

// UntilWithSleep is Until with an explicit SleepFunc.
func UntilWithSleep(ctx context.Context, attempts int, delay time.Duration, probe Probe, sleep SleepFunc) (bool, error) {
	if attempts < 1 {
		attempts = 1
	}
	if sleep == nil {
		sleep = Sleep
	}
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if err := sleep(ctx, delay); err != nil {
				return false, err
			}
		}
		ok, err := probe(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
