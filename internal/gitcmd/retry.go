package gitcmd

import (
	"context"
	"time"
)

// RetryPolicy bounds the retry behavior of fetch-style operations: up to
// Attempts tries, each separated by Delay, giving up with the last
// error. No other git operation is retried.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy is 3 attempts, 500ms apart.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Delay: 500 * time.Millisecond}

// WithRetry runs fn up to policy.Attempts times, sleeping policy.Delay
// between attempts, returning as soon as fn succeeds or the context is
// canceled.
func WithRetry(ctx context.Context, policy RetryPolicy, fn func() error) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(policy.Delay):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}
