package refresh

import (
	"context"
	"math/rand/v2"
	"time"
)

// RetryPolicy bounds collaborator fetches: a per-attempt timeout, a maximum
// attempt count, and exponential backoff with full jitter between attempts.
type RetryPolicy struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	AttemptTimeout time.Duration
}

// DefaultRetryPolicy returns the policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		BaseDelay:      200 * time.Millisecond,
		AttemptTimeout: 10 * time.Second,
	}
}

// Do runs op until it succeeds, attempts run out, or the parent context is
// done. Each attempt gets its own deadline so a stalled collaborator cannot
// block a refresh indefinitely.
func (p RetryPolicy) Do(ctx context.Context, op func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := p.BaseDelay << (attempt - 1)
			if delay > 0 {
				delay += rand.N(delay) // full jitter
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		attemptCtx := ctx
		cancel := context.CancelFunc(func() {})
		if p.AttemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.AttemptTimeout)
		}
		err := op(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}
	return lastErr
}
