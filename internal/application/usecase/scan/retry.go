package scan

import (
	"context"
	"fmt"
	"time"
)

// RetryPolicy drives the retry loop around AI gateway calls. Each attempt
// runs under its own timeout; delays between attempts grow exponentially
// from BaseDelay. Only transient errors are retried.
type RetryPolicy struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	AttemptTimeout time.Duration

	// sleep is overridable in tests so backoff does not wall-clock wait.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryPolicy returns a policy with the given bounds. Zero values fall
// back to 3 attempts, 1s base delay and a 30s per-attempt timeout.
func NewRetryPolicy(maxAttempts int, baseDelay, attemptTimeout time.Duration) RetryPolicy {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	if attemptTimeout <= 0 {
		attemptTimeout = 30 * time.Second
	}
	return RetryPolicy{
		MaxAttempts:    maxAttempts,
		BaseDelay:      baseDelay,
		AttemptTimeout: attemptTimeout,
		sleep:          sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetriesExhaustedError is returned when every attempt failed with a
// transient error. Last holds the final attempt's error.
type RetriesExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("AI service unavailable after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Last
}

// Do runs fn up to MaxAttempts times. A permanent error is returned
// immediately without further attempts. After the final transient failure
// a RetriesExhaustedError wrapping the last error is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := p.BaseDelay * (1 << (attempt - 1))
			if err := sleep(ctx, delay); err != nil {
				return "", err
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, p.AttemptTimeout)
		result, err := fn(attemptCtx)
		cancel()
		if err == nil {
			return result, nil
		}

		if !IsTransient(err) {
			return "", err
		}
		lastErr = err
	}

	return "", &RetriesExhaustedError{Attempts: p.MaxAttempts, Last: lastErr}
}
