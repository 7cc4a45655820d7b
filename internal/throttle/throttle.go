// Package throttle serializes remote summarization calls behind a global
// rate limit and retries retryable failures with exponential backoff.
package throttle

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/deckbrief/deckbrief/internal/providers"
)

// Func is a single remote summarization attempt.
type Func func(ctx context.Context) ([]string, error)

// Limiter paces calls to at most the configured rate. One Limiter is shared
// by every slide in a run, so the limit is global rather than per-slide.
type Limiter struct {
	bucket      *rate.Limiter
	maxAttempts int
	initial     time.Duration
}

// New builds a Limiter allowing callsPerSecond sustained calls, with
// maxRetries total attempts per invocation (first try included).
func New(callsPerSecond float64, maxRetries int) *Limiter {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Limiter{
		bucket:      rate.NewLimiter(rate.Limit(callsPerSecond), 1),
		maxAttempts: maxRetries,
		initial:     500 * time.Millisecond,
	}
}

// Invoke runs fn under the rate limit. The caller blocks, without failing,
// while waiting for capacity. Retryable failures are retried with
// exponential backoff until the attempt budget runs out, at which point the
// last failure is returned wrapped in an exhaustion message. Fatal failures
// and context cancellation abort immediately.
func (l *Limiter) Invoke(ctx context.Context, fn Func) ([]string, error) {
	attempts := 0
	op := func() ([]string, error) {
		if err := l.bucket.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}
		attempts++
		out, err := fn(ctx)
		if err != nil {
			if providers.Retryable(err) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		return out, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = l.initial

	out, err := backoff.RetryWithData(op,
		backoff.WithContext(backoff.WithMaxRetries(bo, uint64(l.maxAttempts-1)), ctx))
	if err != nil {
		if attempts >= l.maxAttempts && providers.Retryable(err) {
			return nil, fmt.Errorf("retries exhausted after %d attempts: %w", attempts, err)
		}
		return nil, err
	}
	return out, nil
}
