package httpclient

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// RetryPolicy runs an operation a fixed number of times with a linear backoff
// between attempts: Delay after the first failure, 2*Delay after the second.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
	Clock      clockwork.Clock

	// OnRetry, when set, is called before sleeping ahead of the next attempt.
	OnRetry func(attempt int, err error)
}

// Backoff returns the pause that follows the given failed attempt (1-based).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return p.Delay * time.Duration(attempt)
}

// Do runs fn until it succeeds or the attempts are used up. The error of the
// last attempt is returned as is. Cancelling ctx while waiting returns ctx.Err().
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	attempts := p.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	clock := p.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, lastErr)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(p.Backoff(attempt)):
		}
	}
	return lastErr
}
