package retry

import (
	"context"
	"time"

	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
)

// OnRetry is called before each retry with the 1-based retry number and the failure that caused it.
type OnRetry func(attempt int, err error)

// Do runs fn until it succeeds, returns a non-retryable error, exhausts the
// policy, or ctx is done. Only classified errors whose strategy permits a retry
// are retried; plain errors are returned immediately.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error, onRetry OnRetry) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt >= p.MaxRetries || !retryable(err) {
			return err
		}

		delay := p.Delay(attempt + 1)
		if errors.GetRetryStrategy(err) == errors.RetryImmediate {
			delay = 0
		}
		if onRetry != nil {
			onRetry(attempt+1, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}

func retryable(err error) bool {
	c, ok := errors.AsClassified(err)
	return ok && c.CanRetry()
}
