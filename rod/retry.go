package rod

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays between navigation attempts:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Retry calls fn until it succeeds, waiting delays[i] after the i-th failure.
// It makes at most len(delays)+1 attempts and returns the last error, or the
// context's error if ctx ends while waiting.
func Retry(ctx context.Context, delays []time.Duration, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == len(delays) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return lastErr
}
