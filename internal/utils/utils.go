package utils

import (
	"context"
	"time"
)

var sleep = time.Sleep

// WaitFor blocks for d or until ctx is done, whichever comes first.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Backoff returns the delay before retry attempt n (starting at 1), doubling
// from base and capped at max.
func Backoff(base, max time.Duration, attempt int) time.Duration {
	if attempt <= 0 || base <= 0 {
		return 0
	}

	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if max > 0 && d >= max {
			return max
		}
	}

	if max > 0 && d > max {
		return max
	}
	return d
}
