package pageswap

import (
	"context"
	"time"
)

// waitTransition blocks until the first of: done fires, timeout elapses, or
// ctx is cancelled. Only cancellation is reported as an error.
func waitTransition(ctx context.Context, done <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
