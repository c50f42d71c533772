package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

// WithTimeout runs fn under a deadline. When the deadline passes first the
// returned error wraps apperrors.ErrTimeout; fn keeps running until it
// notices its context is done.
func WithTimeout(ctx context.Context, timeout time.Duration, name string, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- fn(timeoutCtx)
	}()
	select {
	case err := <-done:
		if errors.Is(err, context.DeadlineExceeded) && timeoutCtx.Err() != nil && ctx.Err() == nil {
			return fmt.Errorf("%s exceeded %v: %w", name, timeout, apperrors.ErrTimeout)
		}
		return err
	case <-timeoutCtx.Done():
		if ctx.Err() != nil {
			return fmt.Errorf("%s: parent context cancelled: %w", name, ctx.Err())
		}
		return fmt.Errorf("%s exceeded %v: %w", name, timeout, apperrors.ErrTimeout)
	}
}
