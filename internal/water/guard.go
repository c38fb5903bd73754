package water

import (
	"context"
	"log/slog"
	"time"
)

// DefaultExecutionTimeout sits just under the 10s budget of the hosting
// environment.
const DefaultExecutionTimeout = 9 * time.Second

// guarded runs fn under a deadline. Timeouts and errors both degrade to an
// empty, non-nil slice. The context handed to fn is cancelled when guarded
// returns, so in-flight fetches are aborted rather than left running.
func guarded[T any](ctx context.Context, timeout time.Duration, op string, rec Recorder, fn func(ctx context.Context) ([]T, error)) []T {
	if timeout <= 0 {
		timeout = DefaultExecutionTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		items []T
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		items, err := fn(ctx)
		done <- outcome{items: items, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			slog.Warn("operation returned no data", "operation", op, "err", out.err)
			return []T{}
		}
		if out.items == nil {
			return []T{}
		}
		return out.items
	case <-ctx.Done():
		rec.GuardTimedOut(op)
		slog.Error("operation took too long", "operation", op, "timeout", timeout, "err", ctx.Err())
		return []T{}
	}
}
