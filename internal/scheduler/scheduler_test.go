package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type warmerFunc func(ctx context.Context)

func (f warmerFunc) Warm(ctx context.Context) { f(ctx) }

func TestStartRunsWarmUp(t *testing.T) {
	calls := make(chan time.Time, 8)
	s := New(50*time.Millisecond, time.Second, warmerFunc(func(ctx context.Context) {
		deadline, ok := ctx.Deadline()
		if !ok {
			return
		}
		select {
		case calls <- deadline:
		default:
		}
	}))

	require.NoError(t, s.Start())
	defer s.Stop()

	select {
	case deadline := <-calls:
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
	case <-time.After(2 * time.Second):
		t.Fatal("warm-up job did not run")
	}
}

func TestStartDisabled(t *testing.T) {
	s := New(0, time.Second, warmerFunc(func(context.Context) {
		t.Error("warm-up must not run when disabled")
	}))

	require.NoError(t, s.Start())
	s.Stop()
}
