package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FreeLunch_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	err      error
	block    chan struct{}
}

func (j *testJob) Process(ctx context.Context) error {
	if j.block != nil {
		select {
		case <-j.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	atomic.AddInt32(j.executed, 1)
	return j.err
}

func (j *testJob) JobName() string { return "test" }

type panicJob struct{}

func (panicJob) Process(context.Context) error { panic("boom") }

func TestPool(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)
	ctx := context.Background()

	var executed int32
	pool := NewPool(2, 10)
	pool.Start(ctx)

	job := &testJob{executed: &executed}
	require.NoError(t, pool.Enqueue(ctx, job))
	require.NoError(t, pool.Enqueue(ctx, &testJob{executed: &executed, err: errors.New("fails")}))
	require.NoError(t, pool.Enqueue(ctx, panicJob{}))
	require.NoError(t, pool.Enqueue(ctx, job))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&executed) == 3 },
		time.Second, 5*time.Millisecond, "failing and panicking jobs do not kill workers")

	require.NoError(t, pool.Stop(ctx))
	checker.Check(1)
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	ctx := context.Background()
	pool := NewPool(1, 1)
	pool.Start(ctx)
	require.NoError(t, pool.Stop(ctx))
	require.NoError(t, pool.Stop(ctx), "stop is idempotent")

	var executed int32
	assert.ErrorIs(t, pool.Enqueue(ctx, &testJob{executed: &executed}), ErrPoolStopped)
	assert.ErrorIs(t, pool.TryEnqueue(&testJob{executed: &executed}), ErrPoolStopped)
}

func TestPool_TryEnqueueDropsWhenBusy(t *testing.T) {
	ctx := context.Background()
	pool := NewPool(1, 1)
	pool.Start(ctx)

	var executed int32
	release := make(chan struct{})
	running := &testJob{executed: &executed, block: release}
	require.NoError(t, pool.TryEnqueue(running))
	// wait until the worker picked it up so the queue slot is free again
	assert.Eventually(t, func() bool { return len(pool.jobQueue) == 0 }, time.Second, time.Millisecond)

	require.NoError(t, pool.TryEnqueue(&testJob{executed: &executed}))
	assert.ErrorIs(t, pool.TryEnqueue(&testJob{executed: &executed}), ErrQueueFull)

	close(release)
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&executed) == 2 }, time.Second, 5*time.Millisecond)
	require.NoError(t, pool.Stop(ctx))
}

func TestPool_StopCancelsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(1, 1)
	pool.Start(ctx)

	var executed int32
	require.NoError(t, pool.Enqueue(ctx, &testJob{executed: &executed, block: make(chan struct{})}))
	assert.Eventually(t, func() bool { return len(pool.jobQueue) == 0 }, time.Second, time.Millisecond)

	cancel()
	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	require.NoError(t, pool.Stop(stopCtx))
	assert.Zero(t, atomic.LoadInt32(&executed))
}

func TestPool_StopTimesOut(t *testing.T) {
	ctx := context.Background()
	pool := NewPool(1, 1)
	pool.Start(ctx)

	var executed int32
	release := make(chan struct{})
	defer close(release)
	require.NoError(t, pool.Enqueue(ctx, &testJob{executed: &executed, block: release}))
	assert.Eventually(t, func() bool { return len(pool.jobQueue) == 0 }, time.Second, time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Stop(stopCtx), context.DeadlineExceeded)
}
