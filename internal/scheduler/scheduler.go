package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/worker"
)

// Log messages
const (
	LogMsgJobScheduled = "Job scheduled"
	LogMsgJobSkipped   = "Previous run still queued, skipping tick"
	LogMsgEnqueueFail  = "Failed to enqueue scheduled job"
)

// Enqueuer is the part of worker.Pool the scheduler needs
type Enqueuer interface {
	TryEnqueue(job worker.Job) error
}

// Scheduler feeds jobs into a worker pool at fixed intervals
type Scheduler struct {
	pool Enqueuer
	quit chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// Option configures one scheduled job
type Option func(*entry)

type entry struct {
	immediate bool
}

// Immediately also runs the job once when it is scheduled
func Immediately() Option {
	return func(e *entry) { e.immediate = true }
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval.
// A tick is dropped when the previous run of any job still occupies the queue,
// so slow runs never pile up.
func (s *Scheduler) Schedule(ctx context.Context, interval time.Duration, job worker.Job, opts ...Option) {
	var e entry
	for _, opt := range opts {
		opt(&e)
	}
	log := logger.FromContext(ctx)
	log.Info(LogMsgJobScheduled, "job", jobName(job), "interval", interval, "immediate", e.immediate)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if e.immediate {
			s.enqueue(ctx, job)
		}
		for {
			select {
			case <-ticker.C:
				s.enqueue(ctx, job)
			case <-s.quit:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *Scheduler) enqueue(ctx context.Context, job worker.Job) {
	err := s.pool.TryEnqueue(job)
	switch {
	case err == nil:
	case errors.Is(err, worker.ErrQueueFull):
		logger.FromContext(ctx).Warn(LogMsgJobSkipped, "job", jobName(job))
	default:
		logger.FromContext(ctx).Error(LogMsgEnqueueFail, "job", jobName(job), "error", err)
	}
}

func jobName(job worker.Job) string {
	if n, ok := job.(worker.Named); ok {
		return n.JobName()
	}
	return ""
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}
