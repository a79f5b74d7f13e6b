package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/metrics"
)

// ErrPoolStopped is returned by Enqueue after Stop
var ErrPoolStopped = errors.New(ErrMsgPoolStopped)

// ErrQueueFull is returned by TryEnqueue when no slot is free
var ErrQueueFull = errors.New(ErrMsgQueueFull)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Named is implemented by jobs that label their metrics and logs
type Named interface {
	JobName() string
}

func nameOf(job Job) string {
	if n, ok := job.(Named); ok {
		return n.JobName()
	}
	return fmt.Sprintf("%T", job)
}

// Pool runs jobs on a fixed number of workers.
// Jobs receive the context given to Start; cancelling it aborts in-flight work.
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	log := logger.FromContext(ctx).With("worker", id)
	for {
		select {
		case job := <-p.jobQueue:
			p.run(ctx, job, log)
		case <-p.quit:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pool) run(ctx context.Context, job Job, log *slog.Logger) {
	name := nameOf(job)
	defer func() {
		if r := recover(); r != nil {
			metrics.JobsTotal.WithLabelValues(name, metrics.JobStatusFailed).Inc()
			log.Error(LogMsgWorkerJobPanicked, "job", name, "panic", r)
		}
	}()

	if err := job.Process(ctx); err != nil {
		metrics.JobsTotal.WithLabelValues(name, metrics.JobStatusFailed).Inc()
		log.Error(LogMsgWorkerJobFailed, "job", name, "error", err)
		return
	}
	metrics.JobsTotal.WithLabelValues(name, metrics.JobStatusOK).Inc()
	log.Debug(LogMsgWorkerJobDone, "job", name)
}

// Enqueue blocks until the job is queued, ctx ends, or the pool stops
func (p *Pool) Enqueue(ctx context.Context, job Job) error {
	select {
	case <-p.quit:
		return ErrPoolStopped
	default:
	}
	select {
	case p.jobQueue <- job:
		return nil
	case <-p.quit:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryEnqueue queues the job only if a slot is free
func (p *Pool) TryEnqueue(job Job) error {
	select {
	case <-p.quit:
		return ErrPoolStopped
	default:
	}
	select {
	case p.jobQueue <- job:
		return nil
	default:
		metrics.JobsTotal.WithLabelValues(nameOf(job), metrics.JobStatusDropped).Inc()
		return ErrQueueFull
	}
}

// Stop stops the workers and waits for in-flight jobs, at most until ctx ends.
// Queued jobs that have not started are discarded.
func (p *Pool) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.quit) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgWorkerStopTimeout)
		return ctx.Err()
	}
}
