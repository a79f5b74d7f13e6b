// Package pipeline runs ordered ingestion steps under a named run-lock.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/metrics"
	"github.com/osse101/FreeLunch_Go/internal/repository"
)

// Step is one named unit of a pipeline
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Runner executes step lists. Two runs of the same pipeline never overlap, even
// across processes, because the lock lives in the database.
type Runner struct {
	lock repository.RunLock
}

// NewRunner creates a runner guarded by lock
func NewRunner(lock repository.RunLock) *Runner {
	return &Runner{lock: lock}
}

// Run executes steps in order and stops at the first failure.
// It fails with domain.ErrRunLocked when the pipeline, or one sharing its lock,
// is already running elsewhere.
func (r *Runner) Run(ctx context.Context, name string, steps []Step) error {
	release, err := r.lock.TryLock(ctx, LockName(name))
	if err != nil {
		return err
	}

	if _, ok := logger.RunIDFromContext(ctx); !ok {
		ctx = logger.WithRunID(ctx, logger.GenerateRunID())
	}
	log := logger.FromContext(ctx).With("pipeline", name)

	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			log.Error(LogMsgReleaseFailed, "error", err)
		}
	}()

	log.Info(LogMsgRunStarted, "steps", len(steps))
	started := time.Now()

	for _, step := range steps {
		stepStart := time.Now()
		log.Info(LogMsgStepStarted, "step", step.Name)

		err := step.Run(ctx)
		elapsed := time.Since(stepStart)
		metrics.StepDuration.WithLabelValues(name, step.Name).Observe(elapsed.Seconds())

		if err != nil {
			metrics.StepFailures.WithLabelValues(name, step.Name).Inc()
			log.Error(LogMsgStepFailed, "step", step.Name, "duration", elapsed, "error", err)
			return fmt.Errorf("%s %s/%s: %w", ErrMsgStepFailed, name, step.Name, err)
		}
		log.Info(LogMsgStepFinished, "step", step.Name, "duration", elapsed)
	}

	metrics.LastSuccess.WithLabelValues(name).SetToCurrentTime()
	log.Info(LogMsgRunFinished, "duration", time.Since(started))
	return nil
}

// Job adapts a pipeline to the worker pool
type Job struct {
	Runner *Runner
	Name   string
	Steps  []Step
}

// JobName labels the job in worker metrics
func (j *Job) JobName() string { return j.Name }

// Process runs the pipeline. A run skipped because of the lock is not a failure.
func (j *Job) Process(ctx context.Context) error {
	err := j.Runner.Run(ctx, j.Name, j.Steps)
	if errors.Is(err, domain.ErrRunLocked) {
		logger.FromContext(ctx).Warn(LogMsgRunLockedSkip, "pipeline", j.Name)
		return nil
	}
	return err
}
