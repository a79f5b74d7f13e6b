// Command ingestd is the long-running ingestion daemon: it snapshots auctions every
// AUCTION_INTERVAL, prunes history every RETENTION_INTERVAL, and serves health checks and metrics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/FreeLunch_Go/internal/bootstrap"
	"github.com/osse101/FreeLunch_Go/internal/config"
	"github.com/osse101/FreeLunch_Go/internal/pipeline"
	"github.com/osse101/FreeLunch_Go/internal/scheduler"
	"github.com/osse101/FreeLunch_Go/internal/server"
	"github.com/osse101/FreeLunch_Go/internal/worker"
)

const (
	serviceName = "ingestd"

	// Pipelines share the upstream rate limit and the database, so they run one at a time
	workerCount = 1
	queueSize   = 4

	shutdownTimeout = 30 * time.Second
)

const (
	LogMsgSchedulerStarted = "Scheduler started"
	LogMsgSignalReceived   = "Shutdown signal received"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg, serviceName)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := bootstrap.CheckEnvironment(); err != nil {
		return err
	}

	app, err := bootstrap.Initialize(ctx, cfg)
	if err != nil {
		return err
	}

	pool := worker.NewPool(workerCount, queueSize)
	pool.Start(ctx)

	sched := scheduler.New(pool)
	sched.Schedule(ctx, cfg.AuctionInterval, &pipeline.Job{
		Runner: app.Runner,
		Name:   pipeline.PipelineAuctions,
		Steps:  pipeline.AuctionSteps(app.Services),
	}, scheduler.Immediately())
	sched.Schedule(ctx, cfg.RetentionInterval, &pipeline.Job{
		Runner: app.Runner,
		Name:   pipeline.PipelineRetention,
		Steps:  pipeline.RetentionSteps(app.Services, cfg.RetentionDays),
	})
	slog.Info(LogMsgSchedulerStarted,
		"auction_interval", cfg.AuctionInterval,
		"retention_interval", cfg.RetentionInterval,
		"retention_days", cfg.RetentionDays)

	srv := server.NewServer(cfg.MetricsAddr, app.Store, cfg.Version, cfg.Environment)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		slog.Info(LogMsgSignalReceived)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
			Scheduler: sched,
			Server:    srv,
			Pool:      pool,
			App:       app,
		})
		return nil
	})

	return g.Wait()
}
