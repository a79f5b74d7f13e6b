package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FreeLunch_Go/internal/scheduler"
	"github.com/osse101/FreeLunch_Go/internal/server"
	"github.com/osse101/FreeLunch_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Scheduler *scheduler.Scheduler
	Server    *server.Server
	Pool      *worker.Pool
	App       *App
}

// GracefulShutdown stops the daemon in dependency order:
// 1. Scheduler (no new ticks)
// 2. Ops server
// 3. Worker pool (wait for the running pipeline until ctx ends)
// 4. Database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Pool != nil {
		if err := c.Pool.Stop(ctx); err != nil {
			slog.Error(LogMsgPoolForcedShutdown, "error", err)
		}
	}

	if c.App != nil {
		c.App.Close()
	}

	slog.Info(LogMsgStopped)
}
