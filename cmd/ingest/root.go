package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osse101/FreeLunch_Go/internal/bootstrap"
	"github.com/osse101/FreeLunch_Go/internal/config"
	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/metrics"
	"github.com/osse101/FreeLunch_Go/internal/pipeline"
)

// env is the state shared by every subcommand, built once before the command runs
type env struct {
	cfg     *config.Config
	app     *bootstrap.App
	logFile *os.File
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "ingest",
		Short:         "ingest loads game catalog, realm and auction data from Battle.net into Postgres.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.open(cmd.Context())
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			e.close()
		},
	}

	root.AddCommand(
		newMigrateCmd(e),
		newCatalogCmd(e),
		newRealmsCmd(e),
		newAuctionsCmd(e),
		newSummaryCmd(e),
		newPruneCmd(e),
	)
	for _, name := range singleSteps {
		root.AddCommand(newStepCmd(e, name))
	}
	return root
}

func (e *env) open(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgLoadConfig, err)
	}
	e.cfg = cfg

	logFile, err := bootstrap.SetupLogger(cfg, serviceName)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSetupLogger, err)
	}
	e.logFile = logFile

	if err := bootstrap.CheckEnvironment(); err != nil {
		e.close()
		return err
	}

	app, err := bootstrap.Initialize(ctx, cfg)
	if err != nil {
		e.close()
		return err
	}
	e.app = app
	return nil
}

// close is skipped by cobra when the command fails, so run wraps it too
func (e *env) close() {
	if e.app != nil {
		e.app.Close()
		e.app = nil
	}
	if e.logFile != nil {
		_ = e.logFile.Close()
		e.logFile = nil
	}
}

// run executes a pipeline under a fresh run id, then pushes metrics whatever the outcome
func (e *env) run(ctx context.Context, name string, steps []pipeline.Step) error {
	defer e.close()

	ctx = logger.WithRunID(ctx, logger.GenerateRunID())
	err := e.app.Runner.Run(ctx, name, steps)

	if pushErr := metrics.Push(ctx, e.cfg.MetricsPushURL, serviceName+"_"+name); pushErr != nil {
		logger.FromContext(ctx).Warn(LogMsgMetricsPushFailed, "error", pushErr)
	}
	return err
}
