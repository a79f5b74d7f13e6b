package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/FreeLunch_Go/internal/database"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/pipeline"
)

// singleSteps are the catalog steps that can be run by hand, each under the catalog lock
var singleSteps = []string{
	pipeline.StepExpansions,
	pipeline.StepProfessions,
	pipeline.StepSkillTiers,
	pipeline.StepItemClasses,
	pipeline.StepHierarchy,
	pipeline.StepStageRecipes,
	pipeline.StepRepairSkillTiers,
	pipeline.StepRepairQuantities,
	pipeline.StepItems,
	pipeline.StepVendorFlags,
	pipeline.StepRecipes,
	pipeline.StepRepairRecipeMedia,
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer e.close()
			version, err := database.Migrate(cmd.Context(), e.app.Pool)
			if err != nil {
				return err
			}
			logger.FromContext(cmd.Context()).Info(LogMsgMigrated, "version", version)
			return nil
		},
	}
}

func newCatalogCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Load expansions, professions, item classes, items and recipes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.run(cmd.Context(), pipeline.PipelineCatalog, pipeline.CatalogSteps(e.app.Services))
		},
	}
}

func newStepCmd(e *env, name string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Run only the %s catalog step.", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			step, ok := pipeline.Lookup(pipeline.CatalogSteps(e.app.Services), name)
			if !ok {
				e.close()
				return fmt.Errorf("%s: %s", ErrMsgUnknownStep, name)
			}
			return e.run(cmd.Context(), pipeline.PipelineCatalog, []pipeline.Step{step})
		},
	}
}

func newRealmsCmd(e *env) *cobra.Command {
	var versions []string
	cmd := &cobra.Command{
		Use:   "realms [--game-version RETAIL|CLASSIC]...",
		Short: "Load regions, realms and connected realms, then classic auction houses.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := parseVersions(versions)
			if err != nil {
				e.close()
				return err
			}
			return e.run(cmd.Context(), pipeline.PipelineRealms, pipeline.RealmSteps(e.app.Services, parsed...))
		},
	}
	cmd.Flags().StringSliceVar(&versions, flagGameVersion, nil, "Game versions to load; all when omitted.")
	return cmd
}

func newAuctionsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "auctions",
		Short: "Snapshot the configured auction houses and summarize the current hour.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.run(cmd.Context(), pipeline.PipelineAuctions, pipeline.AuctionSteps(e.app.Services))
		},
	}
}

func newSummaryCmd(e *env) *cobra.Command {
	var (
		date string
		hour int
	)
	cmd := &cobra.Command{
		Use:   "summary --date YYYY-MM-DD --hour H",
		Short: "Summarize one hourly snapshot bucket.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, h, err := parseBucket(date, hour, time.Now())
			if err != nil {
				e.close()
				return err
			}
			return e.run(cmd.Context(), pipeline.PipelineSummary, pipeline.SummarySteps(e.app.Services, d, h))
		},
	}
	cmd.Flags().StringVar(&date, flagDate, "", "UTC date of the bucket; today when omitted.")
	cmd.Flags().IntVar(&hour, flagHour, -1, "UTC hour of the bucket; the current hour when omitted.")
	return cmd
}

func newPruneCmd(e *env) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "prune [--days N]",
		Short: "Delete auction history older than N days, keeping first-of-month snapshots.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed(flagDays) {
				days = e.cfg.RetentionDays
			}
			return e.run(cmd.Context(), pipeline.PipelineRetention, pipeline.RetentionSteps(e.app.Services, days))
		},
	}
	cmd.Flags().IntVar(&days, flagDays, 0, "Days of history to keep; RETENTION_DAYS when omitted.")
	return cmd
}

// parseVersions validates game version flags
func parseVersions(raw []string) ([]domain.GameVersion, error) {
	out := make([]domain.GameVersion, 0, len(raw))
	for _, r := range raw {
		v, err := domain.ParseGameVersion(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgInvalidVersion, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseBucket resolves the summary flags against now, defaults included
func parseBucket(date string, hour int, now time.Time) (time.Time, int, error) {
	now = now.UTC()
	d := domain.DateOf(now)
	if date != "" {
		parsed, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return time.Time{}, 0, fmt.Errorf("%s: %w", ErrMsgInvalidDate, err)
		}
		d = parsed
	}
	if hour == -1 {
		hour = now.Hour()
	}
	if hour < 0 || hour > 23 {
		return time.Time{}, 0, fmt.Errorf("%s: %d", ErrMsgInvalidHour, hour)
	}
	return d, hour, nil
}
