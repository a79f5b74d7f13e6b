package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FreeLunch_Go/internal/bootstrap"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/pipeline"
	"github.com/osse101/FreeLunch_Go/internal/testing/fakecatalog"
	"github.com/osse101/FreeLunch_Go/internal/testing/memstore"
)

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	want := []string{"migrate", "catalog", "realms", "auctions", "summary", "prune",
		"professions", "skill-tiers", "item-classes", "hierarchy", "stage-recipes", "items", "vendor-flags", "recipes"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestSingleSteps_AreCatalogSteps(t *testing.T) {
	tables, err := bootstrap.LoadRefdata("")
	require.NoError(t, err)
	services := bootstrap.NewServices(fakecatalog.New(), memstore.New(), tables, bootstrap.ChunkSizes{Catalog: 1, Auction: 1})

	steps := pipeline.CatalogSteps(services)
	for _, name := range singleSteps {
		_, ok := pipeline.Lookup(steps, name)
		assert.True(t, ok, name)
	}
	assert.Len(t, singleSteps, len(steps))
}

func TestParseVersions(t *testing.T) {
	got, err := parseVersions([]string{"classic", " RETAIL "})
	require.NoError(t, err)
	assert.Equal(t, []domain.GameVersion{domain.GameVersionClassic, domain.GameVersionRetail}, got)

	got, err = parseVersions(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseVersions([]string{"wrath"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidVersion)
}

func TestParseBucket(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 35, 0, 0, time.UTC)

	t.Run("defaults to the current hour", func(t *testing.T) {
		d, h, err := parseBucket("", -1, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), d)
		assert.Equal(t, 14, h)
	})

	t.Run("explicit bucket", func(t *testing.T) {
		d, h, err := parseBucket("2024-02-29", 0, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)
		assert.Equal(t, 0, h)
	})

	t.Run("rejects a bad date", func(t *testing.T) {
		_, _, err := parseBucket("09/03/2024", 1, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgInvalidDate)
	})

	t.Run("rejects an out of range hour", func(t *testing.T) {
		_, _, err := parseBucket("", 24, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgInvalidHour)
	})
}
