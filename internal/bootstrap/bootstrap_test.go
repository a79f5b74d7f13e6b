package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FreeLunch_Go/internal/bnet"
	"github.com/osse101/FreeLunch_Go/internal/config"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/testing/fakecatalog"
	"github.com/osse101/FreeLunch_Go/internal/testing/memstore"
)

var (
	_ Catalog = (*bnet.Client)(nil)
	_ Catalog = (*fakecatalog.Catalog)(nil)
	_ Store   = (*memstore.Store)(nil)
)

func TestLoadRefdata(t *testing.T) {
	t.Run("embedded defaults", func(t *testing.T) {
		tables, err := LoadRefdata("")
		require.NoError(t, err)
		assert.NotEmpty(t, tables.Expansions)
		assert.NotEmpty(t, tables.CraftingProfessions)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRefdata(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgLoadRefdata)
	})
}

func TestNewServices(t *testing.T) {
	tables, err := LoadRefdata("")
	require.NoError(t, err)
	store := memstore.New()

	services := NewServices(fakecatalog.New(), store, tables, ChunkSizes{Catalog: 5, Auction: 50})

	require.NotNil(t, services.Profession)
	require.NotNil(t, services.ItemCatalog)
	require.NotNil(t, services.Recipe)
	require.NotNil(t, services.Realm)
	require.NotNil(t, services.Auction)

	require.NoError(t, services.Profession.LoadExpansions(context.Background()))
	assert.Equal(t, len(tables.Expansions), store.Count(domain.KindExpansion))
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("stdout only without log dir", func(t *testing.T) {
		f, err := SetupLogger(&config.Config{LogLevel: "info", LogFormat: "text"}, "ingest")
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("writes a file and prunes old ones", func(t *testing.T) {
		dir := t.TempDir()
		for i := range LogFileRetentionCount + 3 {
			name := fmt.Sprintf(LogFileNamePattern, "ingest", fmt.Sprintf("2020-01-01_00-00-%02d", i))
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, LogFilePermission))
		}
		other := filepath.Join(dir, "ingestd_2020-01-01_00-00-00.log")
		require.NoError(t, os.WriteFile(other, nil, LogFilePermission))

		f, err := SetupLogger(&config.Config{LogLevel: "info", LogFormat: "json", LogDir: dir}, "ingest")
		require.NoError(t, err)
		require.NotNil(t, f)
		t.Cleanup(func() { _ = f.Close() })

		slog.Info("hello")
		data, err := os.ReadFile(f.Name())
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"hello"`)

		matches, err := filepath.Glob(filepath.Join(dir, "ingest_*.log"))
		require.NoError(t, err)
		assert.Len(t, matches, LogFileRetentionCount+1)
		assert.FileExists(t, other, "other services' logs are left alone")
		assert.NoFileExists(t, filepath.Join(dir, "ingest_2020-01-01_00-00-00.log"))
	})
}

func TestGracefulShutdown_NilComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}

func TestCheckEnvironment(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", config.ExpectedEnvSchemaVersion)
	t.Setenv("BNET_CLIENT_ID", "id")
	t.Setenv("BNET_CLIENT_SECRET", "secret")
	assert.NoError(t, CheckEnvironment())

	t.Setenv("ENV_SCHEMA_VERSION", "")
	assert.ErrorContains(t, CheckEnvironment(), config.ErrMsgSchemaNotSet)
}
