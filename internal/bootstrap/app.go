package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FreeLunch_Go/internal/auction"
	"github.com/osse101/FreeLunch_Go/internal/bnet"
	"github.com/osse101/FreeLunch_Go/internal/config"
	"github.com/osse101/FreeLunch_Go/internal/database"
	"github.com/osse101/FreeLunch_Go/internal/database/postgres"
	"github.com/osse101/FreeLunch_Go/internal/itemcatalog"
	"github.com/osse101/FreeLunch_Go/internal/loader"
	"github.com/osse101/FreeLunch_Go/internal/pipeline"
	"github.com/osse101/FreeLunch_Go/internal/profession"
	"github.com/osse101/FreeLunch_Go/internal/realm"
	"github.com/osse101/FreeLunch_Go/internal/recipe"
	"github.com/osse101/FreeLunch_Go/internal/refdata"
	"github.com/osse101/FreeLunch_Go/internal/repository"
)

// Catalog is every upstream call the ingestors make; *bnet.Client satisfies it
type Catalog interface {
	profession.Catalog
	itemcatalog.Catalog
	recipe.Catalog
	realm.Catalog
	auction.Catalog
}

// Store is every storage contract the ingestors need; *postgres.Store satisfies it
type Store interface {
	loader.Store
	repository.Profession
	repository.ItemCatalog
	repository.Recipe
	repository.Auction
	repository.Retention
}

// ChunkSizes sets the loader flush sizes. Auction snapshots get their own, larger chunk.
type ChunkSizes struct {
	Catalog int
	Auction int
}

// NewServices wires the ingestors over one store. Catalog ingestors share a loader so
// its existence cache survives across steps of a run.
func NewServices(catalog Catalog, store Store, tables *refdata.Tables, chunks ChunkSizes) pipeline.Services {
	catalogLoader := loader.New(store, chunks.Catalog)
	auctionLoader := loader.New(store, chunks.Auction)

	return pipeline.Services{
		Profession:  profession.NewService(catalog, store, catalogLoader, tables),
		ItemCatalog: itemcatalog.NewService(catalog, store, catalogLoader, tables),
		Recipe:      recipe.NewService(catalog, store, catalogLoader),
		Realm:       realm.NewService(catalog, catalogLoader),
		Auction:     auction.NewService(catalog, store, store, auctionLoader, tables),
	}
}

// App is the wired process: database, upstream client and the pipeline runner
type App struct {
	Config   *config.Config
	Tables   *refdata.Tables
	Pool     *pgxpool.Pool
	Store    *postgres.Store
	Catalog  *bnet.Client
	Services pipeline.Services
	Runner   *pipeline.Runner
}

// Initialize connects to the database and builds every service. Close releases the pool.
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	tables, err := LoadRefdata(cfg.RefdataPath)
	if err != nil {
		return nil, err
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgConnectDatabase, err)
	}

	store := postgres.NewStore(pool)
	client := bnet.New(bnet.Config{
		ClientID:          cfg.BNetClientID,
		ClientSecret:      cfg.BNetClientSecret,
		Region:            cfg.BNetRegion,
		Locale:            cfg.BNetLocale,
		BaseURL:           cfg.BNetAPIBaseURL,
		TokenURL:          cfg.BNetTokenURL,
		RequestsPerSecond: cfg.BNetRequestsPerSec,
		Burst:             cfg.BNetBurst,
		MaxRetries:        cfg.BNetMaxRetries,
		RetryWait:         cfg.BNetRetryWait,
		RetryMaxWait:      cfg.BNetRetryMaxWait,
		Timeout:           cfg.BNetTimeout,
	})

	return &App{
		Config:  cfg,
		Tables:  tables,
		Pool:    pool,
		Store:   store,
		Catalog: client,
		Services: NewServices(client, store, tables, ChunkSizes{
			Catalog: cfg.LoaderChunkSize,
			Auction: cfg.AuctionChunkSize,
		}),
		Runner: pipeline.NewRunner(store),
	}, nil
}

// Close releases the database pool
func (a *App) Close() {
	a.Pool.Close()
}

// LoadRefdata reads the tables from path, or the embedded defaults when path is empty
func LoadRefdata(path string) (*refdata.Tables, error) {
	var (
		tables *refdata.Tables
		err    error
	)
	if path == "" {
		tables, err = refdata.Default()
	} else {
		tables, err = refdata.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadRefdata, err)
	}
	slog.Debug(LogMsgRefdataLoaded,
		"path", path,
		"expansions", len(tables.Expansions),
		"auction_targets", len(tables.AuctionTargets))
	return tables, nil
}
