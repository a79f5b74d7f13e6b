package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the embedded goose migration files
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, MigrationsDir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrate applies every pending migration and returns the resulting schema version
func Migrate(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			slog.Default().Warn(ErrMsgFailedToCloseMigrator, "error", err)
		}
	}()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, Migrations())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToLoadMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	for _, r := range results {
		slog.Default().Info(LogMsgMigrationApplied,
			"version", r.Source.Version,
			"file", r.Source.Path,
			"duration", r.Duration)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	if len(results) == 0 {
		slog.Default().Info(LogMsgSchemaUpToDate, "version", version)
	}
	return version, nil
}
