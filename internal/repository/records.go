// Package repository declares the storage contracts the ingestors depend on.
package repository

import (
	"context"

	"github.com/osse101/FreeLunch_Go/internal/domain"
)

// Records is the generic per-kind contract used by the bulk loader
type Records interface {
	Exists(ctx context.Context, kind domain.Kind, key any) (bool, error)
	InsertBatch(ctx context.Context, kind domain.Kind, recs []domain.Record, ignoreConflicts bool) (int64, error)
}
