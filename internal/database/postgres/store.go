// Package postgres implements the repository contracts on PostgreSQL with pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FreeLunch_Go/internal/database/generated"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/repository"
)

var (
	_ repository.Profession  = (*Store)(nil)
	_ repository.ItemCatalog = (*Store)(nil)
	_ repository.Recipe      = (*Store)(nil)
	_ repository.Auction     = (*Store)(nil)
	_ repository.Retention   = (*Store)(nil)
	_ repository.RunLock     = (*Store)(nil)
)

// Store is the single pgx-backed repository used by every ingestor.
// Static queries are sqlc-generated. Bulk writes and existence checks build SQL per table.
type Store struct {
	pool *pgxpool.Pool
	q    *generated.Queries
}

// NewStore creates a Store on pool
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
		q:    generated.New(pool),
	}
}

// Ping checks the connection, used by the readiness check
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Exists reports whether a row of kind with key is stored
func (s *Store) Exists(ctx context.Context, kind domain.Kind, key any) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}
	args, ok := t.keyArgs(key)
	if !ok {
		return false, fmt.Errorf("%s: %s %T", ErrMsgUnexpectedKey, kind, key)
	}

	var exists bool
	if err := s.pool.QueryRow(ctx, t.existsSQL, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s %s: %w", ErrMsgFailedToCheckExist, kind, err)
	}
	return exists, nil
}

// InsertBatch writes recs with COPY in one statement so a batch lands whole or not at all.
// With ignoreConflicts the rows are copied into a temporary table and merged with
// ON CONFLICT DO NOTHING.
func (s *Store) InsertBatch(ctx context.Context, kind domain.Kind, recs []domain.Record, ignoreConflicts bool) (int64, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	rows := make([][]any, 0, len(recs))
	for _, rec := range recs {
		if rec.Kind() != kind {
			return 0, fmt.Errorf("%s: %s in %s batch", ErrMsgKindMismatch, rec.Kind(), kind)
		}
		rows = append(rows, t.row(rec))
	}
	if len(rows) == 0 {
		return 0, nil
	}

	var n int64
	if ignoreConflicts {
		n, err = s.mergeBatch(ctx, t, rows)
	} else {
		n, err = s.pool.CopyFrom(ctx, pgx.Identifier{t.name}, t.columns, pgx.CopyFromRows(rows))
		if err != nil {
			err = fmt.Errorf("%s %s: %w", ErrMsgFailedToCopy, kind, translate(err))
		}
	}
	if err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Debug(LogMsgBatchInserted, "kind", kind, "rows", len(rows), "inserted", n)
	return n, nil
}

func (s *Store) mergeBatch(ctx context.Context, t *table, rows [][]any) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	staging := "staging_" + t.name
	if _, err := tx.Exec(ctx, fmt.Sprintf(SQLCreateStaging, pgx.Identifier{staging}.Sanitize(), t.ident())); err != nil {
		return 0, fmt.Errorf("%s %s: %w", ErrMsgFailedToStage, t.name, err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{staging}, t.columns, pgx.CopyFromRows(rows)); err != nil {
		return 0, fmt.Errorf("%s %s: %w", ErrMsgFailedToCopy, t.name, translate(err))
	}

	cols := t.columnList()
	tag, err := tx.Exec(ctx, fmt.Sprintf(SQLMergeStaging, t.ident(), cols, cols, pgx.Identifier{staging}.Sanitize()))
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", ErrMsgFailedToMerge, t.name, translate(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTx, err)
	}
	return tag.RowsAffected(), nil
}

// translate maps a foreign key violation onto domain.ErrDependencyOrdering
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeForeignKeyViolation {
		return fmt.Errorf("%w: %s", domain.ErrDependencyOrdering, pgErr.Detail)
	}
	return err
}

func toInts(ids []int32) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}

func int4ToPtr(v pgtype.Int4) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

func toDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}
