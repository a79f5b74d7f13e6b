package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/FreeLunch_Go/internal/database/generated"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/logger"
)

// ListConnectedRealmIDs returns the connected realms with a member realm in a region of version
func (s *Store) ListConnectedRealmIDs(ctx context.Context, version domain.GameVersion) ([]int, error) {
	ids, err := s.q.ListConnectedRealmIDs(ctx, string(version))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToListConnectedRealms, version, err)
	}
	return toInts(ids), nil
}

// SummaryExists reports whether any summary row exists for the bucket
func (s *Store) SummaryExists(ctx context.Context, date time.Time, hour int) (bool, error) {
	exists, err := s.q.SummaryExists(ctx, generated.SummaryExistsParams{
		UpdateDate: toDate(date),
		UpdateHour: int16(hour),
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckSummary, err)
	}
	return exists, nil
}

// AggregateAuctions groups the buyout listings of one bucket per house and item
func (s *Store) AggregateAuctions(ctx context.Context, date time.Time, hour int) ([]domain.AuctionSummary, error) {
	rows, err := s.q.AggregateAuctions(ctx, generated.AggregateAuctionsParams{
		UpdateDate: toDate(date),
		UpdateHour: int16(hour),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToAggregate, err)
	}
	out := make([]domain.AuctionSummary, len(rows))
	for i, row := range rows {
		out[i] = domain.AuctionSummary{
			House:       domain.AuctionHouseKey{ConnectedRealmID: int(row.ConnectedRealmID), FactionID: int(row.FactionID)},
			ItemID:      int(row.ItemID),
			Quantity:    row.Quantity,
			VWAP:        row.Vwap,
			MinPrice:    row.MinPrice,
			MinQuantity: row.MinQuantity,
			UpdateDate:  date,
			UpdateHour:  hour,
		}
	}
	return out, nil
}

// DeleteAuctionsBefore removes listings up to cutoff except those from the first of a month
func (s *Store) DeleteAuctionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.q.DeleteAuctionsBefore(ctx, toDate(cutoff))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteAuctions, err)
	}
	return n, nil
}

// DeleteSummariesBefore removes summaries up to cutoff except those from the first of a month
func (s *Store) DeleteSummariesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.q.DeleteSummariesBefore(ctx, toDate(cutoff))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteSummaries, err)
	}
	return n, nil
}

// Reclaim runs VACUUM ANALYZE on the pruned tables.
// VACUUM refuses to run inside a transaction block, so it goes over the simple protocol.
func (s *Store) Reclaim(ctx context.Context) error {
	for _, kind := range []domain.Kind{domain.KindAuction, domain.KindAuctionSummary} {
		t, err := tableFor(kind)
		if err != nil {
			return err
		}
		started := time.Now()
		if _, err := s.pool.Exec(ctx, fmt.Sprintf(SQLVacuumAnalyze, t.ident()), pgx.QueryExecModeSimpleProtocol); err != nil {
			return fmt.Errorf("%s %s: %w", ErrMsgFailedToVacuum, t.name, err)
		}
		logger.FromContext(ctx).Info(LogMsgVacuumed, "table", t.name, "duration", time.Since(started))
	}
	return nil
}
