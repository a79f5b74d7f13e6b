package repository

import (
	"context"
	"time"

	"github.com/osse101/FreeLunch_Go/internal/domain"
)

// Auction backs the auction house, listing and summary steps
type Auction interface {
	Records
	// ListConnectedRealmIDs returns connected realms with at least one realm in a region of version
	ListConnectedRealmIDs(ctx context.Context, version domain.GameVersion) ([]int, error)
	SummaryExists(ctx context.Context, date time.Time, hour int) (bool, error)
	// AggregateAuctions groups buyout listings of one bucket per house and item.
	// The minimum price and its quantity come from the rank-1 price partition.
	AggregateAuctions(ctx context.Context, date time.Time, hour int) ([]domain.AuctionSummary, error)
}

// Retention prunes history outside the kept window
type Retention interface {
	// DeleteAuctionsBefore removes listings with update_date <= cutoff, keeping the first day of each month
	DeleteAuctionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteSummariesBefore(ctx context.Context, cutoff time.Time) (int64, error)
	Reclaim(ctx context.Context) error
}

// RunLock excludes concurrent ingestion runs
type RunLock interface {
	// TryLock returns domain.ErrRunLocked when another session holds name
	TryLock(ctx context.Context, name string) (release func(context.Context) error, err error)
}
