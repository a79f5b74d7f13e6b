// Package auction loads auction houses, hourly listing snapshots and their summaries.
package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/FreeLunch_Go/internal/bnet"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/loader"
	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/refdata"
	"github.com/osse101/FreeLunch_Go/internal/repository"
	"github.com/osse101/FreeLunch_Go/internal/resolve"
)

// Catalog is the part of the upstream client this package reads
type Catalog interface {
	GetAuctionHouseIndex(ctx context.Context, version domain.GameVersion, connectedRealmID int) (*bnet.AuctionHouseIndex, error)
	GetAuctions(ctx context.Context, version domain.GameVersion, connectedRealmID, auctionHouseID int) (*bnet.AuctionSnapshot, error)
}

// Service defines the auction load steps
type Service interface {
	LoadAuctionHouses(ctx context.Context, version domain.GameVersion) error
	LoadAuctionListings(ctx context.Context, version domain.GameVersion, connectedRealmID, factionID int) error
	// LoadAuctionSummary fails with domain.ErrDuplicateSummary when the bucket is already summarized
	LoadAuctionSummary(ctx context.Context, date time.Time, hour int) error
	// LoadConfiguredAuctions snapshots every configured house, then summarizes the current hour
	LoadConfiguredAuctions(ctx context.Context) error
	PruneHistory(ctx context.Context, days int) error
}

// Option configures the service
type Option func(*service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	catalog   Catalog
	repo      repository.Auction
	retention repository.Retention
	loader    *loader.Loader
	tables    *refdata.Tables
	now       func() time.Time
}

// NewService creates a new auction service
func NewService(catalog Catalog, repo repository.Auction, retention repository.Retention, ld *loader.Loader, tables *refdata.Tables, opts ...Option) Service {
	s := &service{
		catalog:   catalog,
		repo:      repo,
		retention: retention,
		loader:    ld,
		tables:    tables,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadAuctionHouses loads the houses of every connected realm of version
func (s *service) LoadAuctionHouses(ctx context.Context, version domain.GameVersion) error {
	ids, err := s.repo.ListConnectedRealmIDs(ctx, version)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgListRealmsFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgLoadingHouses, "game_version", version, "connected_realms", len(ids))

	for _, crID := range ids {
		index, err := s.catalog.GetAuctionHouseIndex(ctx, version, crID)
		if err != nil {
			return fmt.Errorf("%s %d: %w", ErrMsgHouseIndexFailed, crID, err)
		}
		for _, ref := range index.Auctions {
			faction, err := resolve.Faction(ref.ID)
			if err != nil {
				return fmt.Errorf("%s: %w", ErrMsgResolveFailed, err)
			}
			house := &domain.AuctionHouse{
				ConnectedRealmID: crID,
				FactionID:        ref.ID,
				Name:             ref.Name,
				Faction:          faction,
			}
			if err := s.loader.Add(ctx, house); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
			}
		}
	}

	if err := s.loader.CommitRemaining(ctx, domain.KindAuctionHouse); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	return nil
}

// LoadAuctionListings snapshots one house into the current UTC hour bucket
func (s *service) LoadAuctionListings(ctx context.Context, version domain.GameVersion, connectedRealmID, factionID int) error {
	return s.loadListings(ctx, version, domain.AuctionHouseKey{ConnectedRealmID: connectedRealmID, FactionID: factionID}, s.now().UTC())
}

func (s *service) loadListings(ctx context.Context, version domain.GameVersion, house domain.AuctionHouseKey, now time.Time) error {
	log := logger.FromContext(ctx).With("connected_realm_id", house.ConnectedRealmID, "faction_id", house.FactionID)

	snapshot, err := s.catalog.GetAuctions(ctx, version, house.ConnectedRealmID, house.FactionID)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgAuctionsFailed, house, err)
	}
	log.Info(LogMsgLoadingListings, "listings", len(snapshot.Auctions))

	date, hour := domain.DateOf(now), now.Hour()
	listings := make([]*domain.Auction, 0, len(snapshot.Auctions))
	var invalid int
	for _, l := range snapshot.Auctions {
		if l.Quantity <= 0 {
			invalid++
			continue
		}
		tl, err := resolve.TimeLeft(l.TimeLeft)
		if err != nil {
			return fmt.Errorf("%s: auction %d: %w", ErrMsgResolveFailed, l.ID, err)
		}

		a := &domain.Auction{
			House:      house,
			AuctionID:  l.ID,
			ItemID:     l.Item.ID,
			Quantity:   l.Quantity,
			TimeLeft:   tl,
			UpdateTime: now,
			UpdateDate: date,
			UpdateHour: hour,
		}
		a.BidUnitPrice, a.BuyoutUnitPrice = unitPrices(l)
		listings = append(listings, a)
	}
	if invalid > 0 {
		log.Warn(LogMsgInvalidListing, "count", invalid)
	}

	// a failed house leaves nothing buffered for the next one
	for _, a := range listings {
		if err := s.loader.Add(ctx, a, loader.ForceAdd(), loader.IgnoreConflicts()); err != nil {
			s.discardListings(ctx)
			return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
		}
	}
	if err := s.loader.CommitRemaining(ctx, domain.KindAuction); err != nil {
		s.discardListings(ctx)
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	log.Info(LogMsgListingsLoaded, "listings", len(listings), "update_date", date.Format(time.DateOnly), "update_hour", hour)
	return nil
}

func (s *service) discardListings(ctx context.Context) {
	if n := s.loader.Discard(domain.KindAuction); n > 0 {
		logger.FromContext(ctx).Warn(LogMsgListingsDiscarded, "listings", n)
	}
}

// unitPrices divides listing totals by quantity. A unit_price from upstream is already
// per unit and only ever applies to buyouts.
func unitPrices(l bnet.Listing) (bid, buyout *float64) {
	perUnit := func(total *int64) *float64 {
		if total == nil {
			return nil
		}
		v := float64(*total) / float64(l.Quantity)
		return &v
	}
	bid = perUnit(l.Bid)
	buyout = perUnit(l.Buyout)
	if l.UnitPrice != nil {
		v := float64(*l.UnitPrice)
		buyout = &v
	}
	return bid, buyout
}

// LoadAuctionSummary aggregates the buyout listings of one hourly bucket
func (s *service) LoadAuctionSummary(ctx context.Context, date time.Time, hour int) error {
	log := logger.FromContext(ctx)
	date = domain.DateOf(date)

	exists, err := s.repo.SummaryExists(ctx, date, hour)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSummaryFailed, err)
	}
	if exists {
		return fmt.Errorf("%w: %s hour %d", domain.ErrDuplicateSummary, date.Format(time.DateOnly), hour)
	}
	log.Info(LogMsgSummarizing, "update_date", date.Format(time.DateOnly), "update_hour", hour)

	rows, err := s.repo.AggregateAuctions(ctx, date, hour)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSummaryFailed, err)
	}

	now := s.now().UTC()
	for i := range rows {
		row := &rows[i]
		row.UpdateTime = now
		if err := s.loader.Add(ctx, row, loader.ForceAdd()); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
		}
	}
	if err := s.loader.CommitRemaining(ctx, domain.KindAuctionSummary); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	log.Info(LogMsgSummaryLoaded, "rows", len(rows))
	return nil
}

// LoadConfiguredAuctions keeps going when a single house fails, so one realm outage does
// not cost the other snapshots. The failures are returned joined.
func (s *service) LoadConfiguredAuctions(ctx context.Context) error {
	log := logger.FromContext(ctx)
	now := s.now().UTC()

	var errs []error
	for _, target := range s.tables.AuctionTargets {
		for _, faction := range target.FactionIDs {
			house := domain.AuctionHouseKey{ConnectedRealmID: target.ConnectedRealmID, FactionID: faction}
			if err := s.loadListings(ctx, target.Version, house, now); err != nil {
				if ctx.Err() != nil {
					return err
				}
				log.Error(LogMsgTargetFailed, "target", target.Name, "auction_house", house.String(), "error", err)
				errs = append(errs, err)
			}
		}
	}

	err := s.LoadAuctionSummary(ctx, now, now.Hour())
	if errors.Is(err, domain.ErrDuplicateSummary) {
		log.Warn(LogMsgSummaryExists, "update_hour", now.Hour())
		err = nil
	}
	errs = append(errs, err)
	return errors.Join(errs...)
}

// PruneHistory deletes listings and summaries older than days, keeping the first day of
// each month, then reclaims the space
func (s *service) PruneHistory(ctx context.Context, days int) error {
	if days <= 0 {
		return fmt.Errorf("%s: %d", ErrMsgInvalidRetention, days)
	}
	cutoff := domain.DateOf(s.now()).AddDate(0, 0, -days)

	auctions, err := s.retention.DeleteAuctionsBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgPruneFailed, err)
	}
	summaries, err := s.retention.DeleteSummariesBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgPruneFailed, err)
	}
	if err := s.retention.Reclaim(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgPruneFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgPruned,
		"cutoff", cutoff.Format(time.DateOnly), "auctions", auctions, "summaries", summaries)
	return nil
}
