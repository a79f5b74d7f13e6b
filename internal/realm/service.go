// Package realm loads regions, realms and connected realms for one game version.
package realm

import (
	"context"
	"fmt"

	"github.com/osse101/FreeLunch_Go/internal/bnet"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/loader"
	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/resolve"
)

// Catalog is the part of the upstream client this package reads
type Catalog interface {
	GetRegionIndex(ctx context.Context, version domain.GameVersion) (*bnet.RegionIndex, error)
	GetRegion(ctx context.Context, version domain.GameVersion, regionID int) (*bnet.Region, error)
	GetRealmIndex(ctx context.Context, version domain.GameVersion) (*bnet.RealmIndex, error)
	GetRealm(ctx context.Context, version domain.GameVersion, slug string) (*bnet.Realm, error)
	GetConnectedRealmIndex(ctx context.Context, version domain.GameVersion) (*bnet.ConnectedRealmIndex, error)
	GetConnectedRealm(ctx context.Context, version domain.GameVersion, connectedRealmID int) (*bnet.ConnectedRealm, error)
}

// Service defines the realm load steps
type Service interface {
	LoadRegions(ctx context.Context, version domain.GameVersion) error
	LoadRealms(ctx context.Context, version domain.GameVersion) error
	LoadConnectedRealms(ctx context.Context, version domain.GameVersion) error
}

type service struct {
	catalog Catalog
	loader  *loader.Loader
}

// NewService creates a new realm service
func NewService(catalog Catalog, ld *loader.Loader) Service {
	return &service{catalog: catalog, loader: ld}
}

// LoadRegions loads every region of version. Region ids are only given as links.
func (s *service) LoadRegions(ctx context.Context, version domain.GameVersion) error {
	index, err := s.catalog.GetRegionIndex(ctx, version)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgIndexFailed, bnet.EndpointRegionIndex, err)
	}
	logger.FromContext(ctx).Info(LogMsgLoadingRegions, "game_version", version, "count", len(index.Regions))

	for _, link := range index.Regions {
		id, err := bnet.IDFromHref(link.Href)
		if err != nil {
			return err
		}
		region, err := s.catalog.GetRegion(ctx, version, id)
		if err != nil {
			return fmt.Errorf("%s %d: %w", ErrMsgRegionFailed, id, err)
		}
		rec := &domain.Region{ID: id, Name: region.Name, Tag: region.Tag, Version: version}
		if err := s.loader.Add(ctx, rec); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
		}
	}

	if err := s.loader.CommitRemaining(ctx, domain.KindRegion); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	return nil
}

// LoadRealms loads every realm of version. The realm's region must already be loaded.
func (s *service) LoadRealms(ctx context.Context, version domain.GameVersion) error {
	index, err := s.catalog.GetRealmIndex(ctx, version)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgIndexFailed, bnet.EndpointRealmIndex, err)
	}
	logger.FromContext(ctx).Info(LogMsgLoadingRealms, "game_version", version, "count", len(index.Realms))

	for _, ref := range index.Realms {
		r, err := s.catalog.GetRealm(ctx, version, ref.Slug)
		if err != nil {
			return fmt.Errorf("%s %s: %w", ErrMsgRealmFailed, ref.Slug, err)
		}
		rec, err := buildRealm(r)
		if err != nil {
			return err
		}
		if err := s.loader.Add(ctx, rec); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
		}
	}

	if err := s.loader.CommitRemaining(ctx, domain.KindRealm); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	return nil
}

func buildRealm(r *bnet.Realm) (*domain.Realm, error) {
	rt, err := resolve.RealmType(r.Type.Type)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgResolveFailed, r.Slug, err)
	}
	category, err := resolve.RealmCategory(r.Category)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgResolveFailed, r.Slug, err)
	}
	return &domain.Realm{
		ID:       r.ID,
		RegionID: r.Region.ID,
		Name:     r.Name,
		Slug:     r.Slug,
		Type:     rt,
		Category: category,
		Timezone: r.Timezone,
	}, nil
}

// LoadConnectedRealms loads connected realms and their member links. Connected realms
// are committed before realm connections.
func (s *service) LoadConnectedRealms(ctx context.Context, version domain.GameVersion) error {
	index, err := s.catalog.GetConnectedRealmIndex(ctx, version)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgIndexFailed, bnet.EndpointConnectedRealmIdx, err)
	}
	logger.FromContext(ctx).Info(LogMsgLoadingConnectedRealms, "game_version", version, "count", len(index.ConnectedRealms))

	for _, link := range index.ConnectedRealms {
		id, err := bnet.IDFromHref(link.Href)
		if err != nil {
			return err
		}
		cr, err := s.catalog.GetConnectedRealm(ctx, version, id)
		if err != nil {
			return fmt.Errorf("%s %d: %w", ErrMsgConnectedRealmFailed, id, err)
		}

		status, err := resolve.RealmStatus(cr.Status.Type)
		if err != nil {
			return fmt.Errorf("%s %d: %w", ErrMsgResolveFailed, id, err)
		}
		population, err := resolve.RealmPopulation(cr.Population.Type)
		if err != nil {
			return fmt.Errorf("%s %d: %w", ErrMsgResolveFailed, id, err)
		}

		rec := &domain.ConnectedRealm{
			ID:         id,
			Name:       fmt.Sprintf(connectedRealmNameFormat, id),
			Status:     status,
			Population: population,
		}
		if err := s.loader.Add(ctx, rec, loader.WithoutAutoCommit()); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
		}

		for _, member := range cr.Realms {
			conn := &domain.RealmConnection{
				ConnectedRealmID: id,
				RealmID:          member.ID,
				Name:             fmt.Sprintf(realmConnectionNameFormat, id, member.ID),
			}
			if err := s.loader.Add(ctx, conn, loader.WithoutAutoCommit()); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
			}
		}
	}

	if err := s.loader.CommitRemaining(ctx, domain.KindConnectedRealm, domain.KindRealmConnection); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	return nil
}
