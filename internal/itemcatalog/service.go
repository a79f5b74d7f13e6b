// Package itemcatalog loads the item taxonomy and the per-version item data.
package itemcatalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FreeLunch_Go/internal/bnet"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/loader"
	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/metrics"
	"github.com/osse101/FreeLunch_Go/internal/refdata"
	"github.com/osse101/FreeLunch_Go/internal/repository"
)

// Catalog is the part of the upstream client this package reads
type Catalog interface {
	GetItemClassIndex(ctx context.Context, version domain.GameVersion) (*bnet.ItemClassIndex, error)
	GetItemSubclass(ctx context.Context, version domain.GameVersion, classID, subclassID int) (*bnet.ItemSubclass, error)
	GetItem(ctx context.Context, version domain.GameVersion, itemID int) (*bnet.Item, error)
	GetItemMedia(ctx context.Context, version domain.GameVersion, itemID int) (*bnet.Media, error)
}

// ScanPolicy decides what a missing subclass id means for the rest of a class
type ScanPolicy int

const (
	// ScanContinue keeps scanning every id up to the limit; subclass ids have gaps
	ScanContinue ScanPolicy = iota
	// ScanStop moves to the next class at the first missing id
	ScanStop
)

// Resolution is the outcome of resolving one item id across game versions
type Resolution struct {
	Item    *domain.Item
	Retail  *domain.ItemData
	Classic *domain.ItemData
}

// Service defines the item catalog load steps
type Service interface {
	LoadItemClasses(ctx context.Context) error
	LoadItemClassHierarchy(ctx context.Context) error
	// ResolveItemAndItemData returns nil, nil when no version of the item resolves
	ResolveItemAndItemData(ctx context.Context, itemID int) (*Resolution, error)
	LoadItemsAndItemData(ctx context.Context) error
	UpdateVendorFlag(ctx context.Context) error
}

// Option configures the service
type Option func(*service)

// WithScanPolicy overrides ScanContinue
func WithScanPolicy(p ScanPolicy) Option {
	return func(s *service) { s.scan = p }
}

type service struct {
	catalog Catalog
	repo    repository.ItemCatalog
	loader  *loader.Loader
	tables  *refdata.Tables
	scan    ScanPolicy

	hierarchies *expirable.LRU[domain.ItemClassHierarchyKey, struct{}]
}

// NewService creates a new item catalog service
func NewService(catalog Catalog, repo repository.ItemCatalog, ld *loader.Loader, tables *refdata.Tables, opts ...Option) Service {
	s := &service{
		catalog:     catalog,
		repo:        repo,
		loader:      ld,
		tables:      tables,
		scan:        ScanContinue,
		hierarchies: expirable.NewLRU[domain.ItemClassHierarchyKey, struct{}](DefaultHierarchyCacheSize, nil, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadItemClasses loads the top level of the taxonomy
func (s *service) LoadItemClasses(ctx context.Context) error {
	index, err := s.catalog.GetItemClassIndex(ctx, domain.GameVersionRetail)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgIndexFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgLoadingItemClasses, "count", len(index.ItemClasses))

	for _, ref := range index.ItemClasses {
		if err := s.loader.Add(ctx, &domain.ItemClass{ID: ref.ID, Name: ref.Name}); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
		}
	}
	if err := s.loader.CommitRemaining(ctx, domain.KindItemClass); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	return nil
}

// LoadItemClassHierarchy discovers class x subclass pairs by scanning ids,
// since the catalog has no listing endpoint for them
func (s *service) LoadItemClassHierarchy(ctx context.Context) error {
	log := logger.FromContext(ctx)

	classes, err := s.repo.ListItemClasses(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgListFailed, err)
	}
	log.Info(LogMsgScanningHierarchy, "classes", len(classes), "limit", s.tables.SubclassScanLimit, "policy", s.scan)

	for _, class := range classes {
		for sub := 0; sub < s.tables.SubclassScanLimit; sub++ {
			found, err := s.catalog.GetItemSubclass(ctx, domain.GameVersionRetail, class.ID, sub)
			if errors.Is(err, domain.ErrNotFound) {
				if s.scan == ScanStop {
					log.Debug(LogMsgScanStopped, "item_class_id", class.ID, "item_subclass_id", sub)
					break
				}
				continue
			}
			if err != nil {
				return fmt.Errorf("%s %d/%d: %w", ErrMsgScanFailed, class.ID, sub, err)
			}

			h := &domain.ItemClassHierarchy{
				ClassID:     class.ID,
				SubclassID:  found.SubclassID,
				Name:        fmt.Sprintf("%s - %s", class.Name, found.DisplayName),
				DisplayName: found.DisplayName,
			}
			if err := s.loader.Add(ctx, h); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
			}
		}
	}

	if err := s.loader.CommitRemaining(ctx, domain.KindItemClassHierarchy); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	return nil
}

// LoadItemsAndItemData resolves every item referenced by the staging table.
// ItemData and Item are committed together per chunk, ItemData first.
func (s *service) LoadItemsAndItemData(ctx context.Context) error {
	log := logger.FromContext(ctx)

	ids, err := s.repo.ListStagedItemIDs(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgStagedIDsFailed, err)
	}
	log.Info(LogMsgLoadingItems, "candidates", len(ids))

	var loaded, skipped, counter int
	for _, id := range ids {
		exists, err := s.repo.Exists(ctx, domain.KindItem, id)
		if err != nil {
			return fmt.Errorf("%s %d: %w", ErrMsgItemFailed, id, err)
		}
		if exists {
			metrics.RecordsSkipped.WithLabelValues(string(domain.KindItem), metrics.ReasonExists).Inc()
			continue
		}

		res, err := s.ResolveItemAndItemData(ctx, id)
		if err != nil {
			return err
		}
		if res == nil {
			skipped++
			continue
		}

		for _, data := range []*domain.ItemData{res.Retail, res.Classic} {
			if data == nil {
				continue
			}
			if err := s.loader.Add(ctx, data, loader.WithoutAutoCommit()); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
			}
		}
		if err := s.loader.Add(ctx, res.Item, loader.WithoutAutoCommit()); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
		}
		loaded++

		counter++
		if counter >= s.loader.ChunkSize() {
			if err := s.loader.CommitRemaining(ctx, domain.KindItemData, domain.KindItem); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
			}
			counter = 0
		}
	}

	if err := s.loader.CommitRemaining(ctx, domain.KindItemData, domain.KindItem); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	log.Info(LogMsgItemsDone, "loaded", loaded, "skipped", skipped)
	return nil
}

// UpdateVendorFlag marks the item data of vendor-sold reagents
func (s *service) UpdateVendorFlag(ctx context.Context) error {
	n, err := s.repo.SetVendorFlag(ctx, s.tables.VendorItems)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgVendorFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgVendorFlagsUpdated, "rows", n)
	return nil
}
