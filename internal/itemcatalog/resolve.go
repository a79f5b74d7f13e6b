package itemcatalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/FreeLunch_Go/internal/bnet"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/metrics"
)

// versionData is one successfully resolved game version of an item
type versionData struct {
	data      *domain.ItemData
	name      string
	hierarchy domain.ItemClassHierarchyKey
}

// ResolveItemAndItemData fetches RETAIL first. CLASSIC is fetched too when RETAIL is
// missing or its level is at or below the classic cutoff.
func (s *service) ResolveItemAndItemData(ctx context.Context, itemID int) (*Resolution, error) {
	retail, err := s.resolveVersion(ctx, domain.GameVersionRetail, itemID)
	if err != nil {
		return nil, err
	}

	var classic *versionData
	if retail == nil || retail.data.Level <= s.tables.ClassicLevelCutoff {
		classic, err = s.resolveVersion(ctx, domain.GameVersionClassic, itemID)
		if err != nil {
			return nil, err
		}
	}

	if retail == nil && classic == nil {
		logger.FromContext(ctx).Warn(LogMsgItemUnresolved, "item_id", itemID)
		metrics.RecordsSkipped.WithLabelValues(string(domain.KindItem), metrics.ReasonUnresolved).Inc()
		return nil, nil
	}

	res := &Resolution{Item: &domain.Item{ID: itemID}}

	// RETAIL wins for name and hierarchy whenever it resolved with a non-empty value
	primary, fallback := retail, classic
	if primary == nil {
		primary, fallback = classic, nil
	}
	res.Item.Name = primary.name
	if res.Item.Name == "" && fallback != nil {
		res.Item.Name = fallback.name
	}
	res.Item.ClassID = primary.hierarchy.ClassID
	res.Item.SubclassID = primary.hierarchy.SubclassID

	if retail != nil {
		res.Retail = retail.data
		key := domain.ItemDataKey{Version: domain.GameVersionRetail, ItemID: itemID}
		res.Item.RetailData = &key
	}
	if classic != nil {
		res.Classic = classic.data
		key := domain.ItemDataKey{Version: domain.GameVersionClassic, ItemID: itemID}
		res.Item.ClassicData = &key
	}
	return res, nil
}

// resolveVersion returns nil, nil when the version is missing or unusable for this item.
// Errors that are not about this single item are returned.
func (s *service) resolveVersion(ctx context.Context, version domain.GameVersion, itemID int) (*versionData, error) {
	vd, err := s.fetchVersion(ctx, version, itemID)
	if err == nil {
		return vd, nil
	}
	if bnet.Skippable(err) {
		log := logger.FromContext(ctx)
		if errors.Is(err, domain.ErrMalformedResponse) {
			log.Warn(LogMsgVersionMalformed, "item_id", itemID, "game_version", version, "error", err)
			metrics.RecordsSkipped.WithLabelValues(string(domain.KindItemData), metrics.ReasonMalformed).Inc()
		} else {
			log.Debug(LogMsgVersionUnresolved, "item_id", itemID, "game_version", version, "reason", err)
		}
		return nil, nil
	}
	return nil, fmt.Errorf("%s %d (%s): %w", ErrMsgItemFailed, itemID, version, err)
}

func (s *service) fetchVersion(ctx context.Context, version domain.GameVersion, itemID int) (*versionData, error) {
	item, err := s.catalog.GetItem(ctx, version, itemID)
	if err != nil {
		return nil, err
	}
	media, err := s.catalog.GetItemMedia(ctx, version, itemID)
	if err != nil {
		return nil, err
	}
	if item.ItemClass == nil || item.ItemSubclass == nil {
		return nil, fmt.Errorf("%w: item %d has no class", domain.ErrUnresolvedMetadata, itemID)
	}

	key := domain.ItemClassHierarchyKey{ClassID: item.ItemClass.ID, SubclassID: item.ItemSubclass.ID}
	ok, err := s.hierarchyExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: item %d hierarchy %s", domain.ErrUnresolvedMetadata, itemID, key)
	}

	data := &domain.ItemData{
		Version:       version,
		ItemID:        itemID,
		Name:          fmt.Sprintf("%s Data", item.Name),
		PurchasePrice: item.PurchasePrice,
		SellPrice:     item.SellPrice,
		Level:         item.Level,
		RequiredLevel: item.RequiredLevel,
		Quality:       item.Quality.Type,
	}
	if asset, ok := media.Primary(); ok {
		data.MediaURL = asset.Value
		data.MediaFileDataID = asset.FileDataID
	} else {
		logger.FromContext(ctx).Debug(LogMsgMissingMedia, "item_id", itemID, "game_version", version)
	}

	return &versionData{data: data, name: item.Name, hierarchy: key}, nil
}

func (s *service) hierarchyExists(ctx context.Context, key domain.ItemClassHierarchyKey) (bool, error) {
	if _, ok := s.hierarchies.Get(key); ok {
		return true, nil
	}
	ok, err := s.repo.Exists(ctx, domain.KindItemClassHierarchy, key)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", ErrMsgHierarchyFailed, key, err)
	}
	if ok {
		s.hierarchies.Add(key, struct{}{})
	}
	return ok, nil
}
