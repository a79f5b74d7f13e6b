package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/FreeLunch_Go/internal/database/generated"
	"github.com/osse101/FreeLunch_Go/internal/domain"
)

// ListProfessions returns every stored profession ordered by id
func (s *Store) ListProfessions(ctx context.Context) ([]domain.Profession, error) {
	rows, err := s.q.ListProfessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListProfessions, err)
	}
	out := make([]domain.Profession, len(rows))
	for i, row := range rows {
		out[i] = domain.Profession{
			ID:              int(row.ID),
			Name:            row.Name,
			MediaURL:        row.MediaUrl,
			MediaFileDataID: int(row.MediaFileDataID),
			IsPrimary:       row.IsPrimary,
			IsCrafting:      row.IsCrafting,
		}
	}
	return out, nil
}

// ListItemClasses returns every stored item class ordered by id
func (s *Store) ListItemClasses(ctx context.Context) ([]domain.ItemClass, error) {
	rows, err := s.q.ListItemClasses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItemClasses, err)
	}
	out := make([]domain.ItemClass, len(rows))
	for i, row := range rows {
		out[i] = domain.ItemClass{ID: int(row.ID), Name: row.Name}
	}
	return out, nil
}

// ListStagedItemIDs returns the distinct reagent and crafted item ids, ascending
func (s *Store) ListStagedItemIDs(ctx context.Context) ([]int, error) {
	ids, err := s.q.ListStagedItemIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListStagedItems, err)
	}
	return toInts(ids), nil
}

// GetItem returns domain.ErrNotFound for unknown ids
func (s *Store) GetItem(ctx context.Context, id int) (*domain.Item, error) {
	row, err := s.q.GetItem(ctx, int32(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: item %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%s %d: %w", ErrMsgFailedToGetItem, id, err)
	}
	item := &domain.Item{
		ID:         int(row.ID),
		Name:       row.Name,
		ClassID:    int(row.ItemClassID),
		SubclassID: int(row.ItemSubclassID),
	}
	if row.ClassicItemDataID.Valid {
		item.ClassicData = &domain.ItemDataKey{Version: domain.GameVersionClassic, ItemID: int(row.ClassicItemDataID.Int32)}
	}
	if row.RetailItemDataID.Valid {
		item.RetailData = &domain.ItemDataKey{Version: domain.GameVersionRetail, ItemID: int(row.RetailItemDataID.Int32)}
	}
	return item, nil
}

// SetVendorFlag marks the item data rows of itemIDs as vendor-sold
func (s *Store) SetVendorFlag(ctx context.Context, itemIDs []int) (int64, error) {
	ids := make([]int32, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = int32(id)
	}
	n, err := s.q.SetVendorFlag(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToSetVendorFlag, err)
	}
	return n, nil
}

// ListCraftingSkillTiers returns skill tiers of crafting professions ordered by id
func (s *Store) ListCraftingSkillTiers(ctx context.Context) ([]domain.SkillTier, error) {
	rows, err := s.q.ListCraftingSkillTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSkillTiers, err)
	}
	out := make([]domain.SkillTier, len(rows))
	for i, row := range rows {
		out[i] = domain.SkillTier{
			ID:                 int(row.ID),
			ProfessionID:       int(row.ProfessionID),
			Name:               row.Name,
			MinSkillLevel:      int(row.MinSkillLevel),
			MaxSkillLevel:      int(row.MaxSkillLevel),
			MinTotalSkillLevel: int(row.MinTotalSkillLevel),
			MaxTotalSkillLevel: int(row.MaxTotalSkillLevel),
			IsLegacyTier:       row.IsLegacyTier,
			ExpansionID:        int4ToPtr(row.ExpansionID),
		}
	}
	return out, nil
}

// StagedRecipeExists reports whether any staged row belongs to recipeID
func (s *Store) StagedRecipeExists(ctx context.Context, recipeID int) (bool, error) {
	exists, err := s.q.StagedRecipeExists(ctx, int32(recipeID))
	if err != nil {
		return false, fmt.Errorf("%s %d: %w", ErrMsgFailedToCheckStaged, recipeID, err)
	}
	return exists, nil
}

// ListUnpromotedRecipeIDs returns staged recipe ids with no recipe row, ascending
func (s *Store) ListUnpromotedRecipeIDs(ctx context.Context) ([]int, error) {
	ids, err := s.q.ListUnpromotedRecipeIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListUnpromoted, err)
	}
	return toInts(ids), nil
}

func stagedFromRows(rows []generated.StgRecipeItem) []domain.StgRecipeItem {
	out := make([]domain.StgRecipeItem, len(rows))
	for i, row := range rows {
		out[i] = domain.StgRecipeItem{
			RecipeID:      int(row.RecipeID),
			ItemID:        int(row.ItemID),
			CraftedItemID: int(row.CraftedItemID),
			Name:          row.Name,
			SkillTierID:   int4ToPtr(row.SkillTierID),
			ItemQuantity:  int(row.ItemQuantity),
		}
	}
	return out
}

// ListStagedRows returns the staged rows of a recipe ordered by crafted then reagent id
func (s *Store) ListStagedRows(ctx context.Context, recipeID int) ([]domain.StgRecipeItem, error) {
	rows, err := s.q.ListStagedRows(ctx, int32(recipeID))
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", ErrMsgFailedToListStagedRows, recipeID, err)
	}
	return stagedFromRows(rows), nil
}

// SetStagedSkillTier fills skill_tier_id on staged rows of recipeID where it is null
func (s *Store) SetStagedSkillTier(ctx context.Context, recipeID, skillTierID int) (int64, error) {
	n, err := s.q.SetStagedSkillTier(ctx, generated.SetStagedSkillTierParams{
		SkillTierID: int32(skillTierID),
		RecipeID:    int32(recipeID),
	})
	if err != nil {
		return 0, fmt.Errorf("%s %d: %w", ErrMsgFailedToSetStagedTier, recipeID, translate(err))
	}
	return n, nil
}

// ListStagedZeroQuantity returns staged rows whose quantity was never captured
func (s *Store) ListStagedZeroQuantity(ctx context.Context) ([]domain.StgRecipeItem, error) {
	rows, err := s.q.ListStagedZeroQuantity(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListZeroQuantity, err)
	}
	return stagedFromRows(rows), nil
}

// SetStagedQuantity patches the quantity of one staged row
func (s *Store) SetStagedQuantity(ctx context.Context, key domain.StgRecipeItemKey, quantity int) error {
	n, err := s.q.SetStagedQuantity(ctx, generated.SetStagedQuantityParams{
		RecipeID:      int32(key.RecipeID),
		ItemID:        int32(key.ItemID),
		CraftedItemID: int32(key.CraftedItemID),
		ItemQuantity:  int32(quantity),
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToSetStagedQuantity, key, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, domain.KindStgRecipeItem, key)
	}
	return nil
}

// ListRecipesMissingMedia returns recipe ids whose media is null
func (s *Store) ListRecipesMissingMedia(ctx context.Context) ([]int, error) {
	ids, err := s.q.ListRecipesMissingMedia(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListMissingMedia, err)
	}
	return toInts(ids), nil
}

// SetRecipeMedia patches the media columns of a recipe
func (s *Store) SetRecipeMedia(ctx context.Context, recipeID int, mediaURL string, fileDataID int) error {
	n, err := s.q.SetRecipeMedia(ctx, generated.SetRecipeMediaParams{
		MediaUrl:        mediaURL,
		MediaFileDataID: int32(fileDataID),
		ID:              int32(recipeID),
	})
	if err != nil {
		return fmt.Errorf("%s %d: %w", ErrMsgFailedToSetRecipeMedia, recipeID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: recipe %d", domain.ErrNotFound, recipeID)
	}
	return nil
}
