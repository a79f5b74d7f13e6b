package recipe

import (
	"context"
	"fmt"

	"github.com/osse101/FreeLunch_Go/internal/bnet"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/logger"
)

// UpdateStagedSkillTiers fills skill_tier_id on staged rows staged without one
func (s *service) UpdateStagedSkillTiers(ctx context.Context) error {
	var updated int64
	err := s.forEachCraftingRecipe(ctx, func(tier domain.SkillTier, ref bnet.Ref) error {
		n, err := s.repo.SetStagedSkillTier(ctx, ref.ID, tier.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgRepairFailed, err)
		}
		updated += n
		return nil
	})
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgSkillTiersRepaired, "rows", updated)
	return nil
}

// UpdateStagedQuantities re-reads the reagent quantities of rows staged with quantity 0
func (s *service) UpdateStagedQuantities(ctx context.Context) error {
	rows, err := s.repo.ListStagedZeroQuantity(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgStagedLookupFailed, err)
	}

	byRecipe := make(map[int][]domain.StgRecipeItem)
	var order []int
	for _, row := range rows {
		if _, ok := byRecipe[row.RecipeID]; !ok {
			order = append(order, row.RecipeID)
		}
		byRecipe[row.RecipeID] = append(byRecipe[row.RecipeID], row)
	}

	var updated int
	for _, recipeID := range order {
		r, err := s.fetchRecipe(ctx, recipeID)
		if err != nil {
			return err
		}
		if r == nil {
			continue
		}
		quantities := make(map[int]int, len(r.Reagents))
		for _, reagent := range r.Reagents {
			quantities[reagent.Reagent.ID] = reagent.Quantity
		}
		for _, row := range byRecipe[recipeID] {
			qty, ok := quantities[row.ItemID]
			if !ok || qty == 0 {
				continue
			}
			if err := s.repo.SetStagedQuantity(ctx, domain.StgRecipeItemKey{RecipeID: row.RecipeID, ItemID: row.ItemID, CraftedItemID: row.CraftedItemID}, qty); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgRepairFailed, err)
			}
			updated++
		}
	}
	logger.FromContext(ctx).Info(LogMsgQuantitiesRepaired, "recipes", len(order), "rows", updated)
	return nil
}

// UpdateRecipeMedia fills media on recipes promoted without it
func (s *service) UpdateRecipeMedia(ctx context.Context) error {
	ids, err := s.repo.ListRecipesMissingMedia(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRepairFailed, err)
	}

	var updated int
	for _, id := range ids {
		asset, err := s.media(ctx, id)
		if err != nil {
			return err
		}
		if asset == nil {
			continue
		}
		if err := s.repo.SetRecipeMedia(ctx, id, asset.Value, asset.FileDataID); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgRepairFailed, err)
		}
		updated++
	}
	logger.FromContext(ctx).Info(LogMsgMediaRepaired, "candidates", len(ids), "updated", updated)
	return nil
}
