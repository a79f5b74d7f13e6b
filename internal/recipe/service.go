// Package recipe stages recipe reagents and promotes them into recipes and reagents.
package recipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/FreeLunch_Go/internal/bnet"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/loader"
	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/metrics"
	"github.com/osse101/FreeLunch_Go/internal/repository"
	"github.com/osse101/FreeLunch_Go/internal/resolve"
)

// Catalog is the part of the upstream client this package reads
type Catalog interface {
	GetSkillTier(ctx context.Context, professionID, skillTierID int) (*bnet.SkillTier, error)
	GetRecipe(ctx context.Context, recipeID int) (*bnet.Recipe, error)
	GetRecipeMedia(ctx context.Context, recipeID int) (*bnet.Media, error)
}

// Service defines the recipe load and repair steps
type Service interface {
	LoadStagedRecipeItems(ctx context.Context) error
	PromoteRecipesAndReagents(ctx context.Context) error

	UpdateStagedSkillTiers(ctx context.Context) error
	UpdateStagedQuantities(ctx context.Context) error
	UpdateRecipeMedia(ctx context.Context) error
}

type service struct {
	catalog Catalog
	repo    repository.Recipe
	loader  *loader.Loader
}

// NewService creates a new recipe service
func NewService(catalog Catalog, repo repository.Recipe, ld *loader.Loader) Service {
	return &service{
		catalog: catalog,
		repo:    repo,
		loader:  ld,
	}
}

func skipRecipe(ctx context.Context, recipeID int, reason string, err error) {
	args := []any{"recipe_id", recipeID, "reason", reason}
	if err != nil {
		args = append(args, "error", err)
	}
	logger.FromContext(ctx).Warn(LogMsgRecipeSkipped, args...)
	metrics.RecordsSkipped.WithLabelValues(string(domain.KindRecipe), metrics.ReasonUnresolved).Inc()
}

// fetchRecipe returns nil, nil for recipes that are missing upstream
func (s *service) fetchRecipe(ctx context.Context, recipeID int) (*bnet.Recipe, error) {
	r, err := s.catalog.GetRecipe(ctx, recipeID)
	if err == nil {
		return r, nil
	}
	if bnet.Skippable(err) {
		skipRecipe(ctx, recipeID, skipUpstreamMissing, err)
		return nil, nil
	}
	return nil, fmt.Errorf("%s %d: %w", ErrMsgRecipeFailed, recipeID, err)
}

// forEachCraftingRecipe walks every recipe listed under a crafting skill tier, once per tier listing
func (s *service) forEachCraftingRecipe(ctx context.Context, fn func(tier domain.SkillTier, ref bnet.Ref) error) error {
	tiers, err := s.repo.ListCraftingSkillTiers(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgListTiersFailed, err)
	}
	for _, tier := range tiers {
		detail, err := s.catalog.GetSkillTier(ctx, tier.ProfessionID, tier.ID)
		if err != nil {
			return fmt.Errorf("%s %d/%d: %w", ErrMsgSkillTierFailed, tier.ProfessionID, tier.ID, err)
		}
		for _, category := range detail.Categories {
			for _, ref := range category.Recipes {
				if err := fn(tier, ref); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// LoadStagedRecipeItems stages one row per (recipe, reagent, crafted item) for every
// crafting recipe not staged yet
func (s *service) LoadStagedRecipeItems(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgStagingRecipes)

	seen := make(map[int]bool)
	var staged int
	err := s.forEachCraftingRecipe(ctx, func(tier domain.SkillTier, ref bnet.Ref) error {
		if seen[ref.ID] {
			return nil
		}
		seen[ref.ID] = true

		exists, err := s.repo.StagedRecipeExists(ctx, ref.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgStagedLookupFailed, err)
		}
		if exists {
			return nil
		}

		r, err := s.fetchRecipe(ctx, ref.ID)
		if err != nil || r == nil {
			return err
		}
		if len(r.Reagents) == 0 {
			log.Debug(LogMsgRecipeSkipped, "recipe_id", ref.ID, "reason", skipNoReagents)
			return nil
		}
		crafted, ok := resolve.CraftedItem(r)
		if !ok {
			log.Debug(LogMsgRecipeSkipped, "recipe_id", ref.ID, "reason", skipNoCraftedItem)
			return nil
		}

		tierID := tier.ID
		for _, reagent := range r.Reagents {
			row := &domain.StgRecipeItem{
				RecipeID:      ref.ID,
				ItemID:        reagent.Reagent.ID,
				CraftedItemID: crafted,
				Name:          fmt.Sprintf(stagedNameFormat, r.Name),
				SkillTierID:   &tierID,
				ItemQuantity:  reagent.Quantity,
			}
			if err := s.loader.Add(ctx, row); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
			}
		}
		staged++
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.loader.CommitRemaining(ctx, domain.KindStgRecipeItem); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	log.Info(LogMsgStagingDone, "recipes", staged)
	return nil
}

// PromoteRecipesAndReagents turns staged recipes without a Recipe row into Recipe and
// Reagent rows. Both reference items that must already be loaded.
func (s *service) PromoteRecipesAndReagents(ctx context.Context) error {
	log := logger.FromContext(ctx)

	ids, err := s.repo.ListUnpromotedRecipeIDs(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgStagedLookupFailed, err)
	}
	log.Info(LogMsgPromotingRecipes, "candidates", len(ids))

	var promoted, counter int
	for _, id := range ids {
		ok, err := s.promote(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		promoted++

		counter++
		if counter >= s.loader.ChunkSize() {
			if err := s.loader.CommitRemaining(ctx, domain.KindRecipe, domain.KindReagent); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
			}
			counter = 0
		}
	}

	if err := s.loader.CommitRemaining(ctx, domain.KindRecipe, domain.KindReagent); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	log.Info(LogMsgPromotionDone, "recipes", promoted)
	return nil
}

// promote enqueues one recipe and its reagents. It reports false when the recipe was skipped.
func (s *service) promote(ctx context.Context, recipeID int) (bool, error) {
	log := logger.FromContext(ctx)

	rows, err := s.repo.ListStagedRows(ctx, recipeID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgStagedLookupFailed, err)
	}
	if len(rows) == 0 {
		return false, nil
	}
	if kept := lowestCraftedItem(rows); len(kept) < len(rows) {
		log.Debug(LogMsgFactionVariantPicked, "recipe_id", recipeID, "crafted_item_id", kept[0].CraftedItemID)
		rows = kept
	}

	craftedItem, err := s.item(ctx, rows[0].CraftedItemID)
	if err != nil {
		return false, err
	}
	if craftedItem == nil {
		skipRecipe(ctx, recipeID, skipCraftedMissing, nil)
		return false, nil
	}

	r, err := s.fetchRecipe(ctx, recipeID)
	if err != nil || r == nil {
		return false, err
	}
	lo, hi, ok := r.CraftedQuantity.Range()
	if !ok {
		skipRecipe(ctx, recipeID, skipBadQuantity, nil)
		return false, nil
	}

	rec := &domain.Recipe{
		ID:            recipeID,
		Name:          r.Name,
		SkillTierID:   rows[0].SkillTierID,
		CraftedItemID: craftedItem.ID,
		MinQuantity:   lo,
		MaxQuantity:   hi,
	}
	asset, err := s.media(ctx, recipeID)
	if err != nil {
		return false, err
	}
	if asset != nil {
		rec.MediaURL = &asset.Value
		rec.MediaFileDataID = &asset.FileDataID
	}
	if err := s.loader.Add(ctx, rec, loader.WithoutAutoCommit()); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
	}

	for _, row := range rows {
		item, err := s.item(ctx, row.ItemID)
		if err != nil {
			return false, err
		}
		if item == nil {
			log.Warn(LogMsgReagentSkipped, "recipe_id", recipeID, "item_id", row.ItemID)
			metrics.RecordsSkipped.WithLabelValues(string(domain.KindReagent), metrics.ReasonMissingRef).Inc()
			continue
		}
		reagent := &domain.Reagent{
			RecipeID:     recipeID,
			ItemID:       item.ID,
			Name:         fmt.Sprintf(reagentNameFormat, r.Name, item.Name),
			ItemQuantity: row.ItemQuantity,
		}
		if err := s.loader.Add(ctx, reagent, loader.WithoutAutoCommit()); err != nil {
			return false, fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
		}
	}
	return true, nil
}

// lowestCraftedItem keeps the rows of the smallest crafted item id. Faction variants
// stage the same recipe under two crafted items; the pick is arbitrary but stable.
func lowestCraftedItem(rows []domain.StgRecipeItem) []domain.StgRecipeItem {
	lowest := rows[0].CraftedItemID
	for _, r := range rows[1:] {
		lowest = min(lowest, r.CraftedItemID)
	}
	out := make([]domain.StgRecipeItem, 0, len(rows))
	for _, r := range rows {
		if r.CraftedItemID == lowest {
			out = append(out, r)
		}
	}
	return out
}

// item returns nil, nil for items that were never loaded
func (s *service) item(ctx context.Context, id int) (*domain.Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", ErrMsgItemLookupFailed, id, err)
	}
	return item, nil
}

// media returns nil, nil when the recipe has no usable media; UpdateRecipeMedia retries those
func (s *service) media(ctx context.Context, recipeID int) (*bnet.MediaAsset, error) {
	m, err := s.catalog.GetRecipeMedia(ctx, recipeID)
	if err != nil {
		if bnet.Skippable(err) {
			logger.FromContext(ctx).Warn(LogMsgMediaUnavailable, "recipe_id", recipeID, "error", err)
			return nil, nil
		}
		return nil, fmt.Errorf("%s %d: %w", ErrMsgMediaFailed, recipeID, err)
	}
	asset, ok := m.Primary()
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgMediaUnavailable, "recipe_id", recipeID)
		return nil, nil
	}
	return &asset, nil
}
