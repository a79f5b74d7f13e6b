package repository

import (
	"context"

	"github.com/osse101/FreeLunch_Go/internal/domain"
)

// Profession reads back what the profession step persisted
type Profession interface {
	Records
	ListProfessions(ctx context.Context) ([]domain.Profession, error)
}

// ItemCatalog backs the item-class, hierarchy and item steps
type ItemCatalog interface {
	Records
	ListItemClasses(ctx context.Context) ([]domain.ItemClass, error)
	// ListStagedItemIDs returns the distinct union of reagent and crafted item ids, ascending
	ListStagedItemIDs(ctx context.Context) ([]int, error)
	GetItem(ctx context.Context, id int) (*domain.Item, error)
	SetVendorFlag(ctx context.Context, itemIDs []int) (int64, error)
}

// Recipe backs staging, promotion and the staged-row repairs
type Recipe interface {
	Records
	// ListCraftingSkillTiers returns skill tiers whose profession is a crafting profession
	ListCraftingSkillTiers(ctx context.Context) ([]domain.SkillTier, error)
	StagedRecipeExists(ctx context.Context, recipeID int) (bool, error)
	// ListUnpromotedRecipeIDs returns staged recipe ids with no Recipe row, ascending
	ListUnpromotedRecipeIDs(ctx context.Context) ([]int, error)
	ListStagedRows(ctx context.Context, recipeID int) ([]domain.StgRecipeItem, error)
	GetItem(ctx context.Context, id int) (*domain.Item, error)

	SetStagedSkillTier(ctx context.Context, recipeID, skillTierID int) (int64, error)
	ListStagedZeroQuantity(ctx context.Context) ([]domain.StgRecipeItem, error)
	SetStagedQuantity(ctx context.Context, key domain.StgRecipeItemKey, quantity int) error
	ListRecipesMissingMedia(ctx context.Context) ([]int, error)
	SetRecipeMedia(ctx context.Context, recipeID int, mediaURL string, fileDataID int) error
}
