package domain

import "fmt"

// StgRecipeItemKey identifies one staged (recipe, reagent, crafted item) triple
type StgRecipeItemKey struct {
	RecipeID      int
	ItemID        int
	CraftedItemID int
}

func (k StgRecipeItemKey) String() string {
	return fmt.Sprintf("%d_%d_%d", k.RecipeID, k.ItemID, k.CraftedItemID)
}

// StgRecipeItem is a scratch row. Item ids are not checked against the item table.
type StgRecipeItem struct {
	RecipeID      int    `json:"recipe_id"`
	ItemID        int    `json:"item_id"`
	CraftedItemID int    `json:"crafted_item_id"`
	Name          string `json:"name"`
	SkillTierID   *int   `json:"skill_tier_id,omitempty"`
	ItemQuantity  int    `json:"item_quantity"`
}

func (s *StgRecipeItem) Kind() Kind { return KindStgRecipeItem }

func (s *StgRecipeItem) PrimaryKey() any {
	return StgRecipeItemKey{RecipeID: s.RecipeID, ItemID: s.ItemID, CraftedItemID: s.CraftedItemID}
}

func (s *StgRecipeItem) References() []Reference {
	if s.SkillTierID == nil {
		return nil
	}
	return []Reference{{Kind: KindSkillTier, Key: *s.SkillTierID}}
}

// Recipe produces one crafted item
type Recipe struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	SkillTierID     *int    `json:"skill_tier_id,omitempty"`
	CraftedItemID   int     `json:"crafted_item_id"`
	MinQuantity     int     `json:"min_quantity"`
	MaxQuantity     int     `json:"max_quantity"`
	MediaURL        *string `json:"media_url,omitempty"`
	MediaFileDataID *int    `json:"media_file_data_id,omitempty"`
}

func (r *Recipe) Kind() Kind      { return KindRecipe }
func (r *Recipe) PrimaryKey() any { return r.ID }

func (r *Recipe) References() []Reference {
	refs := []Reference{{Kind: KindItem, Key: r.CraftedItemID}}
	if r.SkillTierID != nil {
		refs = append(refs, Reference{Kind: KindSkillTier, Key: *r.SkillTierID})
	}
	return refs
}

// ReagentKey identifies an input item of a recipe
type ReagentKey struct {
	RecipeID int
	ItemID   int
}

func (k ReagentKey) String() string {
	return fmt.Sprintf("%d_%d", k.RecipeID, k.ItemID)
}

// Reagent is one input of a recipe
type Reagent struct {
	RecipeID     int    `json:"recipe_id"`
	ItemID       int    `json:"item_id"`
	Name         string `json:"name"`
	ItemQuantity int    `json:"item_quantity"`
}

func (r *Reagent) Kind() Kind { return KindReagent }

func (r *Reagent) PrimaryKey() any {
	return ReagentKey{RecipeID: r.RecipeID, ItemID: r.ItemID}
}

func (r *Reagent) References() []Reference {
	return []Reference{
		{Kind: KindRecipe, Key: r.RecipeID},
		{Kind: KindItem, Key: r.ItemID},
	}
}
