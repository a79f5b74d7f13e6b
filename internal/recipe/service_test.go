package recipe

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FreeLunch_Go/internal/bnet"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/loader"
	"github.com/osse101/FreeLunch_Go/internal/testing/fakecatalog"
	"github.com/osse101/FreeLunch_Go/internal/testing/memstore"
)

const (
	blacksmithing = 164
	classicTier   = 2437
)

func qty(v float64) *float64 { return &v }

func fixed(n float64) *bnet.CraftedQuantity { return &bnet.CraftedQuantity{Value: qty(n)} }

func reagents(pairs ...int) []bnet.RecipeReagent {
	var out []bnet.RecipeReagent
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, bnet.RecipeReagent{Reagent: bnet.Ref{ID: pairs[i]}, Quantity: pairs[i+1]})
	}
	return out
}

func newFixture(t *testing.T) (*fakecatalog.Catalog, *memstore.Store, Service) {
	t.Helper()
	cat := fakecatalog.New()
	cat.SkillTiers[fakecatalog.Pair{blacksmithing, classicTier}] = &bnet.SkillTier{
		ID:   classicTier,
		Name: "Classic Blacksmithing",
		Categories: []bnet.RecipeCategory{
			{Name: "Materials", Recipes: []bnet.Ref{{ID: 100}, {ID: 300}, {ID: 400}}},
			{Name: "Armor", Recipes: []bnet.Ref{{ID: 200}, {ID: 100}}},
		},
	}
	cat.Recipes[100] = &bnet.Recipe{ID: 100, Name: "Rough Sharpening Stone",
		Reagents: reagents(2835, 1), CraftedItem: &bnet.Ref{ID: 2862}, CraftedQuantity: fixed(1)}
	cat.Recipes[200] = &bnet.Recipe{ID: 200, Name: "Ornate Bracers",
		Reagents:            reagents(2840, 2, 2880, 1),
		AllianceCraftedItem: &bnet.Ref{ID: 5000},
		HordeCraftedItem:    &bnet.Ref{ID: 4000},
		CraftedQuantity:     fixed(1)}
	cat.Recipes[300] = &bnet.Recipe{ID: 300, Name: "Enchant Boots", Reagents: reagents(10940, 3)}
	cat.Recipes[400] = &bnet.Recipe{ID: 400, Name: "Smelt Copper", CraftedItem: &bnet.Ref{ID: 2840}}

	store := memstore.New()
	store.Put(
		&domain.Profession{ID: blacksmithing, Name: "Blacksmithing", IsCrafting: true, IsPrimary: true},
		&domain.Profession{ID: 182, Name: "Herbalism", IsPrimary: true},
		&domain.SkillTier{ID: classicTier, ProfessionID: blacksmithing, Name: "Classic Blacksmithing"},
		&domain.SkillTier{ID: 2556, ProfessionID: 182, Name: "Classic Herbalism"},
	)
	return cat, store, NewService(cat, store, loader.New(store, 2))
}

func putItems(store *memstore.Store, names map[int]string) {
	for id, name := range names {
		store.Put(&domain.Item{ID: id, Name: name, ClassID: 7, SubclassID: 7})
	}
}

func TestLoadStagedRecipeItems(t *testing.T) {
	ctx := context.Background()
	cat, store, svc := newFixture(t)

	require.NoError(t, svc.LoadStagedRecipeItems(ctx))

	rows := memstore.List[*domain.StgRecipeItem](store, domain.KindStgRecipeItem)
	require.Len(t, rows, 3)

	stone := rows[0]
	assert.Equal(t, 100, stone.RecipeID)
	assert.Equal(t, 2835, stone.ItemID)
	assert.Equal(t, 2862, stone.CraftedItemID)
	assert.Equal(t, "Rough Sharpening Stone Reagent", stone.Name)
	require.NotNil(t, stone.SkillTierID)
	assert.Equal(t, classicTier, *stone.SkillTierID)
	assert.Equal(t, 1, stone.ItemQuantity)

	for _, row := range rows[1:] {
		assert.Equal(t, 200, row.RecipeID)
		assert.Equal(t, 5000, row.CraftedItemID, "alliance crafted item wins")
	}

	assert.Equal(t, 1, cat.CallCount(fakecatalog.Key(bnet.EndpointRecipe, domain.GameVersionRetail, 100)))
	assert.Zero(t, cat.CallCount(fakecatalog.Key(bnet.EndpointSkillTier, domain.GameVersionRetail, 182)),
		"non-crafting professions are not walked")

	t.Run("staged recipes are not fetched again", func(t *testing.T) {
		before := cat.CallCount(bnet.EndpointRecipe + ":")
		require.NoError(t, svc.LoadStagedRecipeItems(ctx))
		// only the two recipes that staged nothing are fetched again
		assert.Equal(t, before+2, cat.CallCount(bnet.EndpointRecipe+":"))
		assert.Equal(t, 3, store.Count(domain.KindStgRecipeItem))
	})
}

func TestLoadStagedRecipeItems_MissingRecipeIsSkipped(t *testing.T) {
	ctx := context.Background()
	cat, store, svc := newFixture(t)
	delete(cat.Recipes, 200)

	require.NoError(t, svc.LoadStagedRecipeItems(ctx))

	assert.Equal(t, 1, store.Count(domain.KindStgRecipeItem))
}

func TestLoadStagedRecipeItems_MalformedRecipeIsSkipped(t *testing.T) {
	ctx := context.Background()
	cat, store, svc := newFixture(t)
	cat.Errors[fakecatalog.Key(bnet.EndpointRecipe, domain.GameVersionRetail, 200)] =
		fmt.Errorf("%w: decode recipe", domain.ErrMalformedResponse)

	require.NoError(t, svc.LoadStagedRecipeItems(ctx))

	assert.Equal(t, 1, store.Count(domain.KindStgRecipeItem))
}

func TestLoadStagedRecipeItems_ServerErrorAborts(t *testing.T) {
	cat, _, svc := newFixture(t)
	cat.Errors[fakecatalog.Key(bnet.EndpointRecipe, domain.GameVersionRetail, 200)] = &bnet.UpstreamError{StatusCode: 502}

	err := svc.LoadStagedRecipeItems(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgRecipeFailed)
}

func stage(store *memstore.Store, recipeID, itemID, craftedID, quantity int, tier *int) {
	store.Put(&domain.StgRecipeItem{
		RecipeID:      recipeID,
		ItemID:        itemID,
		CraftedItemID: craftedID,
		Name:          "staged",
		SkillTierID:   tier,
		ItemQuantity:  quantity,
	})
}

func TestPromoteRecipesAndReagents(t *testing.T) {
	ctx := context.Background()
	cat, store, svc := newFixture(t)
	tier := classicTier

	putItems(store, map[int]string{
		2835: "Rough Stone", 2862: "Rough Sharpening Stone",
		2840: "Copper Bar", 2880: "Weak Flux", 4000: "Ornate Bracers (H)", 5000: "Ornate Bracers (A)",
	})
	stage(store, 100, 2835, 2862, 1, &tier)
	// faction variant staged twice
	stage(store, 200, 2840, 5000, 2, &tier)
	stage(store, 200, 2880, 5000, 1, &tier)
	stage(store, 200, 2840, 4000, 2, &tier)
	stage(store, 200, 2880, 4000, 1, &tier)
	// crafted item never loaded
	stage(store, 500, 2835, 9999, 1, &tier)
	cat.Recipes[500] = &bnet.Recipe{ID: 500, Name: "Lost Recipe", CraftedQuantity: fixed(1)}
	// one reagent never loaded
	stage(store, 600, 2835, 2862, 4, &tier)
	stage(store, 600, 8888, 2862, 1, &tier)
	cat.Recipes[600] = &bnet.Recipe{ID: 600, Name: "Heavy Sharpening Stone",
		CraftedQuantity: &bnet.CraftedQuantity{Minimum: qty(1), Maximum: qty(3)}}
	// quantity without value or range
	stage(store, 700, 2835, 2862, 1, &tier)
	cat.Recipes[700] = &bnet.Recipe{ID: 700, Name: "Odd Stone", CraftedQuantity: &bnet.CraftedQuantity{Minimum: qty(1)}}

	cat.RecipeMedia[100] = &bnet.Media{ID: 100, Assets: []bnet.MediaAsset{{Key: "icon", Value: "https://render.example/r100.jpg", FileDataID: 135248}}}

	require.NoError(t, svc.PromoteRecipesAndReagents(ctx))

	assert.Equal(t, 3, store.Count(domain.KindRecipe))
	for _, id := range []int{500, 700} {
		_, ok := store.Get(domain.KindRecipe, id)
		assert.False(t, ok, "recipe %d should be skipped", id)
	}

	rec, ok := store.Get(domain.KindRecipe, 100)
	require.True(t, ok)
	stone := rec.(*domain.Recipe)
	assert.Equal(t, 2862, stone.CraftedItemID)
	assert.Equal(t, 1, stone.MinQuantity)
	assert.Equal(t, 1, stone.MaxQuantity)
	require.NotNil(t, stone.MediaURL)
	assert.Equal(t, "https://render.example/r100.jpg", *stone.MediaURL)
	require.NotNil(t, stone.SkillTierID)
	assert.Equal(t, classicTier, *stone.SkillTierID)

	rec, _ = store.Get(domain.KindRecipe, 200)
	assert.Equal(t, 4000, rec.(*domain.Recipe).CraftedItemID, "lowest crafted item id is kept")
	assert.Nil(t, rec.(*domain.Recipe).MediaURL)

	rec, _ = store.Get(domain.KindRecipe, 600)
	assert.Equal(t, 1, rec.(*domain.Recipe).MinQuantity)
	assert.Equal(t, 3, rec.(*domain.Recipe).MaxQuantity)

	assert.Equal(t, 4, store.Count(domain.KindReagent))
	rg, ok := store.Get(domain.KindReagent, domain.ReagentKey{RecipeID: 200, ItemID: 2840})
	require.True(t, ok)
	assert.Equal(t, "Ornate Bracers Reagent - Copper Bar", rg.(*domain.Reagent).Name)
	assert.Equal(t, 2, rg.(*domain.Reagent).ItemQuantity)
	_, ok = store.Get(domain.KindReagent, domain.ReagentKey{RecipeID: 600, ItemID: 8888})
	assert.False(t, ok)

	t.Run("recipes are written before their reagents", func(t *testing.T) {
		var recipeSeen bool
		for _, b := range store.Batches() {
			switch b.Kind {
			case domain.KindRecipe:
				recipeSeen = true
			case domain.KindReagent:
				assert.True(t, recipeSeen)
			}
		}
	})

	t.Run("media repair fills missing media", func(t *testing.T) {
		cat.RecipeMedia[200] = &bnet.Media{ID: 200, Assets: []bnet.MediaAsset{{Value: "https://render.example/r200.jpg", FileDataID: 7}}}

		require.NoError(t, svc.UpdateRecipeMedia(ctx))

		rec, _ := store.Get(domain.KindRecipe, 200)
		require.NotNil(t, rec.(*domain.Recipe).MediaURL)
		assert.Equal(t, "https://render.example/r200.jpg", *rec.(*domain.Recipe).MediaURL)
		assert.Equal(t, 7, *rec.(*domain.Recipe).MediaFileDataID)
		rec, _ = store.Get(domain.KindRecipe, 600)
		assert.Nil(t, rec.(*domain.Recipe).MediaURL)
	})

	t.Run("promotion is idempotent", func(t *testing.T) {
		before := len(store.Batches())
		require.NoError(t, svc.PromoteRecipesAndReagents(ctx))
		assert.Len(t, store.Batches(), before)
		assert.Equal(t, 3, store.Count(domain.KindRecipe))
	})
}

func TestUpdateStagedSkillTiers(t *testing.T) {
	ctx := context.Background()
	_, store, svc := newFixture(t)
	other := 9
	store.Put(&domain.SkillTier{ID: other, ProfessionID: 182})
	stage(store, 100, 2835, 2862, 1, nil)
	stage(store, 200, 2840, 5000, 2, &other)

	require.NoError(t, svc.UpdateStagedSkillTiers(ctx))

	rec, _ := store.Get(domain.KindStgRecipeItem, domain.StgRecipeItemKey{RecipeID: 100, ItemID: 2835, CraftedItemID: 2862})
	require.NotNil(t, rec.(*domain.StgRecipeItem).SkillTierID)
	assert.Equal(t, classicTier, *rec.(*domain.StgRecipeItem).SkillTierID)

	rec, _ = store.Get(domain.KindStgRecipeItem, domain.StgRecipeItemKey{RecipeID: 200, ItemID: 2840, CraftedItemID: 5000})
	assert.Equal(t, other, *rec.(*domain.StgRecipeItem).SkillTierID, "rows with a tier are left alone")
}

func TestUpdateStagedQuantities(t *testing.T) {
	ctx := context.Background()
	cat, store, svc := newFixture(t)
	tier := classicTier
	stage(store, 100, 2835, 2862, 0, &tier)
	stage(store, 200, 2840, 5000, 0, &tier)
	stage(store, 200, 2880, 5000, 1, &tier)

	require.NoError(t, svc.UpdateStagedQuantities(ctx))

	rec, _ := store.Get(domain.KindStgRecipeItem, domain.StgRecipeItemKey{RecipeID: 100, ItemID: 2835, CraftedItemID: 2862})
	assert.Equal(t, 1, rec.(*domain.StgRecipeItem).ItemQuantity)
	rec, _ = store.Get(domain.KindStgRecipeItem, domain.StgRecipeItemKey{RecipeID: 200, ItemID: 2840, CraftedItemID: 5000})
	assert.Equal(t, 2, rec.(*domain.StgRecipeItem).ItemQuantity)
	assert.Equal(t, 2, cat.CallCount(bnet.EndpointRecipe+":"))
}
