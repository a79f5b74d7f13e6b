package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FreeLunch_Go/internal/auction"
	"github.com/osse101/FreeLunch_Go/internal/bnet"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/itemcatalog"
	"github.com/osse101/FreeLunch_Go/internal/loader"
	"github.com/osse101/FreeLunch_Go/internal/profession"
	"github.com/osse101/FreeLunch_Go/internal/realm"
	"github.com/osse101/FreeLunch_Go/internal/recipe"
	"github.com/osse101/FreeLunch_Go/internal/refdata"
	"github.com/osse101/FreeLunch_Go/internal/testing/fakecatalog"
	"github.com/osse101/FreeLunch_Go/internal/testing/memstore"
)

const (
	leatherworking = 165
	classicLW      = 2454
	armorKit       = 2152
)

// catalogFixture is one crafting profession with a single recipe of two reagents
func catalogFixture(t *testing.T) (*fakecatalog.Catalog, *memstore.Store, Services) {
	t.Helper()
	tables, err := refdata.Default()
	require.NoError(t, err)

	retail := domain.GameVersionRetail
	cat := fakecatalog.New()
	cat.ProfessionIndex = &bnet.ProfessionIndex{Professions: []bnet.Ref{{ID: leatherworking, Name: "Leatherworking"}}}
	cat.Professions[leatherworking] = &bnet.Profession{
		ID: leatherworking, Name: "Leatherworking", Type: bnet.TypedName{Type: "PRIMARY"},
		SkillTiers: []bnet.Ref{{ID: classicLW, Name: "Classic Leatherworking"}},
	}
	cat.ProfessionMedia[leatherworking] = &bnet.Media{ID: leatherworking, Assets: []bnet.MediaAsset{
		{Key: "icon", Value: "https://render.example/lw.jpg", FileDataID: 4620},
	}}
	cat.SkillTiers[fakecatalog.Pair{leatherworking, classicLW}] = &bnet.SkillTier{
		ID: classicLW, Name: "Classic Leatherworking", MinimumSkillLevel: 1, MaximumSkillLevel: 300,
		Categories: []bnet.RecipeCategory{{Name: "Armor Kits", Recipes: []bnet.Ref{{ID: armorKit}}}},
	}
	one := 1.0
	cat.Recipes[armorKit] = &bnet.Recipe{
		ID: armorKit, Name: "Light Armor Kit",
		Reagents: []bnet.RecipeReagent{
			{Reagent: bnet.Ref{ID: 2318}, Quantity: 1},
			{Reagent: bnet.Ref{ID: 2320}, Quantity: 1},
		},
		CraftedItem:     &bnet.Ref{ID: 2304},
		CraftedQuantity: &bnet.CraftedQuantity{Value: &one},
	}
	cat.RecipeMedia[armorKit] = &bnet.Media{ID: armorKit, Assets: []bnet.MediaAsset{
		{Key: "icon", Value: "https://render.example/kit.jpg", FileDataID: 133611},
	}}

	cat.ItemClasses[retail] = &bnet.ItemClassIndex{ItemClasses: []bnet.Ref{
		{ID: 0, Name: "Consumable"},
		{ID: 7, Name: "Tradeskill"},
	}}
	cat.PutSubclass(retail, &bnet.ItemSubclass{ClassID: 0, SubclassID: 6, DisplayName: "Item Enhancement"})
	cat.PutSubclass(retail, &bnet.ItemSubclass{ClassID: 7, SubclassID: 5, DisplayName: "Cloth"})
	cat.PutSubclass(retail, &bnet.ItemSubclass{ClassID: 7, SubclassID: 6, DisplayName: "Leather"})

	item := func(id int, name string, class, subclass int) *bnet.Item {
		return &bnet.Item{ID: id, Name: name, Level: 60, Quality: bnet.TypedName{Type: "COMMON"},
			ItemClass: &bnet.Ref{ID: class}, ItemSubclass: &bnet.Ref{ID: subclass}}
	}
	cat.PutItem(retail, item(2318, "Light Leather", 7, 6))
	cat.PutItem(retail, item(2320, "Coarse Thread", 7, 5))
	cat.PutItem(retail, item(2304, "Light Armor Kit", 0, 6))

	store := memstore.New()
	ld := loader.New(store, 2)
	services := Services{
		Profession:  profession.NewService(cat, store, ld, tables),
		ItemCatalog: itemcatalog.NewService(cat, store, ld, tables),
		Recipe:      recipe.NewService(cat, store, ld),
		Realm:       realm.NewService(cat, ld),
		Auction:     auction.NewService(cat, store, store, ld, tables),
	}
	return cat, store, services
}

func TestCatalogPipeline_EndToEnd(t *testing.T) {
	ctx := context.Background()
	_, store, services := catalogFixture(t)
	runner := NewRunner(store)

	require.NoError(t, runner.Run(ctx, PipelineCatalog, CatalogSteps(services)))

	assert.Equal(t, 10, store.Count(domain.KindExpansion))
	assert.Equal(t, 1, store.Count(domain.KindProfession))
	assert.Equal(t, 1, store.Count(domain.KindSkillTier))
	assert.Equal(t, 3, store.Count(domain.KindItem))
	assert.Equal(t, 1, store.Count(domain.KindRecipe))
	assert.Equal(t, 2, store.Count(domain.KindReagent))
	assert.Equal(t, 3, store.Count(domain.KindItemClassHierarchy))

	thread := domain.ItemDataKey{Version: domain.GameVersionRetail, ItemID: 2320}
	rec, ok := store.Get(domain.KindItemData, thread)
	require.True(t, ok)
	assert.True(t, rec.(*domain.ItemData).IsVendorItem)
	leather := domain.ItemDataKey{Version: domain.GameVersionRetail, ItemID: 2318}
	rec, ok = store.Get(domain.KindItemData, leather)
	require.True(t, ok)
	assert.False(t, rec.(*domain.ItemData).IsVendorItem)

	rec, ok = store.Get(domain.KindRecipe, armorKit)
	require.True(t, ok)
	kit := rec.(*domain.Recipe)
	assert.Equal(t, 2304, kit.CraftedItemID)
	require.NotNil(t, kit.MediaURL)
	assert.Equal(t, "https://render.example/kit.jpg", *kit.MediaURL)

	t.Run("a second run adds nothing", func(t *testing.T) {
		require.NoError(t, runner.Run(ctx, PipelineCatalog, CatalogSteps(services)))

		assert.Equal(t, 3, store.Count(domain.KindItem))
		assert.Equal(t, 1, store.Count(domain.KindRecipe))
		assert.Equal(t, 2, store.Count(domain.KindReagent))
	})
}

func TestCatalogPipeline_UpstreamFailureStopsRun(t *testing.T) {
	ctx := context.Background()
	cat, store, services := catalogFixture(t)
	cat.Errors[fakecatalog.Key(bnet.EndpointItemClassIndex, domain.GameVersionRetail)] =
		&bnet.UpstreamError{StatusCode: 503}

	err := NewRunner(store).Run(ctx, PipelineCatalog, CatalogSteps(services))

	require.Error(t, err)
	assert.Contains(t, err.Error(), PipelineCatalog+"/"+StepItemClasses)
	assert.Equal(t, 1, store.Count(domain.KindSkillTier), "earlier steps stay committed")
	assert.Zero(t, store.Count(domain.KindItem))
	assert.Zero(t, cat.CallCount(bnet.EndpointRecipe+":"))
}
