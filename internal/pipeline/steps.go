package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/osse101/FreeLunch_Go/internal/auction"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/itemcatalog"
	"github.com/osse101/FreeLunch_Go/internal/profession"
	"github.com/osse101/FreeLunch_Go/internal/realm"
	"github.com/osse101/FreeLunch_Go/internal/recipe"
)

// Services bundles the ingestors the step lists are built from
type Services struct {
	Profession  profession.Service
	ItemCatalog itemcatalog.Service
	Recipe      recipe.Service
	Realm       realm.Service
	Auction     auction.Service
}

// CatalogSteps loads the static game data. Each step only reads what earlier steps wrote.
func CatalogSteps(s Services) []Step {
	return []Step{
		{Name: StepExpansions, Run: s.Profession.LoadExpansions},
		{Name: StepProfessions, Run: s.Profession.LoadProfessions},
		{Name: StepSkillTiers, Run: s.Profession.LoadSkillTiers},
		{Name: StepItemClasses, Run: s.ItemCatalog.LoadItemClasses},
		{Name: StepHierarchy, Run: s.ItemCatalog.LoadItemClassHierarchy},
		{Name: StepStageRecipes, Run: s.Recipe.LoadStagedRecipeItems},
		{Name: StepRepairSkillTiers, Run: s.Recipe.UpdateStagedSkillTiers},
		{Name: StepRepairQuantities, Run: s.Recipe.UpdateStagedQuantities},
		{Name: StepItems, Run: s.ItemCatalog.LoadItemsAndItemData},
		{Name: StepVendorFlags, Run: s.ItemCatalog.UpdateVendorFlag},
		{Name: StepRecipes, Run: s.Recipe.PromoteRecipesAndReagents},
		{Name: StepRepairRecipeMedia, Run: s.Recipe.UpdateRecipeMedia},
	}
}

// RealmSteps loads regions, realms and connected realms per version, then the auction
// houses of the versions that have an auction API
func RealmSteps(s Services, versions ...domain.GameVersion) []Step {
	if len(versions) == 0 {
		versions = domain.GameVersions
	}
	var steps []Step
	for _, version := range versions {
		suffix := ":" + string(version)
		steps = append(steps,
			Step{Name: StepRegions + suffix, Run: func(ctx context.Context) error { return s.Realm.LoadRegions(ctx, version) }},
			Step{Name: StepRealms + suffix, Run: func(ctx context.Context) error { return s.Realm.LoadRealms(ctx, version) }},
			Step{Name: StepConnectedRealms + suffix, Run: func(ctx context.Context) error { return s.Realm.LoadConnectedRealms(ctx, version) }},
		)
	}
	if slices.Contains(versions, domain.GameVersionClassic) {
		steps = append(steps, Step{Name: StepAuctionHouses + ":" + string(domain.GameVersionClassic), Run: func(ctx context.Context) error {
			return s.Auction.LoadAuctionHouses(ctx, domain.GameVersionClassic)
		}})
	}
	return steps
}

// AuctionSteps snapshots the configured houses and summarizes the hour
func AuctionSteps(s Services) []Step {
	return []Step{{Name: StepSnapshot, Run: s.Auction.LoadConfiguredAuctions}}
}

// SummarySteps summarizes one explicit bucket
func SummarySteps(s Services, date time.Time, hour int) []Step {
	return []Step{{Name: StepSummary, Run: func(ctx context.Context) error {
		return s.Auction.LoadAuctionSummary(ctx, date, hour)
	}}}
}

// RetentionSteps prunes history older than days
func RetentionSteps(s Services, days int) []Step {
	return []Step{{Name: StepPrune, Run: func(ctx context.Context) error {
		return s.Auction.PruneHistory(ctx, days)
	}}}
}

// Lookup finds a step by name, used to run a single step by hand
func Lookup(steps []Step, name string) (Step, bool) {
	for _, st := range steps {
		if st.Name == name {
			return st, true
		}
	}
	return Step{}, false
}
