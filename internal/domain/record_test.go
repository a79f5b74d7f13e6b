package domain

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRecords holds one fully referenced record of every kind
func sampleRecords() []Record {
	tier, expansion := 2454, 0
	classic := ItemDataKey{Version: GameVersionClassic, ItemID: 2318}
	retail := ItemDataKey{Version: GameVersionRetail, ItemID: 2318}
	house := AuctionHouseKey{ConnectedRealmID: 4395, FactionID: FactionIDHorde}
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	return []Record{
		&Expansion{ID: expansion},
		&Profession{ID: 165},
		&SkillTier{ID: tier, ProfessionID: 165, ExpansionID: &expansion},
		&ItemClass{ID: 7},
		&ItemClassHierarchy{ClassID: 7, SubclassID: 6},
		&StgRecipeItem{RecipeID: 2152, ItemID: 2318, CraftedItemID: 2304, SkillTierID: &tier},
		&ItemData{Version: GameVersionRetail, ItemID: 2318},
		&Item{ID: 2318, ClassID: 7, SubclassID: 6, ClassicData: &classic, RetailData: &retail},
		&Recipe{ID: 2152, CraftedItemID: 2304, SkillTierID: &tier},
		&Reagent{RecipeID: 2152, ItemID: 2318},
		&Region{ID: 1},
		&Realm{ID: 1, RegionID: 1},
		&ConnectedRealm{ID: 4395},
		&RealmConnection{ConnectedRealmID: 4395, RealmID: 1},
		&AuctionHouse{ConnectedRealmID: 4395, FactionID: FactionIDHorde},
		&Auction{House: house, AuctionID: 1, UpdateDate: day},
		&AuctionSummary{House: house, ItemID: 2318, UpdateDate: day},
	}
}

func TestDependencyOrder_CoversEveryKind(t *testing.T) {
	records := sampleRecords()
	require.Len(t, DependencyOrder, len(records))

	for _, rec := range records {
		assert.Contains(t, DependencyOrder, rec.Kind())
	}
}

func TestDependencyOrder_ParentsComeFirst(t *testing.T) {
	for _, rec := range sampleRecords() {
		pos := slices.Index(DependencyOrder, rec.Kind())
		for _, ref := range ReferencesOf(rec) {
			parent := slices.Index(DependencyOrder, ref.Kind)
			require.GreaterOrEqual(t, parent, 0, "%s references unknown kind %s", rec.Kind(), ref.Kind)
			assert.Less(t, parent, pos, "%s must be loaded after %s", rec.Kind(), ref.Kind)
		}
	}
}

func TestReferencesOf(t *testing.T) {
	assert.Nil(t, ReferencesOf(&Expansion{ID: 1}))
	assert.Nil(t, ReferencesOf(&StgRecipeItem{RecipeID: 1}), "unassigned skill tier is not a reference")

	refs := ReferencesOf(&Item{ID: 1, ClassID: 2, SubclassID: 3})
	assert.Equal(t, []Reference{{Kind: KindItemClassHierarchy, Key: ItemClassHierarchyKey{ClassID: 2, SubclassID: 3}}}, refs)
}

func TestPrimaryKeysAreComparable(t *testing.T) {
	seen := make(map[any]Kind)
	for _, rec := range sampleRecords() {
		key := rec.PrimaryKey()
		assert.NotPanics(t, func() { seen[key] = rec.Kind() })
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	local := time.Date(2024, 3, 10, 5, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), DateOf(local))
}

func TestParseGameVersion(t *testing.T) {
	v, err := ParseGameVersion(" classic ")
	require.NoError(t, err)
	assert.Equal(t, GameVersionClassic, v)

	_, err = ParseGameVersion("ptr")
	require.ErrorIs(t, err, ErrUnsupportedNamespace)
}

func TestKeyStrings(t *testing.T) {
	house := AuctionHouseKey{ConnectedRealmID: 4395, FactionID: 6}
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "4395_6", house.String())
	assert.Equal(t, "4395_6_20240309_14_99", AuctionKey{House: house, UpdateDate: day, UpdateHour: 14, AuctionID: 99}.String())
	assert.Equal(t, "RETAIL_2318", ItemDataKey{Version: GameVersionRetail, ItemID: 2318}.String())
	assert.Equal(t, "7_6", ItemClassHierarchyKey{ClassID: 7, SubclassID: 6}.String())
}
