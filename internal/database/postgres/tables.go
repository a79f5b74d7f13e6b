package postgres

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/FreeLunch_Go/internal/domain"
)

// table maps one record kind onto its backing table
type table struct {
	name    string
	columns []string
	keys    []string
	row     func(domain.Record) []any
	keyArgs func(key any) ([]any, bool)

	existsSQL string
}

func (t *table) ident() string {
	return pgx.Identifier{t.name}.Sanitize()
}

func (t *table) columnList() string {
	quoted := make([]string, len(t.columns))
	for i, c := range t.columns {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}

func (t *table) compile() {
	conds := make([]string, len(t.keys))
	for i, k := range t.keys {
		conds[i] = fmt.Sprintf("%s = $%d", pgx.Identifier{k}.Sanitize(), i+1)
	}
	t.existsSQL = fmt.Sprintf(SQLExists, t.ident(), strings.Join(conds, " AND "))
}

func intKey(key any) ([]any, bool) {
	id, ok := key.(int)
	return []any{id}, ok
}

// dataKey splits an optional item data key into its two nullable columns
func dataKey(k *domain.ItemDataKey) (any, any) {
	if k == nil {
		return nil, nil
	}
	return string(k.Version), k.ItemID
}

var tables = map[domain.Kind]*table{
	domain.KindExpansion: {
		columns: []string{"id", "name", "skill_tier_prefix", "max_level", "is_classic"},
		keys:    []string{"id"},
		row: func(r domain.Record) []any {
			e := r.(*domain.Expansion)
			return []any{e.ID, e.Name, e.SkillTierPrefix, e.MaxLevel, e.IsClassic}
		},
		keyArgs: intKey,
	},
	domain.KindProfession: {
		columns: []string{"id", "name", "media_url", "media_file_data_id", "is_primary", "is_crafting"},
		keys:    []string{"id"},
		row: func(r domain.Record) []any {
			p := r.(*domain.Profession)
			return []any{p.ID, p.Name, p.MediaURL, p.MediaFileDataID, p.IsPrimary, p.IsCrafting}
		},
		keyArgs: intKey,
	},
	domain.KindSkillTier: {
		columns: []string{"id", "profession_id", "name", "min_skill_level", "max_skill_level",
			"min_total_skill_level", "max_total_skill_level", "is_legacy_tier", "expansion_id"},
		keys: []string{"id"},
		row: func(r domain.Record) []any {
			s := r.(*domain.SkillTier)
			return []any{s.ID, s.ProfessionID, s.Name, s.MinSkillLevel, s.MaxSkillLevel,
				s.MinTotalSkillLevel, s.MaxTotalSkillLevel, s.IsLegacyTier, s.ExpansionID}
		},
		keyArgs: intKey,
	},
	domain.KindItemClass: {
		columns: []string{"id", "name"},
		keys:    []string{"id"},
		row: func(r domain.Record) []any {
			c := r.(*domain.ItemClass)
			return []any{c.ID, c.Name}
		},
		keyArgs: intKey,
	},
	domain.KindItemClassHierarchy: {
		columns: []string{"item_class_id", "item_subclass_id", "name", "display_name"},
		keys:    []string{"item_class_id", "item_subclass_id"},
		row: func(r domain.Record) []any {
			h := r.(*domain.ItemClassHierarchy)
			return []any{h.ClassID, h.SubclassID, h.Name, h.DisplayName}
		},
		keyArgs: func(key any) ([]any, bool) {
			k, ok := key.(domain.ItemClassHierarchyKey)
			return []any{k.ClassID, k.SubclassID}, ok
		},
	},
	domain.KindStgRecipeItem: {
		columns: []string{"recipe_id", "item_id", "crafted_item_id", "name", "skill_tier_id", "item_quantity"},
		keys:    []string{"recipe_id", "item_id", "crafted_item_id"},
		row: func(r domain.Record) []any {
			s := r.(*domain.StgRecipeItem)
			return []any{s.RecipeID, s.ItemID, s.CraftedItemID, s.Name, s.SkillTierID, s.ItemQuantity}
		},
		keyArgs: func(key any) ([]any, bool) {
			k, ok := key.(domain.StgRecipeItemKey)
			return []any{k.RecipeID, k.ItemID, k.CraftedItemID}, ok
		},
	},
	domain.KindItemData: {
		columns: []string{"game_version", "item_id", "name", "media_url", "media_file_data_id",
			"purchase_price", "sell_price", "level", "required_level", "quality", "is_vendor_item"},
		keys: []string{"game_version", "item_id"},
		row: func(r domain.Record) []any {
			d := r.(*domain.ItemData)
			return []any{string(d.Version), d.ItemID, d.Name, d.MediaURL, d.MediaFileDataID,
				d.PurchasePrice, d.SellPrice, d.Level, d.RequiredLevel, d.Quality, d.IsVendorItem}
		},
		keyArgs: func(key any) ([]any, bool) {
			k, ok := key.(domain.ItemDataKey)
			return []any{string(k.Version), k.ItemID}, ok
		},
	},
	domain.KindItem: {
		columns: []string{"id", "name", "item_class_id", "item_subclass_id",
			"classic_item_data_version", "classic_item_data_id",
			"retail_item_data_version", "retail_item_data_id"},
		keys: []string{"id"},
		row: func(r domain.Record) []any {
			i := r.(*domain.Item)
			cv, cid := dataKey(i.ClassicData)
			rv, rid := dataKey(i.RetailData)
			return []any{i.ID, i.Name, i.ClassID, i.SubclassID, cv, cid, rv, rid}
		},
		keyArgs: intKey,
	},
	domain.KindRecipe: {
		columns: []string{"id", "name", "skill_tier_id", "crafted_item_id", "min_quantity", "max_quantity",
			"media_url", "media_file_data_id"},
		keys: []string{"id"},
		row: func(r domain.Record) []any {
			rc := r.(*domain.Recipe)
			return []any{rc.ID, rc.Name, rc.SkillTierID, rc.CraftedItemID, rc.MinQuantity, rc.MaxQuantity,
				rc.MediaURL, rc.MediaFileDataID}
		},
		keyArgs: intKey,
	},
	domain.KindReagent: {
		columns: []string{"recipe_id", "item_id", "name", "item_quantity"},
		keys:    []string{"recipe_id", "item_id"},
		row: func(r domain.Record) []any {
			g := r.(*domain.Reagent)
			return []any{g.RecipeID, g.ItemID, g.Name, g.ItemQuantity}
		},
		keyArgs: func(key any) ([]any, bool) {
			k, ok := key.(domain.ReagentKey)
			return []any{k.RecipeID, k.ItemID}, ok
		},
	},
	domain.KindRegion: {
		columns: []string{"id", "name", "tag", "game_version"},
		keys:    []string{"id"},
		row: func(r domain.Record) []any {
			g := r.(*domain.Region)
			return []any{g.ID, g.Name, g.Tag, string(g.Version)}
		},
		keyArgs: intKey,
	},
	domain.KindRealm: {
		columns: []string{"id", "region_id", "name", "slug", "realm_type", "realm_category", "timezone"},
		keys:    []string{"id"},
		row: func(r domain.Record) []any {
			m := r.(*domain.Realm)
			return []any{m.ID, m.RegionID, m.Name, m.Slug, string(m.Type), string(m.Category), m.Timezone}
		},
		keyArgs: intKey,
	},
	domain.KindConnectedRealm: {
		columns: []string{"id", "name", "status", "population"},
		keys:    []string{"id"},
		row: func(r domain.Record) []any {
			c := r.(*domain.ConnectedRealm)
			return []any{c.ID, c.Name, string(c.Status), string(c.Population)}
		},
		keyArgs: intKey,
	},
	domain.KindRealmConnection: {
		columns: []string{"connected_realm_id", "realm_id", "name"},
		keys:    []string{"connected_realm_id", "realm_id"},
		row: func(r domain.Record) []any {
			c := r.(*domain.RealmConnection)
			return []any{c.ConnectedRealmID, c.RealmID, c.Name}
		},
		keyArgs: func(key any) ([]any, bool) {
			k, ok := key.(domain.RealmConnectionKey)
			return []any{k.ConnectedRealmID, k.RealmID}, ok
		},
	},
	domain.KindAuctionHouse: {
		columns: []string{"connected_realm_id", "faction_id", "name", "faction"},
		keys:    []string{"connected_realm_id", "faction_id"},
		row: func(r domain.Record) []any {
			h := r.(*domain.AuctionHouse)
			return []any{h.ConnectedRealmID, h.FactionID, h.Name, string(h.Faction)}
		},
		keyArgs: func(key any) ([]any, bool) {
			k, ok := key.(domain.AuctionHouseKey)
			return []any{k.ConnectedRealmID, k.FactionID}, ok
		},
	},
	domain.KindAuction: {
		columns: []string{"connected_realm_id", "faction_id", "update_date", "update_hour", "auction_id",
			"item_id", "quantity", "bid_unit_price", "buyout_unit_price", "time_left", "update_time"},
		keys: []string{"connected_realm_id", "faction_id", "update_date", "update_hour", "auction_id"},
		row: func(r domain.Record) []any {
			a := r.(*domain.Auction)
			return []any{a.House.ConnectedRealmID, a.House.FactionID, a.UpdateDate, int16(a.UpdateHour), a.AuctionID,
				a.ItemID, a.Quantity, a.BidUnitPrice, a.BuyoutUnitPrice, string(a.TimeLeft), a.UpdateTime}
		},
		keyArgs: func(key any) ([]any, bool) {
			k, ok := key.(domain.AuctionKey)
			return []any{k.House.ConnectedRealmID, k.House.FactionID, k.UpdateDate, int16(k.UpdateHour), k.AuctionID}, ok
		},
	},
	domain.KindAuctionSummary: {
		columns: []string{"connected_realm_id", "faction_id", "item_id", "update_date", "update_hour",
			"quantity", "vwap", "min_price", "min_quantity", "update_time"},
		keys: []string{"connected_realm_id", "faction_id", "item_id", "update_date", "update_hour"},
		row: func(r domain.Record) []any {
			s := r.(*domain.AuctionSummary)
			return []any{s.House.ConnectedRealmID, s.House.FactionID, s.ItemID, s.UpdateDate, int16(s.UpdateHour),
				s.Quantity, s.VWAP, s.MinPrice, s.MinQuantity, s.UpdateTime}
		},
		keyArgs: func(key any) ([]any, bool) {
			k, ok := key.(domain.AuctionSummaryKey)
			return []any{k.House.ConnectedRealmID, k.House.FactionID, k.ItemID, k.UpdateDate, int16(k.UpdateHour)}, ok
		},
	},
}

func init() {
	for kind, t := range tables {
		t.name = string(kind)
		t.compile()
	}
}

func tableFor(kind domain.Kind) (*table, error) {
	t, ok := tables[kind]
	if !ok {
		return nil, fmt.Errorf("%s: %s", ErrMsgUnknownKind, kind)
	}
	return t, nil
}
