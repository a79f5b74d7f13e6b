package domain

// Kind identifies a record type. The value doubles as the backing table name.
type Kind string

const (
	KindExpansion          Kind = "expansion"
	KindProfession         Kind = "profession"
	KindSkillTier          Kind = "skill_tier"
	KindItemClass          Kind = "item_class"
	KindItemClassHierarchy Kind = "item_class_hierarchy"
	KindStgRecipeItem      Kind = "stg_recipe_item"
	KindItemData           Kind = "item_data"
	KindItem               Kind = "item"
	KindRecipe             Kind = "recipe"
	KindReagent            Kind = "reagent"
	KindRegion             Kind = "region"
	KindRealm              Kind = "realm"
	KindConnectedRealm     Kind = "connected_realm"
	KindRealmConnection    Kind = "realm_connection"
	KindAuctionHouse       Kind = "auction_house"
	KindAuction            Kind = "auction"
	KindAuctionSummary     Kind = "auction_summary"
)

// DependencyOrder lists every kind so that each one appears after all kinds it references.
var DependencyOrder = []Kind{
	KindExpansion,
	KindProfession,
	KindSkillTier,
	KindItemClass,
	KindItemClassHierarchy,
	KindStgRecipeItem,
	KindItemData,
	KindItem,
	KindRecipe,
	KindReagent,
	KindRegion,
	KindRealm,
	KindConnectedRealm,
	KindRealmConnection,
	KindAuctionHouse,
	KindAuction,
	KindAuctionSummary,
}

// Record is anything the bulk loader can persist.
// PrimaryKey must return a comparable value that is unique within the kind.
type Record interface {
	Kind() Kind
	PrimaryKey() any
}

// Reference points at a parent record that must exist before the referencing record is stored.
type Reference struct {
	Kind Kind
	Key  any
}

// Referencer is implemented by records holding foreign keys.
type Referencer interface {
	References() []Reference
}

// ReferencesOf returns the references of rec, or nil when it has none.
func ReferencesOf(rec Record) []Reference {
	if r, ok := rec.(Referencer); ok {
		return r.References()
	}
	return nil
}
