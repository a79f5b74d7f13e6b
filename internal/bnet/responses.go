package bnet

// Ref is the {id, name} pair the catalog embeds for linked entities
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Link is a bare {href} pointer
type Link struct {
	Href string `json:"href"`
}

// TypedName is the {type, name} pair used for upstream enums
type TypedName struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// MediaAsset is one entry of a media document
type MediaAsset struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	FileDataID int    `json:"file_data_id"`
}

// Media is the media document of a profession, item, or recipe
type Media struct {
	ID     int          `json:"id"`
	Assets []MediaAsset `json:"assets"`
}

// Primary returns assets[0], the icon every loader stores
func (m *Media) Primary() (MediaAsset, bool) {
	if m == nil || len(m.Assets) == 0 {
		return MediaAsset{}, false
	}
	return m.Assets[0], true
}

// ProfessionIndex lists every profession
type ProfessionIndex struct {
	Professions []Ref `json:"professions"`
}

// Profession is the profession detail with its embedded skill tiers
type Profession struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Type       TypedName `json:"type"`
	SkillTiers []Ref     `json:"skill_tiers"`
}

// RecipeCategory groups recipes inside a skill tier
type RecipeCategory struct {
	Name    string `json:"name"`
	Recipes []Ref  `json:"recipes"`
}

// SkillTier is the skill-tier detail of a profession
type SkillTier struct {
	ID                int              `json:"id"`
	Name              string           `json:"name"`
	MinimumSkillLevel int              `json:"minimum_skill_level"`
	MaximumSkillLevel int              `json:"maximum_skill_level"`
	Categories        []RecipeCategory `json:"categories"`
}

// RecipeReagent is one input of a recipe
type RecipeReagent struct {
	Reagent  Ref `json:"reagent"`
	Quantity int `json:"quantity"`
}

// CraftedQuantity is either a fixed value or a minimum/maximum pair
type CraftedQuantity struct {
	Value   *float64 `json:"value,omitempty"`
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`
}

// Range returns the min and max produced quantity. ok is false when neither form is present.
func (q *CraftedQuantity) Range() (lo, hi int, ok bool) {
	switch {
	case q == nil:
		return 0, 0, false
	case q.Value != nil:
		return int(*q.Value), int(*q.Value), true
	case q.Minimum != nil && q.Maximum != nil:
		return int(*q.Minimum), int(*q.Maximum), true
	default:
		return 0, 0, false
	}
}

// Recipe is the recipe detail
type Recipe struct {
	ID                  int              `json:"id"`
	Name                string           `json:"name"`
	Reagents            []RecipeReagent  `json:"reagents"`
	CraftedItem         *Ref             `json:"crafted_item,omitempty"`
	AllianceCraftedItem *Ref             `json:"alliance_crafted_item,omitempty"`
	HordeCraftedItem    *Ref             `json:"horde_crafted_item,omitempty"`
	CraftedQuantity     *CraftedQuantity `json:"crafted_quantity,omitempty"`
}

// Item is the item detail
type Item struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Quality       TypedName `json:"quality"`
	Level         int       `json:"level"`
	RequiredLevel int       `json:"required_level"`
	ItemClass     *Ref      `json:"item_class,omitempty"`
	ItemSubclass  *Ref      `json:"item_subclass,omitempty"`
	PurchasePrice int64     `json:"purchase_price"`
	SellPrice     int64     `json:"sell_price"`
}

// ItemClassIndex lists the item classes
type ItemClassIndex struct {
	ItemClasses []Ref `json:"item_classes"`
}

// ItemSubclass is one class x subclass pair
type ItemSubclass struct {
	ClassID     int    `json:"class_id"`
	SubclassID  int    `json:"subclass_id"`
	DisplayName string `json:"display_name"`
}

// RegionIndex lists region links
type RegionIndex struct {
	Regions []Link `json:"regions"`
}

// Region is the region detail
type Region struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// RealmRef is a realm entry of an index
type RealmRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// RealmIndex lists realms by slug
type RealmIndex struct {
	Realms []RealmRef `json:"realms"`
}

// Realm is the realm detail
type Realm struct {
	ID       int       `json:"id"`
	Region   Ref       `json:"region"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Category string    `json:"category"`
	Timezone string    `json:"timezone"`
	Type     TypedName `json:"type"`
}

// ConnectedRealmIndex lists connected-realm links
type ConnectedRealmIndex struct {
	ConnectedRealms []Link `json:"connected_realms"`
}

// ConnectedRealm is the connected-realm detail with its member realms
type ConnectedRealm struct {
	ID         int        `json:"id"`
	Status     TypedName  `json:"status"`
	Population TypedName  `json:"population"`
	Realms     []RealmRef `json:"realms"`
}

// AuctionHouseIndex lists the faction houses of a connected realm
type AuctionHouseIndex struct {
	Auctions []Ref `json:"auctions"`
}

// Listing is one auction of a snapshot. Bid and buyout are totals for the whole stack.
type Listing struct {
	ID        int64  `json:"id"`
	Item      Ref    `json:"item"`
	Bid       *int64 `json:"bid,omitempty"`
	Buyout    *int64 `json:"buyout,omitempty"`
	UnitPrice *int64 `json:"unit_price,omitempty"`
	Quantity  int64  `json:"quantity"`
	TimeLeft  string `json:"time_left"`
}

// AuctionSnapshot is the live listing set of one auction house
type AuctionSnapshot struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Auctions []Listing `json:"auctions"`
}
