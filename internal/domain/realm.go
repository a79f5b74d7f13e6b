package domain

import "fmt"

// RealmCategory is the upstream realm category label
type RealmCategory string

const (
	RealmCategoryBrazil       RealmCategory = "Brazil"
	RealmCategoryClassic      RealmCategory = "Classic"
	RealmCategoryLatinAmerica RealmCategory = "Latin America"
	RealmCategoryOceanic      RealmCategory = "Oceanic"
	RealmCategoryUnitedStates RealmCategory = "United States"
	RealmCategoryUSEast       RealmCategory = "US East"
	RealmCategoryUSWest       RealmCategory = "US West"
)

// RealmPopulation is the upstream population type
type RealmPopulation string

const (
	RealmPopulationNew         RealmPopulation = "NEW"
	RealmPopulationRecommended RealmPopulation = "RECOMMENDED"
	RealmPopulationLow         RealmPopulation = "LOW"
	RealmPopulationMedium      RealmPopulation = "MEDIUM"
	RealmPopulationHigh        RealmPopulation = "HIGH"
	RealmPopulationFull        RealmPopulation = "FULL"
	RealmPopulationLocked      RealmPopulation = "LOCKED"
)

// RealmStatus is the upstream status type
type RealmStatus string

const (
	RealmStatusUp   RealmStatus = "UP"
	RealmStatusDown RealmStatus = "DOWN"
)

// RealmType is the upstream ruleset type
type RealmType string

const (
	RealmTypeNormal RealmType = "NORMAL"
	RealmTypePVP    RealmType = "PVP"
	RealmTypePVPRP  RealmType = "PVP_RP"
	RealmTypeRP     RealmType = "RP"
)

// Region groups realms of one game version
type Region struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Tag     string      `json:"tag"`
	Version GameVersion `json:"game_version"`
}

func (r *Region) Kind() Kind      { return KindRegion }
func (r *Region) PrimaryKey() any { return r.ID }

// Realm is a single game server
type Realm struct {
	ID       int           `json:"id"`
	RegionID int           `json:"region_id"`
	Name     string        `json:"name"`
	Slug     string        `json:"slug"`
	Type     RealmType     `json:"realm_type"`
	Category RealmCategory `json:"realm_category"`
	Timezone string        `json:"timezone"`
}

func (r *Realm) Kind() Kind      { return KindRealm }
func (r *Realm) PrimaryKey() any { return r.ID }

func (r *Realm) References() []Reference {
	return []Reference{{Kind: KindRegion, Key: r.RegionID}}
}

// ConnectedRealm shares an auction house across its member realms
type ConnectedRealm struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Status     RealmStatus     `json:"status"`
	Population RealmPopulation `json:"population"`
}

func (c *ConnectedRealm) Kind() Kind      { return KindConnectedRealm }
func (c *ConnectedRealm) PrimaryKey() any { return c.ID }

// RealmConnectionKey identifies membership of a realm in a connected realm
type RealmConnectionKey struct {
	ConnectedRealmID int
	RealmID          int
}

func (k RealmConnectionKey) String() string {
	return fmt.Sprintf("%d_%d", k.ConnectedRealmID, k.RealmID)
}

// RealmConnection links a realm to its connected realm
type RealmConnection struct {
	ConnectedRealmID int    `json:"connected_realm_id"`
	RealmID          int    `json:"realm_id"`
	Name             string `json:"name"`
}

func (c *RealmConnection) Kind() Kind { return KindRealmConnection }

func (c *RealmConnection) PrimaryKey() any {
	return RealmConnectionKey{ConnectedRealmID: c.ConnectedRealmID, RealmID: c.RealmID}
}

func (c *RealmConnection) References() []Reference {
	return []Reference{
		{Kind: KindConnectedRealm, Key: c.ConnectedRealmID},
		{Kind: KindRealm, Key: c.RealmID},
	}
}
