// Package fakecatalog is a map-backed stand-in for the upstream catalog client.
// Missing entries answer domain.ErrNotFound, like a 404 from the real API.
package fakecatalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/osse101/FreeLunch_Go/internal/bnet"
	"github.com/osse101/FreeLunch_Go/internal/domain"
)

// Pair keys two-id lookups such as (class, subclass) or (profession, skill tier)
type Pair [2]int

// Catalog serves fixture responses
type Catalog struct {
	mu    sync.RWMutex
	calls []string

	ProfessionIndex *bnet.ProfessionIndex
	Professions     map[int]*bnet.Profession
	ProfessionMedia map[int]*bnet.Media
	SkillTiers      map[Pair]*bnet.SkillTier
	Recipes         map[int]*bnet.Recipe
	RecipeMedia     map[int]*bnet.Media

	Items        map[domain.GameVersion]map[int]*bnet.Item
	ItemMedia    map[domain.GameVersion]map[int]*bnet.Media
	ItemClasses  map[domain.GameVersion]*bnet.ItemClassIndex
	ItemSubclass map[domain.GameVersion]map[Pair]*bnet.ItemSubclass

	RegionIndex         map[domain.GameVersion]*bnet.RegionIndex
	Regions             map[domain.GameVersion]map[int]*bnet.Region
	RealmIndex          map[domain.GameVersion]*bnet.RealmIndex
	Realms              map[domain.GameVersion]map[string]*bnet.Realm
	ConnectedRealmIndex map[domain.GameVersion]*bnet.ConnectedRealmIndex
	ConnectedRealms     map[domain.GameVersion]map[int]*bnet.ConnectedRealm
	AuctionHouses       map[int]*bnet.AuctionHouseIndex
	Auctions            map[Pair]*bnet.AuctionSnapshot

	// Errors overrides the answer of a call, keyed like the entries of Calls
	Errors map[string]error
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		Professions:         make(map[int]*bnet.Profession),
		ProfessionMedia:     make(map[int]*bnet.Media),
		SkillTiers:          make(map[Pair]*bnet.SkillTier),
		Recipes:             make(map[int]*bnet.Recipe),
		RecipeMedia:         make(map[int]*bnet.Media),
		Items:               make(map[domain.GameVersion]map[int]*bnet.Item),
		ItemMedia:           make(map[domain.GameVersion]map[int]*bnet.Media),
		ItemClasses:         make(map[domain.GameVersion]*bnet.ItemClassIndex),
		ItemSubclass:        make(map[domain.GameVersion]map[Pair]*bnet.ItemSubclass),
		RegionIndex:         make(map[domain.GameVersion]*bnet.RegionIndex),
		Regions:             make(map[domain.GameVersion]map[int]*bnet.Region),
		RealmIndex:          make(map[domain.GameVersion]*bnet.RealmIndex),
		Realms:              make(map[domain.GameVersion]map[string]*bnet.Realm),
		ConnectedRealmIndex: make(map[domain.GameVersion]*bnet.ConnectedRealmIndex),
		ConnectedRealms:     make(map[domain.GameVersion]map[int]*bnet.ConnectedRealm),
		AuctionHouses:       make(map[int]*bnet.AuctionHouseIndex),
		Auctions:            make(map[Pair]*bnet.AuctionSnapshot),
		Errors:              make(map[string]error),
	}
}

// Key formats a call label, e.g. Key("item", "RETAIL", 2589) is "item:RETAIL:2589"
func Key(endpoint string, parts ...any) string {
	var b strings.Builder
	b.WriteString(endpoint)
	for _, p := range parts {
		fmt.Fprintf(&b, ":%v", p)
	}
	return b.String()
}

// Calls returns every call label in order
func (c *Catalog) Calls() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.calls)
}

// CallCount counts calls whose label starts with prefix
func (c *Catalog) CallCount(prefix string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, call := range c.calls {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}

// PutItem registers an item and a one-asset media document for version
func (c *Catalog) PutItem(version domain.GameVersion, item *bnet.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Items[version] == nil {
		c.Items[version] = make(map[int]*bnet.Item)
		c.ItemMedia[version] = make(map[int]*bnet.Media)
	}
	c.Items[version][item.ID] = item
	c.ItemMedia[version][item.ID] = &bnet.Media{ID: item.ID, Assets: []bnet.MediaAsset{{
		Key:        "icon",
		Value:      fmt.Sprintf("https://render.example/icons/%d.jpg", item.ID),
		FileDataID: item.ID + 100000,
	}}}
}

// PutSubclass registers a class x subclass pair for version
func (c *Catalog) PutSubclass(version domain.GameVersion, sub *bnet.ItemSubclass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ItemSubclass[version] == nil {
		c.ItemSubclass[version] = make(map[Pair]*bnet.ItemSubclass)
	}
	c.ItemSubclass[version][Pair{sub.ClassID, sub.SubclassID}] = sub
}

// record logs the call and checks the endpoint/version pair like the real client
func (c *Catalog) record(endpoint string, version domain.GameVersion, parts ...any) (string, error) {
	key := Key(endpoint, append([]any{version}, parts...)...)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, key)
	if !bnet.Supports(endpoint, version) {
		return key, fmt.Errorf("%w: %s %s", domain.ErrUnsupportedNamespace, endpoint, version)
	}
	if err, ok := c.Errors[key]; ok {
		return key, err
	}
	return key, nil
}

func lookup[K comparable, V any](c *Catalog, m map[K]V, k K, label string) (V, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := m[k]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %s", domain.ErrNotFound, label)
	}
	return v, nil
}

func (c *Catalog) GetProfessionIndex(_ context.Context) (*bnet.ProfessionIndex, error) {
	key, err := c.record(bnet.EndpointProfessionIndex, domain.GameVersionRetail)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ProfessionIndex == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	return c.ProfessionIndex, nil
}

func (c *Catalog) GetProfession(_ context.Context, professionID int) (*bnet.Profession, error) {
	key, err := c.record(bnet.EndpointProfession, domain.GameVersionRetail, professionID)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.Professions, professionID, key)
}

func (c *Catalog) GetProfessionMedia(_ context.Context, professionID int) (*bnet.Media, error) {
	key, err := c.record(bnet.EndpointProfessionMedia, domain.GameVersionRetail, professionID)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.ProfessionMedia, professionID, key)
}

func (c *Catalog) GetSkillTier(_ context.Context, professionID, skillTierID int) (*bnet.SkillTier, error) {
	key, err := c.record(bnet.EndpointSkillTier, domain.GameVersionRetail, professionID, skillTierID)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.SkillTiers, Pair{professionID, skillTierID}, key)
}

func (c *Catalog) GetRecipe(_ context.Context, recipeID int) (*bnet.Recipe, error) {
	key, err := c.record(bnet.EndpointRecipe, domain.GameVersionRetail, recipeID)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.Recipes, recipeID, key)
}

func (c *Catalog) GetRecipeMedia(_ context.Context, recipeID int) (*bnet.Media, error) {
	key, err := c.record(bnet.EndpointRecipeMedia, domain.GameVersionRetail, recipeID)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.RecipeMedia, recipeID, key)
}

func (c *Catalog) GetItem(_ context.Context, version domain.GameVersion, itemID int) (*bnet.Item, error) {
	key, err := c.record(bnet.EndpointItem, version, itemID)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.Items[version], itemID, key)
}

func (c *Catalog) GetItemMedia(_ context.Context, version domain.GameVersion, itemID int) (*bnet.Media, error) {
	key, err := c.record(bnet.EndpointItemMedia, version, itemID)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.ItemMedia[version], itemID, key)
}

func (c *Catalog) GetItemClassIndex(_ context.Context, version domain.GameVersion) (*bnet.ItemClassIndex, error) {
	key, err := c.record(bnet.EndpointItemClassIndex, version)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.ItemClasses, version, key)
}

func (c *Catalog) GetItemSubclass(_ context.Context, version domain.GameVersion, classID, subclassID int) (*bnet.ItemSubclass, error) {
	key, err := c.record(bnet.EndpointItemSubclass, version, classID, subclassID)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.ItemSubclass[version], Pair{classID, subclassID}, key)
}

func (c *Catalog) GetRegionIndex(_ context.Context, version domain.GameVersion) (*bnet.RegionIndex, error) {
	key, err := c.record(bnet.EndpointRegionIndex, version)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.RegionIndex, version, key)
}

func (c *Catalog) GetRegion(_ context.Context, version domain.GameVersion, regionID int) (*bnet.Region, error) {
	key, err := c.record(bnet.EndpointRegion, version, regionID)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.Regions[version], regionID, key)
}

func (c *Catalog) GetRealmIndex(_ context.Context, version domain.GameVersion) (*bnet.RealmIndex, error) {
	key, err := c.record(bnet.EndpointRealmIndex, version)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.RealmIndex, version, key)
}

func (c *Catalog) GetRealm(_ context.Context, version domain.GameVersion, slug string) (*bnet.Realm, error) {
	key, err := c.record(bnet.EndpointRealm, version, slug)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.Realms[version], slug, key)
}

func (c *Catalog) GetConnectedRealmIndex(_ context.Context, version domain.GameVersion) (*bnet.ConnectedRealmIndex, error) {
	key, err := c.record(bnet.EndpointConnectedRealmIdx, version)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.ConnectedRealmIndex, version, key)
}

func (c *Catalog) GetConnectedRealm(_ context.Context, version domain.GameVersion, connectedRealmID int) (*bnet.ConnectedRealm, error) {
	key, err := c.record(bnet.EndpointConnectedRealm, version, connectedRealmID)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.ConnectedRealms[version], connectedRealmID, key)
}

func (c *Catalog) GetAuctionHouseIndex(_ context.Context, version domain.GameVersion, connectedRealmID int) (*bnet.AuctionHouseIndex, error) {
	key, err := c.record(bnet.EndpointAuctionHouseIndex, version, connectedRealmID)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.AuctionHouses, connectedRealmID, key)
}

func (c *Catalog) GetAuctions(_ context.Context, version domain.GameVersion, connectedRealmID, auctionHouseID int) (*bnet.AuctionSnapshot, error) {
	key, err := c.record(bnet.EndpointAuctions, version, connectedRealmID, auctionHouseID)
	if err != nil {
		return nil, err
	}
	return lookup(c, c.Auctions, Pair{connectedRealmID, auctionHouseID}, key)
}
