package realm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FreeLunch_Go/internal/bnet"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/loader"
	"github.com/osse101/FreeLunch_Go/internal/testing/fakecatalog"
	"github.com/osse101/FreeLunch_Go/internal/testing/memstore"
)

const classic = domain.GameVersionClassic

func href(path string) bnet.Link {
	return bnet.Link{Href: "https://us.api.blizzard.com" + path + "?namespace=dynamic-classic-us"}
}

func newFixture(t *testing.T) (*fakecatalog.Catalog, *memstore.Store, Service) {
	t.Helper()
	cat := fakecatalog.New()

	cat.RegionIndex[classic] = &bnet.RegionIndex{Regions: []bnet.Link{href("/data/wow/region/41")}}
	cat.Regions[classic] = map[int]*bnet.Region{41: {ID: 41, Name: "North America", Tag: "US"}}

	cat.RealmIndex[classic] = &bnet.RealmIndex{Realms: []bnet.RealmRef{
		{ID: 4728, Name: "Benediction", Slug: "benediction"},
		{ID: 4408, Name: "Faerlina", Slug: "faerlina"},
	}}
	cat.Realms[classic] = map[string]*bnet.Realm{
		"benediction": {ID: 4728, Region: bnet.Ref{ID: 41}, Name: "Benediction", Slug: "benediction",
			Category: "US East", Timezone: "America/New_York", Type: bnet.TypedName{Type: "PVP"}},
		"faerlina": {ID: 4408, Region: bnet.Ref{ID: 41}, Name: "Faerlina", Slug: "faerlina",
			Category: "US East", Timezone: "America/New_York", Type: bnet.TypedName{Type: "PVP"}},
	}

	cat.ConnectedRealmIndex[classic] = &bnet.ConnectedRealmIndex{ConnectedRealms: []bnet.Link{
		href("/data/wow/connected-realm/4728"),
		href("/data/wow/connected-realm/4408"),
	}}
	cat.ConnectedRealms[classic] = map[int]*bnet.ConnectedRealm{
		4728: {ID: 4728, Status: bnet.TypedName{Type: "UP"}, Population: bnet.TypedName{Type: "FULL"},
			Realms: []bnet.RealmRef{{ID: 4728, Slug: "benediction"}}},
		4408: {ID: 4408, Status: bnet.TypedName{Type: "UP"}, Population: bnet.TypedName{Type: "HIGH"},
			Realms: []bnet.RealmRef{{ID: 4408, Slug: "faerlina"}}},
	}

	store := memstore.New()
	return cat, store, NewService(cat, loader.New(store, 100))
}

func loadAll(t *testing.T, svc Service) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.LoadRegions(ctx, classic))
	require.NoError(t, svc.LoadRealms(ctx, classic))
	require.NoError(t, svc.LoadConnectedRealms(ctx, classic))
}

func TestLoadRealmHierarchy(t *testing.T) {
	_, store, svc := newFixture(t)

	loadAll(t, svc)

	rec, ok := store.Get(domain.KindRegion, 41)
	require.True(t, ok)
	assert.Equal(t, classic, rec.(*domain.Region).Version)
	assert.Equal(t, "US", rec.(*domain.Region).Tag)

	rec, ok = store.Get(domain.KindRealm, 4728)
	require.True(t, ok)
	r := rec.(*domain.Realm)
	assert.Equal(t, 41, r.RegionID)
	assert.Equal(t, domain.RealmTypePVP, r.Type)
	assert.Equal(t, domain.RealmCategoryUSEast, r.Category)

	rec, ok = store.Get(domain.KindConnectedRealm, 4408)
	require.True(t, ok)
	cr := rec.(*domain.ConnectedRealm)
	assert.Equal(t, "Connected Realm - 4408", cr.Name)
	assert.Equal(t, domain.RealmPopulationHigh, cr.Population)
	assert.Equal(t, domain.RealmStatusUp, cr.Status)

	rec, ok = store.Get(domain.KindRealmConnection, domain.RealmConnectionKey{ConnectedRealmID: 4728, RealmID: 4728})
	require.True(t, ok)
	assert.Equal(t, "Realm Connection - 4728_4728", rec.(*domain.RealmConnection).Name)

	batches := store.Batches()
	require.Len(t, batches, 4)
	assert.Equal(t, domain.KindConnectedRealm, batches[2].Kind)
	assert.Equal(t, domain.KindRealmConnection, batches[3].Kind)
}

func TestLoadRealmHierarchy_IsIdempotent(t *testing.T) {
	_, store, svc := newFixture(t)
	loadAll(t, svc)
	before := len(store.Batches())

	loadAll(t, svc)

	assert.Len(t, store.Batches(), before)
	assert.Equal(t, 2, store.Count(domain.KindRealm))
}

func TestLoadRealms_RequiresRegion(t *testing.T) {
	_, _, svc := newFixture(t)

	err := svc.LoadRealms(context.Background(), classic)

	require.ErrorIs(t, err, domain.ErrDependencyOrdering)
}

func TestLoadRealms_UnknownCategoryFails(t *testing.T) {
	ctx := context.Background()
	cat, _, svc := newFixture(t)
	cat.Realms[classic]["faerlina"].Category = "Atlantis"
	require.NoError(t, svc.LoadRegions(ctx, classic))

	err := svc.LoadRealms(ctx, classic)

	require.ErrorIs(t, err, domain.ErrAmbiguousMapping)
	assert.Contains(t, err.Error(), "faerlina")
}

func TestLoadRegions_MalformedHref(t *testing.T) {
	cat, _, svc := newFixture(t)
	cat.RegionIndex[classic] = &bnet.RegionIndex{Regions: []bnet.Link{{Href: "https://us.api.blizzard.com/data/wow/region/us"}}}

	err := svc.LoadRegions(context.Background(), classic)

	require.ErrorIs(t, err, domain.ErrMalformedResponse)
}
