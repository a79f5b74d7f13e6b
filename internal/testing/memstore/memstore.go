// Package memstore is an in-memory implementation of the repository contracts for tests.
// Like the Postgres schema, it rejects duplicate keys and dangling references.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/osse101/FreeLunch_Go/internal/domain"
)

// ErrDuplicateKey mirrors a unique violation
var ErrDuplicateKey = errors.New("duplicate key")

// ErrForeignKey mirrors a foreign key violation
var ErrForeignKey = errors.New("foreign key violation")

// Batch records one InsertBatch call
type Batch struct {
	Kind            domain.Kind
	Size            int
	IgnoreConflicts bool
}

// Store holds records per kind
type Store struct {
	mu      sync.RWMutex
	rows    map[domain.Kind]map[any]domain.Record
	order   map[domain.Kind][]any
	batches []Batch
	locks   map[string]bool

	// FailInsert makes InsertBatch of a kind fail with the given error
	FailInsert map[domain.Kind]error
	// ExistsCalls counts Exists lookups per kind
	ExistsCalls map[domain.Kind]int
}

// New creates an empty store
func New() *Store {
	return &Store{
		rows:        make(map[domain.Kind]map[any]domain.Record),
		order:       make(map[domain.Kind][]any),
		locks:       make(map[string]bool),
		FailInsert:  make(map[domain.Kind]error),
		ExistsCalls: make(map[domain.Kind]int),
	}
}

// Exists reports whether a record of kind with key is stored
func (s *Store) Exists(_ context.Context, kind domain.Kind, key any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ExistsCalls[kind]++
	_, ok := s.rows[kind][key]
	return ok, nil
}

// InsertBatch stores recs atomically: either every row lands or none does
func (s *Store) InsertBatch(_ context.Context, kind domain.Kind, recs []domain.Record, ignoreConflicts bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.FailInsert[kind]; err != nil {
		return 0, err
	}

	seen := make(map[any]bool, len(recs))
	var accepted []domain.Record
	for _, rec := range recs {
		if rec.Kind() != kind {
			return 0, fmt.Errorf("record of kind %s in %s batch", rec.Kind(), kind)
		}
		key := rec.PrimaryKey()
		_, stored := s.rows[kind][key]
		if stored || seen[key] {
			if ignoreConflicts {
				continue
			}
			return 0, fmt.Errorf("%w: %s %v", ErrDuplicateKey, kind, key)
		}
		for _, ref := range domain.ReferencesOf(rec) {
			if _, ok := s.rows[ref.Kind][ref.Key]; !ok {
				return 0, fmt.Errorf("%w: %s %v references %s %v", ErrForeignKey, kind, key, ref.Kind, ref.Key)
			}
		}
		seen[key] = true
		accepted = append(accepted, rec)
	}

	if s.rows[kind] == nil {
		s.rows[kind] = make(map[any]domain.Record)
	}
	for _, rec := range accepted {
		key := rec.PrimaryKey()
		s.rows[kind][key] = rec
		s.order[kind] = append(s.order[kind], key)
	}
	s.batches = append(s.batches, Batch{Kind: kind, Size: len(recs), IgnoreConflicts: ignoreConflicts})
	return int64(len(accepted)), nil
}

// Put stores records directly, bypassing reference checks. Used to seed fixtures.
func (s *Store) Put(recs ...domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		kind, key := rec.Kind(), rec.PrimaryKey()
		if s.rows[kind] == nil {
			s.rows[kind] = make(map[any]domain.Record)
		}
		if _, ok := s.rows[kind][key]; !ok {
			s.order[kind] = append(s.order[kind], key)
		}
		s.rows[kind][key] = rec
	}
}

// Count returns the number of stored records of kind
func (s *Store) Count(kind domain.Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows[kind])
}

// Get returns the stored record of kind with key
func (s *Store) Get(kind domain.Kind, key any) (domain.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rows[kind][key]
	return rec, ok
}

// Batches returns every successful InsertBatch call in order
func (s *Store) Batches() []Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.batches)
}

// all returns the records of kind in insertion order. Caller holds the lock.
func all[T any](s *Store, kind domain.Kind) []T {
	out := make([]T, 0, len(s.order[kind]))
	for _, key := range s.order[kind] {
		if rec, ok := s.rows[kind][key]; ok {
			out = append(out, any(rec).(T))
		}
	}
	return out
}

// List returns the records of kind in insertion order
func List[T domain.Record](s *Store, kind domain.Kind) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return all[T](s, kind)
}

// ListProfessions returns professions ordered by id
func (s *Store) ListProfessions(_ context.Context) ([]domain.Profession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Profession
	for _, p := range all[*domain.Profession](s, domain.KindProfession) {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListItemClasses returns item classes ordered by id
func (s *Store) ListItemClasses(_ context.Context) ([]domain.ItemClass, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ItemClass
	for _, c := range all[*domain.ItemClass](s, domain.KindItemClass) {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListStagedItemIDs returns the distinct reagent and crafted ids of the staging table
func (s *Store) ListStagedItemIDs(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := make(map[int]bool)
	for _, r := range all[*domain.StgRecipeItem](s, domain.KindStgRecipeItem) {
		set[r.ItemID] = true
		set[r.CraftedItemID] = true
	}
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// GetItem returns domain.ErrNotFound for unknown ids
func (s *Store) GetItem(_ context.Context, id int) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rows[domain.KindItem][id]
	if !ok {
		return nil, fmt.Errorf("%w: item %d", domain.ErrNotFound, id)
	}
	item := *rec.(*domain.Item)
	return &item, nil
}

// SetVendorFlag marks every ItemData row of the given items
func (s *Store) SetVendorFlag(_ context.Context, itemIDs []int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, d := range all[*domain.ItemData](s, domain.KindItemData) {
		if slices.Contains(itemIDs, d.ItemID) && !d.IsVendorItem {
			d.IsVendorItem = true
			n++
		}
	}
	return n, nil
}

// ListCraftingSkillTiers returns skill tiers of crafting professions ordered by id
func (s *Store) ListCraftingSkillTiers(_ context.Context) ([]domain.SkillTier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.SkillTier
	for _, t := range all[*domain.SkillTier](s, domain.KindSkillTier) {
		p, ok := s.rows[domain.KindProfession][t.ProfessionID]
		if ok && p.(*domain.Profession).IsCrafting {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// StagedRecipeExists reports whether any staged row belongs to recipeID
func (s *Store) StagedRecipeExists(_ context.Context, recipeID int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range all[*domain.StgRecipeItem](s, domain.KindStgRecipeItem) {
		if r.RecipeID == recipeID {
			return true, nil
		}
	}
	return false, nil
}

// ListUnpromotedRecipeIDs returns staged recipe ids without a Recipe row
func (s *Store) ListUnpromotedRecipeIDs(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := make(map[int]bool)
	for _, r := range all[*domain.StgRecipeItem](s, domain.KindStgRecipeItem) {
		if _, ok := s.rows[domain.KindRecipe][r.RecipeID]; !ok {
			set[r.RecipeID] = true
		}
	}
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// ListStagedRows returns the staged rows of a recipe ordered by crafted then reagent id
func (s *Store) ListStagedRows(_ context.Context, recipeID int) ([]domain.StgRecipeItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.StgRecipeItem
	for _, r := range all[*domain.StgRecipeItem](s, domain.KindStgRecipeItem) {
		if r.RecipeID == recipeID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CraftedItemID != out[j].CraftedItemID {
			return out[i].CraftedItemID < out[j].CraftedItemID
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out, nil
}

// SetStagedSkillTier fills skill_tier_id on staged rows of recipeID where it is null
func (s *Store) SetStagedSkillTier(_ context.Context, recipeID, skillTierID int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[domain.KindSkillTier][skillTierID]; !ok {
		return 0, fmt.Errorf("%w: skill_tier %d", ErrForeignKey, skillTierID)
	}
	var n int64
	for _, r := range all[*domain.StgRecipeItem](s, domain.KindStgRecipeItem) {
		if r.RecipeID == recipeID && r.SkillTierID == nil {
			id := skillTierID
			r.SkillTierID = &id
			n++
		}
	}
	return n, nil
}

// ListStagedZeroQuantity returns staged rows whose quantity was never captured
func (s *Store) ListStagedZeroQuantity(_ context.Context) ([]domain.StgRecipeItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.StgRecipeItem
	for _, r := range all[*domain.StgRecipeItem](s, domain.KindStgRecipeItem) {
		if r.ItemQuantity == 0 {
			out = append(out, *r)
		}
	}
	return out, nil
}

// SetStagedQuantity patches the quantity of one staged row
func (s *Store) SetStagedQuantity(_ context.Context, key domain.StgRecipeItemKey, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.rows[domain.KindStgRecipeItem][key]
	if !ok {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, domain.KindStgRecipeItem, key)
	}
	rec.(*domain.StgRecipeItem).ItemQuantity = quantity
	return nil
}

// ListRecipesMissingMedia returns recipe ids whose media is null
func (s *Store) ListRecipesMissingMedia(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []int
	for _, r := range all[*domain.Recipe](s, domain.KindRecipe) {
		if r.MediaURL == nil {
			ids = append(ids, r.ID)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// SetRecipeMedia patches the media columns of a recipe
func (s *Store) SetRecipeMedia(_ context.Context, recipeID int, mediaURL string, fileDataID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.rows[domain.KindRecipe][recipeID]
	if !ok {
		return fmt.Errorf("%w: recipe %d", domain.ErrNotFound, recipeID)
	}
	r := rec.(*domain.Recipe)
	r.MediaURL = &mediaURL
	r.MediaFileDataID = &fileDataID
	return nil
}

// ListConnectedRealmIDs follows realm_connection -> realm -> region to filter by version
func (s *Store) ListConnectedRealmIDs(_ context.Context, version domain.GameVersion) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := make(map[int]bool)
	for _, c := range all[*domain.RealmConnection](s, domain.KindRealmConnection) {
		realm, ok := s.rows[domain.KindRealm][c.RealmID]
		if !ok {
			continue
		}
		region, ok := s.rows[domain.KindRegion][realm.(*domain.Realm).RegionID]
		if ok && region.(*domain.Region).Version == version {
			set[c.ConnectedRealmID] = true
		}
	}
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// SummaryExists reports whether any summary row exists for the bucket
func (s *Store) SummaryExists(_ context.Context, date time.Time, hour int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sum := range all[*domain.AuctionSummary](s, domain.KindAuctionSummary) {
		if sum.UpdateDate.Equal(date) && sum.UpdateHour == hour {
			return true, nil
		}
	}
	return false, nil
}

type groupKey struct {
	house  domain.AuctionHouseKey
	itemID int
}

// AggregateAuctions mirrors the rank-1 window query of the Postgres store
func (s *Store) AggregateAuctions(_ context.Context, date time.Time, hour int) ([]domain.AuctionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make(map[groupKey]*domain.AuctionSummary)
	weighted := make(map[groupKey]float64)
	var keys []groupKey

	for _, a := range all[*domain.Auction](s, domain.KindAuction) {
		if !a.UpdateDate.Equal(date) || a.UpdateHour != hour {
			continue
		}
		if a.BuyoutUnitPrice == nil || *a.BuyoutUnitPrice <= 0 {
			continue
		}
		price := *a.BuyoutUnitPrice
		k := groupKey{house: a.House, itemID: a.ItemID}
		g, ok := groups[k]
		if !ok {
			g = &domain.AuctionSummary{
				House:      a.House,
				ItemID:     a.ItemID,
				MinPrice:   price,
				UpdateDate: date,
				UpdateHour: hour,
			}
			groups[k] = g
			keys = append(keys, k)
		}
		g.Quantity += a.Quantity
		weighted[k] += price * float64(a.Quantity)
		switch {
		case price < g.MinPrice:
			g.MinPrice = price
			g.MinQuantity = a.Quantity
		case price == g.MinPrice:
			g.MinQuantity += a.Quantity
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.house.ConnectedRealmID != b.house.ConnectedRealmID {
			return a.house.ConnectedRealmID < b.house.ConnectedRealmID
		}
		if a.house.FactionID != b.house.FactionID {
			return a.house.FactionID < b.house.FactionID
		}
		return a.itemID < b.itemID
	})
	out := make([]domain.AuctionSummary, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		g.VWAP = weighted[k] / float64(g.Quantity)
		out = append(out, *g)
	}
	return out, nil
}

// DeleteAuctionsBefore removes listings up to cutoff except those from the first of a month
func (s *Store) DeleteAuctionsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prune(domain.KindAuction, cutoff, func(r domain.Record) time.Time {
		return r.(*domain.Auction).UpdateDate
	}), nil
}

// DeleteSummariesBefore removes summaries up to cutoff except those from the first of a month
func (s *Store) DeleteSummariesBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prune(domain.KindAuctionSummary, cutoff, func(r domain.Record) time.Time {
		return r.(*domain.AuctionSummary).UpdateDate
	}), nil
}

func (s *Store) prune(kind domain.Kind, cutoff time.Time, dateOf func(domain.Record) time.Time) int64 {
	var n int64
	kept := s.order[kind][:0]
	for _, key := range s.order[kind] {
		d := dateOf(s.rows[kind][key])
		if !d.After(cutoff) && d.Day() != 1 {
			delete(s.rows[kind], key)
			n++
			continue
		}
		kept = append(kept, key)
	}
	s.order[kind] = kept
	return n
}

// Reclaim is a no-op in memory
func (s *Store) Reclaim(_ context.Context) error {
	return nil
}

// TryLock takes a named in-process lock
func (s *Store) TryLock(_ context.Context, name string) (func(context.Context) error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[name] {
		return nil, fmt.Errorf("%w: %s", domain.ErrRunLocked, name)
	}
	s.locks[name] = true
	return func(context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.locks, name)
		return nil
	}, nil
}
