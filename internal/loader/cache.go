package loader

import (
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FreeLunch_Go/internal/domain"
)

type cacheKey struct {
	kind domain.Kind
	key  any
}

// existenceCache remembers records known to be persisted.
// Only positive answers are cached: rows are never deleted during a run.
type existenceCache struct {
	lru *expirable.LRU[cacheKey, struct{}]
}

// newExistenceCache creates a cache holding at most size keys, without expiry
func newExistenceCache(size int) *existenceCache {
	return &existenceCache{
		lru: expirable.NewLRU[cacheKey, struct{}](size, nil, 0),
	}
}

func (c *existenceCache) Has(kind domain.Kind, key any) bool {
	_, ok := c.lru.Get(cacheKey{kind: kind, key: key})
	return ok
}

func (c *existenceCache) Mark(kind domain.Kind, key any) {
	c.lru.Add(cacheKey{kind: kind, key: key}, struct{}{})
}

