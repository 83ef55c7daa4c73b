package state

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/dpos-core/minercore/core"
)

// defaultDelegateCacheSize keeps a handful of recent heights' shuffled
// delegate orders resident; the scheduler recomputes a shuffle
// deterministically from the seed hash, so this is a pure speed
// optimization, not a source of truth.
const defaultDelegateCacheSize = 64

// DelegateCache memoizes the shuffled delegate order for recently
// queried heights, avoiding recomputation when the miner worker polls
// the same height repeatedly across its 100ms tick loop.
type DelegateCache struct {
	cache *lru.Cache
}

// NewDelegateCache creates a DelegateCache with capacity size, or a
// sane default if size <= 0.
func NewDelegateCache(size int) *DelegateCache {
	if size <= 0 {
		size = defaultDelegateCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return &DelegateCache{cache: c}
}

// Get returns the cached shuffle for height, if present.
func (c *DelegateCache) Get(height uint64) ([]core.Delegate, bool) {
	v, ok := c.cache.Get(height)
	if !ok {
		return nil, false
	}
	return v.([]core.Delegate), true
}

// Put records the shuffle computed for height.
func (c *DelegateCache) Put(height uint64, shuffled []core.Delegate) {
	c.cache.Add(height, shuffled)
}

// Purge drops every cached shuffle, forcing producer resolution to
// recompute from delegate votes on its next lookup. Called once per
// mining attempt so a fresh speculative cache never serves a shuffle
// computed against a prior attempt's state.
func (c *DelegateCache) Purge() {
	c.cache.Purge()
}
