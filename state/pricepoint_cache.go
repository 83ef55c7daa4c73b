package state

import (
	"sync"

	"github.com/dpos-core/minercore/core"
)

// PricePointCache holds the most recently stored median-price
// snapshot together with its height, in a single guarded slot
// (unlike the LRU caches elsewhere in this package). The assembler
// does not consult it: it reads BlockMedianPricePoints from the
// oracle directly.
type PricePointCache struct {
	mu     sync.Mutex
	height uint64
	points map[core.CoinPriceType]uint64
	valid  bool
}

// NewPricePointCache creates an empty cache.
func NewPricePointCache() *PricePointCache {
	return &PricePointCache{}
}

// Get returns the cached snapshot for height, if one is cached and
// still current.
func (c *PricePointCache) Get(height uint64) (map[core.CoinPriceType]uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid || c.height != height {
		return nil, false
	}
	return c.points, true
}

// Put records the snapshot for height, replacing any prior snapshot.
func (c *PricePointCache) Put(height uint64, points map[core.CoinPriceType]uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.height = height
	c.points = points
	c.valid = true
}
