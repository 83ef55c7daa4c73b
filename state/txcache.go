package state

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/dpos-core/minercore/common"
)

// defaultTxCacheSize bounds the recent-transaction dedup cache. Sized
// generously above a single block's typical transaction count so a
// block's worth of hashes survives without eviction pressure.
const defaultTxCacheSize = 8192

// TxCache is a bounded recency cache of recently-seen transaction
// hashes, used by the priority selector to reject duplicate
// transactions without re-walking the full mempool.
type TxCache struct {
	cache *lru.Cache
}

// NewTxCache creates a TxCache with capacity size, or a sane default
// if size <= 0.
func NewTxCache(size int) *TxCache {
	if size <= 0 {
		size = defaultTxCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		// lru.New only errors on a non-positive size, which is excluded
		// above; a panic here would indicate a programmer error, not a
		// runtime condition callers need to handle.
		panic(err)
	}
	return &TxCache{cache: c}
}

// Seen reports whether hash has been recorded before.
func (c *TxCache) Seen(hash common.Hash) bool {
	return c.cache.Contains(hash)
}

// Record marks hash as seen, evicting the least-recently-used entry
// if the cache is at capacity.
func (c *TxCache) Record(hash common.Hash) {
	c.cache.Add(hash, struct{}{})
}

// Remove forgets hash, e.g. once its transaction lands in a committed
// block and no longer needs mempool-level dedup.
func (c *TxCache) Remove(hash common.Hash) {
	c.cache.Remove(hash)
}

// Len returns the number of hashes currently tracked.
func (c *TxCache) Len() int {
	return c.cache.Len()
}
