package mempool

import (
	"sync"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
)

// entry is the Mempool's own MempoolEntry implementation: a pending
// transaction plus the priority score the mempool assigned it on
// admission (age x input-value based, computed by the admission path,
// not here).
type entry struct {
	tx       core.Transaction
	size     int
	priority float64
}

func (e *entry) Tx() core.Transaction { return e.tx }
func (e *entry) Size() int            { return e.size }
func (e *entry) Priority() float64    { return e.priority }

// Mempool is the in-memory pending-transaction pool implementing
// core.MempoolView. A single mutex guards the entry map, and an
// updatedCount monotonic counter lets the miner worker detect churn
// during a mining attempt without re-diffing the whole entry set.
type Mempool struct {
	mu           sync.RWMutex
	entries      map[common.Hash]*entry
	updatedCount uint64
}

// New creates an empty Mempool.
func New() *Mempool {
	return &Mempool{entries: make(map[common.Hash]*entry)}
}

// Insert admits tx into the pool with the given priority score,
// overwriting any prior entry for the same hash.
func (m *Mempool) Insert(tx core.Transaction, priority float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[tx.Hash()] = &entry{tx: tx, size: tx.Size(), priority: priority}
	m.updatedCount++
}

// Remove evicts hash from the pool, e.g. once its transaction is
// included in a committed block.
func (m *Mempool) Remove(hash common.Hash) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[hash]; ok {
		delete(m.entries, hash)
		m.updatedCount++
	}
}

// Entries implements core.MempoolView: a defensive snapshot copy, so
// callers iterating it are unaffected by concurrent Insert/Remove.
func (m *Mempool) Entries() map[common.Hash]core.MempoolEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[common.Hash]core.MempoolEntry, len(m.entries))
	for h, e := range m.entries {
		out[h] = e
	}
	return out
}

// UpdatedCount implements core.MempoolView.
func (m *Mempool) UpdatedCount() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.updatedCount
}

// Len reports the current number of pending transactions.
func (m *Mempool) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
