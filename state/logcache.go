package state

import (
	"sync"

	"github.com/dpos-core/minercore/common"
)

// ExecuteFailRecord is what LogCache retains about a transaction that
// failed execution during block assembly: its reject result and the
// height at which assembly rejected it. Kept for diagnostics, not for
// replay.
type ExecuteFailRecord struct {
	Height uint64
	Result common.Result
}

// LogCache is the collaborator this core uses to persist
// execution-failure records across a mining attempt, abstracting over
// an in-memory map (the default) or a durable backend.
type LogCache interface {
	SetExecuteFail(txHash common.Hash, rec ExecuteFailRecord) error
	GetExecuteFail(txHash common.Hash) (ExecuteFailRecord, bool, error)
}

// MemLogCache is the default in-memory LogCache implementation: a
// mutex-guarded map, sufficient for a single miner process's lifetime.
type MemLogCache struct {
	mu      sync.RWMutex
	records map[common.Hash]ExecuteFailRecord
}

// NewMemLogCache creates an empty MemLogCache.
func NewMemLogCache() *MemLogCache {
	return &MemLogCache{records: make(map[common.Hash]ExecuteFailRecord)}
}

// SetExecuteFail implements LogCache.
func (c *MemLogCache) SetExecuteFail(txHash common.Hash, rec ExecuteFailRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[txHash] = rec
	return nil
}

// GetExecuteFail implements LogCache.
func (c *MemLogCache) GetExecuteFail(txHash common.Hash) (ExecuteFailRecord, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[txHash]
	return rec, ok, nil
}
