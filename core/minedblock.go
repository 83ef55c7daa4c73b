package core

import (
	"sync"

	"github.com/dpos-core/minercore/common"
)

// KMaxMinedBlocks is the default ring capacity.
const KMaxMinedBlocks = common.KMaxMinedBlocks

// MinedBlockInfo is a record of one produced block.
//
// HashPrevBlock is populated with the block's own hash, not its
// parent's. Established consumers depend on this; do not "correct" it
// to the structurally expected parent hash.
type MinedBlockInfo struct {
	Time          int64
	Nonce         uint32
	Height        uint64
	TotalFuel     uint64
	FuelRate      uint64
	TotalFees     int64
	TxCount       int
	BlockSize     int
	Hash          common.Hash
	HashPrevBlock common.Hash
}

// Reward returns totalFees - totalFuel for this mined block.
func (m MinedBlockInfo) Reward() int64 {
	return m.TotalFees - int64(m.TotalFuel)
}

// MinedBlockRing is a fixed-capacity, most-recent-first circular
// buffer of MinedBlockInfo records, guarded by its own lock. The lock
// is never held while any other lock in the system is held. The ring
// lives as a field on the miner context rather than a package-level
// global.
type MinedBlockRing struct {
	mu       sync.Mutex
	capacity int
	entries  []MinedBlockInfo // entries[0] is most recent
}

// NewMinedBlockRing creates a ring of the given capacity.
func NewMinedBlockRing(capacity int) *MinedBlockRing {
	if capacity <= 0 {
		capacity = common.KMaxMinedBlocks
	}
	return &MinedBlockRing{capacity: capacity}
}

// PushFront records a newly mined block at the front of the ring,
// evicting the oldest entry once the ring is full.
func (r *MinedBlockRing) PushFront(info MinedBlockInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append([]MinedBlockInfo{info}, r.entries...)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[:r.capacity]
	}
}

// GetMinedBlocks returns a snapshot of the last min(count, size)
// records, most-recent first.
func (r *MinedBlockRing) GetMinedBlocks(count int) []MinedBlockInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	if count > len(r.entries) {
		count = len(r.entries)
	}
	out := make([]MinedBlockInfo, count)
	copy(out, r.entries[:count])
	return out
}
