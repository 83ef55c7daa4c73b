// Package chain provides the default core.ChainView implementation: a
// linear, single-branch chain. The miner only ever extends the current
// tip, so there is no fork-tree bookkeeping here; a block that does
// not extend the tip is rejected outright.
package chain

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
)

var logger = log.WithFields(log.Fields{"prefix": "chain"})

var _ core.ChainView = (*MemChain)(nil)

// MemChain is an in-memory, linear chain: a slice of committed
// blocks plus the BlockIndex chain reachable backward from the tip.
type MemChain struct {
	mu sync.RWMutex

	blocks  []*core.Block
	byHash  map[common.Hash]*core.Block
	tip     *core.BlockIndex
	genesis *core.BlockIndex
}

// NewMemChain creates a chain rooted at genesis. genesis becomes the
// tip at its own Height without validation.
func NewMemChain(genesis *core.Block) *MemChain {
	idx := &core.BlockIndex{
		Height:   genesis.Height,
		Hash:     genesis.Hash(),
		Time:     genesis.Time,
		Fuel:     genesis.Fuel,
		FuelRate: genesis.FuelRate,
	}
	return &MemChain{
		blocks:  []*core.Block{genesis},
		byHash:  map[common.Hash]*core.Block{idx.Hash: genesis},
		tip:     idx,
		genesis: idx,
	}
}

// Tip implements core.ChainView.
func (c *MemChain) Tip() *core.BlockIndex {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tip
}

// Height implements core.ChainView.
func (c *MemChain) Height() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tip == nil {
		return 0
	}
	return c.tip.Height
}

// ReadBlock implements core.ChainView.
func (c *MemChain) ReadBlock(idx *core.BlockIndex) (*core.Block, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	block, ok := c.byHash[idx.Hash]
	if !ok {
		return nil, errBlockNotFound(idx.Hash)
	}
	return block, nil
}

// ProcessBlock implements core.ChainView: appends block as the new tip
// if and only if it directly extends the current tip. The
// caller-supplied view is not consulted, and the block is not
// otherwise verified here.
func (c *MemChain) ProcessBlock(view core.ExecutionView, block *core.Block) common.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tip != nil && block.PrevHash != c.tip.Hash {
		return common.ErrorWithCode(common.CodeInvalidTx, "block does not extend tip: prev=%s tip=%s",
			block.PrevHash.Hex(), c.tip.Hash.Hex())
	}

	hash := block.Hash()
	idx := &core.BlockIndex{
		Height:   block.Height,
		Hash:     hash,
		Time:     block.Time,
		Fuel:     block.Fuel,
		FuelRate: block.FuelRate,
		Parent:   c.tip,
	}
	c.blocks = append(c.blocks, block)
	c.byHash[hash] = block
	c.tip = idx

	logger.WithFields(log.Fields{"height": block.Height, "hash": hash.Hex()}).Info("appended block")
	return common.OK
}

type blockNotFoundError struct {
	hash common.Hash
}

func (e *blockNotFoundError) Error() string {
	return "chain: block not found: " + e.hash.Hex()
}

func errBlockNotFound(hash common.Hash) error {
	return &blockNotFoundError{hash: hash}
}
