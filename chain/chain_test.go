package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpos-core/minercore/core"
)

func genesisBlock() *core.Block {
	return &core.Block{BlockHeader: core.BlockHeader{Height: 0, Time: 1000}}
}

func TestNewMemChainTip(t *testing.T) {
	genesis := genesisBlock()
	c := NewMemChain(genesis)

	tip := c.Tip()
	require.NotNil(t, tip)
	assert.Equal(t, uint64(0), tip.Height)
	assert.Equal(t, genesis.Hash(), tip.Hash)
	assert.Equal(t, uint64(0), c.Height())
}

func TestReadBlockRoundTrip(t *testing.T) {
	genesis := genesisBlock()
	c := NewMemChain(genesis)

	got, err := c.ReadBlock(c.Tip())
	require.NoError(t, err)
	assert.Equal(t, genesis.Hash(), got.Hash())
}

func TestReadBlockMissing(t *testing.T) {
	c := NewMemChain(genesisBlock())
	missing := core.Block{BlockHeader: core.BlockHeader{Height: 99}}
	_, err := c.ReadBlock(&core.BlockIndex{Hash: missing.Hash()})
	assert.Error(t, err)
}

func TestProcessBlockExtendsTip(t *testing.T) {
	genesis := genesisBlock()
	c := NewMemChain(genesis)
	tip := c.Tip()

	next := &core.Block{BlockHeader: core.BlockHeader{Height: 1, PrevHash: tip.Hash, Time: 1010}}
	result := c.ProcessBlock(nil, next)

	require.True(t, result.IsOK())
	assert.Equal(t, uint64(1), c.Height())
	assert.Equal(t, next.Hash(), c.Tip().Hash)
}

func TestProcessBlockRejectsNonExtendingBlock(t *testing.T) {
	c := NewMemChain(genesisBlock())

	badBlock := &core.Block{BlockHeader: core.BlockHeader{Height: 1, Time: 1010}} // PrevHash is zero, doesn't match tip
	result := c.ProcessBlock(nil, badBlock)

	assert.True(t, result.IsError())
	assert.Equal(t, uint64(0), c.Height(), "rejected block must not become the tip")
}
