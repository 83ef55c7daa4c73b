package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpos-core/minercore/common"
)

func TestClampedBlockMaxSizeWithinRangeUnchanged(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlockMaxSize = 1 << 20
	assert.Equal(t, 1<<20, cfg.ClampedBlockMaxSize())
}

func TestClampedBlockMaxSizeFloorsTinyValues(t *testing.T) {
	cfg := DefaultConfig()
	for _, v := range []int{-1, 0, 1, 1023} {
		cfg.BlockMaxSize = v
		assert.Equal(t, 1024, cfg.ClampedBlockMaxSize())
	}
}

func TestClampedBlockMaxSizeCapsOversizedValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlockMaxSize = common.MaxBlockSize * 2
	assert.Equal(t, common.MaxBlockSize-1024, cfg.ClampedBlockMaxSize())
}

func TestIsStableCoinForkBoundary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StableCoinGenesisHeight = 100
	assert.False(t, cfg.IsStableCoinFork(99))
	assert.True(t, cfg.IsStableCoinFork(100))
	assert.True(t, cfg.IsStableCoinFork(101))
}
