package core

import (
	"github.com/dpos-core/minercore/common"
)

// Config consolidates the network/consensus/block-size tunables the
// miner worker, assembler, and scheduler all read, rather than each
// pulling its own viper.GetXxx calls at call sites. Values default to
// the package-level viper defaults registered in common/config.go;
// callers start from DefaultConfig and override the fields they need.
type Config struct {
	NetworkID common.NetworkID
	GenesisHash common.Hash

	BlockIntervalSec uint64
	TotalDelegateNum int
	MaxNonce         uint32

	StableCoinGenesisHeight uint64

	BlockMaxSize       int
	BlockPrioritySize  int
	BlockMinSize       int
	BlockSizeForBurn   int

	GenBlockForce bool

	// CompatDoubleRewardTxPreFork reproduces the legacy behavior of
	// emitting two reward transactions per block instead of one, for
	// byte-identical replay against chain history mined before the
	// stablecoin fork. Default false: a fresh chain gets exactly one
	// reward tx.
	CompatDoubleRewardTxPreFork bool
}

// DefaultConfig returns a Config populated from the package defaults
// registered by common's init(), the same values a fresh viper.Viper
// would resolve to before any config file or flag override.
func DefaultConfig() Config {
	return Config{
		NetworkID:               common.MainNet,
		BlockIntervalSec:        10,
		TotalDelegateNum:        11,
		MaxNonce:                ^uint32(0),
		StableCoinGenesisHeight: ^uint64(0), // unreached by default
		BlockMaxSize:            common.DefaultBlockMaxSize,
		BlockPrioritySize:       common.DefaultBlockPrioritySize,
		BlockMinSize:            common.DefaultBlockMinSize,
		BlockSizeForBurn:        common.DefaultBurnBlockSize,
		GenBlockForce:           false,
	}
}

// ClampedBlockMaxSize bounds the configured -blockmaxsize to the
// protocol-sane range [1 KiB, MaxBlockSize - 1 KiB], so a
// misconfigured value (zero, negative, or above the hard ceiling)
// cannot break the assembly size invariant.
func (c Config) ClampedBlockMaxSize() int {
	v := c.BlockMaxSize
	if v > common.MaxBlockSize-1024 {
		v = common.MaxBlockSize - 1024
	}
	if v < 1024 {
		v = 1024
	}
	return v
}

// IsStableCoinFork reports whether height is on or after the
// stablecoin fork height, the switch the assembler and reward-tx
// signer use to decide single-vs-double reward tx emission and
// whether to attach profits/median-price points.
func (c Config) IsStableCoinFork(height uint64) bool {
	return height >= c.StableCoinGenesisHeight
}
