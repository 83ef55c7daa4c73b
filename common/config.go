package common

import (
	"github.com/spf13/viper"
)

// Viper configuration keys.
const (
	// CfgGenesisHash is the hash of the genesis block.
	CfgGenesisHash = "genesis.hash"
	// CfgNetworkID selects main / test / regtest.
	CfgNetworkID = "network.id"

	// CfgConsensusBlockIntervalSec is the width in seconds of a delegate slot.
	CfgConsensusBlockIntervalSec = "consensus.blockIntervalSec"
	// CfgConsensusTotalDelegateNum is the size of the active delegate set.
	CfgConsensusTotalDelegateNum = "consensus.totalDelegateNum"
	// CfgConsensusMaxNonce is the inclusive upper bound for the block nonce.
	CfgConsensusMaxNonce = "consensus.maxNonce"
	// CfgConsensusStableCoinGenesisHeight is the height at which the
	// stablecoin fork activates.
	CfgConsensusStableCoinGenesisHeight = "consensus.stableCoinGenesisHeight"
	// CfgConsensusCompatDoubleRewardTxPreFork reproduces the pre-fork
	// double-reward-tx behavior for byte-identical replay against
	// chain history mined before the stablecoin fork.
	CfgConsensusCompatDoubleRewardTxPreFork = "consensus.compatDoubleRewardTxPreFork"

	// CfgMinerBlockMaxSize is the "-blockmaxsize" flag.
	CfgMinerBlockMaxSize = "miner.blockMaxSize"
	// CfgMinerBlockPrioritySize is the "-blockprioritysize" flag.
	CfgMinerBlockPrioritySize = "miner.blockPrioritySize"
	// CfgMinerBlockMinSize is the "-blockminsize" flag.
	CfgMinerBlockMinSize = "miner.blockMinSize"
	// CfgMinerBlockSizeForBurn is the "-blocksizeforburn" flag.
	CfgMinerBlockSizeForBurn = "miner.blockSizeForBurn"
	// CfgMinerGenBlockForce is the "-genblockforce" flag.
	CfgMinerGenBlockForce = "miner.genBlockForce"

	// CfgLogLevels sets the log level.
	CfgLogLevels = "log.levels"
	// CfgLogPrintSelfID determines whether to print the node's ID in logs.
	CfgLogPrintSelfID = "log.printSelfID"
)

// Protocol-level constants. Unlike the tunables above these are not
// meant to be overridden per-deployment.
const (
	// MaxBlockSize is the hard protocol ceiling on serialized block size.
	MaxBlockSize = 8 * 1024 * 1024 // 8 MiB
	// MaxBlockRunStep bounds the sum of per-tx execution steps in a block.
	MaxBlockRunStep = 300000000
	// InitFuelRate is returned by the fuel-rate estimator when there is
	// insufficient history to compute an adjustment.
	InitFuelRate uint64 = 100
	// MinFuelRate is the floor the fuel-rate estimator will not go below.
	MinFuelRate uint64 = 1
	// DefaultBurnBlockSize is the default window (in blocks) the fuel-rate
	// estimator looks back over.
	DefaultBurnBlockSize = 50
	// PercentBoost normalizes the fee-per-KB score (see mempool.feePerKB).
	PercentBoost = 100
	// MaxBlockSignatureSize bounds the accepted block signature length.
	MaxBlockSignatureSize = 520
	// NTxVersion1 is the only transaction version the reward tx may carry.
	NTxVersion1 = 1
	// KMaxMinedBlocks is the retained capacity of the MinedBlockInfo ring.
	KMaxMinedBlocks = 128

	// DefaultBlockMaxSize is the default for -blockmaxsize.
	DefaultBlockMaxSize = 4 * 1024 * 1024
	// DefaultBlockPrioritySize is the default for -blockprioritysize.
	DefaultBlockPrioritySize = 50 * 1024
	// DefaultBlockMinSize is the default for -blockminsize.
	DefaultBlockMinSize = 0
)

func init() {
	viper.SetDefault(CfgNetworkID, "main")
	viper.SetDefault(CfgConsensusBlockIntervalSec, int64(10))
	viper.SetDefault(CfgConsensusTotalDelegateNum, 11)
	viper.SetDefault(CfgConsensusMaxNonce, uint32(4294967295))
	// Unreached by default: a fresh chain starts pre-fork, matching
	// core.DefaultConfig()'s StableCoinGenesisHeight.
	viper.SetDefault(CfgConsensusStableCoinGenesisHeight, int64(-1))
	viper.SetDefault(CfgConsensusCompatDoubleRewardTxPreFork, false)

	viper.SetDefault(CfgMinerBlockMaxSize, DefaultBlockMaxSize)
	viper.SetDefault(CfgMinerBlockPrioritySize, DefaultBlockPrioritySize)
	viper.SetDefault(CfgMinerBlockMinSize, DefaultBlockMinSize)
	viper.SetDefault(CfgMinerBlockSizeForBurn, DefaultBurnBlockSize)
	viper.SetDefault(CfgMinerGenBlockForce, false)

	viper.SetDefault(CfgLogLevels, "*:info")
	viper.SetDefault(CfgLogPrintSelfID, false)
}

// NetworkID enumerates the networks this core may run against.
type NetworkID int

const (
	// MainNet is the production network.
	MainNet NetworkID = iota
	// TestNet is the public test network.
	TestNet
	// RegTest is a fully local, peerless regression-test network.
	RegTest
)

func (n NetworkID) String() string {
	switch n {
	case MainNet:
		return "main"
	case TestNet:
		return "test"
	case RegTest:
		return "regtest"
	default:
		return "unknown"
	}
}

// ParseNetworkID parses the "main" / "test" / "regtest" config value.
func ParseNetworkID(s string) NetworkID {
	switch s {
	case "test":
		return TestNet
	case "regtest":
		return RegTest
	default:
		return MainNet
	}
}
