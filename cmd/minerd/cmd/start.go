package cmd

import (
	"context"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dpos-core/minercore/chain"
	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
	"github.com/dpos-core/minercore/mempool"
	"github.com/dpos-core/minercore/miner"
	"github.com/dpos-core/minercore/state"
	"github.com/dpos-core/minercore/wallet"
)

var startLogger = log.WithFields(log.Fields{"prefix": "minerd"})

// startCmd represents the start command.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the delegate miner.",
	Long:  ``,
	Run:   runStart,
}

func init() {
	startCmd.Flags().Int("blockmaxsize", common.DefaultBlockMaxSize, "maximum serialized block size")
	startCmd.Flags().Int("blockprioritysize", common.DefaultBlockPrioritySize, "block space reserved for high-priority transactions")
	startCmd.Flags().Int("blockminsize", common.DefaultBlockMinSize, "minimum block size to produce")
	startCmd.Flags().Int("blocksizeforburn", common.DefaultBurnBlockSize, "fuel-rate estimator lookback window, in blocks")
	startCmd.Flags().Bool("genblockforce", false, "bypass the peer-count/tip-staleness gate before mining")

	viper.BindPFlag(common.CfgMinerBlockMaxSize, startCmd.Flags().Lookup("blockmaxsize"))
	viper.BindPFlag(common.CfgMinerBlockPrioritySize, startCmd.Flags().Lookup("blockprioritysize"))
	viper.BindPFlag(common.CfgMinerBlockMinSize, startCmd.Flags().Lookup("blockminsize"))
	viper.BindPFlag(common.CfgMinerBlockSizeForBurn, startCmd.Flags().Lookup("blocksizeforburn"))
	viper.BindPFlag(common.CfgMinerGenBlockForce, startCmd.Flags().Lookup("genblockforce"))

	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) {
	cfg := core.DefaultConfig()
	cfg.NetworkID = common.ParseNetworkID(viper.GetString(common.CfgNetworkID))
	cfg.BlockIntervalSec = uint64(viper.GetInt64(common.CfgConsensusBlockIntervalSec))
	cfg.TotalDelegateNum = viper.GetInt(common.CfgConsensusTotalDelegateNum)
	cfg.MaxNonce = uint32(viper.GetInt64(common.CfgConsensusMaxNonce))
	cfg.StableCoinGenesisHeight = uint64(viper.GetInt64(common.CfgConsensusStableCoinGenesisHeight))
	cfg.CompatDoubleRewardTxPreFork = viper.GetBool(common.CfgConsensusCompatDoubleRewardTxPreFork)
	cfg.BlockMaxSize = viper.GetInt(common.CfgMinerBlockMaxSize)
	cfg.BlockMaxSize = cfg.ClampedBlockMaxSize()
	cfg.BlockPrioritySize = viper.GetInt(common.CfgMinerBlockPrioritySize)
	cfg.BlockMinSize = viper.GetInt(common.CfgMinerBlockMinSize)
	cfg.BlockSizeForBurn = viper.GetInt(common.CfgMinerBlockSizeForBurn)
	cfg.GenBlockForce = viper.GetBool(common.CfgMinerGenBlockForce)

	genesisRewardTx := core.NewDefaultRewardTx(false)
	genesis := &core.Block{
		BlockHeader: core.BlockHeader{Height: 0, FuelRate: common.InitFuelRate},
		Txs:         []core.Transaction{genesisRewardTx},
	}
	genesis.MerkleRoot = core.BuildMerkleRoot(genesis.Txs)

	chainView := chain.NewMemChain(genesis)
	mempoolView := mempool.New()
	softWallet := wallet.NewSoftWallet()
	oracle := state.StaticOracle{BcoinPrice: 1, FcoinPrice: 1}
	seen := state.NewTxCache(0)
	logCache := state.NewMemLogCache()
	root := state.NewCacheWrapper(nil, 0)

	// Pre-fork, CompatDoubleRewardTxPreFork reproduces the legacy
	// double-reward-tx emission for byte-identical replay; a fresh
	// chain leaves it false and gets exactly one reward tx.
	rewardFactory := func(stableCoinFork bool) []core.RewardTx {
		if !stableCoinFork && cfg.CompatDoubleRewardTxPreFork {
			return []core.RewardTx{core.NewDefaultRewardTx(false), core.NewDefaultRewardTx(false)}
		}
		if stableCoinFork {
			return []core.RewardTx{core.NewDefaultRewardTx(true), core.NewPriceMedianTx()}
		}
		return []core.RewardTx{core.NewDefaultRewardTx(false)}
	}
	assembler := miner.NewAssembler(cfg, chainView, mempoolView, oracle, seen, logCache, rewardFactory)

	delegates := func() []core.Delegate {
		return nil // populated by the host process once delegate set resolution is wired in
	}
	accounts := &noAccounts{}

	fundCoinRewardTx := func() core.RewardTx {
		return core.NewDefaultRewardTx(true)
	}

	minerCtx := miner.NewMinerContext(cfg, chainView, mempoolView, softWallet, oracle, nil, accounts, assembler, seen, root, delegates, fundCoinRewardTx)

	if !minerCtx.Start(context.Background(), 0) {
		startLogger.Fatal("failed to start miner: no miner key in wallet")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh

	minerCtx.Stop()
	minerCtx.Wait()
}

type noAccounts struct{}

func (n *noAccounts) GetAccount(regID common.RegID) (*core.Account, bool) { return nil, false }
