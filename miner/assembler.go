// Package miner implements block assembly, block verification, and
// the long-running miner worker that produces and submits blocks for
// the delegate slots a wallet holds keys for.
package miner

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
	"github.com/dpos-core/minercore/delegate"
	"github.com/dpos-core/minercore/fuelrate"
	"github.com/dpos-core/minercore/mempool"
	"github.com/dpos-core/minercore/state"
)

var logger = log.WithFields(log.Fields{"prefix": "MINER"})

// RewardTxFactory builds the placeholder reward transaction(s) for a
// new block. Pre-fork it returns a single reward tx (two when
// Config.CompatDoubleRewardTxPreFork is set); post-fork it returns a
// multi-coin reward tx plus a price-median tx. Kept as an
// injected factory rather than a constructor this package owns, since
// transaction construction is outside this core's scope.
type RewardTxFactory func(stableCoinFork bool) []core.RewardTx

// Assembler builds candidate blocks against a chain tip and mempool.
type Assembler struct {
	cfg      core.Config
	chain    core.ChainView
	mempool  core.MempoolView
	oracle   core.PriceOracle
	seen     *state.TxCache
	logCache state.LogCache
	rewardTx RewardTxFactory

	// totalFees accumulates the fee_amount of every transaction
	// admitted into the block currently being assembled, feeding the
	// reward-value computation in step 6. Reset by Reset.
	totalFees int64
}

// NewAssembler wires an Assembler over its collaborators.
func NewAssembler(cfg core.Config, chainView core.ChainView, mempoolView core.MempoolView, oracle core.PriceOracle, seen *state.TxCache, logCache state.LogCache, rewardTx RewardTxFactory) *Assembler {
	return &Assembler{
		cfg:      cfg,
		chain:    chainView,
		mempool:  mempoolView,
		oracle:   oracle,
		seen:     seen,
		logCache: logCache,
		rewardTx: rewardTx,
	}
}

// Reset clears the assembler's per-block accumulators ahead of a new
// assembly attempt.
func (a *Assembler) Reset() {
	a.totalFees = 0
}

// CreateNewBlock assembles a candidate block extending tip against
// root, a fresh per-attempt speculative cache rooted at the current
// global state.
func (a *Assembler) CreateNewBlock(tip *core.BlockIndex, root core.ExecutionView) (*core.Block, common.Result) {
	a.Reset()

	height := uint64(1)
	if tip != nil {
		height = tip.Height + 1
	}
	stableCoinFork := a.cfg.IsStableCoinFork(height)
	fuelRate := fuelrate.Estimate(tip, a.cfg.BlockSizeForBurn)

	rewardTxs := a.rewardTx(stableCoinFork)
	txs := make([]core.Transaction, 0, len(rewardTxs)+8)
	for _, rtx := range rewardTxs {
		txs = append(txs, rtx)
	}

	block := &core.Block{
		BlockHeader: core.BlockHeader{
			Height:   height,
			FuelRate: fuelRate,
		},
	}
	block.Txs = txs

	blockMaxSize := a.cfg.ClampedBlockMaxSize()
	runningSize := block.SerializedSize()
	var totalStep, totalFuel uint64

	view := state.NewCacheWrapper(root, height)

	heap := mempool.NewPriorityHeap(a.mempool, a.seen, a.oracle, height, fuelRate, mempool.SizeFirst)
	blockTxIndex := len(block.Txs)
	for heap.Len() > 0 {
		cand := heap.Pop()
		tx := cand.Tx

		if runningSize+cand.Size >= blockMaxSize {
			continue
		}

		fork := view.Fork()
		result := tx.Execute(height, blockTxIndex, fork)
		if result.IsError() {
			if a.logCache != nil {
				a.logCache.SetExecuteFail(tx.Hash(), state.ExecuteFailRecord{Height: height, Result: result})
			}
			continue
		}

		runStep := tx.RunStep()
		if totalStep+runStep >= common.MaxBlockRunStep {
			continue
		}

		fork.Commit()

		block.Txs = append(block.Txs, tx)
		blockTxIndex++
		runningSize += cand.Size
		totalStep += runStep
		totalFuel += tx.Fuel(fuelRate)
		a.totalFees += int64(tx.FeeAmount())

		if a.seen != nil {
			a.seen.Record(tx.Hash())
		}
	}

	block.Fuel = totalFuel

	rewardValue := a.totalFees - int64(totalFuel)
	for _, rtx := range rewardTxs {
		rtx.SetRewardValue(rewardValue)
		if stableCoinFork {
			rtx.SetMedianPricePoints(a.oracle.BlockMedianPricePoints(height))
		}
	}

	var prevHash common.Hash
	prevTime := int64(0)
	if tip != nil {
		prevHash = tip.Hash
		prevTime = tip.Time
	}
	block.PrevHash = prevHash
	block.Nonce = 0
	now := time.Now().Unix()
	adjusted := now
	if adjusted < prevTime+1 {
		adjusted = prevTime + 1
	}
	block.Time = adjusted

	logger.WithFields(log.Fields{
		"height":    height,
		"txs":       len(block.Txs),
		"totalFuel": totalFuel,
		"fuelRate":  fuelRate,
	}).Info("assembled candidate block")

	return block, common.OK
}

// AssembleGenesisSuccessor builds the stablecoin genesis block: the
// block at StableCoinGenesisHeight that carries the fund-coin reward
// tx for the network rather than a regular reward tx.
func (a *Assembler) AssembleGenesisSuccessor(tip *core.BlockIndex, root core.ExecutionView, fundCoinRewardTx core.RewardTx) (*core.Block, common.Result) {
	a.Reset()

	height := uint64(1)
	var prevHash common.Hash
	prevTime := int64(0)
	if tip != nil {
		height = tip.Height + 1
		prevHash = tip.Hash
		prevTime = tip.Time
	}
	fuelRate := fuelrate.Estimate(tip, a.cfg.BlockSizeForBurn)

	block := &core.Block{
		BlockHeader: core.BlockHeader{
			Height:   height,
			PrevHash: prevHash,
			FuelRate: fuelRate,
		},
		Txs: []core.Transaction{fundCoinRewardTx},
	}
	fundCoinRewardTx.SetRewardValue(0)
	fundCoinRewardTx.SetMedianPricePoints(a.oracle.BlockMedianPricePoints(height))

	now := time.Now().Unix()
	if now < prevTime+1 {
		now = prevTime + 1
	}
	block.Time = now

	logger.WithFields(log.Fields{"height": height}).Info("assembled stablecoin genesis successor")
	return block, common.OK
}

// delegateProducer resolves the shuffled producer set and the
// scheduled RegID for the slot containing blockTime, the shared step
// used by both the worker and verification. cache may be nil
// (verification has no speculative state to memoize against); the
// worker passes its DelegateCache, purged once per attempt right
// after assembly.
func delegateProducer(cfg core.Config, cache *state.DelegateCache, height uint64, blockTime int64, delegates []core.Delegate) common.RegID {
	var shuffled []core.Delegate
	if cache != nil {
		if cached, ok := cache.Get(height); ok {
			shuffled = cached
		}
	}
	if shuffled == nil {
		shuffled = make([]core.Delegate, len(delegates))
		copy(shuffled, delegates)
		delegate.Shuffle(height, shuffled)
		if cache != nil {
			cache.Put(height, shuffled)
		}
	}
	return delegate.CurrentDelegate(blockTime, cfg.BlockIntervalSec, shuffled)
}
