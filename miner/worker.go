package miner

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
	"github.com/dpos-core/minercore/state"
)

// tickInterval is the sleep granularity of the mine inner loop's
// slot-boundary wait; cancellation is observed at each tick.
const tickInterval = 100 * time.Millisecond

// attemptTimeout is the wall-clock cap on a single mining attempt
// before the outer loop abandons it and restarts.
const attemptTimeout = 60 * time.Second

// NetworkReadiness reports whether the miner worker should proceed
// past step 1's peer/staleness gate. Regtest is exempt; other
// networks block while peerCount is 0 or the tip is stale, unless
// genBlockForce overrides the check.
type NetworkReadiness interface {
	PeerCount() int
	TipStale() bool
}

// AccountResolver looks up the on-chain Account for a scheduled
// producer's RegID, the collaborator the worker needs to check
// whether its own wallet holds that producer's key.
type AccountResolver interface {
	GetAccount(regID common.RegID) (*core.Account, bool)
}

// MinerContext bundles a single wallet's worker lifecycle state. All
// locks live as fields here rather than as package-level globals, so
// multiple wallets can run independent workers in one process.
type MinerContext struct {
	cfg core.Config

	chain     core.ChainView
	mempool   core.MempoolView
	wallet    core.Wallet
	oracle    core.PriceOracle
	network   NetworkReadiness
	accounts  AccountResolver
	assembler *Assembler
	seen      *state.TxCache
	root      core.ExecutionView

	minedBlocks   *core.MinedBlockRing
	delegateCache *state.DelegateCache

	delegates        func() []core.Delegate
	fundCoinRewardTx func() core.RewardTx

	chainLock   sync.Mutex
	mempoolLock sync.Mutex
	walletLock  sync.Mutex

	wg       sync.WaitGroup
	cancel   context.CancelFunc
	active   bool
	activeMu sync.Mutex
}

// NewMinerContext wires a MinerContext over its collaborators.
// fundCoinRewardTx may be nil on networks that never reach
// cfg.StableCoinGenesisHeight; the worker only calls it at the one
// height that needs it.
func NewMinerContext(cfg core.Config, chainView core.ChainView, mempoolView core.MempoolView, wallet core.Wallet, oracle core.PriceOracle, network NetworkReadiness, accounts AccountResolver, assembler *Assembler, seen *state.TxCache, root core.ExecutionView, delegates func() []core.Delegate, fundCoinRewardTx func() core.RewardTx) *MinerContext {
	return &MinerContext{
		cfg:              cfg,
		chain:            chainView,
		mempool:          mempoolView,
		wallet:           wallet,
		oracle:           oracle,
		network:          network,
		accounts:         accounts,
		assembler:        assembler,
		seen:             seen,
		root:             root,
		delegates:        delegates,
		fundCoinRewardTx: fundCoinRewardTx,
		minedBlocks:      core.NewMinedBlockRing(0),
		delegateCache:    state.NewDelegateCache(0),
	}
}

// IsActive reports whether the worker is currently running.
func (m *MinerContext) IsActive() bool {
	m.activeMu.Lock()
	defer m.activeMu.Unlock()
	return m.active
}

func (m *MinerContext) setActive(v bool) {
	m.activeMu.Lock()
	m.active = v
	m.activeMu.Unlock()
}

// GetMinedBlocks returns a snapshot of the last count mined blocks,
// most-recent first.
func (m *MinerContext) GetMinedBlocks(count int) []core.MinedBlockInfo {
	return m.minedBlocks.GetMinedBlocks(count)
}

// Start launches the worker's main loop. requestedDelta, if non-zero,
// bounds the run to startHeight + requestedDelta on non-main
// networks.
func (m *MinerContext) Start(ctx context.Context, requestedDelta uint64) bool {
	minerKeys := m.wallet.GetKeys(true)
	if len(minerKeys) == 0 {
		logger.Warn("no miner key in wallet, not starting")
		return false
	}

	c, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.setActive(true)

	startHeight := m.chain.Height()
	targetHeight := uint64(0)
	if requestedDelta != 0 {
		targetHeight = startHeight + requestedDelta
	}

	m.wg.Add(1)
	go m.mainLoop(c, targetHeight)
	return true
}

// Stop signals cancellation without blocking.
func (m *MinerContext) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Wait blocks until the worker's main loop has exited.
func (m *MinerContext) Wait() {
	m.wg.Wait()
}

func (m *MinerContext) mainLoop(ctx context.Context, targetHeight uint64) {
	defer m.wg.Done()
	defer m.setActive(false)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if m.cfg.NetworkID != common.RegTest && !m.cfg.GenBlockForce {
			for m.network != nil && (m.network.PeerCount() == 0 || m.network.TipStale()) {
				select {
				case <-ctx.Done():
					return
				case <-time.After(tickInterval):
				}
			}
		}

		accepted := m.attempt(ctx)
		if !accepted {
			continue
		}

		if m.cfg.NetworkID != common.MainNet && targetHeight != 0 && m.chain.Height() >= targetHeight {
			return
		}
	}
}

// attempt runs one mine-inner-loop attempt, returning true once a
// block has been produced and accepted.
func (m *MinerContext) attempt(ctx context.Context) bool {
	m.mempoolLock.Lock()
	txUpdatedCounter := m.mempool.UpdatedCount()
	m.mempoolLock.Unlock()

	m.chainLock.Lock()
	tip := m.chain.Tip()
	m.chainLock.Unlock()

	height := tipHeightPlusOne(tip)
	view := state.NewCacheWrapper(m.root, height)

	// The block at StableCoinGenesisHeight carries the network's
	// fund-coin reward tx in place of a regular candidate block.
	var block *core.Block
	var result common.Result
	if height == m.cfg.StableCoinGenesisHeight {
		if m.fundCoinRewardTx == nil {
			logger.Error("reached stablecoin genesis height with no fund-coin reward tx factory configured")
			return false
		}
		block, result = m.assembler.AssembleGenesisSuccessor(tip, view, m.fundCoinRewardTx())
	} else {
		block, result = m.assembler.CreateNewBlock(tip, view)
	}
	if result.IsError() {
		logger.WithFields(log.Fields{"error": result.Message}).Error("failed to assemble candidate block")
		return false
	}

	// A stale shuffle cached by a previous attempt must not leak into
	// this one's producer resolution.
	m.delegateCache.Purge()

	deadline := time.Now().Add(attemptTimeout)
	for {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		if time.Now().After(deadline) {
			return false
		}

		m.chainLock.Lock()
		currentTip := m.chain.Tip()
		m.chainLock.Unlock()
		if !sameTip(currentTip, tip) {
			return false
		}

		m.mempoolLock.Lock()
		currentCounter := m.mempool.UpdatedCount()
		m.mempoolLock.Unlock()
		if currentCounter != txUpdatedCounter {
			return false
		}

		if m.cfg.NetworkID != common.RegTest && m.network != nil && m.network.PeerCount() == 0 {
			return false
		}

		now := time.Now().Unix()
		prevTime := int64(0)
		if tip != nil {
			prevTime = tip.Time
		}
		if now < prevTime+int64(m.cfg.BlockIntervalSec) {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(tickInterval):
			}
			continue
		}

		// Resolve the producer against this tick's wall clock, not the
		// assembly-time header stamp: as real time walks through
		// successive slots within the attempt, the scheduled producer
		// changes, and the wallet's own slot eventually comes up.
		delegates := m.delegates()
		producerRegID := delegateProducer(m.cfg, m.delegateCache, block.Height, now, delegates)

		account, ok := m.accounts.GetAccount(producerRegID)
		if !ok {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(tickInterval):
			}
			continue
		}

		m.walletLock.Lock()
		_, hasKey := m.wallet.GetKey(account.KeyID, true)
		m.walletLock.Unlock()
		if !hasKey {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(tickInterval):
			}
			continue
		}

		var prevBlock *core.Block
		if tip != nil {
			var err error
			prevBlock, err = m.chain.ReadBlock(tip)
			if err != nil {
				return false
			}
		}

		signResult := SignIn(m.cfg, m.wallet, now, block, prevBlock, *account, true)
		if signResult.IsError() {
			err := errors.Wrap(errors.New(signResult.Message), "sign-in failed")
			logger.WithFields(log.Fields{"error": err}).Error("sign-in failed")
			return false
		}

		m.chainLock.Lock()
		processResult := m.chain.ProcessBlock(view, block)
		m.chainLock.Unlock()
		if processResult.IsError() {
			err := errors.Wrap(errors.New(processResult.Message), "process block failed")
			logger.WithFields(log.Fields{"error": err}).Error("process block failed")
			return false
		}

		m.minedBlocks.PushFront(core.MinedBlockInfo{
			Time:          block.Time,
			Nonce:         block.Nonce,
			Height:        block.Height,
			TotalFuel:     block.Fuel,
			FuelRate:      block.FuelRate,
			TotalFees:     m.assembler.totalFees,
			TxCount:       len(block.Txs),
			BlockSize:     block.SerializedSize(),
			Hash:          block.Hash(),
			HashPrevBlock: block.Hash(),
		})

		logger.WithFields(log.Fields{"height": block.Height, "producer": producerRegID}).Info("mined block")
		return true
	}
}

func tipHeightPlusOne(tip *core.BlockIndex) uint64 {
	if tip == nil {
		return 1
	}
	return tip.Height + 1
}

func sameTip(a, b *core.BlockIndex) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Hash == b.Hash
}

