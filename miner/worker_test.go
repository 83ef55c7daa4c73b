package miner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpos-core/minercore/chain"
	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
	"github.com/dpos-core/minercore/crypto"
	"github.com/dpos-core/minercore/mempool"
	"github.com/dpos-core/minercore/state"
	"github.com/dpos-core/minercore/wallet"
)

type fakeAccountResolver struct {
	accounts map[common.RegID]*core.Account
}

func (r *fakeAccountResolver) GetAccount(regID common.RegID) (*core.Account, bool) {
	acc, ok := r.accounts[regID]
	return acc, ok
}

type alwaysReadyNetwork struct{}

func (alwaysReadyNetwork) PeerCount() int  { return 1 }
func (alwaysReadyNetwork) TipStale() bool { return false }

func newTestWorker(t *testing.T) (*MinerContext, common.RegID) {
	cfg := testConfig()
	cfg.NetworkID = common.RegTest
	cfg.BlockIntervalSec = 1

	genesis := newTestGenesisBlock()
	memChain := chain.NewMemChain(genesis)

	pool := mempool.New()
	w := wallet.NewSoftWallet()

	priv, _, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	addr := w.AddKey(priv, priv) // same key for both regular and miner slots

	delegates := []core.Delegate{{RegID: common.RegID("solo")}}
	account := &core.Account{RegID: "solo", KeyID: addr, PubKey: priv.PublicKey(), MinerPubKey: priv.PublicKey()}
	accounts := &fakeAccountResolver{accounts: map[common.RegID]*core.Account{"solo": account}}

	assembler := NewAssembler(cfg, memChain, pool, state.StaticOracle{BcoinPrice: 1, FcoinPrice: 1},
		state.NewTxCache(0), state.NewMemLogCache(), singleRewardTxFactory)

	ctx := NewMinerContext(cfg, memChain, pool, w, state.StaticOracle{BcoinPrice: 1, FcoinPrice: 1},
		alwaysReadyNetwork{}, accounts, assembler, state.NewTxCache(0), state.NewCacheWrapper(nil, 0),
		func() []core.Delegate { return delegates }, nil)

	return ctx, "solo"
}

func newTestGenesisBlock() *core.Block {
	genesis := &core.Block{
		BlockHeader: core.BlockHeader{Height: 0, Time: 0},
		Txs:         []core.Transaction{core.NewDefaultRewardTx(false)},
	}
	genesis.MerkleRoot = core.BuildMerkleRoot(genesis.Txs)
	return genesis
}

func TestStartRefusesWithoutMinerKey(t *testing.T) {
	cfg := testConfig()
	memChain := chain.NewMemChain(newTestGenesisBlock())
	pool := mempool.New()
	w := wallet.NewSoftWallet() // empty: no keys at all

	assembler := NewAssembler(cfg, memChain, pool, state.StaticOracle{BcoinPrice: 1, FcoinPrice: 1},
		state.NewTxCache(0), state.NewMemLogCache(), singleRewardTxFactory)
	ctx := NewMinerContext(cfg, memChain, pool, w, state.StaticOracle{BcoinPrice: 1, FcoinPrice: 1},
		alwaysReadyNetwork{}, &fakeAccountResolver{accounts: map[common.RegID]*core.Account{}}, assembler,
		state.NewTxCache(0), state.NewCacheWrapper(nil, 0), func() []core.Delegate { return nil }, nil)

	started := ctx.Start(context.Background(), 0)
	assert.False(t, started)
	assert.False(t, ctx.IsActive())
}

func TestStartRefusesWithOnlyRegularKeys(t *testing.T) {
	cfg := testConfig()
	memChain := chain.NewMemChain(newTestGenesisBlock())
	pool := mempool.New()
	w := wallet.NewSoftWallet()
	priv, _, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	w.AddKey(priv, crypto.PrivateKey{}) // regular key only, no miner slot

	assembler := NewAssembler(cfg, memChain, pool, state.StaticOracle{BcoinPrice: 1, FcoinPrice: 1},
		state.NewTxCache(0), state.NewMemLogCache(), singleRewardTxFactory)
	ctx := NewMinerContext(cfg, memChain, pool, w, state.StaticOracle{BcoinPrice: 1, FcoinPrice: 1},
		alwaysReadyNetwork{}, &fakeAccountResolver{accounts: map[common.RegID]*core.Account{}}, assembler,
		state.NewTxCache(0), state.NewCacheWrapper(nil, 0), func() []core.Delegate { return nil }, nil)

	started := ctx.Start(context.Background(), 0)
	assert.False(t, started)
	assert.False(t, ctx.IsActive())
}

func TestWorkerMinesBlockAndRecordsIt(t *testing.T) {
	ctx, _ := newTestWorker(t)

	started := ctx.Start(context.Background(), 1)
	require.True(t, started)

	deadline := time.After(5 * time.Second)
	for ctx.IsActive() {
		select {
		case <-deadline:
			t.Fatal("worker did not finish mining within the test deadline")
		case <-time.After(20 * time.Millisecond):
		}
	}
	ctx.Wait()

	mined := ctx.GetMinedBlocks(10)
	require.Len(t, mined, 1)
	assert.Equal(t, uint64(1), mined[0].Height)
}

func TestWorkerAssemblesStablecoinGenesisSuccessorAtForkHeight(t *testing.T) {
	cfg := testConfig()
	cfg.NetworkID = common.RegTest
	cfg.BlockIntervalSec = 1
	cfg.StableCoinGenesisHeight = 1 // the very next block is the genesis successor

	genesis := newTestGenesisBlock()
	memChain := chain.NewMemChain(genesis)
	pool := mempool.New()
	w := wallet.NewSoftWallet()

	priv, _, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	addr := w.AddKey(priv, priv)

	delegates := []core.Delegate{{RegID: common.RegID("solo")}}
	account := &core.Account{RegID: "solo", KeyID: addr, PubKey: priv.PublicKey(), MinerPubKey: priv.PublicKey()}
	accounts := &fakeAccountResolver{accounts: map[common.RegID]*core.Account{"solo": account}}

	assembler := NewAssembler(cfg, memChain, pool, state.StaticOracle{BcoinPrice: 1, FcoinPrice: 1},
		state.NewTxCache(0), state.NewMemLogCache(), singleRewardTxFactory)

	fundCoinCalls := 0
	fundCoinRewardTx := func() core.RewardTx {
		fundCoinCalls++
		return core.NewDefaultRewardTx(true)
	}

	ctx := NewMinerContext(cfg, memChain, pool, w, state.StaticOracle{BcoinPrice: 1, FcoinPrice: 1},
		alwaysReadyNetwork{}, accounts, assembler, state.NewTxCache(0), state.NewCacheWrapper(nil, 0),
		func() []core.Delegate { return delegates }, fundCoinRewardTx)

	require.True(t, ctx.Start(context.Background(), 1))

	deadline := time.After(5 * time.Second)
	for ctx.IsActive() {
		select {
		case <-deadline:
			t.Fatal("worker did not finish mining within the test deadline")
		case <-time.After(20 * time.Millisecond):
		}
	}
	ctx.Wait()

	assert.Equal(t, 1, fundCoinCalls, "fund-coin reward tx factory must be called exactly once at the fork height")

	mined := memChain.Tip()
	block, err := memChain.ReadBlock(mined)
	require.NoError(t, err)
	require.Len(t, block.Txs, 1, "genesis successor carries only the fund-coin reward tx")
	_, ok := block.Txs[0].(core.RewardTx)
	assert.True(t, ok)
}

func TestStopCancelsRunningWorker(t *testing.T) {
	cfg := testConfig()
	cfg.NetworkID = common.RegTest
	cfg.BlockIntervalSec = 1_000_000 // effectively never reaches the slot boundary

	memChain := chain.NewMemChain(newTestGenesisBlock())
	pool := mempool.New()
	w := wallet.NewSoftWallet()
	priv, _, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	w.AddKey(priv, priv)

	assembler := NewAssembler(cfg, memChain, pool, state.StaticOracle{BcoinPrice: 1, FcoinPrice: 1},
		state.NewTxCache(0), state.NewMemLogCache(), singleRewardTxFactory)
	ctx := NewMinerContext(cfg, memChain, pool, w, state.StaticOracle{BcoinPrice: 1, FcoinPrice: 1},
		alwaysReadyNetwork{}, &fakeAccountResolver{accounts: map[common.RegID]*core.Account{}}, assembler,
		state.NewTxCache(0), state.NewCacheWrapper(nil, 0), func() []core.Delegate { return nil }, nil)

	require.True(t, ctx.Start(context.Background(), 0))
	ctx.Stop()

	done := make(chan struct{})
	go func() {
		ctx.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
	assert.False(t, ctx.IsActive())
}
