package core

import (
	"github.com/dpos-core/minercore/common"
)

// CoinType enumerates the coin denominations this core's fee/reward
// logic understands.
type CoinType int

const (
	// WICC is the chain's base coin.
	WICC CoinType = iota
	// WGRT is the chain's governance/fund coin.
	WGRT
	// WUSD is the chain's stablecoin.
	WUSD
	// OtherCoin is any coin type with no median-price oracle, and is
	// therefore not fee-selectable.
	OtherCoin
)

// CoinPriceType identifies an entry in a block's median-price snapshot.
type CoinPriceType int

const (
	// BcoinPriceType is the WICC median price.
	BcoinPriceType CoinPriceType = iota
	// FcoinPriceType is the WGRT median price.
	FcoinPriceType
)

// ExecutionView is the minimal state surface a Transaction needs to
// execute, and the surface the block assembler and verifier drive
// transactions against. It is implemented by state.CacheWrapper; core
// depends on no concrete state package so state can depend on core's
// types without an import cycle.
type ExecutionView interface {
	Height() uint64
	GetAccount(regID common.RegID) (*Account, bool)
	SetAccount(regID common.RegID, acc *Account)
}

// Transaction is the opaque mempool/block entry this core assembles,
// selects, and executes. Everything about a transaction's own
// semantics beyond these hooks lives outside this module.
type Transaction interface {
	Hash() common.Hash
	Size() int
	FeeCoinType() CoinType
	FeeAmount() uint64
	Priority() float64
	IsCoinbase() bool
	Version() int

	// Execute runs the transaction's effects against view at the given
	// height and in-block index, returning ok (common.OK) or a reject
	// result carrying a code and reason. On success the transaction
	// records its own run-step count, retrievable via RunStep.
	Execute(height uint64, index int, view ExecutionView) common.Result

	// RunStep returns the step count consumed by the most recent
	// successful Execute call.
	RunStep() uint64

	// Fuel computes the fuel charge for the most recent Execute call
	// at the given per-step rate: RunStep() * rate / 100.
	Fuel(rate uint64) uint64
}

// RewardTx is the distinguished first transaction of a block. The
// assembler populates its reward value during assembly and the signer
// populates its producer fields during sign-in.
type RewardTx interface {
	Transaction

	// SetProducer records the producing delegate and the height at
	// which the reward becomes valid.
	SetProducer(regID common.RegID, validHeight uint64)

	// SetRewardValue sets the reward tx's payout (totalFees - totalFuel).
	SetRewardValue(value int64)

	// SetProfits attaches the block-inflation interest computed for
	// the producing delegate. Only meaningful post-stablecoin-fork.
	SetProfits(profits uint64)

	// SetMedianPricePoints attaches the oracle's median-price snapshot
	// for the block. Only meaningful post-stablecoin-fork.
	SetMedianPricePoints(points map[CoinPriceType]uint64)

	// Producer returns the RegID most recently set via SetProducer.
	Producer() common.RegID
}
