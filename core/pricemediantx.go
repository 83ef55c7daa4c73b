package core

import (
	"sort"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/crypto"
)

// PriceMedianTx is the second placeholder transaction of a
// post-stablecoin-fork block: it carries the oracle's median-price
// snapshot for the block's height so downstream consumers can read
// the prices the block was assembled against without re-querying the
// oracle. It implements RewardTx so the reward-tx factory can return
// it alongside the multi-coin reward tx; the reward-specific setters
// are no-ops.
type PriceMedianTx struct {
	validHeight uint64
	pricePoints map[CoinPriceType]uint64
	version     int
}

var _ RewardTx = (*PriceMedianTx)(nil)

// NewPriceMedianTx creates an empty price-median placeholder; the
// assembler fills in the snapshot via SetMedianPricePoints.
func NewPriceMedianTx() *PriceMedianTx {
	return &PriceMedianTx{version: common.NTxVersion1}
}

// Hash implements Transaction: the height plus the snapshot's entries
// in sorted key order, so the hash is stable across map iteration.
func (tx *PriceMedianTx) Hash() common.Hash {
	buf := make([]byte, 0, 16+len(tx.pricePoints)*16)
	buf = append(buf, []byte("price-median")...)
	var h [8]byte
	putUint64(h[:], tx.validHeight)
	buf = append(buf, h[:]...)

	keys := make([]int, 0, len(tx.pricePoints))
	for k := range tx.pricePoints {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	for _, k := range keys {
		putUint64(h[:], uint64(k))
		buf = append(buf, h[:]...)
		putUint64(h[:], tx.pricePoints[CoinPriceType(k)])
		buf = append(buf, h[:]...)
	}
	return crypto.Keccak256Hash(buf)
}

// Size implements Transaction with a fixed small estimate plus the
// snapshot's entries.
func (tx *PriceMedianTx) Size() int { return 64 + len(tx.pricePoints)*16 }

// FeeCoinType implements Transaction: a price-median tx pays no fee.
func (tx *PriceMedianTx) FeeCoinType() CoinType { return OtherCoin }

// FeeAmount implements Transaction: a price-median tx pays no fee.
func (tx *PriceMedianTx) FeeAmount() uint64 { return 0 }

// Priority implements Transaction: irrelevant, placed directly by the
// assembler.
func (tx *PriceMedianTx) Priority() float64 { return 0 }

// IsCoinbase implements Transaction.
func (tx *PriceMedianTx) IsCoinbase() bool { return false }

// Version implements Transaction.
func (tx *PriceMedianTx) Version() int { return tx.version }

// Execute implements Transaction: attaching the snapshot has no state
// effects, so replay always succeeds with zero run steps.
func (tx *PriceMedianTx) Execute(height uint64, index int, view ExecutionView) common.Result {
	return common.OK
}

// RunStep implements Transaction.
func (tx *PriceMedianTx) RunStep() uint64 { return 0 }

// Fuel implements Transaction.
func (tx *PriceMedianTx) Fuel(rate uint64) uint64 { return 0 }

// SetProducer implements RewardTx: only the height is meaningful for
// a price-median tx.
func (tx *PriceMedianTx) SetProducer(regID common.RegID, validHeight uint64) {
	tx.validHeight = validHeight
}

// SetRewardValue implements RewardTx as a no-op; the payout lives on
// the multi-coin reward tx.
func (tx *PriceMedianTx) SetRewardValue(value int64) {}

// SetProfits implements RewardTx as a no-op.
func (tx *PriceMedianTx) SetProfits(profits uint64) {}

// SetMedianPricePoints implements RewardTx.
func (tx *PriceMedianTx) SetMedianPricePoints(points map[CoinPriceType]uint64) {
	tx.pricePoints = points
}

// Producer implements RewardTx; a price-median tx has no producer of
// its own.
func (tx *PriceMedianTx) Producer() common.RegID { return "" }

// MedianPricePoints returns the snapshot most recently attached.
func (tx *PriceMedianTx) MedianPricePoints() map[CoinPriceType]uint64 {
	return tx.pricePoints
}
