package core

import (
	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/crypto"
)

// DefaultRewardTx is the default RewardTx implementation: a coinbase-style
// transaction carrying no payload beyond the producer/height/reward
// bookkeeping this core itself populates during assembly and sign-in.
type DefaultRewardTx struct {
	producer    common.RegID
	validHeight uint64
	rewardValue int64
	profits     uint64
	pricePoints map[CoinPriceType]uint64
	version     int
	multiCoin   bool
}

var _ RewardTx = (*DefaultRewardTx)(nil)

// NewDefaultRewardTx creates a placeholder reward tx for block
// assembly. multiCoin selects the post-stablecoin-fork multi-coin
// reward shape.
func NewDefaultRewardTx(multiCoin bool) *DefaultRewardTx {
	return &DefaultRewardTx{version: common.NTxVersion1, multiCoin: multiCoin}
}

// Hash implements Transaction: a reward tx hashes its producer,
// height, and reward value, which are unique per block by
// construction.
func (tx *DefaultRewardTx) Hash() common.Hash {
	buf := make([]byte, 0, 64)
	buf = append(buf, []byte(tx.producer)...)
	var h [8]byte
	putUint64(h[:], tx.validHeight)
	buf = append(buf, h[:]...)
	putUint64(h[:], uint64(tx.rewardValue))
	buf = append(buf, h[:]...)
	return crypto.Keccak256Hash(buf)
}

// Size implements Transaction with a fixed small estimate; a reward
// tx carries no variable-length payload in this core.
func (tx *DefaultRewardTx) Size() int { return 128 }

// FeeCoinType implements Transaction: a reward tx pays no fee.
func (tx *DefaultRewardTx) FeeCoinType() CoinType { return OtherCoin }

// FeeAmount implements Transaction: a reward tx pays no fee.
func (tx *DefaultRewardTx) FeeAmount() uint64 { return 0 }

// Priority implements Transaction: irrelevant, since the reward tx is
// never pulled from the priority heap (it is placed directly by the
// assembler).
func (tx *DefaultRewardTx) Priority() float64 { return 0 }

// IsCoinbase implements Transaction.
func (tx *DefaultRewardTx) IsCoinbase() bool { return true }

// Version implements Transaction.
func (tx *DefaultRewardTx) Version() int { return tx.version }

// Execute implements Transaction: a reward tx is never replayed
// through the normal execution path (the verifier skips index 0); it
// self-reports success so generic callers that do iterate over every
// tx see no rejection.
func (tx *DefaultRewardTx) Execute(height uint64, index int, view ExecutionView) common.Result {
	return common.OK
}

// RunStep implements Transaction.
func (tx *DefaultRewardTx) RunStep() uint64 { return 0 }

// Fuel implements Transaction.
func (tx *DefaultRewardTx) Fuel(rate uint64) uint64 { return 0 }

// SetProducer implements RewardTx.
func (tx *DefaultRewardTx) SetProducer(regID common.RegID, validHeight uint64) {
	tx.producer = regID
	tx.validHeight = validHeight
}

// SetRewardValue implements RewardTx.
func (tx *DefaultRewardTx) SetRewardValue(value int64) { tx.rewardValue = value }

// SetProfits implements RewardTx.
func (tx *DefaultRewardTx) SetProfits(profits uint64) { tx.profits = profits }

// SetMedianPricePoints implements RewardTx.
func (tx *DefaultRewardTx) SetMedianPricePoints(points map[CoinPriceType]uint64) {
	tx.pricePoints = points
}

// Producer implements RewardTx.
func (tx *DefaultRewardTx) Producer() common.RegID { return tx.producer }

// RewardValue returns the reward value most recently set.
func (tx *DefaultRewardTx) RewardValue() int64 { return tx.rewardValue }

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[7-i] = byte(v)
		v >>= 8
	}
}
