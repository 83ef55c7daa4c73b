package core

import (
	"math/big"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/crypto"
)

// Delegate is a member of the active producer set, identified by a
// stable RegID.
type Delegate struct {
	RegID common.RegID
}

// Account is the on-chain record looked up by RegID: a primary key, an
// optional miner-only key, a key-id (wallet address), and the
// block-inflation interest hook the reward tx draws on.
type Account struct {
	RegID       common.RegID
	KeyID       common.Address
	PubKey      crypto.PublicKey
	MinerPubKey crypto.PublicKey // zero value => not set; verification falls back to it

	// Balance and Stake back ComputeBlockInflateInterest; this core
	// does not otherwise interpret them.
	Balance *big.Int
	Stake   *big.Int
}

// inflationBasisPoints is the annualized inflation rate (in basis
// points) applied to a delegate's stake to derive its per-block
// profits, post-stablecoin-fork. A protocol constant, not a tunable.
const inflationBasisPoints = 500 // 5% annualized

// blocksPerYear approximates the number of blocks produced per year at
// the default BlockInterval, used only to spread the annual rate
// across blocks; a real deployment would derive this from its actual
// configured BlockInterval.
const blocksPerYear = 365 * 24 * 60 * 6 // 10s blocks

// ComputeBlockInflateInterest computes the block-inflation interest
// owed to this account's stake at the given height: a fixed
// annualized rate spread evenly across blocks. height is unused by
// this simple model but kept in the signature so height-dependent
// rate schedules can slot in without an interface change.
func (a Account) ComputeBlockInflateInterest(height uint64) uint64 {
	if a.Stake == nil || a.Stake.Sign() <= 0 {
		return 0
	}
	annual := new(big.Int).Mul(a.Stake, big.NewInt(inflationBasisPoints))
	annual.Div(annual, big.NewInt(10000))
	perBlock := new(big.Int).Div(annual, big.NewInt(blocksPerYear))
	if !perBlock.IsUint64() {
		return ^uint64(0)
	}
	return perBlock.Uint64()
}
