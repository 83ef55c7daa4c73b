package core

import (
	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/crypto"
)

// ChainView is the chain collaborator contract: tip, height,
// read-from-disk, and atomic block submission. This core treats the
// chain as external; it never owns persisted state.
type ChainView interface {
	Tip() *BlockIndex
	Height() uint64
	ReadBlock(idx *BlockIndex) (*Block, error)
	// ProcessBlock submits block for inclusion. Implementations must
	// confirm block.PrevHash == Tip().Hash atomically with the append.
	ProcessBlock(view ExecutionView, block *Block) common.Result
}

// MempoolEntry is one pending transaction as seen by the priority
// selector: its size, declared fee, and mempool-assigned priority
// score.
type MempoolEntry interface {
	Tx() Transaction
	Size() int
	Priority() float64
}

// MempoolView is the mempool collaborator contract: an iterable
// hash->entry map plus a monotonic updated-count used by the miner
// worker to detect mempool churn during a mining attempt.
type MempoolView interface {
	Entries() map[common.Hash]MempoolEntry
	UpdatedCount() uint64
}

// PriceOracle resolves the median prices the priority selector and
// the post-fork reward tx need.
type PriceOracle interface {
	BcoinMedianPrice(height uint64) uint64
	FcoinMedianPrice(height uint64) uint64
	BlockMedianPricePoints(height uint64) map[CoinPriceType]uint64
}

// MedianPrice resolves the oracle price for coin at height. WUSD is
// the unit of account and always prices at 1; an unrecognized coin
// prices at 0.
func MedianPrice(oracle PriceOracle, coin CoinType, height uint64) uint64 {
	switch coin {
	case WICC:
		return oracle.BcoinMedianPrice(height)
	case WGRT:
		return oracle.FcoinMedianPrice(height)
	case WUSD:
		return 1
	default:
		return 0
	}
}

// Wallet is the wallet collaborator contract: key enumeration and
// wallet-mediated signing, so the delegate's private key never needs
// to leave the wallet implementation.
type Wallet interface {
	GetKeys(minerOnly bool) []common.Address
	GetKey(address common.Address, minerOnly bool) (crypto.PrivateKey, bool)
	Sign(keyID common.Address, msg common.Hash, useMinerKey bool) (crypto.Signature, error)
}
