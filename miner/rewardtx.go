package miner

import (
	"crypto/rand"
	"math/big"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
)

// SignIn finalizes a candidate block for submission: validates the
// same-slot-producer guard against the previous block, populates the
// reward tx's producer/height/profits fields, assigns a random nonce,
// recomputes the merkle root, stamps the header with currentTime, and
// signs the block's signature hash with the producing delegate's key.
//
// currentTime is the wall-clock second the caller resolved the
// producer for; stamping it into the header makes the slot the
// producer was resolved for the slot the signature commits to.
//
// prevBlock is nil for the genesis-successor block, which has no
// previous producer to check against.
func SignIn(cfg core.Config, wallet core.Wallet, currentTime int64, block *core.Block, prevBlock *core.Block, producer core.Account, useMinerKey bool) common.Result {
	if prevBlock != nil {
		prevProducerRegID := prevBlock.Txs[0].(core.RewardTx).Producer()
		if currentTime-prevBlock.Time < int64(cfg.BlockIntervalSec) && prevProducerRegID == producer.RegID {
			return common.ErrorWithCode(common.CodeSameSlotProducer,
				"producer %s cannot produce twice within one BlockInterval", producer.RegID)
		}
	}

	rewardTx := block.Txs[0].(core.RewardTx)
	rewardTx.SetProducer(producer.RegID, block.Height)
	if cfg.IsStableCoinFork(block.Height) {
		rewardTx.SetProfits(producer.ComputeBlockInflateInterest(block.Height))
	}

	nonce, err := randUint32(cfg.MaxNonce)
	if err != nil {
		return common.Error("failed to draw block nonce: %v", err)
	}
	block.Nonce = nonce

	block.MerkleRoot = core.BuildMerkleRoot(block.Txs)
	block.Time = currentTime

	sigHash := block.SignatureHash()
	sig, err := wallet.Sign(producer.KeyID, sigHash, useMinerKey)
	if err != nil {
		return common.Error("failed to sign block: %v", err)
	}
	block.Signature = sig

	return common.OK
}

// randUint32 draws a uniform random value in [0, max].
func randUint32(max uint32) (uint32, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)+1))
	if err != nil {
		return 0, err
	}
	return uint32(n.Uint64()), nil
}
