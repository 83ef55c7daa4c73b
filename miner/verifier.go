package miner

import (
	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
	"github.com/dpos-core/minercore/crypto"
	"github.com/dpos-core/minercore/state"
)

// VerifyPosTx validates a received block's structural, scheduling,
// and signature invariants against the delegate set active at
// block.Height, and against
// prevBlock (nil for the genesis-successor). If checkExecution is
// set, it also replays every non-reward transaction against view and
// checks the block's declared fuel total.
func VerifyPosTx(cfg core.Config, delegates []core.Delegate, block *core.Block, prevBlock *core.Block, producerAccount core.Account, seen *state.TxCache, view core.ExecutionView, checkExecution bool) common.Result {
	if block.Nonce > cfg.MaxNonce {
		return common.ErrorWithCode(common.CodeInvalidNonce, "nonce %d exceeds MaxNonce %d", block.Nonce, cfg.MaxNonce)
	}

	if block.MerkleRoot != core.BuildMerkleRoot(block.Txs) {
		return common.ErrorWithCode(common.CodeInvalidMerkle, "merkle root mismatch")
	}

	expectedProducer := delegateProducer(cfg, nil, block.Height, block.Time, delegates)

	if prevBlock != nil {
		prevRegID := prevBlock.Txs[0].(core.RewardTx).Producer()
		if block.Time-prevBlock.Time < int64(cfg.BlockIntervalSec) && prevRegID == expectedProducer {
			return common.ErrorWithCode(common.CodeSameSlotProducer,
				"producer %s cannot produce twice within one BlockInterval", expectedProducer)
		}
	}

	if len(block.Txs) == 0 {
		return common.ErrorWithCode(common.CodeInvalidTx, "block has no reward transaction")
	}
	rewardTx, ok := block.Txs[0].(core.RewardTx)
	if !ok {
		return common.ErrorWithCode(common.CodeInvalidTx, "block.Txs[0] is not a reward transaction")
	}
	if rewardTx.Producer() != expectedProducer {
		return common.ErrorWithCode(common.CodeWrongProducer,
			"producer %s does not match scheduled producer %s", rewardTx.Producer(), expectedProducer)
	}

	sigLen := len(block.Signature.ToBytes())
	if sigLen == 0 || sigLen > common.MaxBlockSignatureSize {
		return common.ErrorWithCode(common.CodeInvalidSignature, "signature length %d out of range", sigLen)
	}
	sigHash := block.SignatureHash()
	validSig := crypto.Verify(sigHash, block.Signature, producerAccount.PubKey)
	if !validSig && producerAccount.MinerPubKey.IsValid() {
		validSig = crypto.Verify(sigHash, block.Signature, producerAccount.MinerPubKey)
	}
	if !validSig {
		return common.ErrorWithCode(common.CodeInvalidSignature, "signature verification failed")
	}

	if rewardTx.Version() != common.NTxVersion1 {
		return common.ErrorWithCode(common.CodeInvalidTx, "reward tx version %d != %d", rewardTx.Version(), common.NTxVersion1)
	}

	if !checkExecution {
		return common.OK
	}

	var totalStep, totalFuel uint64
	for i, tx := range block.Txs {
		if i == 0 {
			continue // reward tx is not replayed
		}
		hash := tx.Hash()
		if seen != nil && seen.Seen(hash) {
			return common.ErrorWithCode(common.CodeDuplicateTx, "duplicate transaction %s", hash.Hex())
		}
		result := tx.Execute(block.Height, i, view)
		if result.IsError() {
			return result
		}
		totalStep += tx.RunStep()
		if totalStep > common.MaxBlockRunStep {
			return common.ErrorWithCode(common.CodeRunStepExceeded, "block run step %d exceeds %d", totalStep, common.MaxBlockRunStep)
		}
		totalFuel += tx.Fuel(block.FuelRate)
		if seen != nil {
			seen.Record(hash)
		}
	}
	if totalFuel != block.Fuel {
		return common.ErrorWithCode(common.CodeFuelMismatch, "declared fuel %d != computed fuel %d", block.Fuel, totalFuel)
	}

	return common.OK
}
