package core

import (
	"encoding/binary"
	"fmt"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/crypto"
)

// BlockHeader carries height, previous-block-hash, merkle-root-hash,
// unix-second timestamp, 32-bit nonce, signature, fuel-rate, and
// total-fuel.
type BlockHeader struct {
	Height     uint64
	PrevHash   common.Hash
	MerkleRoot common.Hash
	Time       int64
	Nonce      uint32
	Signature  crypto.Signature
	FuelRate   uint64
	Fuel       uint64
}

// Block is an ordered list of transactions headed by the block reward
// transaction(s).
type Block struct {
	BlockHeader
	Txs []Transaction
}

func (h BlockHeader) String() string {
	return fmt.Sprintf("BlockHeader{Height:%d, Prev:%s, Time:%d, Nonce:%d, Fuel:%d, FuelRate:%d}",
		h.Height, h.PrevHash.Hex(), h.Time, h.Nonce, h.Fuel, h.FuelRate)
}

func (b *Block) String() string {
	return fmt.Sprintf("Block{%v, Txs:%d}", b.BlockHeader, len(b.Txs))
}

// signatureHashBytes serializes every header field except the
// signature itself, the pre-image hashed and signed by the producer
// and re-derived by the verifier.
func (b *Block) signatureHashBytes() []byte {
	buf := make([]byte, 0, 8+common.HashLength*2+8+4)
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], b.Height)
	buf = append(buf, tmp[:]...)
	buf = append(buf, b.PrevHash.Bytes()...)
	buf = append(buf, b.MerkleRoot.Bytes()...)
	binary.BigEndian.PutUint64(tmp[:], uint64(b.Time))
	buf = append(buf, tmp[:]...)
	var nonceBuf [4]byte
	binary.BigEndian.PutUint32(nonceBuf[:], b.Nonce)
	buf = append(buf, nonceBuf[:]...)
	binary.BigEndian.PutUint64(tmp[:], b.FuelRate)
	buf = append(buf, tmp[:]...)
	binary.BigEndian.PutUint64(tmp[:], b.Fuel)
	buf = append(buf, tmp[:]...)
	return buf
}

// SignatureHash returns the hash the producer signs and the verifier
// checks the signature against.
func (b *Block) SignatureHash() common.Hash {
	return crypto.Keccak256Hash(b.signatureHashBytes())
}

// Hash returns the block's content hash: the signature hash folded
// with the signature bytes, so two otherwise-identical headers with
// different signatures hash differently.
func (b *Block) Hash() common.Hash {
	sigHash := b.SignatureHash()
	return crypto.Keccak256Hash(sigHash.Bytes(), b.Signature.ToBytes())
}

// BuildMerkleRoot computes the Merkle root over the block's
// transaction hashes. An odd level duplicates its last node.
func BuildMerkleRoot(txs []Transaction) common.Hash {
	if len(txs) == 0 {
		return common.Hash{}
	}
	level := make([]common.Hash, len(txs))
	for i, tx := range txs {
		level[i] = tx.Hash()
	}
	for len(level) > 1 {
		next := make([]common.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, crypto.Keccak256Hash(level[i].Bytes(), level[i+1].Bytes()))
			} else {
				// Odd node out: duplicate it, the standard Merkle-tree padding rule.
				next = append(next, crypto.Keccak256Hash(level[i].Bytes(), level[i].Bytes()))
			}
		}
		level = next
	}
	return level[0]
}

// SerializedSize estimates the wire size of the block: a fixed header
// cost plus the sum of its transactions' sizes. A real wire codec is
// out of scope for this core; callers that need exact byte counts
// supply transactions whose Size() already reflects their true
// encoded length.
func (b *Block) SerializedSize() int {
	const headerSize = common.HashLength*2 + 8 + 8 + 4 + 8 + 8 + 72 // + generous signature allowance
	total := headerSize
	for _, tx := range b.Txs {
		total += tx.Size()
	}
	return total
}

// BlockIndex is a chain-view node: a linked chain of header summaries
// reachable from the active tip backward.
type BlockIndex struct {
	Height   uint64
	Hash     common.Hash
	Time     int64
	Fuel     uint64
	FuelRate uint64
	Parent   *BlockIndex
}
