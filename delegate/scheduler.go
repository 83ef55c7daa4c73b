package delegate

import (
	"encoding/binary"
	"strconv"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
	"github.com/dpos-core/minercore/crypto"
	"github.com/dpos-core/minercore/util"
)

var logger = util.WithPrefix("shuffle")

// Shuffle deterministically permutes delegates in place for the round
// that height falls in: round_no = ceil(height/N), seed0 =
// H(decimal(round_no)), then walk positions consuming 4 swaps per
// seed before re-hashing seed = H(seed||seed). The seed acts as a
// renewable entropy stream; every node derives the same order for the
// same height.
func Shuffle(height uint64, delegates []core.Delegate) {
	n := len(delegates)
	if n == 0 {
		return
	}
	roundNo := ceilDiv(height, uint64(n))
	seed := crypto.Keccak256Hash([]byte(strconv.FormatUint(roundNo, 10)))
	logger.Debugf("shuffle height=%d round=%d n=%d", height, roundNo, n)

	// The outer loop's own increment advances i once more after each
	// batch of four swaps, so every fifth index is never the swap
	// source. Schedule derivation across the network depends on this
	// exact stride; do not straighten it out.
	for i := 0; i < n; i++ {
		for x := 0; x < 4 && i < n; i, x = i+1, x+1 {
			off := x * 8
			t := binary.LittleEndian.Uint64(seed[off : off+8])
			j := int(t % uint64(n))
			delegates[i], delegates[j] = delegates[j], delegates[i]
		}
		seed = crypto.Keccak256Hash(seed.Bytes(), seed.Bytes())
	}
}

// ceilDiv computes ceil(a/b) for positive b; height 0 maps to round 0.
func ceilDiv(a, b uint64) uint64 {
	if a == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// CurrentDelegate returns the producer scheduled for the slot
// containing t, given an already-shuffled delegate set and the slot
// width blockIntervalSec.
func CurrentDelegate(t int64, blockIntervalSec uint64, shuffled []core.Delegate) common.RegID {
	n := len(shuffled)
	if n == 0 || blockIntervalSec == 0 {
		return ""
	}
	slot := uint64(t) / blockIntervalSec
	return shuffled[slot%uint64(n)].RegID
}
