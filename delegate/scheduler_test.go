package delegate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
)

func makeDelegates(n int) []core.Delegate {
	out := make([]core.Delegate, n)
	for i := 0; i < n; i++ {
		out[i] = core.Delegate{RegID: common.RegID("delegate-" + string(rune('a'+i)))}
	}
	return out
}

func TestShuffleIsDeterministic(t *testing.T) {
	a := makeDelegates(11)
	b := makeDelegates(11)

	Shuffle(22, a)
	Shuffle(22, b)

	assert.Equal(t, a, b, "shuffle must derive the same order for the same height across invocations")
}

func TestShufflePreservesMultiset(t *testing.T) {
	original := makeDelegates(11)
	shuffled := makeDelegates(11)

	Shuffle(22, shuffled)

	assert.ElementsMatch(t, original, shuffled, "shuffle must be a permutation of the input set")
}

func TestShuffleDiffersAcrossRounds(t *testing.T) {
	a := makeDelegates(11)
	b := makeDelegates(11)

	Shuffle(11, a)  // round 1
	Shuffle(110, b) // round 10

	assert.NotEqual(t, a, b, "different rounds should overwhelmingly produce different orders")
}

func TestCurrentDelegateSlotAssignment(t *testing.T) {
	delegates := makeDelegates(11)
	Shuffle(22, delegates)

	blockInterval := uint64(10)
	for slot := uint64(0); slot < 25; slot++ {
		tm := int64(slot * blockInterval)
		got := CurrentDelegate(tm, blockInterval, delegates)
		want := delegates[slot%uint64(len(delegates))].RegID
		require.Equal(t, want, got)
	}
}

func TestCurrentDelegateEmptySet(t *testing.T) {
	assert.Equal(t, common.RegID(""), CurrentDelegate(100, 10, nil))
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, uint64(0), ceilDiv(0, 11))
	assert.Equal(t, uint64(1), ceilDiv(1, 11))
	assert.Equal(t, uint64(2), ceilDiv(22, 11))
	assert.Equal(t, uint64(3), ceilDiv(23, 11))
}
