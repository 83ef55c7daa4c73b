package mempool

import (
	"container/heap"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
	"github.com/dpos-core/minercore/state"
)

// Mode selects which of the two score components is primary when
// candidates tie-break against each other in the priority heap.
type Mode int

const (
	// SizeFirst compares priority first, fee_per_kb as tiebreak. Used
	// during block assembly.
	SizeFirst Mode = iota
	// FeeFirst compares fee_per_kb first, priority as tiebreak.
	FeeFirst
)

// Candidate is one heap element: a mempool transaction plus its two
// selection scores.
type Candidate struct {
	Tx       core.Transaction
	Size     int
	Priority float64
	FeePerKB float64

	index int
}

// FeePerKB computes the fee_per_kb score for a candidate transaction:
// (median_price(fee_coin) * (fee - tx.fuel(rate))) / size / 1000 /
// PercentBoost. A coin type with no oracle price yields a fee_per_kb
// of 0, so such a transaction is never selectable by fee alone.
func FeePerKB(oracle core.PriceOracle, tx core.Transaction, size int, height uint64, fuelRate uint64) float64 {
	price := core.MedianPrice(oracle, tx.FeeCoinType(), height)
	if price == 0 || size == 0 {
		return 0
	}
	fuel := tx.Fuel(fuelRate)
	fee := tx.FeeAmount()
	var net int64
	if fee > fuel {
		net = int64(fee - fuel)
	}
	return float64(price) * float64(net) / float64(size) / 1000.0 / float64(common.PercentBoost)
}

// candidateHeap implements heap.Interface over candidates, carrying a
// selectable comparison Mode instead of a single fixed ordering.
type candidateHeap struct {
	items []*Candidate
	mode  Mode
}

func (h candidateHeap) Len() int { return len(h.items) }

func (h candidateHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	switch h.mode {
	case FeeFirst:
		if a.FeePerKB != b.FeePerKB {
			return a.FeePerKB > b.FeePerKB
		}
		return a.Priority > b.Priority
	default: // SizeFirst
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.FeePerKB > b.FeePerKB
	}
}

func (h candidateHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].index = i
	h.items[j].index = j
}

func (h *candidateHeap) Push(x interface{}) {
	c := x.(*Candidate)
	c.index = len(h.items)
	h.items = append(h.items, c)
}

func (h *candidateHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	c := old[n-1]
	c.index = -1
	h.items = old[:n-1]
	return c
}

// PriorityHeap is a max-heap over transaction candidates, ordered per
// the selected Mode.
type PriorityHeap struct {
	h *candidateHeap
}

// NewPriorityHeap builds a PriorityHeap over view's non-coinbase,
// not-yet-seen entries, in the given comparator mode. oracle and
// fuelRate feed FeePerKB; height selects the oracle's price snapshot.
func NewPriorityHeap(view core.MempoolView, seen *state.TxCache, oracle core.PriceOracle, height uint64, fuelRate uint64, mode Mode) *PriorityHeap {
	ch := &candidateHeap{mode: mode}
	heap.Init(ch)
	for hash, e := range view.Entries() {
		tx := e.Tx()
		if tx.IsCoinbase() {
			continue
		}
		if seen != nil && seen.Seen(hash) {
			continue
		}
		heap.Push(ch, &Candidate{
			Tx:       tx,
			Size:     e.Size(),
			Priority: e.Priority(),
			FeePerKB: FeePerKB(oracle, tx, e.Size(), height, fuelRate),
		})
	}
	return &PriorityHeap{h: ch}
}

// Len reports the number of remaining candidates.
func (p *PriorityHeap) Len() int { return p.h.Len() }

// Pop removes and returns the top candidate by the heap's comparator
// mode, or nil if the heap is empty.
func (p *PriorityHeap) Pop() *Candidate {
	if p.h.Len() == 0 {
		return nil
	}
	return heap.Pop(p.h).(*Candidate)
}
