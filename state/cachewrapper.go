package state

import (
	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
)

// CacheWrapper is a fork-then-commit speculative state layer: account
// writes land in an in-memory overlay keyed by RegID, and reads miss
// through to a parent view. The assembler pushes a new CacheWrapper
// per-tx via Fork, executes the tx against it, and either Commit's the
// overlay into the parent on success or discards it on reject.
type CacheWrapper struct {
	parent core.ExecutionView

	height uint64

	accounts map[common.RegID]*core.Account
	deleted  map[common.RegID]bool
}

// NewCacheWrapper creates a root CacheWrapper over parent at height.
// parent may be nil for a from-scratch view (e.g. genesis assembly).
func NewCacheWrapper(parent core.ExecutionView, height uint64) *CacheWrapper {
	return &CacheWrapper{
		parent:   parent,
		height:   height,
		accounts: make(map[common.RegID]*core.Account),
		deleted:  make(map[common.RegID]bool),
	}
}

// Fork returns a child CacheWrapper layered on top of w, for
// speculatively executing one transaction without mutating w until
// the caller decides to Commit.
func (w *CacheWrapper) Fork() *CacheWrapper {
	return NewCacheWrapper(w, w.height)
}

// Height implements core.ExecutionView.
func (w *CacheWrapper) Height() uint64 {
	return w.height
}

// GetAccount implements core.ExecutionView: an overlay hit returns
// immediately; an overlay tombstone reports absence; otherwise the
// lookup falls through to the parent view.
func (w *CacheWrapper) GetAccount(regID common.RegID) (*core.Account, bool) {
	if acc, ok := w.accounts[regID]; ok {
		return acc, true
	}
	if w.deleted[regID] {
		return nil, false
	}
	if w.parent != nil {
		return w.parent.GetAccount(regID)
	}
	return nil, false
}

// SetAccount implements core.ExecutionView: writes land in this
// layer's overlay only, never touching the parent until Commit.
func (w *CacheWrapper) SetAccount(regID common.RegID, acc *core.Account) {
	delete(w.deleted, regID)
	w.accounts[regID] = acc
}

// DeleteAccount tombstones regID in this layer, shadowing any value
// visible through the parent.
func (w *CacheWrapper) DeleteAccount(regID common.RegID) {
	delete(w.accounts, regID)
	w.deleted[regID] = true
}

// Commit flushes this layer's overlay into its parent CacheWrapper,
// collapsing the fork. It is a programmer error to Commit a root
// wrapper (one with a non-CacheWrapper or nil parent); callers should
// simply keep using the root directly in that case.
func (w *CacheWrapper) Commit() {
	parent, ok := w.parent.(*CacheWrapper)
	if !ok || parent == nil {
		return
	}
	for regID := range w.deleted {
		parent.DeleteAccount(regID)
	}
	for regID, acc := range w.accounts {
		parent.SetAccount(regID, acc)
	}
}

// Discard drops this layer's overlay entirely, leaving the parent
// untouched. It is the reject-path counterpart to Commit.
func (w *CacheWrapper) Discard() {
	w.accounts = make(map[common.RegID]*core.Account)
	w.deleted = make(map[common.RegID]bool)
}
