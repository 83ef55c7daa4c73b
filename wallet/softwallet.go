// Package wallet provides the default in-memory keystore implementing
// core.Wallet: an unencrypted, in-process key list with a distinct
// miner-only key slot per address.
package wallet

import (
	"sync"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
	"github.com/dpos-core/minercore/crypto"
)

// keyEntry pairs a delegate's regular signing key with its optional
// miner-only key, mirroring the Account.PubKey / Account.MinerPubKey
// split.
type keyEntry struct {
	priv       crypto.PrivateKey
	minerPriv  crypto.PrivateKey
	hasMinerPK bool
}

var _ core.Wallet = (*SoftWallet)(nil)

// SoftWallet is an in-memory keystore implementing core.Wallet. It
// holds keys unencrypted for the lifetime of the process.
type SoftWallet struct {
	mu   sync.RWMutex
	keys map[common.Address]keyEntry
}

// NewSoftWallet creates an empty SoftWallet.
func NewSoftWallet() *SoftWallet {
	return &SoftWallet{keys: make(map[common.Address]keyEntry)}
}

// AddKey registers priv under its derived address. If minerPriv is
// the zero value, GetKey(addr, minerOnly=true) falls back to priv.
func (w *SoftWallet) AddKey(priv crypto.PrivateKey, minerPriv crypto.PrivateKey) common.Address {
	addr := priv.PublicKey().Address()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.keys[addr] = keyEntry{priv: priv, minerPriv: minerPriv, hasMinerPK: minerPriv.IsValid()}
	return addr
}

// GetKeys implements core.Wallet: returns every managed address, or,
// with minerOnly set, only the addresses holding a dedicated miner
// key. The miner worker's startup gate uses the filtered form to
// refuse wallets that cannot mine.
func (w *SoftWallet) GetKeys(minerOnly bool) []common.Address {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]common.Address, 0, len(w.keys))
	for addr, entry := range w.keys {
		if minerOnly && !entry.hasMinerPK {
			continue
		}
		out = append(out, addr)
	}
	return out
}

// GetKey implements core.Wallet: returns the private key for address,
// preferring the miner-only key when minerOnly is set and one is
// registered.
func (w *SoftWallet) GetKey(address common.Address, minerOnly bool) (crypto.PrivateKey, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	entry, ok := w.keys[address]
	if !ok {
		return crypto.PrivateKey{}, false
	}
	if minerOnly && entry.hasMinerPK {
		return entry.minerPriv, true
	}
	return entry.priv, true
}

// Sign implements core.Wallet: signs msg with keyID's key, using the
// miner-only key when useMinerKey is set.
func (w *SoftWallet) Sign(keyID common.Address, msg common.Hash, useMinerKey bool) (crypto.Signature, error) {
	priv, ok := w.GetKey(keyID, useMinerKey)
	if !ok {
		return crypto.Signature{}, errKeyNotFound(keyID)
	}
	return priv.Sign(msg)
}

type keyNotFoundError struct {
	address common.Address
}

func (e *keyNotFoundError) Error() string {
	return "wallet: no key for address " + e.address.Hex()
}

func errKeyNotFound(address common.Address) error {
	return &keyNotFoundError{address: address}
}
