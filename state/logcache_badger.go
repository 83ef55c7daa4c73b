package state

import (
	"encoding/json"

	"github.com/dgraph-io/badger"

	"github.com/dpos-core/minercore/common"
)

// BadgerLogCache is the optional durable LogCache implementation:
// badger.Open against a directory, one json-encoded document per key,
// db.Update/View transactions. Useful for a miner process that wants
// execution-failure history to survive a restart; the in-memory
// MemLogCache is the default and sufficient for most deployments.
type BadgerLogCache struct {
	db *badger.DB
}

// NewBadgerLogCache opens (creating if absent) a badger store rooted
// at dir.
func NewBadgerLogCache(dir string) (*BadgerLogCache, error) {
	opts := badger.DefaultOptions
	opts.Dir = dir
	opts.ValueDir = dir
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerLogCache{db: db}, nil
}

// Close releases the underlying badger store.
func (c *BadgerLogCache) Close() error {
	return c.db.Close()
}

// SetExecuteFail implements state.LogCache.
func (c *BadgerLogCache) SetExecuteFail(txHash common.Hash, rec ExecuteFailRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(txHash.Bytes(), value)
	})
}

// GetExecuteFail implements state.LogCache.
func (c *BadgerLogCache) GetExecuteFail(txHash common.Hash) (ExecuteFailRecord, bool, error) {
	var rec ExecuteFailRecord
	found := false
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(txHash.Bytes())
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return ExecuteFailRecord{}, false, err
	}
	return rec, found, nil
}
