package mempool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndEntries(t *testing.T) {
	pool := New()
	tx := &fakeTx{hash: hashFrom(1), size: 10}
	pool.Insert(tx, 3)

	entries := pool.Entries()
	require.Len(t, entries, 1)
	e := entries[tx.Hash()]
	require.NotNil(t, e)
	assert.Equal(t, tx.Hash(), e.Tx().Hash())
	assert.Equal(t, float64(3), e.Priority())
	assert.Equal(t, 1, pool.Len())
}

func TestInsertOverwritesSameHash(t *testing.T) {
	pool := New()
	tx := &fakeTx{hash: hashFrom(1), size: 10}
	pool.Insert(tx, 1)
	pool.Insert(tx, 9)

	entries := pool.Entries()
	assert.Equal(t, float64(9), entries[tx.Hash()].Priority())
	assert.Equal(t, 1, pool.Len())
}

func TestRemoveEvictsEntry(t *testing.T) {
	pool := New()
	tx := &fakeTx{hash: hashFrom(1), size: 10}
	pool.Insert(tx, 1)
	pool.Remove(tx.Hash())

	assert.Equal(t, 0, pool.Len())
}

func TestUpdatedCountIncrementsOnMutation(t *testing.T) {
	pool := New()
	tx := &fakeTx{hash: hashFrom(1), size: 10}

	before := pool.UpdatedCount()
	pool.Insert(tx, 1)
	afterInsert := pool.UpdatedCount()
	pool.Remove(tx.Hash())
	afterRemove := pool.UpdatedCount()

	assert.Greater(t, afterInsert, before)
	assert.Greater(t, afterRemove, afterInsert)
}

func TestEntriesIsDefensiveCopy(t *testing.T) {
	pool := New()
	tx := &fakeTx{hash: hashFrom(1), size: 10}
	pool.Insert(tx, 1)

	entries := pool.Entries()
	delete(entries, tx.Hash())

	assert.Equal(t, 1, pool.Len(), "mutating the returned snapshot must not affect the pool")
}
