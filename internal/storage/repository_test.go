package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanspano/internal/core"
)

func sampleSnapshot() core.Snapshot {
	return core.Snapshot{
		Transactions: []core.Transaction{{
			ID:          1704412800000,
			Description: "Maaş ödemesi",
			Amount:      core.Money{Cents: 100000},
			Type:        core.Income,
			Category:    "Maaş",
			AccountID:   "acc_1",
			Date:        core.NewDate(2024, 1, 5),
		}},
		Accounts:        []core.Account{{ID: "acc_1", Name: "Varsayılan Hesap"}},
		Categories:      core.DefaultCategories(),
		ActiveAccountID: "acc_1",
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "finanspano.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	// Empty slot on first run.
	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	snap := sampleSnapshot()
	require.NoError(t, store.Save(ctx, snap))

	loaded, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snap.ActiveAccountID, loaded.ActiveAccountID)
	require.Len(t, loaded.Transactions, 1)
	assert.Equal(t, "Maaş ödemesi", loaded.Transactions[0].Description)
	assert.Equal(t, int64(100000), loaded.Transactions[0].Amount.Cents)
	assert.Equal(t, "2024-01-05", loaded.Transactions[0].Date.String())
	assert.Equal(t, snap.Categories.Expense, loaded.Categories.Expense)
}

func TestSQLiteStoreOverwritesSlot(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "finanspano.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleSnapshot()))

	updated := sampleSnapshot()
	updated.Transactions = nil
	updated.ActiveAccountID = "acc_2"
	require.NoError(t, store.Save(ctx, updated))

	loaded, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, loaded.Transactions)
	assert.Equal(t, "acc_2", loaded.ActiveAccountID)
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finanspano.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sampleSnapshot()))
	require.NoError(t, store.Close())

	// Migrations are idempotent and the slot survives a reopen.
	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	_, ok, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := m.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Save(ctx, sampleSnapshot()))
	loaded, ok, err := m.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "acc_1", loaded.ActiveAccountID)
}
