package storage

import (
	"context"
	"sync"

	"finanspano/internal/core"
)

// MemoryStore keeps the snapshot in process memory. It backs the memory
// backend and the degraded mode when no durable medium is available, and
// doubles as the test double for the snapshot port.
type MemoryStore struct {
	mu   sync.Mutex
	snap core.Snapshot
	ok   bool
}

// NewMemoryStore returns an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the last saved snapshot, or ok=false before any save.
func (m *MemoryStore) Load(ctx context.Context) (core.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneSnapshot(m.snap), m.ok, nil
}

// Save replaces the held snapshot.
func (m *MemoryStore) Save(ctx context.Context, snap core.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = cloneSnapshot(snap)
	m.ok = true
	return nil
}

// cloneSnapshot detaches the held snapshot from the caller's slices, the same
// isolation a serializing medium gives for free.
func cloneSnapshot(snap core.Snapshot) core.Snapshot {
	snap.Transactions = append([]core.Transaction(nil), snap.Transactions...)
	snap.Accounts = append([]core.Account(nil), snap.Accounts...)
	snap.Categories = snap.Categories.Clone()
	return snap
}
