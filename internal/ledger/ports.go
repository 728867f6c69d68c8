package ledger

import (
	"context"

	"finanspano/internal/core"
)

// SnapshotStore is the outbound port the Store persists through. One durable
// slot holds the whole ledger; Save overwrites it atomically from the
// caller's perspective.
type SnapshotStore interface {
	// Load returns the last saved snapshot. ok is false on first run, when
	// no snapshot has been written yet.
	Load(ctx context.Context) (snap core.Snapshot, ok bool, err error)

	// Save replaces the slot with snap.
	Save(ctx context.Context, snap core.Snapshot) error
}
