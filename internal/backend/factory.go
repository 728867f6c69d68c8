// Package backend selects and constructs the snapshot store the ledger
// persists through.
package backend

import (
	"finanspano/internal/ledger"
	applog "finanspano/internal/log"
	"finanspano/internal/storage"
)

// Type names a snapshot store implementation.
type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLite, Memory:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	return string(t)
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Config holds what the factory needs to build a store.
type Config struct {
	Type         Type
	SQLiteDBPath string
}

// New builds the configured snapshot store. An unusable SQLite medium is not
// fatal: the session degrades to an in-memory store so the ledger keeps
// working without durability.
func New(cfg Config, logger *applog.Logger) (ledger.SnapshotStore, CleanupFunc, error) {
	logger = logger.WithComponent(applog.ComponentBackend)

	switch cfg.Type {
	case SQLite:
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			logger.Warn("SQLite unavailable, falling back to in-memory store",
				applog.FieldError, err.Error(),
				applog.FieldPath, cfg.SQLiteDBPath)
			return storage.NewMemoryStore(), noCleanup, nil
		}
		logger.Info("Initialized SQLite backend", applog.FieldPath, cfg.SQLiteDBPath)
		return store, store.Close, nil
	case Memory:
		logger.Info("Initialized memory backend")
		return storage.NewMemoryStore(), noCleanup, nil
	default:
		return nil, nil, &UnknownTypeError{Type: cfg.Type}
	}
}

func noCleanup() error { return nil }

// UnknownTypeError reports a backend name outside the supported set.
type UnknownTypeError struct {
	Type Type
}

func (e *UnknownTypeError) Error() string {
	return "unknown backend type: " + string(e.Type)
}
