package core

import "errors"

// Error kinds the ledger distinguishes. Call sites wrap these with %w and a
// specific message; callers branch with errors.Is. None of them is fatal.
var (
	// ErrValidation marks rejected input: a missing or invalid field, a
	// duplicate category name, deleting the last account. The operation
	// aborts with no state change.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a mutation referencing an id that no longer exists.
	ErrNotFound = errors.New("not found")

	// ErrRangeNotSelected marks a report or export requested before both
	// range bounds were picked.
	ErrRangeNotSelected = errors.New("date range not selected")
)
