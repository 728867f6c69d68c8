package ledger

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"finanspano/internal/core"
)

// FilterAll is the wildcard value for the exact-match filter fields. The
// empty string is treated the same way, so an unset field never constrains.
const FilterAll = "all"

// Filter is a conjunction of optional constraints over the transaction log.
type Filter struct {
	// Search matches case-insensitively as a substring of the description.
	Search string
	// Type, Category and Account match exactly, or pass everything when
	// empty or FilterAll.
	Type     string
	Category string
	Account  string
}

func wildcard(v string) bool {
	return v == "" || v == FilterAll
}

// fold lowercases with Turkish rules, so dotted and dotless I map to their
// own lowercase forms (İ→i, I→ı). A caser is stateful, hence one per call.
func fold(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// Matches reports whether t satisfies every constraint.
func (f Filter) Matches(t core.Transaction) bool {
	if f.Search != "" && !strings.Contains(fold(t.Description), fold(f.Search)) {
		return false
	}
	if !wildcard(f.Type) && string(t.Type) != f.Type {
		return false
	}
	if !wildcard(f.Category) && t.Category != f.Category {
		return false
	}
	if !wildcard(f.Account) && t.AccountID != f.Account {
		return false
	}
	return true
}

// Matching returns the survivors in storage order. Ordering for display is a
// separate, explicit policy (NewestFirst), not a property of filtering.
func (f Filter) Matching(transactions []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// NewestFirst returns a reversed copy: most recently appended row first.
// This is the display convention every transaction list relies on.
func NewestFirst(transactions []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(transactions))
	for i, t := range transactions {
		out[len(transactions)-1-i] = t
	}
	return out
}

// Recent returns up to n of the account's newest transactions, newest first.
func Recent(transactions []core.Transaction, accountID string, n int) []core.Transaction {
	recent := NewestFirst(Filter{Account: accountID}.Matching(transactions))
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}
