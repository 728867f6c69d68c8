package ledger

import "finanspano/internal/core"

// RecomputeBalances derives every account's balance from the transaction
// log: the amount of the account's first initial-type row (0 when none)
// plus the sum of its non-initial rows. Pure and idempotent; the input
// slices are not modified.
func RecomputeBalances(accounts []core.Account, transactions []core.Transaction) []core.Account {
	base := make(map[string]core.Money, len(accounts))
	sums := make(map[string]core.Money, len(accounts))
	seen := make(map[string]bool, len(accounts))

	for _, t := range transactions {
		if t.Type == core.Initial {
			// At most one initial row per account is expected; first wins.
			if !seen[t.AccountID] {
				seen[t.AccountID] = true
				base[t.AccountID] = t.Amount
			}
			continue
		}
		sums[t.AccountID] = sums[t.AccountID].Add(t.Amount)
	}

	out := make([]core.Account, len(accounts))
	for i, a := range accounts {
		a.Balance = base[a.ID].Add(sums[a.ID])
		out[i] = a
	}
	return out
}
