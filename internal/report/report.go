// Package report derives period summaries, category breakdowns and the CSV
// export from read-only transaction projections. Nothing here mutates the
// ledger.
package report

import (
	"fmt"

	"finanspano/internal/core"
)

// Summary holds the totals for a selected period. Expense stays negative;
// Net = Income + Expense.
type Summary struct {
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
	Net     core.Money `json:"net"`
}

// CategoryTotal is one slice of the expense breakdown, in first-seen order.
type CategoryTotal struct {
	Name   string     `json:"name"`
	Amount core.Money `json:"amount"`
}

// AccountSummary holds the dashboard card totals for one account.
type AccountSummary struct {
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
	Balance core.Money `json:"balance"`
}

// SummarizeRange totals the transactions dated inside [from, to], both
// bounds inclusive at day granularity. Positive amounts count as income,
// negative as expense. An incomplete range is rejected.
func SummarizeRange(transactions []core.Transaction, from, to core.Date) (Summary, error) {
	if from.IsZero() || to.IsZero() {
		return Summary{}, fmt.Errorf("%w: pick both bounds first", core.ErrRangeNotSelected)
	}

	var s Summary
	for _, t := range transactions {
		if !t.Date.OnOrAfter(from) || !t.Date.OnOrBefore(to) {
			continue
		}
		if t.Amount.Cents > 0 {
			s.Income = s.Income.Add(t.Amount)
		} else {
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	s.Net = s.Income.Add(s.Expense)
	return s, nil
}

// InRange returns the transactions dated inside [from, to] inclusive, in
// input order. The CSV export and the range summary share this selection.
func InRange(transactions []core.Transaction, from, to core.Date) ([]core.Transaction, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: pick both bounds first", core.ErrRangeNotSelected)
	}
	out := make([]core.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Date.OnOrAfter(from) && t.Date.OnOrBefore(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

// CategoryBreakdown aggregates expense rows by category using absolute
// magnitudes, ordered by first appearance. This is the chart series input;
// an empty result just means no expenses.
func CategoryBreakdown(transactions []core.Transaction) []CategoryTotal {
	totals := make(map[string]int, 8)
	var out []CategoryTotal
	for _, t := range transactions {
		if t.Amount.Cents >= 0 {
			continue
		}
		i, seen := totals[t.Category]
		if !seen {
			i = len(out)
			totals[t.Category] = i
			out = append(out, CategoryTotal{Name: t.Category})
		}
		out[i].Amount = out[i].Amount.Add(t.Amount.Abs())
	}
	return out
}

// Summarize totals one account's rows by sign for the dashboard cards. The
// balance is whatever the balance engine derived for the account.
func Summarize(account core.Account, transactions []core.Transaction) AccountSummary {
	s := AccountSummary{Balance: account.Balance}
	for _, t := range transactions {
		if t.AccountID != account.ID {
			continue
		}
		if t.Amount.Cents > 0 {
			s.Income = s.Income.Add(t.Amount)
		} else {
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	return s
}
