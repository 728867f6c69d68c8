// Package cli provides tabular rendering for the command line surface.
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"finanspano/internal/core"
	"finanspano/internal/report"
)

// RenderAccounts prints one line per account with its derived balance. The
// active account is marked with an asterisk.
func RenderAccounts(w io.Writer, accounts []core.Account, activeID string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HESAP\tID\tBAKİYE")
	for _, a := range accounts {
		name := a.Name
		if a.ID == activeID {
			name += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, a.ID, report.FormatTRY(a.Balance))
	}
	return tw.Flush()
}

// RenderTransactions prints the transaction list in display order.
func RenderTransactions(w io.Writer, transactions []core.Transaction) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TARİH\tAÇIKLAMA\tKATEGORİ\tTÜR\tTUTAR")
	for _, t := range transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			t.Date.Format("02.01.2006"), t.Description, t.Category, t.Type, report.FormatTRY(t.Amount))
	}
	return tw.Flush()
}

// RenderSummary prints the period totals, expense shown as a magnitude.
func RenderSummary(w io.Writer, s report.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Gelir\t%s\n", report.FormatTRY(s.Income))
	fmt.Fprintf(tw, "Gider\t%s\n", report.FormatTRY(s.Expense.Abs()))
	fmt.Fprintf(tw, "Net\t%s\n", report.FormatTRY(s.Net))
	return tw.Flush()
}
