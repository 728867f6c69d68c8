package main

import (
	"os"

	"github.com/spf13/cobra"

	"finanspano/internal/cli"
	"finanspano/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Income, expense and net totals for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parseRangeFlags()
		if err != nil {
			return err
		}

		store, cleanup, err := openLedger(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = cleanup() }()

		summary, err := report.SummarizeRange(store.Transactions(), from, to)
		if err != nil {
			return err
		}
		return cli.RenderSummary(os.Stdout, summary)
	},
}

func init() {
	summaryCmd.Flags().StringVar(&flagFrom, "from", "", "Range start (YYYY-MM-DD)")
	summaryCmd.Flags().StringVar(&flagTo, "to", "", "Range end (YYYY-MM-DD)")
}
