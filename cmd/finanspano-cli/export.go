package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"finanspano/internal/report"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the date range's transactions as a CSV report",
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

		rows, err := report.InRange(store.Transactions(), from, to)
		if err != nil {
			return err
		}

		path := flagOutput
		if path == "" {
			path = report.ExportFilename(time.Now())
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()

		if err := report.WriteCSV(f, rows, store.Accounts()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d satır yazıldı: %s\n", len(rows), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagFrom, "from", "", "Range start (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&flagTo, "to", "", "Range end (YYYY-MM-DD)")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default rapor_<date>.csv)")
}
