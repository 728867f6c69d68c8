package main

import (
	"os"

	"github.com/spf13/cobra"

	"finanspano/internal/cli"
	"finanspano/internal/ledger"
)

var (
	flagSearch   string
	flagType     string
	flagCategory string
	flagAccount  string
)

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List transactions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := openLedger(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = cleanup() }()

		rows := store.FilteredTransactions(ledger.Filter{
			Search:   flagSearch,
			Type:     flagType,
			Category: flagCategory,
			Account:  flagAccount,
		})
		return cli.RenderTransactions(os.Stdout, rows)
	},
}

func init() {
	transactionsCmd.Flags().StringVar(&flagSearch, "search", "", "Substring match on description")
	transactionsCmd.Flags().StringVar(&flagType, "type", "", "Filter by type (income, expense, initial)")
	transactionsCmd.Flags().StringVar(&flagCategory, "category", "", "Filter by category")
	transactionsCmd.Flags().StringVar(&flagAccount, "account", "", "Filter by account id")
}
