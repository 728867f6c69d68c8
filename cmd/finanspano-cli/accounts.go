package main

import (
	"os"

	"github.com/spf13/cobra"

	"finanspano/internal/cli"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts with derived balances",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := openLedger(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = cleanup() }()

		return cli.RenderAccounts(os.Stdout, store.Accounts(), store.ActiveAccountID())
	},
}
