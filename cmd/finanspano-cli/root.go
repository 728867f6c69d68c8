package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"finanspano/internal/backend"
	"finanspano/internal/config"
	"finanspano/internal/core"
	"finanspano/internal/ledger"
	applog "finanspano/internal/log"
)

var (
	flagDBPath  string
	flagBackend string
	flagFrom    string
	flagTo      string
)

var rootCmd = &cobra.Command{
	Use:   "finanspano-cli",
	Short: "Kişisel finans defteri komut satırı arayüzü",
	Long:  "Read accounts, transactions and period reports from the finanspano ledger without running the server.",
}

// Execute is the entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()
	cfg := config.Load()

	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", cfg.SQLiteDBPath, "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", cfg.DataBackend, "Snapshot backend (sqlite or memory)")

	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
}

// openLedger builds the store the same way the server does, with quiet
// logging so command output stays clean.
func openLedger(ctx context.Context) (*ledger.Store, backend.CleanupFunc, error) {
	logger := applog.New(applog.Config{Level: slog.LevelWarn, Component: applog.ComponentCLI})

	port, cleanup, err := backend.New(backend.Config{
		Type:         backend.Type(flagBackend),
		SQLiteDBPath: flagDBPath,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	store := ledger.New(port, logger)
	if err := store.Load(ctx); err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	return store, cleanup, nil
}

// parseRangeFlags turns --from/--to into dates; both must be present for
// report commands, mirroring the range-picker contract.
func parseRangeFlags() (from, to core.Date, err error) {
	if flagFrom != "" {
		if from, err = core.ParseDate(flagFrom); err != nil {
			return core.Date{}, core.Date{}, err
		}
	}
	if flagTo != "" {
		if to, err = core.ParseDate(flagTo); err != nil {
			return core.Date{}, core.Date{}, err
		}
	}
	return from, to, nil
}
