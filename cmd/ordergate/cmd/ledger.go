package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ordergate/pkg/clierr"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Query or update the daily notional ledger",
	Long: `Query or update the UTC-day spend ledger.

Subcommands:
  today   - Show the notional already committed today
  record  - Add an amount to today's row (normally done after a
            confirmed broker submission)

Examples:
  ordergate ledger today
  ordergate ledger record 412.50`,
}

var ledgerTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's committed notional",
	Args:  cobra.NoArgs,
	RunE:  runLedgerToday,
}

var ledgerRecordCmd = &cobra.Command{
	Use:   "record <amount>",
	Short: "Add an amount to today's notional",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerRecord,
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(ledgerTodayCmd)
	ledgerCmd.AddCommand(ledgerRecordCmd)
}

func runLedgerToday(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return respond("ledger today", nil, nil, err)
	}
	defer rt.Close()

	notional, err := rt.store.TodayNotional()
	if err != nil {
		return respond("ledger today", nil, nil, err)
	}

	data := map[string]any{"notional": notional}
	return respond("ledger today", data, func() {
		fmt.Printf("Today's committed notional: $%.2f\n", notional)
	}, nil)
}

func runLedgerRecord(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return respond("ledger record", nil, nil,
			clierr.Validationf("invalid amount %q", args[0]))
	}
	if amount < 0 {
		return respond("ledger record", nil, nil,
			clierr.Validationf("amount must not be negative, got %g", amount))
	}

	rt, err := openRuntime()
	if err != nil {
		return respond("ledger record", nil, nil, err)
	}
	defer rt.Close()

	if err := rt.store.RecordNotional(amount); err != nil {
		return respond("ledger record", nil, nil, err)
	}
	notional, err := rt.store.TodayNotional()
	if err != nil {
		return respond("ledger record", nil, nil, err)
	}

	data := map[string]any{"recorded": amount, "notional": notional}
	return respond("ledger record", data, func() {
		fmt.Printf("Recorded $%.2f; today's total is $%.2f\n", amount, notional)
	}, nil)
}
