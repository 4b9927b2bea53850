package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ordergate/pkg/clierr"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query the guardrail decision audit trail",
	Long: `List recorded guardrail decisions.

Examples:
  ordergate audit today
  ordergate audit day 2026-09-01`,
}

var auditTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List decisions recorded today (UTC)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now().UTC().Format("2006-01-02")
		return runAuditDay("audit today", day)
	},
}

var auditDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List decisions recorded on a specific UTC day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuditDay("audit day", args[0])
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditTodayCmd)
	auditCmd.AddCommand(auditDayCmd)
}

func runAuditDay(command, day string) error {
	start, end, err := dayBoundsUTC(day)
	if err != nil {
		return respond(command, nil, nil,
			clierr.Validationf("invalid day %q: expected YYYY-MM-DD", day))
	}

	rt, err := openRuntime()
	if err != nil {
		return respond(command, nil, nil, err)
	}
	defer rt.Close()

	recs, err := rt.store.ListAuditBetween(start, end)
	if err != nil {
		return respond(command, nil, nil, err)
	}

	return respond(command, recs, func() {
		if len(recs) == 0 {
			fmt.Printf("No decisions recorded on %s\n", day)
			return
		}
		for _, rec := range recs {
			line := fmt.Sprintf("%s  %-8s %-13s %-7s $%.2f  %s",
				rec.At.Format("15:04:05"), rec.Verdict, rec.AssetType,
				rec.Symbol, rec.Notional, rec.Command)
			if rec.Reason != "" {
				line += "  (" + rec.Reason + ")"
			}
			fmt.Println(line)
		}
	}, nil)
}

func dayBoundsUTC(day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
