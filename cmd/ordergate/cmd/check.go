package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ordergate/guard"
	"ordergate/intent"
	"ordergate/pkg/clierr"
	"ordergate/pkg/id"
	"ordergate/state"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run an order intent through the guardrail pipeline",
	Long: `Build an order intent from flags and run it through the guardrail
pipeline: symbol policy, trading window, per-order notional cap, per-day
notional cap. The decision is recorded in the audit trail.

With --live the live-mode flag and an unlock token are also required,
exactly as they would be for a real submission. With --commit the
estimated notional is charged to the daily ledger on success, standing
in for a confirmed broker submission.

Examples:
  ordergate check stock --symbol AAPL --side buy --type limit --qty 10 --limit-price 187.50
  ordergate check crypto --symbol BTC-USD --side buy --amount-in price --notional 250
  ordergate check spread --symbol AAPL --direction credit --qty 1 --price 1.25 \
    --leg 2026-12-18:200:call:open:sell --leg 2026-12-18:205:call:open:buy`,
}

var (
	checkLive        bool
	liveConfirmToken string
	checkCommit      bool
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.AddCommand(checkStockCmd)
	checkCmd.AddCommand(checkCryptoCmd)
	checkCmd.AddCommand(checkOptionCmd)
	checkCmd.AddCommand(checkSpreadCmd)

	checkCmd.PersistentFlags().BoolVar(&checkLive, "live", false, "require live mode and a valid unlock token")
	checkCmd.PersistentFlags().StringVar(&liveConfirmToken, "live-confirm-token", "", "unlock token issued by `ordergate live unlock`")
	checkCmd.PersistentFlags().BoolVar(&checkCommit, "commit", false, "charge the estimated notional to the daily ledger on success")

	for _, c := range []*cobra.Command{checkStockCmd, checkCryptoCmd, checkOptionCmd, checkSpreadCmd} {
		c.Flags().String("symbol", "", "ticker symbol (required)")
		c.Flags().String("tif", "gtc", "time in force: gtc, gfd, ioc, fok, opg")
		c.MarkFlagRequired("symbol")
	}

	checkStockCmd.Flags().String("side", "", "buy or sell (required)")
	checkStockCmd.Flags().String("type", "market", "order type: market, limit, stop_limit")
	checkStockCmd.Flags().Float64("qty", 0, "share quantity")
	checkStockCmd.Flags().Float64("notional", 0, "dollar notional (market orders only)")
	checkStockCmd.Flags().Float64("limit-price", 0, "limit price")
	checkStockCmd.Flags().Float64("stop-price", 0, "stop price")
	checkStockCmd.Flags().Bool("extended-hours", false, "allow extended-hours execution")
	checkStockCmd.MarkFlagRequired("side")

	checkCryptoCmd.Flags().String("side", "", "buy or sell (required)")
	checkCryptoCmd.Flags().String("type", "market", "order type: market, limit")
	checkCryptoCmd.Flags().String("amount-in", "quantity", "size the order in quantity or price")
	checkCryptoCmd.Flags().Float64("qty", 0, "asset quantity")
	checkCryptoCmd.Flags().Float64("notional", 0, "dollar notional")
	checkCryptoCmd.Flags().Float64("limit-price", 0, "limit price")
	checkCryptoCmd.MarkFlagRequired("side")

	checkOptionCmd.Flags().String("side", "", "buy or sell (required)")
	checkOptionCmd.Flags().String("type", "limit", "order type: limit, stop_limit")
	checkOptionCmd.Flags().String("effect", "", "position effect: open or close (required)")
	checkOptionCmd.Flags().String("credit-or-debit", "", "credit or debit (required)")
	checkOptionCmd.Flags().Int("qty", 1, "contract quantity")
	checkOptionCmd.Flags().String("expiration", "", "expiration date YYYY-MM-DD (required)")
	checkOptionCmd.Flags().Float64("strike", 0, "strike price (required)")
	checkOptionCmd.Flags().String("option-type", "both", "call, put or both")
	checkOptionCmd.Flags().Float64("price", 0, "contract price (limit orders)")
	checkOptionCmd.Flags().Float64("limit-price", 0, "limit price (stop_limit orders)")
	checkOptionCmd.Flags().Float64("stop-price", 0, "stop price (stop_limit orders)")
	checkOptionCmd.MarkFlagRequired("side")
	checkOptionCmd.MarkFlagRequired("effect")
	checkOptionCmd.MarkFlagRequired("credit-or-debit")
	checkOptionCmd.MarkFlagRequired("expiration")
	checkOptionCmd.MarkFlagRequired("strike")

	checkSpreadCmd.Flags().String("direction", "", "credit or debit (required)")
	checkSpreadCmd.Flags().Int("qty", 1, "spread quantity")
	checkSpreadCmd.Flags().Float64("price", 0, "net spread price (required)")
	checkSpreadCmd.Flags().StringArray("leg", nil, "leg as EXPIRATION:STRIKE:TYPE:EFFECT:ACTION, repeatable (at least 2)")
	checkSpreadCmd.MarkFlagRequired("direction")
	checkSpreadCmd.MarkFlagRequired("price")
	checkSpreadCmd.MarkFlagRequired("leg")
}

var checkStockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Check a stock order intent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeCheck("check stock", func() (intent.Intent, error) {
			side, err := parseSideFlag(cmd)
			if err != nil {
				return nil, err
			}
			orderType, err := intent.ParseOrderType(stringFlag(cmd, "type"))
			if err != nil {
				return nil, err
			}
			tif, err := intent.ParseTimeInForce(stringFlag(cmd, "tif"))
			if err != nil {
				return nil, err
			}
			extended, _ := cmd.Flags().GetBool("extended-hours")
			return intent.NewStock(intent.StockParams{
				Symbol:        stringFlag(cmd, "symbol"),
				Side:          side,
				OrderType:     orderType,
				Quantity:      floatFlag(cmd, "qty"),
				NotionalUSD:   floatFlag(cmd, "notional"),
				LimitPrice:    floatFlag(cmd, "limit-price"),
				StopPrice:     floatFlag(cmd, "stop-price"),
				TimeInForce:   tif,
				ExtendedHours: extended,
			})
		})
	},
}

var checkCryptoCmd = &cobra.Command{
	Use:   "crypto",
	Short: "Check a crypto order intent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeCheck("check crypto", func() (intent.Intent, error) {
			side, err := parseSideFlag(cmd)
			if err != nil {
				return nil, err
			}
			orderType, err := intent.ParseOrderType(stringFlag(cmd, "type"))
			if err != nil {
				return nil, err
			}
			amountIn, err := intent.ParseAmountIn(stringFlag(cmd, "amount-in"))
			if err != nil {
				return nil, err
			}
			tif, err := intent.ParseTimeInForce(stringFlag(cmd, "tif"))
			if err != nil {
				return nil, err
			}
			return intent.NewCrypto(intent.CryptoParams{
				Symbol:      stringFlag(cmd, "symbol"),
				Side:        side,
				OrderType:   orderType,
				AmountIn:    amountIn,
				Quantity:    floatFlag(cmd, "qty"),
				NotionalUSD: floatFlag(cmd, "notional"),
				LimitPrice:  floatFlag(cmd, "limit-price"),
				TimeInForce: tif,
			})
		})
	},
}

var checkOptionCmd = &cobra.Command{
	Use:   "option",
	Short: "Check a single-leg option order intent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeCheck("check option", func() (intent.Intent, error) {
			side, err := parseSideFlag(cmd)
			if err != nil {
				return nil, err
			}
			orderType, err := intent.ParseOrderType(stringFlag(cmd, "type"))
			if err != nil {
				return nil, err
			}
			effect, err := intent.ParsePositionEffect(stringFlag(cmd, "effect"))
			if err != nil {
				return nil, err
			}
			direction, err := intent.ParseDirection(stringFlag(cmd, "credit-or-debit"))
			if err != nil {
				return nil, err
			}
			optType, err := intent.ParseOptionType(stringFlag(cmd, "option-type"))
			if err != nil {
				return nil, err
			}
			tif, err := intent.ParseTimeInForce(stringFlag(cmd, "tif"))
			if err != nil {
				return nil, err
			}
			qty, _ := cmd.Flags().GetInt("qty")
			strike, _ := cmd.Flags().GetFloat64("strike")
			return intent.NewOptionSingle(intent.OptionSingleParams{
				Symbol:         stringFlag(cmd, "symbol"),
				Side:           side,
				OrderType:      orderType,
				PositionEffect: effect,
				CreditOrDebit:  direction,
				Quantity:       qty,
				ExpirationDate: stringFlag(cmd, "expiration"),
				Strike:         strike,
				OptionType:     optType,
				Price:          floatFlag(cmd, "price"),
				LimitPrice:     floatFlag(cmd, "limit-price"),
				StopPrice:      floatFlag(cmd, "stop-price"),
				TimeInForce:    tif,
			})
		})
	},
}

var checkSpreadCmd = &cobra.Command{
	Use:   "spread",
	Short: "Check a multi-leg option spread intent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeCheck("check spread", func() (intent.Intent, error) {
			direction, err := intent.ParseDirection(stringFlag(cmd, "direction"))
			if err != nil {
				return nil, err
			}
			tif, err := intent.ParseTimeInForce(stringFlag(cmd, "tif"))
			if err != nil {
				return nil, err
			}
			rawLegs, _ := cmd.Flags().GetStringArray("leg")
			legs := make([]intent.Leg, 0, len(rawLegs))
			for _, raw := range rawLegs {
				leg, err := parseLeg(raw)
				if err != nil {
					return nil, err
				}
				legs = append(legs, leg)
			}
			qty, _ := cmd.Flags().GetInt("qty")
			price, _ := cmd.Flags().GetFloat64("price")
			return intent.NewOptionSpread(intent.OptionSpreadParams{
				Symbol:      stringFlag(cmd, "symbol"),
				Direction:   direction,
				Quantity:    qty,
				Price:       price,
				Legs:        legs,
				TimeInForce: tif,
			})
		})
	},
}

// executeCheck runs the shared flow: build intent, optionally require
// live authorization, enforce, audit the verdict, optionally commit.
func executeCheck(command string, build func() (intent.Intent, error)) error {
	rt, err := openRuntime()
	if err != nil {
		return respond(command, nil, nil, err)
	}
	defer rt.Close()

	in, err := build()
	if err != nil {
		return respond(command, nil, nil, err)
	}

	if checkLive {
		if err := rt.gate.RequireLiveMode(); err != nil {
			auditDecision(rt, command, in, state.VerdictBlocked, err.Error(), 0)
			return respond(command, nil, nil, err)
		}
		if err := rt.gate.RequireAuthorization(liveConfirmToken); err != nil {
			auditDecision(rt, command, in, state.VerdictBlocked, err.Error(), 0)
			return respond(command, nil, nil, err)
		}
	}

	res, err := rt.enforcer.Enforce(in)
	if err != nil {
		auditDecision(rt, command, in, state.VerdictBlocked, err.Error(), 0)
		return respond(command, nil, nil, err)
	}
	auditDecision(rt, command, in, state.VerdictAllowed, "", res.EstimatedNotional)

	committed := false
	if checkCommit {
		if err := rt.store.RecordNotional(res.EstimatedNotional); err != nil {
			return respond(command, nil, nil, err)
		}
		committed = true
	}

	data := map[string]any{
		"allowed":            true,
		"estimated_notional": res.EstimatedNotional,
		"committed":          committed,
	}
	return respond(command, data, func() {
		printResult(in, res, committed)
	}, nil)
}

// auditDecision appends the verdict to the audit trail. A failed audit
// write is logged but does not change the decision already made.
func auditDecision(rt *runtime, command string, in intent.Intent, verdict, reason string, notional float64) {
	err := rt.store.RecordAudit(state.AuditRecord{
		AuditID:   id.New(),
		At:        time.Now().UTC(),
		Command:   command,
		Symbol:    strings.ToUpper(in.Symbol()),
		AssetType: string(in.Asset()),
		Verdict:   verdict,
		Reason:    reason,
		Notional:  notional,
	})
	if err != nil {
		rt.log.Error("audit write failed", "error", err)
	}
}

func printResult(in intent.Intent, res guard.CheckResult, committed bool) {
	fmt.Printf("ALLOWED %s %s\n", in.Asset(), strings.ToUpper(in.Symbol()))
	fmt.Printf("  Estimated notional: $%.2f\n", res.EstimatedNotional)
	if committed {
		fmt.Println("  Charged to daily ledger")
	}
}

// parseLeg converts "EXPIRATION:STRIKE:TYPE:EFFECT:ACTION" into a Leg,
// e.g. "2026-12-18:200:call:open:sell".
func parseLeg(raw string) (intent.Leg, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 5 {
		return intent.Leg{}, clierr.Validationf(
			"invalid leg %q; expected EXPIRATION:STRIKE:TYPE:EFFECT:ACTION", raw)
	}
	strike, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return intent.Leg{}, clierr.Validationf("invalid leg strike %q", parts[1])
	}
	optType, err := intent.ParseOptionType(parts[2])
	if err != nil {
		return intent.Leg{}, err
	}
	effect, err := intent.ParsePositionEffect(parts[3])
	if err != nil {
		return intent.Leg{}, err
	}
	action, err := intent.ParseSide(parts[4])
	if err != nil {
		return intent.Leg{}, err
	}
	return intent.Leg{
		ExpirationDate: parts[0],
		Strike:         strike,
		OptionType:     optType,
		Effect:         effect,
		Action:         action,
	}, nil
}

func stringFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

// floatFlag returns the flag value only when the caller actually set it,
// so the constructors can tell "absent" from "zero".
func floatFlag(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

func parseSideFlag(cmd *cobra.Command) (intent.Side, error) {
	return intent.ParseSide(stringFlag(cmd, "side"))
}
