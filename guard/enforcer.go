// Package guard is the decision pipeline between "a user wants to submit
// this order" and "the order goes to the broker": symbol policy, trading
// window, per-order and per-day notional caps, and the live-mode gate.
package guard

import (
	"strings"
	"time"

	"ordergate/config"
	"ordergate/intent"
	"ordergate/pkg/clierr"
	"ordergate/state"
)

// CheckResult is returned by a successful Enforce. The caller feeds
// EstimatedNotional to the ledger after the broker confirms submission.
type CheckResult struct {
	EstimatedNotional float64 `json:"estimated_notional"`
}

// Enforcer runs the ordered guardrail pipeline for one intent. It reads
// the ledger but never writes it, so a check is idempotent and
// retry-safe: notional is charged only on attempted use, by the caller.
type Enforcer struct {
	cfg   *config.SafetyConfig
	store *state.Store

	now func() time.Time
}

func NewEnforcer(cfg *config.SafetyConfig, store *state.Store) *Enforcer {
	return &Enforcer{cfg: cfg, store: store, now: time.Now}
}

// Enforce runs the checks in fixed order, failing fast on the first
// violation: symbol policy, trading window, per-order cap, per-day cap.
func (e *Enforcer) Enforce(in intent.Intent) (CheckResult, error) {
	if err := e.checkSymbol(in.Symbol()); err != nil {
		return CheckResult{}, err
	}
	if err := checkTradingWindow(e.cfg.TradingWindow, e.now()); err != nil {
		return CheckResult{}, err
	}

	estimated := Estimate(in)

	if e.cfg.MaxOrderNotional != nil && estimated > *e.cfg.MaxOrderNotional {
		return CheckResult{}, clierr.Blockf(
			"estimated order notional %.2f exceeds max_order_notional %.2f",
			estimated, *e.cfg.MaxOrderNotional)
	}

	if e.cfg.MaxDailyNotional != nil {
		today, err := e.store.TodayNotional()
		if err != nil {
			return CheckResult{}, err
		}
		projected := today + estimated
		if projected > *e.cfg.MaxDailyNotional {
			return CheckResult{}, clierr.Blockf(
				"projected daily notional %.2f exceeds max_daily_notional %.2f",
				projected, *e.cfg.MaxDailyNotional)
		}
	}

	return CheckResult{EstimatedNotional: estimated}, nil
}

// checkSymbol normalizes to uppercase and applies the allow list, then
// the block list. Block-list membership is checked regardless of the
// allow-list outcome, so a symbol on both lists stays blocked.
func (e *Enforcer) checkSymbol(symbol string) error {
	normalized := strings.ToUpper(symbol)

	if len(e.cfg.AllowSymbols) > 0 && !containsFold(e.cfg.AllowSymbols, normalized) {
		return clierr.Blockf("symbol %s is not in allow list", normalized)
	}
	if containsFold(e.cfg.BlockSymbols, normalized) {
		return clierr.Blockf("symbol %s is blocked by policy", normalized)
	}
	return nil
}

func containsFold(list []string, upper string) bool {
	for _, s := range list {
		if strings.ToUpper(s) == upper {
			return true
		}
	}
	return false
}
