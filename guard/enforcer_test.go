package guard

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordergate/config"
	"ordergate/intent"
	"ordergate/pkg/clierr"
	"ordergate/state"
)

func newTestStore(t *testing.T) *state.Store {
	t.Helper()

	store, err := state.NewSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func limitStock(t *testing.T, qty, price float64) intent.Intent {
	t.Helper()
	in, err := intent.NewStock(intent.StockParams{
		Symbol: "AAPL", Side: intent.Buy, OrderType: intent.Limit,
		Quantity: &qty, LimitPrice: &price,
	})
	require.NoError(t, err)
	return in
}

func TestEnforceSymbolPolicy(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	cfg := &config.SafetyConfig{
		AllowSymbols: []string{"aapl"},
		BlockSymbols: []string{"TSLA"},
	}
	enforcer := NewEnforcer(cfg, store)

	// Allow list is case-insensitive.
	_, err := enforcer.Enforce(limitStock(t, 1, 10))
	assert.NoError(t, err)

	msft, err := intent.NewStock(intent.StockParams{
		Symbol: "MSFT", Side: intent.Buy, Quantity: f(1),
	})
	require.NoError(t, err)
	_, err = enforcer.Enforce(msft)
	require.Error(t, err)
	assert.Equal(t, clierr.SafetyPolicyBlock, clierr.CodeOf(err))
	assert.Contains(t, err.Error(), "not in allow list")
}

func TestEnforceBlockListWins(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	// TSLA is on both lists; block wins.
	cfg := &config.SafetyConfig{
		AllowSymbols: []string{"TSLA"},
		BlockSymbols: []string{"tsla"},
	}
	enforcer := NewEnforcer(cfg, store)

	tsla, err := intent.NewStock(intent.StockParams{
		Symbol: "tsla", Side: intent.Sell, Quantity: f(1),
	})
	require.NoError(t, err)
	_, err = enforcer.Enforce(tsla)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TSLA is blocked by policy")
}

func TestEnforceBlockListAppliesWithEmptyAllowList(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	cfg := &config.SafetyConfig{BlockSymbols: []string{"TSLA"}}
	enforcer := NewEnforcer(cfg, store)

	tsla, err := intent.NewStock(intent.StockParams{
		Symbol: "TSLA", Side: intent.Buy, Quantity: f(1),
	})
	require.NoError(t, err)
	_, err = enforcer.Enforce(tsla)
	require.Error(t, err)
	assert.Equal(t, clierr.SafetyPolicyBlock, clierr.CodeOf(err))
}

func TestEnforceTradingWindow(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	cfg := &config.SafetyConfig{TradingWindow: "09:00-10:00"}
	enforcer := NewEnforcer(cfg, store)
	enforcer.now = func() time.Time {
		return time.Date(2026, 1, 1, 12, 0, 0, 0, time.Local)
	}

	_, err := enforcer.Enforce(limitStock(t, 1, 10))
	require.Error(t, err)
	assert.Equal(t, clierr.SafetyPolicyBlock, clierr.CodeOf(err))

	cfg.TradingWindow = "bad-window"
	_, err = enforcer.Enforce(limitStock(t, 1, 10))
	require.Error(t, err)
	assert.Equal(t, clierr.ValidationError, clierr.CodeOf(err))
}

func TestEnforcePerOrderCap(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	maxOrder := 500.0
	cfg := &config.SafetyConfig{MaxOrderNotional: &maxOrder}
	enforcer := NewEnforcer(cfg, store)

	res, err := enforcer.Enforce(limitStock(t, 1, 100))
	require.NoError(t, err)
	assert.InDelta(t, 100.0, res.EstimatedNotional, 1e-9)

	_, err = enforcer.Enforce(limitStock(t, 10, 60))
	require.Error(t, err)
	assert.Equal(t, clierr.SafetyPolicyBlock, clierr.CodeOf(err))
	assert.Contains(t, err.Error(), "600.00")
	assert.Contains(t, err.Error(), "500.00")
}

func TestEnforceDailyCap(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	maxOrder := 500.0
	maxDaily := 700.0
	cfg := &config.SafetyConfig{
		MaxOrderNotional: &maxOrder,
		MaxDailyNotional: &maxDaily,
	}
	enforcer := NewEnforcer(cfg, store)

	in := limitStock(t, 1, 100)
	res, err := enforcer.Enforce(in)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, res.EstimatedNotional, 1e-9)

	// 650 already spent today: the same order now projects over the cap
	// even though the per-order cap alone would pass.
	require.NoError(t, store.RecordNotional(650))
	_, err = enforcer.Enforce(in)
	require.Error(t, err)
	assert.Equal(t, clierr.SafetyPolicyBlock, clierr.CodeOf(err))
	assert.Contains(t, err.Error(), "750.00")
	assert.Contains(t, err.Error(), "700.00")
}

// Enforce itself never writes the ledger; the caller charges it after a
// confirmed submission.
func TestEnforceDoesNotTouchLedger(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	enforcer := NewEnforcer(&config.SafetyConfig{}, store)

	for i := 0; i < 3; i++ {
		_, err := enforcer.Enforce(limitStock(t, 1, 100))
		require.NoError(t, err)
	}

	notional, err := store.TodayNotional()
	require.NoError(t, err)
	assert.Zero(t, notional)
}

func TestEndToEndScenario(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	maxOrder := 1000.0
	maxDaily := 1000.0
	cfg := &config.SafetyConfig{
		MaxOrderNotional: &maxOrder,
		MaxDailyNotional: &maxDaily,
	}
	gate := NewGate(cfg, store)
	enforcer := NewEnforcer(cfg, store)

	// Live mode off: the precondition fails before any token check.
	err := gate.RequireLiveMode()
	require.Error(t, err)
	assert.Equal(t, clierr.LiveModeOff, clierr.CodeOf(err))

	gate.SetLiveMode(true)
	token, _, err := gate.IssueUnlock(900)
	require.NoError(t, err)
	require.NoError(t, gate.RequireLiveMode())
	require.NoError(t, gate.RequireAuthorization(token))

	first := limitStock(t, 4, 100)
	res, err := enforcer.Enforce(first)
	require.NoError(t, err)
	assert.InDelta(t, 400.0, res.EstimatedNotional, 1e-9)
	require.NoError(t, store.RecordNotional(res.EstimatedNotional))

	second := limitStock(t, 7, 100)
	_, err = enforcer.Enforce(second)
	require.Error(t, err)
	assert.Equal(t, clierr.SafetyPolicyBlock, clierr.CodeOf(err))
	assert.Contains(t, err.Error(), "1100.00")
	assert.Contains(t, err.Error(), "1000.00")
}
