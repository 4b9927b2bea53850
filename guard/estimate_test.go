package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordergate/intent"
)

func f(v float64) *float64 { return &v }

func TestEstimate(t *testing.T) {
	t.Parallel()

	stockLimit, err := intent.NewStock(intent.StockParams{
		Symbol: "AAPL", Side: intent.Buy, OrderType: intent.Limit,
		Quantity: f(2), LimitPrice: f(10),
	})
	require.NoError(t, err)

	stockStop, err := intent.NewStock(intent.StockParams{
		Symbol: "AAPL", Side: intent.Sell, OrderType: intent.StopLimit,
		Quantity: f(3), LimitPrice: f(10), StopPrice: f(9),
	})
	require.NoError(t, err)

	stockNotional, err := intent.NewStock(intent.StockParams{
		Symbol: "AAPL", Side: intent.Buy, NotionalUSD: f(150),
	})
	require.NoError(t, err)

	cryptoNotional, err := intent.NewCrypto(intent.CryptoParams{
		Symbol: "BTC-USD", Side: intent.Buy, AmountIn: intent.InPrice, NotionalUSD: f(10),
	})
	require.NoError(t, err)

	cryptoLimit, err := intent.NewCrypto(intent.CryptoParams{
		Symbol: "ETH-USD", Side: intent.Buy, OrderType: intent.Limit,
		Quantity: f(0.5), LimitPrice: f(100),
	})
	require.NoError(t, err)

	optionSingle, err := intent.NewOptionSingle(intent.OptionSingleParams{
		Symbol: "AAPL", Side: intent.Buy, PositionEffect: intent.Open,
		CreditOrDebit: intent.Debit, Quantity: 2,
		ExpirationDate: "2026-12-18", Strike: 200, Price: f(1.5),
	})
	require.NoError(t, err)

	spread, err := intent.NewOptionSpread(intent.OptionSpreadParams{
		Symbol: "AAPL", Direction: intent.Credit, Quantity: 2, Price: 1.25,
		Legs: []intent.Leg{
			{ExpirationDate: "2026-12-18", Strike: 200, OptionType: intent.CallOption, Effect: intent.Open, Action: intent.Sell},
			{ExpirationDate: "2026-12-18", Strike: 205, OptionType: intent.CallOption, Effect: intent.Open, Action: intent.Buy},
		},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   intent.Intent
		want float64
	}{
		{"stock limit qty*price", stockLimit, 20},
		{"stock stop_limit uses limit price first", stockStop, 30},
		{"stock market notional", stockNotional, 150},
		{"crypto sized in dollars", cryptoNotional, 10},
		{"crypto limit qty*price", cryptoLimit, 50},
		{"option single price*qty*100", optionSingle, 300},
		{"option spread price*qty*100", spread, 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Estimate(tt.in), 1e-9)
		})
	}
}

// A market order without any reference price estimates to 0, so the
// notional caps cannot protect it. Pins the known coarse edge.
func TestEstimatePricelessMarketOrdersAreZero(t *testing.T) {
	t.Parallel()

	stock, err := intent.NewStock(intent.StockParams{
		Symbol: "AAPL", Side: intent.Buy, Quantity: f(100),
	})
	require.NoError(t, err)
	assert.Zero(t, Estimate(stock))

	crypto, err := intent.NewCrypto(intent.CryptoParams{
		Symbol: "BTC-USD", Side: intent.Buy, Quantity: f(2),
	})
	require.NoError(t, err)
	assert.Zero(t, Estimate(crypto))
}
