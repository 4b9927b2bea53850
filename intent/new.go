package intent

import "ordergate/pkg/clierr"

// StockParams carries the raw inputs for a stock order. Zero-valued
// enums take the usual defaults (market order, gtc).
type StockParams struct {
	Symbol        string
	Side          Side
	OrderType     OrderType
	Quantity      *float64
	NotionalUSD   *float64
	LimitPrice    *float64
	StopPrice     *float64
	TimeInForce   TimeInForce
	ExtendedHours bool
}

func NewStock(p StockParams) (*Stock, error) {
	if p.OrderType == "" {
		p.OrderType = Market
	}
	if p.TimeInForce == "" {
		p.TimeInForce = GTC
	}
	if err := requireSymbol(p.Symbol); err != nil {
		return nil, err
	}
	if err := requireSide(p.Side); err != nil {
		return nil, err
	}
	switch p.OrderType {
	case Market, Limit, StopLimit:
	default:
		return nil, clierr.Validationf("invalid order type %q for stock orders", p.OrderType)
	}
	if err := requireTIF(p.TimeInForce, true); err != nil {
		return nil, err
	}

	if p.OrderType == Market {
		if (p.Quantity == nil) == (p.NotionalUSD == nil) {
			return nil, clierr.Validationf("exactly one of quantity or notional_usd is required for market orders")
		}
	} else {
		if p.Quantity == nil {
			return nil, clierr.Validationf("quantity is required for %s orders", p.OrderType)
		}
		if p.NotionalUSD != nil {
			return nil, clierr.Validationf("notional_usd is only valid for market orders")
		}
	}
	if p.OrderType == Limit && p.LimitPrice == nil {
		return nil, clierr.Validationf("limit_price is required for limit orders")
	}
	if p.OrderType == StopLimit && (p.LimitPrice == nil || p.StopPrice == nil) {
		return nil, clierr.Validationf("limit_price and stop_price are required for stop_limit orders")
	}
	if err := requirePositive("quantity", p.Quantity); err != nil {
		return nil, err
	}
	if err := requirePositive("notional_usd", p.NotionalUSD); err != nil {
		return nil, err
	}
	if err := requirePositive("limit_price", p.LimitPrice); err != nil {
		return nil, err
	}
	if err := requirePositive("stop_price", p.StopPrice); err != nil {
		return nil, err
	}

	return &Stock{
		Sym:           p.Symbol,
		Side:          p.Side,
		OrderType:     p.OrderType,
		Quantity:      p.Quantity,
		NotionalUSD:   p.NotionalUSD,
		LimitPrice:    p.LimitPrice,
		StopPrice:     p.StopPrice,
		TimeInForce:   p.TimeInForce,
		ExtendedHours: p.ExtendedHours,
	}, nil
}

type CryptoParams struct {
	Symbol      string
	Side        Side
	OrderType   OrderType
	AmountIn    AmountIn
	Quantity    *float64
	NotionalUSD *float64
	LimitPrice  *float64
	TimeInForce TimeInForce
}

func NewCrypto(p CryptoParams) (*Crypto, error) {
	if p.OrderType == "" {
		p.OrderType = Market
	}
	if p.AmountIn == "" {
		p.AmountIn = InQuantity
	}
	if p.TimeInForce == "" {
		p.TimeInForce = GTC
	}
	if err := requireSymbol(p.Symbol); err != nil {
		return nil, err
	}
	if err := requireSide(p.Side); err != nil {
		return nil, err
	}
	switch p.OrderType {
	case Market, Limit:
	default:
		return nil, clierr.Validationf("invalid order type %q for crypto orders", p.OrderType)
	}
	switch p.AmountIn {
	case InQuantity, InPrice:
	default:
		return nil, clierr.Validationf("invalid amount_in %q (want quantity or price)", p.AmountIn)
	}
	if err := requireTIF(p.TimeInForce, false); err != nil {
		return nil, err
	}

	if p.AmountIn == InQuantity && p.Quantity == nil {
		return nil, clierr.Validationf("quantity is required when amount_in=quantity")
	}
	if p.AmountIn == InPrice && p.NotionalUSD == nil {
		return nil, clierr.Validationf("notional_usd is required when amount_in=price")
	}
	if p.OrderType == Limit && p.LimitPrice == nil {
		return nil, clierr.Validationf("limit_price is required for limit orders")
	}
	if err := requirePositive("quantity", p.Quantity); err != nil {
		return nil, err
	}
	if err := requirePositive("notional_usd", p.NotionalUSD); err != nil {
		return nil, err
	}
	if err := requirePositive("limit_price", p.LimitPrice); err != nil {
		return nil, err
	}

	return &Crypto{
		Sym:         p.Symbol,
		Side:        p.Side,
		OrderType:   p.OrderType,
		AmountIn:    p.AmountIn,
		Quantity:    p.Quantity,
		NotionalUSD: p.NotionalUSD,
		LimitPrice:  p.LimitPrice,
		TimeInForce: p.TimeInForce,
	}, nil
}

type OptionSingleParams struct {
	Symbol         string
	Side           Side
	OrderType      OrderType
	PositionEffect PositionEffect
	CreditOrDebit  Direction
	Quantity       int
	ExpirationDate string
	Strike         float64
	OptionType     OptionType
	Price          *float64
	LimitPrice     *float64
	StopPrice      *float64
	TimeInForce    TimeInForce
}

func NewOptionSingle(p OptionSingleParams) (*OptionSingle, error) {
	if p.OrderType == "" {
		p.OrderType = Limit
	}
	if p.OptionType == "" {
		p.OptionType = BothOption
	}
	if p.TimeInForce == "" {
		p.TimeInForce = GTC
	}
	if err := requireSymbol(p.Symbol); err != nil {
		return nil, err
	}
	if err := requireSide(p.Side); err != nil {
		return nil, err
	}
	switch p.OrderType {
	case Limit, StopLimit:
	default:
		return nil, clierr.Validationf("invalid order type %q for option orders (want limit or stop_limit)", p.OrderType)
	}
	switch p.PositionEffect {
	case Open, Close:
	default:
		return nil, clierr.Validationf("invalid position effect %q (want open or close)", p.PositionEffect)
	}
	switch p.CreditOrDebit {
	case Credit, Debit:
	default:
		return nil, clierr.Validationf("invalid credit_or_debit %q (want credit or debit)", p.CreditOrDebit)
	}
	switch p.OptionType {
	case CallOption, PutOption, BothOption:
	default:
		return nil, clierr.Validationf("invalid option type %q (want call, put or both)", p.OptionType)
	}
	if err := requireTIF(p.TimeInForce, true); err != nil {
		return nil, err
	}
	if p.Quantity < 1 {
		return nil, clierr.Validationf("quantity must be at least 1, got %d", p.Quantity)
	}
	if p.ExpirationDate == "" {
		return nil, clierr.Validationf("expiration_date is required")
	}
	if p.Strike <= 0 {
		return nil, clierr.Validationf("strike must be positive, got %g", p.Strike)
	}

	if p.OrderType == Limit && p.Price == nil {
		return nil, clierr.Validationf("price is required for limit option orders")
	}
	if p.OrderType == StopLimit && (p.LimitPrice == nil || p.StopPrice == nil) {
		return nil, clierr.Validationf("limit_price and stop_price are required for stop_limit option orders")
	}
	if err := requirePositive("price", p.Price); err != nil {
		return nil, err
	}
	if err := requirePositive("limit_price", p.LimitPrice); err != nil {
		return nil, err
	}
	if err := requirePositive("stop_price", p.StopPrice); err != nil {
		return nil, err
	}

	return &OptionSingle{
		Sym:            p.Symbol,
		Side:           p.Side,
		OrderType:      p.OrderType,
		PositionEffect: p.PositionEffect,
		CreditOrDebit:  p.CreditOrDebit,
		Quantity:       p.Quantity,
		ExpirationDate: p.ExpirationDate,
		Strike:         p.Strike,
		OptionType:     p.OptionType,
		Price:          p.Price,
		LimitPrice:     p.LimitPrice,
		StopPrice:      p.StopPrice,
		TimeInForce:    p.TimeInForce,
	}, nil
}

type OptionSpreadParams struct {
	Symbol      string
	Direction   Direction
	Quantity    int
	Price       float64
	Legs        []Leg
	TimeInForce TimeInForce
}

func NewOptionSpread(p OptionSpreadParams) (*OptionSpread, error) {
	if p.TimeInForce == "" {
		p.TimeInForce = GTC
	}
	if err := requireSymbol(p.Symbol); err != nil {
		return nil, err
	}
	switch p.Direction {
	case Credit, Debit:
	default:
		return nil, clierr.Validationf("invalid direction %q (want credit or debit)", p.Direction)
	}
	if err := requireTIF(p.TimeInForce, true); err != nil {
		return nil, err
	}
	if p.Quantity < 1 {
		return nil, clierr.Validationf("quantity must be at least 1, got %d", p.Quantity)
	}
	if p.Price <= 0 {
		return nil, clierr.Validationf("price must be positive, got %g", p.Price)
	}
	if len(p.Legs) < 2 {
		return nil, clierr.Validationf("a spread needs at least 2 legs, got %d", len(p.Legs))
	}
	for i, leg := range p.Legs {
		if leg.ExpirationDate == "" {
			return nil, clierr.Validationf("leg %d: expiration_date is required", i+1)
		}
		if leg.Strike <= 0 {
			return nil, clierr.Validationf("leg %d: strike must be positive, got %g", i+1, leg.Strike)
		}
		switch leg.OptionType {
		case CallOption, PutOption:
		default:
			return nil, clierr.Validationf("leg %d: invalid option type %q (want call or put)", i+1, leg.OptionType)
		}
		switch leg.Effect {
		case Open, Close:
		default:
			return nil, clierr.Validationf("leg %d: invalid effect %q (want open or close)", i+1, leg.Effect)
		}
		switch leg.Action {
		case Buy, Sell:
		default:
			return nil, clierr.Validationf("leg %d: invalid action %q (want buy or sell)", i+1, leg.Action)
		}
	}

	legs := make([]Leg, len(p.Legs))
	copy(legs, p.Legs)

	return &OptionSpread{
		Sym:         p.Symbol,
		Direction:   p.Direction,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Legs:        legs,
		TimeInForce: p.TimeInForce,
	}, nil
}

func requireSymbol(sym string) error {
	if sym == "" {
		return clierr.Validationf("symbol is required")
	}
	return nil
}

func requireSide(s Side) error {
	switch s {
	case Buy, Sell:
		return nil
	}
	return clierr.Validationf("invalid side %q (want buy or sell)", s)
}

func requireTIF(tif TimeInForce, allowOPG bool) error {
	switch tif {
	case GTC, GFD, IOC, FOK:
		return nil
	case OPG:
		if allowOPG {
			return nil
		}
		return clierr.Validationf("time in force opg is not valid for crypto orders")
	}
	return clierr.Validationf("invalid time in force %q", tif)
}

func requirePositive(name string, v *float64) error {
	if v != nil && *v <= 0 {
		return clierr.Validationf("%s must be positive, got %g", name, *v)
	}
	return nil
}
