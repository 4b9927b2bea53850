// Package intent models unsubmitted order intents: structurally valid
// descriptions of a desired order that have not yet been checked against
// safety policy. An intent can only be obtained through a constructor,
// so an invalid intent value never exists.
package intent

import "ordergate/pkg/clierr"

type AssetType string

const (
	AssetStock        AssetType = "stock"
	AssetCrypto       AssetType = "crypto"
	AssetOptionSingle AssetType = "option_single"
	AssetOptionSpread AssetType = "option_spread"
)

type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

type OrderType string

const (
	Market    OrderType = "market"
	Limit     OrderType = "limit"
	StopLimit OrderType = "stop_limit"
)

type TimeInForce string

const (
	GTC TimeInForce = "gtc"
	GFD TimeInForce = "gfd"
	IOC TimeInForce = "ioc"
	FOK TimeInForce = "fok"
	OPG TimeInForce = "opg"
)

// AmountIn selects whether a crypto order is sized in asset quantity or
// in dollars.
type AmountIn string

const (
	InQuantity AmountIn = "quantity"
	InPrice    AmountIn = "price"
)

type PositionEffect string

const (
	Open  PositionEffect = "open"
	Close PositionEffect = "close"
)

type Direction string

const (
	Credit Direction = "credit"
	Debit  Direction = "debit"
)

type OptionType string

const (
	CallOption OptionType = "call"
	PutOption  OptionType = "put"
	BothOption OptionType = "both"
)

// Intent is the sum of the four order shapes. Consumers switch on the
// concrete type; Symbol and Asset are the only fields every variant
// shares.
type Intent interface {
	Symbol() string
	Asset() AssetType

	sealed()
}

type Stock struct {
	Sym           string
	Side          Side
	OrderType     OrderType
	Quantity      *float64
	NotionalUSD   *float64
	LimitPrice    *float64
	StopPrice     *float64
	TimeInForce   TimeInForce
	ExtendedHours bool
}

func (s *Stock) Symbol() string   { return s.Sym }
func (s *Stock) Asset() AssetType { return AssetStock }
func (s *Stock) sealed()          {}

type Crypto struct {
	Sym         string
	Side        Side
	OrderType   OrderType
	AmountIn    AmountIn
	Quantity    *float64
	NotionalUSD *float64
	LimitPrice  *float64
	TimeInForce TimeInForce
}

func (c *Crypto) Symbol() string   { return c.Sym }
func (c *Crypto) Asset() AssetType { return AssetCrypto }
func (c *Crypto) sealed()          {}

type OptionSingle struct {
	Sym            string
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

func (o *OptionSingle) Symbol() string   { return o.Sym }
func (o *OptionSingle) Asset() AssetType { return AssetOptionSingle }
func (o *OptionSingle) sealed()          {}

// Leg is one component contract of an option spread, in execution order.
type Leg struct {
	ExpirationDate string
	Strike         float64
	OptionType     OptionType
	Effect         PositionEffect
	Action         Side
}

type OptionSpread struct {
	Sym         string
	Direction   Direction
	Quantity    int
	Price       float64
	Legs        []Leg
	TimeInForce TimeInForce
}

func (o *OptionSpread) Symbol() string   { return o.Sym }
func (o *OptionSpread) Asset() AssetType { return AssetOptionSpread }
func (o *OptionSpread) sealed()          {}

// ParseSide maps a raw CLI string onto a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case Buy, Sell:
		return Side(s), nil
	}
	return "", clierr.Validationf("invalid side %q (want buy or sell)", s)
}

// ParseOrderType accepts any of the order types; per-variant constraints
// (e.g. crypto has no stop_limit) are enforced by the constructors.
func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case Market, Limit, StopLimit:
		return OrderType(s), nil
	}
	return "", clierr.Validationf("invalid order type %q (want market, limit or stop_limit)", s)
}

func ParseTimeInForce(s string) (TimeInForce, error) {
	switch TimeInForce(s) {
	case GTC, GFD, IOC, FOK, OPG:
		return TimeInForce(s), nil
	}
	return "", clierr.Validationf("invalid time in force %q (want gtc, gfd, ioc, fok or opg)", s)
}

func ParseAmountIn(s string) (AmountIn, error) {
	switch AmountIn(s) {
	case InQuantity, InPrice:
		return AmountIn(s), nil
	}
	return "", clierr.Validationf("invalid amount_in %q (want quantity or price)", s)
}

func ParsePositionEffect(s string) (PositionEffect, error) {
	switch PositionEffect(s) {
	case Open, Close:
		return PositionEffect(s), nil
	}
	return "", clierr.Validationf("invalid position effect %q (want open or close)", s)
}

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Credit, Debit:
		return Direction(s), nil
	}
	return "", clierr.Validationf("invalid direction %q (want credit or debit)", s)
}

func ParseOptionType(s string) (OptionType, error) {
	switch OptionType(s) {
	case CallOption, PutOption, BothOption:
		return OptionType(s), nil
	}
	return "", clierr.Validationf("invalid option type %q (want call, put or both)", s)
}
