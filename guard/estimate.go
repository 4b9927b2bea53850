package guard

import "ordergate/intent"

// contractMultiplier is the standard 100-share multiplier per option
// contract.
const contractMultiplier = 100

// Estimate maps an intent to its estimated US-dollar exposure, used for
// policy comparison only; it is not a pricing engine. It always returns
// a number and falls back to 0 when no reference price exists, which
// means notional caps give no protection for market stock/crypto orders
// placed without one.
func Estimate(in intent.Intent) float64 {
	switch o := in.(type) {
	case *intent.Stock:
		if o.NotionalUSD != nil {
			return *o.NotionalUSD
		}
		if o.Quantity != nil && o.LimitPrice != nil {
			return *o.Quantity * *o.LimitPrice
		}
		if o.Quantity != nil && o.StopPrice != nil {
			return *o.Quantity * *o.StopPrice
		}
		return 0

	case *intent.Crypto:
		if o.NotionalUSD != nil {
			return *o.NotionalUSD
		}
		if o.Quantity != nil && o.LimitPrice != nil {
			return *o.Quantity * *o.LimitPrice
		}
		return 0

	case *intent.OptionSingle:
		px := 0.0
		if o.Price != nil {
			px = *o.Price
		} else if o.LimitPrice != nil {
			px = *o.LimitPrice
		}
		return px * float64(o.Quantity) * contractMultiplier

	case *intent.OptionSpread:
		return o.Price * float64(o.Quantity) * contractMultiplier
	}

	return 0
}
