package simulation

import "github.com/shopspring/decimal"

// Volatilities used by the simulation
const (
	WalkVolatility     = 0.002 // one snapshot tick
	BaselineVolatility = 0.02  // synthetic start-of-day spread
	HistoryVolatility  = 0.01  // one chart minute
)

// -----------------------------------------------------------------------------

// RandomWalk moves price by price*volatility*(u-0.5), u being a uniform draw
// in [0,1). Prices above 1000 keep 2 decimals, the rest keep 4.
func RandomWalk(price, volatility, u float64) float64 {
	change := price * volatility * (u - 0.5)
	return roundTo(price+change, walkPlaces(price))
}

func walkPlaces(price float64) int32 {
	if price > 1000 {
		return 2
	}
	return 4
}

// -----------------------------------------------------------------------------

func roundTo(value float64, places int32) float64 {
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}
