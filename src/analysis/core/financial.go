package core

// -----------------------------------------------------------------------------

// ChangePercent is the move from previous to current in percent.
func ChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// -----------------------------------------------------------------------------

// Returns lists the simple step returns of prices.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, prices[i]/prices[i-1]-1)
	}
	return out
}

// Volatility is the standard deviation of step returns.
func Volatility(prices []float64) float64 {
	_, std := MeanStd(Returns(prices))
	return std
}

// -----------------------------------------------------------------------------

// AnomalyRatio compares a volume with its average; 1 means normal.
func AnomalyRatio(currentVol, avgVol float64) float64 {
	if avgVol <= 0 {
		if currentVol == 0 {
			return 1
		}
		return currentVol
	}
	return currentVol / avgVol
}
