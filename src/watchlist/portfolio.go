package watchlist

import (
	"market-simulator/src/models"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Valuate prices every held entry at the latest snapshot price. Entries
// without a quote count as zero.
func Valuate(entries []models.MWatchlistEntry, snaps []models.MMarketSnapshot, currency string) models.MPortfolioValue {
	prices := make(map[string]float64, len(snaps))
	for _, s := range snaps {
		prices[s.Symbol] = s.Price
	}

	total := decimal.Zero
	positions := make([]models.MPosition, 0, len(entries))
	for _, e := range entries {
		if e.Holdings == 0 {
			continue
		}
		price := prices[e.Symbol]
		value := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(e.Holdings))
		total = total.Add(value)
		positions = append(positions, models.MPosition{
			Symbol:   e.Symbol,
			Holdings: e.Holdings,
			Price:    price,
			Value:    value.Round(2).InexactFloat64(),
		})
	}

	rounded := total.Round(2).InexactFloat64()
	return models.MPortfolioValue{
		Currency:  currency,
		Total:     rounded,
		Display:   money.NewFromFloat(rounded, currency).Display(),
		Positions: positions,
	}
}
