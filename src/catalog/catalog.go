// Package catalog holds the static asset universe the simulator quotes.
package catalog

import (
	"market-simulator/src/models"
)

var assets = []models.MAsset{
	// Crypto
	{ID: "c1", Symbol: "BTC/USD", Name: "Bitcoin", Type: models.AssetCrypto, Sector: "Digital Currency"},
	{ID: "c2", Symbol: "ETH/USD", Name: "Ethereum", Type: models.AssetCrypto, Sector: "Digital Currency"},
	{ID: "c3", Symbol: "SOL/USD", Name: "Solana", Type: models.AssetCrypto, Sector: "Digital Currency"},

	// Forex
	{ID: "f1", Symbol: "EUR/USD", Name: "Euro / US Dollar", Type: models.AssetForex, Sector: "Currency"},
	{ID: "f2", Symbol: "GBP/USD", Name: "British Pound / US Dollar", Type: models.AssetForex, Sector: "Currency"},
	{ID: "f3", Symbol: "USD/JPY", Name: "US Dollar / Japanese Yen", Type: models.AssetForex, Sector: "Currency"},

	// Banking & finance
	{ID: "b1", Symbol: "JPM", Name: "JPMorgan Chase & Co.", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b2", Symbol: "BAC", Name: "Bank of America Corp", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b3", Symbol: "WFC", Name: "Wells Fargo & Co", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b4", Symbol: "C", Name: "Citigroup Inc.", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b5", Symbol: "GS", Name: "Goldman Sachs Group", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b6", Symbol: "MS", Name: "Morgan Stanley", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b7", Symbol: "HSBC", Name: "HSBC Holdings plc", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b8", Symbol: "RY", Name: "Royal Bank of Canada", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b9", Symbol: "TD", Name: "Toronto-Dominion Bank", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b10", Symbol: "UBS", Name: "UBS Group AG", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b11", Symbol: "DB", Name: "Deutsche Bank AG", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b12", Symbol: "BCS", Name: "Barclays plc", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b13", Symbol: "AXP", Name: "American Express", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b14", Symbol: "BLK", Name: "BlackRock Inc.", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b15", Symbol: "V", Name: "Visa Inc.", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b16", Symbol: "MA", Name: "Mastercard Inc.", Type: models.AssetStock, Sector: "Financials"},
	{ID: "b17", Symbol: "PYPL", Name: "PayPal Holdings", Type: models.AssetStock, Sector: "Financials"},

	// Tech
	{ID: "t1", Symbol: "AAPL", Name: "Apple Inc.", Type: models.AssetStock, Sector: "Technology"},
	{ID: "t2", Symbol: "MSFT", Name: "Microsoft Corp", Type: models.AssetStock, Sector: "Technology"},
	{ID: "t3", Symbol: "GOOGL", Name: "Alphabet Inc.", Type: models.AssetStock, Sector: "Technology"},
	{ID: "t4", Symbol: "AMZN", Name: "Amazon.com Inc.", Type: models.AssetStock, Sector: "Consumer Cyclical"},
	{ID: "t5", Symbol: "NVDA", Name: "NVIDIA Corp", Type: models.AssetStock, Sector: "Technology"},
	{ID: "t6", Symbol: "META", Name: "Meta Platforms", Type: models.AssetStock, Sector: "Technology"},
	{ID: "t7", Symbol: "TSLA", Name: "Tesla Inc.", Type: models.AssetStock, Sector: "Consumer Cyclical"},
	{ID: "t8", Symbol: "NFLX", Name: "Netflix Inc.", Type: models.AssetStock, Sector: "Communication"},
	{ID: "t9", Symbol: "AMD", Name: "Advanced Micro Devices", Type: models.AssetStock, Sector: "Technology"},
	{ID: "t10", Symbol: "INTC", Name: "Intel Corp", Type: models.AssetStock, Sector: "Technology"},

	// Energy & industrial
	{ID: "e1", Symbol: "XOM", Name: "Exxon Mobil Corp", Type: models.AssetStock, Sector: "Energy"},
	{ID: "e2", Symbol: "CVX", Name: "Chevron Corp", Type: models.AssetStock, Sector: "Energy"},
	{ID: "e3", Symbol: "SHEL", Name: "Shell plc", Type: models.AssetStock, Sector: "Energy"},
	{ID: "i1", Symbol: "BA", Name: "Boeing Co", Type: models.AssetStock, Sector: "Industrials"},
	{ID: "i2", Symbol: "GE", Name: "General Electric", Type: models.AssetStock, Sector: "Industrials"},
	{ID: "i3", Symbol: "CAT", Name: "Caterpillar Inc.", Type: models.AssetStock, Sector: "Industrials"},

	// Healthcare
	{ID: "h1", Symbol: "JNJ", Name: "Johnson & Johnson", Type: models.AssetStock, Sector: "Healthcare"},
	{ID: "h2", Symbol: "PFE", Name: "Pfizer Inc.", Type: models.AssetStock, Sector: "Healthcare"},
	{ID: "h3", Symbol: "UNH", Name: "UnitedHealth Group", Type: models.AssetStock, Sector: "Healthcare"},
}

// Starting prices for the random walk. Symbols missing here get a hash-derived price.
var seedPrices = map[string]float64{
	"BTC/USD": 67540.20,
	"ETH/USD": 3240.15,
	"SOL/USD": 145.20,
	"AAPL":    174.30,
	"TSLA":    182.50,
	"EUR/USD": 1.0845,
	"NVDA":    890.12,
	"JPM":     198.50,
	"BAC":     37.80,
	"WFC":     58.20,
	"C":       63.45,
	"GS":      402.10,
	"MS":      94.30,
	"DB":      15.60,
	"HSBC":    39.50,
	"UBS":     28.10,
	"MSFT":    420.55,
	"GOOGL":   173.90,
	"AMZN":    180.20,
}

var defaultWatchlist = []models.MWatchlistEntry{
	{Symbol: "BTC/USD", Holdings: 0.45},
	{Symbol: "ETH/USD", Holdings: 12.5},
	{Symbol: "EUR/USD"},
	{Symbol: "JPM", Holdings: 50},
	{Symbol: "BAC", Holdings: 200},
	{Symbol: "AAPL", Holdings: 150},
	{Symbol: "NVDA"},
	{Symbol: "TSLA", Holdings: 45},
}

var initialAlerts = []models.MAlert{
	{Symbol: "BTC/USD", Condition: models.AlertAbove, Price: 68000, Active: true},
	{Symbol: "AAPL", Condition: models.AlertBelow, Price: 170, Active: true},
	{Symbol: "JPM", Condition: models.AlertAbove, Price: 205, Active: true},
}

// -----------------------------------------------------------------------------

// Assets returns a copy of the catalog in its fixed order.
func Assets() []models.MAsset {
	out := make([]models.MAsset, len(assets))
	copy(out, assets)
	return out
}

// Find looks up a catalog entry by exact symbol.
func Find(symbol string) (models.MAsset, bool) {
	for _, a := range assets {
		if a.Symbol == symbol {
			return a, true
		}
	}
	return models.MAsset{}, false
}

// SeedPrices returns a fresh copy of the seed table; callers may mutate it.
func SeedPrices() map[string]float64 {
	out := make(map[string]float64, len(seedPrices))
	for k, v := range seedPrices {
		out[k] = v
	}
	return out
}

// DefaultWatchlist returns the starting watchlist in catalog order.
func DefaultWatchlist() []models.MWatchlistEntry {
	out := make([]models.MWatchlistEntry, len(defaultWatchlist))
	copy(out, defaultWatchlist)
	return out
}

// InitialAlerts returns the alerts configured at startup, without ids.
func InitialAlerts() []models.MAlert {
	out := make([]models.MAlert, len(initialAlerts))
	copy(out, initialAlerts)
	return out
}

// WithHoldings annotates a catalog entry with a holding quantity.
func WithHoldings(a models.MAsset, holdings float64) models.MAsset {
	h := holdings
	a.Holdings = &h
	return a
}
