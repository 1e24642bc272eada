package models

// MWatchlistEntry is one tracked symbol and the quantity held (0 when only watched).
type MWatchlistEntry struct {
	Symbol   string  `json:"symbol"`
	Holdings float64 `json:"holdings"`
}

// MPosition is the valuation of one watchlist entry.
type MPosition struct {
	Symbol   string  `json:"symbol"`
	Holdings float64 `json:"holdings"`
	Price    float64 `json:"price"`
	Value    float64 `json:"value"`
}

// MPortfolioValue is the portfolio valued at the latest snapshot prices.
type MPortfolioValue struct {
	Currency  string      `json:"currency"`
	Total     float64     `json:"total"`
	Display   string      `json:"display"`
	Positions []MPosition `json:"positions"`
}
