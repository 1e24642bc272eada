package models

// MAlertCondition is the direction an alert watches.
type MAlertCondition string

const (
	AlertAbove MAlertCondition = "ABOVE"
	AlertBelow MAlertCondition = "BELOW"
)

// MAlert is a price threshold on a symbol.
type MAlert struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Condition MAlertCondition `json:"condition"`
	Price     float64         `json:"price"`
	Active    bool            `json:"active"`
}

// MAlertEvent is emitted once when an active alert's condition holds.
type MAlertEvent struct {
	Alert       MAlert  `json:"alert"`
	MarketPrice float64 `json:"market_price"`
	TriggeredAt int64   `json:"triggered_at"`
}
