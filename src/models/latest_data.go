package models

// -----------------------------------------------------------------------------
// Ticker State pushed to dashboard clients
// -----------------------------------------------------------------------------

const (
	StateInitial = "INITIAL"
	StateUpdate  = "UPDATE"
	StateSearch  = "SEARCH"
	StateHistory = "HISTORY"
	StateError   = "ERROR"
)

type MTickerState struct {
	Type      string                     `json:"type"`
	Selected  string                     `json:"selected"`
	Snapshots map[string]MMarketSnapshot `json:"snapshots"`
	Order     []string                   `json:"order"`
	Chart     []MHistoricalPoint         `json:"chart"`
	Portfolio MPortfolioValue            `json:"portfolio"`
	Triggered []MAlertEvent              `json:"triggered"`
	Sessions  map[string]bool            `json:"sessions"`
	Timestamp int64                      `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// Direct replies to a single client
// -----------------------------------------------------------------------------

type MSearchResult struct {
	Type    string   `json:"type"`
	Query   string   `json:"query"`
	Results []MAsset `json:"results"`
}

type MHistoryResult struct {
	Type   string             `json:"type"`
	Symbol string             `json:"symbol"`
	Points []MHistoricalPoint `json:"points"`
}

type MErrorResult struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// -----------------------------------------------------------------------------
// ClientCommand for client messages
// -----------------------------------------------------------------------------

type MClientCommand struct {
	Command string   `json:"command"` // "subscribe", "search", "select"
	Symbols []string `json:"symbols"`
	Symbol  string   `json:"symbol"`
	Query   string   `json:"query"`
}
