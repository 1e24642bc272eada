package models

// MAssetType classifies a catalog entry.
type MAssetType string

const (
	AssetStock  MAssetType = "STOCK"
	AssetCrypto MAssetType = "CRYPTO"
	AssetForex  MAssetType = "FOREX"
)

// MAsset is an immutable catalog entry. Holdings is only set on watchlist copies.
type MAsset struct {
	ID       string     `json:"id"`
	Symbol   string     `json:"symbol"`
	Name     string     `json:"name"`
	Type     MAssetType `json:"type"`
	Sector   string     `json:"sector,omitempty"`
	Holdings *float64   `json:"holdings,omitempty"`
}
