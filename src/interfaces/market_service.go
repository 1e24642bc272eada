package interfaces

import (
	"context"

	"market-simulator/src/models"
)

// IMarketService is the simulation surface consumed by the transports.
type IMarketService interface {
	Assets() []models.MAsset
	Search(ctx context.Context, query string) ([]models.MAsset, error)
	Snapshot(symbols []string) []models.MMarketSnapshot
	History(symbol string, points int) ([]models.MHistoricalPoint, error)
}
