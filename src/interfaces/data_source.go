package interfaces

import (
	"context"
	"sync"

	"market-simulator/src/models"
)

// -----------------------------------------------------------------------------
// IDataSource produces quote batches on a channel until its context ends.
// -----------------------------------------------------------------------------

type IDataSource interface {
	// Name returns the unique identifier of the source
	Name() string

	// Start begins producing snapshots.
	// ctx: cancellation stops the source
	// outputChan: channel to push data to
	// wg: signalled when the source has fully stopped
	Start(ctx context.Context, outputChan chan<- []models.MMarketSnapshot, wg *sync.WaitGroup) error

	Stop() error
}
