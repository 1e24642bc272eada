package interfaces

import "market-simulator/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger pushes dashboard state to connected clients.
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// Broadcast pushes a state update to every subscribed client.
	Broadcast(state *models.MTickerState)

	// UpdateState replaces the state served to newly connected clients
	// without broadcasting.
	UpdateState(state *models.MTickerState)

	Start() error

	// Stop the server gracefully
	Stop() error
}
