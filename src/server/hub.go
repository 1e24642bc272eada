package server

import (
	"encoding/json"
	"net/http"
	"time"

	"market-simulator/src/models"
	"market-simulator/src/simulation"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *APIServer) handleWebsockets() {
	for {
		select {
		case <-s.done:
			for client := range s.clients {
				delete(s.clients, client)
				client.close()
			}
			s.connections.Store(0)
			return

		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.connections.Store(int64(len(s.clients)))
			client.enqueue(client.view(s.State(), models.StateInitial))

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				client.close()
			}
			s.connections.Store(int64(len(s.clients)))

		case message := <-s.broadcast:
			for client := range s.clients {
				if !client.enqueue(client.view(message, models.StateUpdate)) {
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					client.close()
				}
			}
			s.connections.Store(int64(len(s.clients)))
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// UpdateState replaces the state sent to newly connected clients.
func (s *APIServer) UpdateState(state *models.MTickerState) {
	if state == nil {
		return
	}
	s.stateMutex.Lock()
	s.latestState = state
	s.stateMutex.Unlock()
}

// Broadcast queues state for every connected client.
func (s *APIServer) Broadcast(state *models.MTickerState) {
	if state == nil {
		return
	}
	select {
	case s.broadcast <- state:
	case <-s.done:
	}
}

// State returns the latest state.
func (s *APIServer) State() *models.MTickerState {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()
	return s.latestState
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := newClient(s, conn)
	d := s.Config.Dashboard
	client.search = simulation.NewSearchSession(
		s.Service.Search,
		time.Duration(d.SearchDebounceMs)*time.Millisecond,
		d.SearchMinLength,
		func(query string, results []models.MAsset) {
			client.enqueue(&models.MSearchResult{Type: models.StateSearch, Query: query, Results: results})
		},
	)

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *APIServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MClientCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v", err)
		client.enqueue(&models.MErrorResult{Type: models.StateError, Message: "invalid command: " + err.Error()})
		return
	}

	switch cmd.Command {
	case "subscribe":
		client.subscribe(cmd.Symbols)
		client.enqueue(client.view(s.State(), models.StateInitial))

	case "search":
		client.search.Submit(cmd.Query)

	case "select":
		points, err := s.Processor.Select(cmd.Symbol)
		if err != nil {
			client.enqueue(&models.MErrorResult{Type: models.StateError, Message: err.Error()})
			return
		}
		client.enqueue(&models.MHistoryResult{Type: models.StateHistory, Symbol: cmd.Symbol, Points: points})

	default:
		client.enqueue(&models.MErrorResult{Type: models.StateError, Message: "unknown command: " + cmd.Command})
	}
}
