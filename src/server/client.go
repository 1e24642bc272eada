package server

import (
	"sync"
	"time"

	"market-simulator/src/models"
	"market-simulator/src/simulation"

	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	writeWait      = 2 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

// -----------------------------------------------------------------------------
// Client Structure
// -----------------------------------------------------------------------------

type Client struct {
	hub    *APIServer
	conn   *websocket.Conn
	send   chan interface{}
	search *simulation.SearchSession

	mu      sync.Mutex
	symbols []string // empty = everything
	closed  bool
}

func newClient(hub *APIServer, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan interface{}, sendBuffer),
	}
}

// -----------------------------------------------------------------------------

// enqueue hands msg to the write pump without blocking. It reports false when
// the client is closed or its buffer is full.
func (c *Client) enqueue(msg interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close is called by the hub only.
func (c *Client) close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
	if c.search != nil {
		c.search.Close()
	}
}

// -----------------------------------------------------------------------------

func (c *Client) subscribe(symbols []string) {
	c.mu.Lock()
	c.symbols = append([]string(nil), symbols...)
	c.mu.Unlock()
}

// view narrows state to the client's subscription.
func (c *Client) view(state *models.MTickerState, kind string) *models.MTickerState {
	c.mu.Lock()
	symbols := c.symbols
	c.mu.Unlock()

	out := *state
	out.Type = kind
	if len(symbols) == 0 {
		return &out
	}

	out.Snapshots = make(map[string]models.MMarketSnapshot, len(symbols))
	out.Order = make([]string, 0, len(symbols))
	for _, sym := range state.Order {
		if contains(symbols, sym) {
			out.Snapshots[sym] = state.Snapshots[sym]
			out.Order = append(out.Order, sym)
		}
	}
	if state.Sessions != nil {
		out.Sessions = make(map[string]bool, len(symbols))
		for _, sym := range symbols {
			if open, ok := state.Sessions[sym]; ok {
				out.Sessions[sym] = open
			}
		}
	}
	return &out
}

// -----------------------------------------------------------------------------
// readPump - handles incoming messages from client
// Act as a Watchdog for the connection
// -----------------------------------------------------------------------------

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
		c.hub.Logger.Info("Client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.Logger.Info("WebSocket error: %v", err)
			}
			break
		}
		c.hub.HandleClientMessage(c, message)
	}
}

// -----------------------------------------------------------------------------
// writePump - sends messages to client
// -----------------------------------------------------------------------------

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.hub.Logger.Info("Write error: %v", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
