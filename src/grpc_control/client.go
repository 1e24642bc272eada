package grpc_control

import (
	"context"
	"encoding/json"

	"market-simulator/src/models"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls a MarketSimulator server.
type Client struct {
	conn *grpc.ClientConn
}

func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// -----------------------------------------------------------------------------

func (c *Client) invoke(ctx context.Context, method string, req map[string]interface{}, out interface{}) error {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return err
	}
	reply := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, reply); err != nil {
		return err
	}
	raw, err := json.Marshal(reply.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// -----------------------------------------------------------------------------

func (c *Client) Search(ctx context.Context, query string) ([]models.MAsset, error) {
	var out struct {
		Results []models.MAsset `json:"results"`
	}
	err := c.invoke(ctx, SearchMethod, map[string]interface{}{"query": query}, &out)
	return out.Results, err
}

func (c *Client) Snapshot(ctx context.Context, symbols []string) ([]models.MMarketSnapshot, error) {
	list := make([]interface{}, len(symbols))
	for i, s := range symbols {
		list[i] = s
	}
	var out struct {
		Snapshots []models.MMarketSnapshot `json:"snapshots"`
	}
	err := c.invoke(ctx, SnapshotMethod, map[string]interface{}{"symbols": list}, &out)
	return out.Snapshots, err
}

func (c *Client) History(ctx context.Context, symbol string, points int) ([]models.MHistoricalPoint, error) {
	var out struct {
		Points []models.MHistoricalPoint `json:"points"`
	}
	err := c.invoke(ctx, HistoryMethod, map[string]interface{}{"symbol": symbol, "points": points}, &out)
	return out.Points, err
}

func (c *Client) Watchlist(ctx context.Context) (string, []models.MAsset, error) {
	var out struct {
		Selected string          `json:"selected"`
		Assets   []models.MAsset `json:"assets"`
	}
	err := c.invoke(ctx, WatchlistMethod, map[string]interface{}{}, &out)
	return out.Selected, out.Assets, err
}
