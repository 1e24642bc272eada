package grpc_control

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"market-simulator/src/helpers"
	"market-simulator/src/interfaces"
	"market-simulator/src/logger"
	"market-simulator/src/simulation"
	"market-simulator/src/watchlist"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// MarketService implements MarketSimulatorServer over the simulation.
type MarketService struct {
	Service interfaces.IMarketService
	Logger  *logger.Logger
	watch   *watchlist.Watchlist
}

// NewMarketService creates a new instance of MarketService
func NewMarketService(svc interfaces.IMarketService, wl *watchlist.Watchlist, log *logger.Logger) *MarketService {
	if log == nil {
		log = logger.NewLogger(nil, "MarketService")
	}
	return &MarketService{Service: svc, Logger: log, watch: wl}
}

// -----------------------------------------------------------------------------

func (s *MarketService) Search(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	query := req.GetFields()["query"].GetStringValue()
	results, err := s.Service.Search(ctx, query)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]interface{}{"query": query, "results": results})
}

// -----------------------------------------------------------------------------

func (s *MarketService) Snapshot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var symbols []string
	for _, v := range req.GetFields()["symbols"].GetListValue().GetValues() {
		if sym := v.GetStringValue(); sym != "" {
			symbols = append(symbols, sym)
		}
	}
	if len(symbols) == 0 && s.watch != nil {
		symbols = s.watch.Tracked()
	}
	return toStruct(map[string]interface{}{"snapshots": s.Service.Snapshot(symbols)})
}

// -----------------------------------------------------------------------------

func (s *MarketService) History(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	symbol := fields["symbol"].GetStringValue()

	points := simulation.DefaultHistoryPoints
	if v, ok := fields["points"]; ok {
		n, isNum := v.GetKind().(*structpb.Value_NumberValue)
		if !isNum || n.NumberValue != math.Trunc(n.NumberValue) {
			return nil, status.Error(codes.InvalidArgument, "points must be an integer")
		}
		// checked before the int conversion so huge counts cannot wrap
		if n.NumberValue > simulation.MaxHistoryPoints {
			return nil, status.Errorf(codes.InvalidArgument, "points must be at most %d", simulation.MaxHistoryPoints)
		}
		points = int(n.NumberValue)
	}

	history, err := s.Service.History(symbol, points)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]interface{}{"symbol": symbol, "points": history})
}

// -----------------------------------------------------------------------------

func (s *MarketService) Watchlist(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.watch == nil {
		return nil, status.Error(codes.Unavailable, "no watchlist configured")
	}
	return toStruct(map[string]interface{}{
		"selected": s.watch.Selected(),
		"assets":   s.watch.Assets(),
	})
}

// -----------------------------------------------------------------------------

// toStruct converts v through its JSON form so model json tags carry over.
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	return out, nil
}

// toStatus maps domain errors onto gRPC codes.
func toStatus(err error) error {
	switch {
	case helpers.IsInvalidArgument(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case helpers.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
