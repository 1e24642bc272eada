package grpc_control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "marketsim.v1.MarketSimulator"

const (
	SearchMethod    = "/" + ServiceName + "/Search"
	SnapshotMethod  = "/" + ServiceName + "/Snapshot"
	HistoryMethod   = "/" + ServiceName + "/History"
	WatchlistMethod = "/" + ServiceName + "/Watchlist"
)

// MarketSimulatorServer is the server API. Requests and replies are
// google.protobuf.Struct documents.
type MarketSimulatorServer interface {
	Search(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Snapshot(context.Context, *structpb.Struct) (*structpb.Struct, error)
	History(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Watchlist(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(MarketSimulatorServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// -----------------------------------------------------------------------------

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MarketSimulatorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(MarketSimulatorServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// -----------------------------------------------------------------------------

var MarketSimulatorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MarketSimulatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Search", Handler: unaryHandler(SearchMethod, MarketSimulatorServer.Search)},
		{MethodName: "Snapshot", Handler: unaryHandler(SnapshotMethod, MarketSimulatorServer.Snapshot)},
		{MethodName: "History", Handler: unaryHandler(HistoryMethod, MarketSimulatorServer.History)},
		{MethodName: "Watchlist", Handler: unaryHandler(WatchlistMethod, MarketSimulatorServer.Watchlist)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "marketsim/v1/market_simulator.proto",
}

func RegisterMarketSimulatorServer(s grpc.ServiceRegistrar, srv MarketSimulatorServer) {
	s.RegisterService(&MarketSimulatorServiceDesc, srv)
}
