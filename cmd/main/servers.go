package main

import (
	"market-simulator/src/grpc_control"
	"market-simulator/src/logger"
	"market-simulator/src/server"
)

// -----------------------------------------------------------------------------

// startServers launches the HTTP/WebSocket and gRPC servers in the background.
func startServers(a *app, srv *server.APIServer) *grpc_control.GRPCServer {

	// 1. REST + WebSocket
	go func() {
		if err := srv.Start(); err != nil {
			a.log.Critical("Server failed: %v", err)
		}
	}()

	// 2. gRPC
	grpcLogger := logger.NewLogger(a.conf, "MarketService")
	grpcServer := grpc_control.NewGRPCServer(
		a.conf.MConfig,
		grpc_control.NewMarketService(a.service, a.watchlist, grpcLogger),
		grpcLogger,
	)
	go func() {
		if err := grpcServer.Start(); err != nil {
			a.log.Critical("gRPC server failed: %v", err)
		}
	}()

	return grpcServer
}
