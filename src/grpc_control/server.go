package grpc_control

import (
	"context"
	"fmt"
	"net"
	"time"

	"market-simulator/src/logger"
	"market-simulator/src/models"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// GRPCServer hosts MarketService plus the standard health service.
type GRPCServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	server *grpc.Server
	health *health.Server
}

// -----------------------------------------------------------------------------

func NewGRPCServer(cfg *models.MConfig, svc MarketSimulatorServer, log *logger.Logger) *GRPCServer {
	if log == nil {
		log = logger.NewLogger(cfg, "GRPCServer")
	}

	srv := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor(log)))
	h := health.NewServer()

	RegisterMarketSimulatorServer(srv, svc)
	healthpb.RegisterHealthServer(srv, h)

	h.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &GRPCServer{Config: cfg, Logger: log, server: srv, health: h}
}

// -----------------------------------------------------------------------------

func loggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			log.Info("%s failed after %s: %s", info.FullMethod, time.Since(start), status.Convert(err).Message())
		} else {
			log.Debug("%s ok (%s)", info.FullMethod, time.Since(start))
		}
		return resp, err
	}
}

// -----------------------------------------------------------------------------

// Serve blocks serving on lis until Stop.
func (g *GRPCServer) Serve(lis net.Listener) error {
	g.Logger.Info("Starting gRPC server on %s", lis.Addr())
	return g.server.Serve(lis)
}

// Start listens on the configured gRPC address and serves.
func (g *GRPCServer) Start() error {
	port := g.Config.GrpcPort
	if port == 0 {
		port = 50051
	}
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", g.Config.GrpcHost, port))
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC: %w", err)
	}
	return g.Serve(lis)
}

// Stop marks the service NOT_SERVING and drains in-flight calls.
func (g *GRPCServer) Stop() error {
	g.health.Shutdown()
	g.server.GracefulStop()
	return nil
}
