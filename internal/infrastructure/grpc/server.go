package grpc

import (
	"context"
	"fmt"
	"net"

	"github.com/wekeepgrowing/payment-recovery/internal/config"
	"github.com/wekeepgrowing/payment-recovery/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	server *grpc.Server
}

func NewServer(cfg *config.Config, log *zap.Logger, healthServer healthpb.HealthServer) *Server {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(logger.NewGrpcUnaryServerInterceptor(log)),
		grpc.ChainStreamInterceptor(logger.NewGrpcStreamServerInterceptor(log)),
	)

	healthpb.RegisterHealthServer(server, healthServer)
	if cfg.Service.Environment != "production" {
		reflection.Register(server)
	}

	return &Server{
		config: cfg,
		logger: log,
		server: server,
	}
}

func (s *Server) Start() error {
	addr := s.config.Server.GRPC.Address()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.logger.Info("Starting gRPC server", zap.String("address", addr))
	return s.Serve(listener)
}

// Serve accepts connections on an existing listener.
func (s *Server) Serve(listener net.Listener) error {
	return s.server.Serve(listener)
}

func (s *Server) Shutdown(ctx context.Context) error {
	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		return ctx.Err()
	}
}
