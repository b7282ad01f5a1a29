package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported through the gRPC health service.
const ServiceName = "payment-recovery"

// Pinger checks a dependency, e.g. the database.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler keeps the gRPC health status in step with the dependencies.
type HealthHandler struct {
	server   *health.Server
	pinger   Pinger
	interval time.Duration
	logger   *zap.Logger
}

func NewHealthHandler(pinger Pinger, interval time.Duration, logger *zap.Logger) *HealthHandler {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &HealthHandler{
		server:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
		logger:   logger,
	}
}

// Server returns the health service to register on a gRPC server.
func (h *HealthHandler) Server() healthpb.HealthServer {
	return h.server
}

// Check pings the dependencies once and updates the serving status.
func (h *HealthHandler) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if h.pinger != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.pinger.PingContext(pingCtx); err != nil {
			h.logger.Warn("Health check failed", zap.Error(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
	return status
}

// Run re-checks health every interval until ctx is done.
func (h *HealthHandler) Run(ctx context.Context) {
	h.Check(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// Shutdown marks every service as not serving so clients drain.
func (h *HealthHandler) Shutdown() {
	h.server.Shutdown()
}
