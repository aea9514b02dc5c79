// Package grpc exposes the standard gRPC health service for the API
// process, backed by a database ping.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"volunteer-backend/internal/api/grpc/interceptor"
	"volunteer-backend/internal/logger"
)

// ServiceName is the health service name reported for the shift directory.
const ServiceName = "volunteer.v1.ShiftDirectory"

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthServer publishes SERVING or NOT_SERVING for ServiceName (and the
// overall server) depending on whether the database answers pings.
type HealthServer struct {
	*health.Server
	db       Pinger
	interval time.Duration
}

func NewHealthServer(db Pinger, interval time.Duration) *HealthServer {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &HealthServer{Server: health.NewServer(), db: db, interval: interval}
}

// Probe pings the database once and updates the published status.
func (h *HealthServer) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	if err := h.db.PingContext(ctx); err != nil {
		logger.Warn("Database ping failed", "error", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.SetServingStatus("", st)
	h.SetServingStatus(ServiceName, st)
	return st
}

// Run checks the database every interval until ctx is done, then marks
// everything NOT_SERVING.
func (h *HealthServer) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			h.Shutdown()
			return
		case <-ticker.C:
			h.Probe(ctx)
		}
	}
}

// NewServer returns a gRPC server with the health and reflection services
// registered.
func NewServer(hs *HealthServer) *grpc.Server {
	s := grpc.NewServer(grpc.UnaryInterceptor(interceptor.Unary()))
	healthpb.RegisterHealthServer(s, hs.Server)
	reflection.Register(s)
	return s
}
