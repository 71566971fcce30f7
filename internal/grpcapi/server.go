// Package grpcapi serves interactions over gRPC alongside the HTTP API.
package grpcapi

import (
	"context"
	"errors"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/BrandonDHaskell/learnlog/internal/auth"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/service"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/wire"
)

type Dependencies struct {
	Logger             zerolog.Logger
	InteractionService *service.InteractionService
	Auth               *auth.JWT // nil disables authentication
}

type Server struct {
	grpcServer   *grpc.Server
	health       *health.Server
	logger       zerolog.Logger
	interactions *service.InteractionService
}

func NewServer(d Dependencies) *Server {
	logger := d.Logger.With().Str("component", "grpc").Logger()

	s := &Server{
		grpcServer: grpc.NewServer(grpc.ChainUnaryInterceptor(
			loggingInterceptor(logger),
			authInterceptor(d.Auth),
		)),
		health:       health.NewServer(),
		logger:       logger,
		interactions: d.InteractionService,
	}

	RegisterInteractionsServer(s.grpcServer, s)
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return s
}

// Serve blocks accepting connections on lis. It returns nil after Stop.
func (s *Server) Serve(lis net.Listener) error {
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop marks the service NOT_SERVING and drains in-flight calls, falling
// back to a hard stop when ctx expires first.
func (s *Server) Stop(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.grpcServer.Stop()
		<-done
	}
}

func (s *Server) ListInteractions(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	itemID, err := wire.ItemIDFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	logs, err := s.interactions.List(ctx, itemID)
	if err != nil {
		s.logger.Error().Err(err).Msg("list interactions failed")
		return nil, status.Error(codes.Internal, "unexpected server error")
	}
	return wire.InteractionsToList(logs), nil
}
