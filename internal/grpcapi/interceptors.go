package grpcapi

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/BrandonDHaskell/learnlog/internal/auth"
)

func loggingInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now().UTC()
		resp, err := handler(ctx, req)
		logger.Info().
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("dur", time.Since(start)).
			Msg("rpc")
		return resp, err
	}
}

// authInterceptor checks the "authorization" metadata on every call except
// the standard health service. A nil verifier disables it.
func authInterceptor(verifier *auth.JWT) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if verifier == nil || strings.HasPrefix(info.FullMethod, "/grpc.health.v1.Health/") {
			return handler(ctx, req)
		}

		var token string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get("authorization"); len(vals) > 0 {
				token = vals[0]
			}
		}
		if _, err := verifier.Validate(token); err != nil {
			return nil, status.Error(codes.Unauthenticated, "valid bearer token required")
		}
		return handler(ctx, req)
	}
}
