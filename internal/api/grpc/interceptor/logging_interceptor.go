package interceptor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"volunteer-backend/internal/logger"
)

// Unary returns a server interceptor that tags each call with a request id,
// logs its outcome and turns panics into codes.Internal.
func Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		requestID := RequestIDFromContext(ctx)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		log := logger.Get().With("request_id", requestID, "method", info.FullMethod)
		ctx = logger.WithContext(ctx, log)

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				log.Error("Recovered from panic", "panic", r)
				err = status.Error(codes.Internal, "internal error")
			}
			log.Debug("rpc", "code", status.Code(err).String(), "time", time.Since(start))
		}()

		return handler(ctx, req)
	}
}
