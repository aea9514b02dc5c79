package interceptor

import (
	"context"

	"google.golang.org/grpc/metadata"
)

const requestIDKey = "x-request-id"

// RequestIDFromContext returns the caller-supplied request id from the
// incoming gRPC metadata, or "" when there is none.
func RequestIDFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	ids := md.Get(requestIDKey)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
