package api

import (
	"context"
	"strings"

	"github.com/cuemby/eventchannel/pkg/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// MetricsUnaryInterceptor records request counts and latency of unary calls
func MetricsUnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		timer := metrics.NewTimer()
		resp, err := handler(ctx, req)
		record(info.FullMethod, err, timer)
		return resp, err
	}
}

// MetricsStreamInterceptor records request counts and duration of streams
func MetricsStreamInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		timer := metrics.NewTimer()
		err := handler(srv, ss)
		record(info.FullMethod, err, timer)
		return err
	}
}

func record(fullMethod string, err error, timer *metrics.Timer) {
	method := methodName(fullMethod)
	metrics.APIRequestsTotal.WithLabelValues(method, status.Code(err).String()).Inc()
	timer.ObserveDurationVec(metrics.APIRequestDuration, method)
}

// methodName extracts the method from a full gRPC path
// ("/eventchannel.v1.BrokerService/Push" -> "Push")
func methodName(fullMethod string) string {
	parts := strings.Split(fullMethod, "/")
	if len(parts) < 2 {
		return fullMethod
	}
	return parts[len(parts)-1]
}
