package api

import (
	"context"
	"testing"

	"github.com/cuemby/eventchannel/pkg/metrics"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func counterValue(t *testing.T, method, code string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.APIRequestsTotal.WithLabelValues(method, code).Write(&m))
	return m.GetCounter().GetValue()
}

func TestMethodName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/eventchannel.v1.BrokerService/Push", "Push"},
		{"/eventchannel.v1.BrokerService/ListChannels", "ListChannels"},
		{"Push", "Push"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, methodName(tt.input))
		})
	}
}

func TestMetricsUnaryInterceptor(t *testing.T) {
	interceptor := MetricsUnaryInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/eventchannel.v1.BrokerService/InterceptedUnary"}

	before := counterValue(t, "InterceptedUnary", codes.OK.String())
	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, before+1, counterValue(t, "InterceptedUnary", codes.OK.String()))

	beforeErr := counterValue(t, "InterceptedUnary", codes.NotFound.String())
	_, err = interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.NotFound, "missing")
	})
	assert.Error(t, err)
	assert.Equal(t, beforeErr+1, counterValue(t, "InterceptedUnary", codes.NotFound.String()))
}

func TestMetricsStreamInterceptor(t *testing.T) {
	interceptor := MetricsStreamInterceptor()
	info := &grpc.StreamServerInfo{FullMethod: "/eventchannel.v1.BrokerService/InterceptedStream", IsServerStream: true}

	before := counterValue(t, "InterceptedStream", codes.OK.String())
	err := interceptor(nil, nil, info, func(srv interface{}, stream grpc.ServerStream) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, before+1, counterValue(t, "InterceptedStream", codes.OK.String()))
}
