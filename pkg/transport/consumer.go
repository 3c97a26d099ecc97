package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/cuemby/eventchannel/api/proto"
	"github.com/cuemby/eventchannel/pkg/log"
	"github.com/cuemby/eventchannel/pkg/proxy"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// BreakerSettings tunes the circuit breaker in front of a remote consumer
type BreakerSettings struct {
	// FailureThreshold is the number of consecutive failed pushes that
	// opens the breaker; zero disables it
	FailureThreshold uint32

	// OpenTimeout is how long the breaker stays open before a trial push
	OpenTimeout time.Duration
}

// DefaultBreakerSettings opens after five consecutive failures for 30s
var DefaultBreakerSettings = BreakerSettings{
	FailureThreshold: 5,
	OpenTimeout:      30 * time.Second,
}

// RemoteConsumer is a consumer peer reached over gRPC. Ping uses the
// standard health service; pushes go through a circuit breaker so a
// consumer that keeps failing is skipped quickly.
type RemoteConsumer struct {
	addr    string
	channel string
	conn    *grpc.ClientConn
	client  proto.ConsumerServiceClient
	health  grpc_health_v1.HealthClient
	breaker *gobreaker.CircuitBreaker

	closeOnce sync.Once
	logger    zerolog.Logger
}

// DialConsumer creates a client for the consumer endpoint at addr that
// receives events of channel. No connection is made until the first call.
func DialConsumer(addr, channel string, settings BreakerSettings) (*RemoteConsumer, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer client for %s: %w", addr, err)
	}

	rc := &RemoteConsumer{
		addr:    addr,
		channel: channel,
		conn:    conn,
		client:  proto.NewConsumerServiceClient(conn),
		health:  grpc_health_v1.NewHealthClient(conn),
		logger:  log.WithChannel("transport", channel).With().Str("consumer_addr", addr).Logger(),
	}

	if settings.FailureThreshold > 0 {
		rc.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        addr,
			MaxRequests: 1,
			Timeout:     settings.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= settings.FailureThreshold
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				rc.logger.Warn().
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("Consumer circuit breaker state changed")
			},
		})
	}
	return rc, nil
}

// Addr returns the consumer endpoint
func (r *RemoteConsumer) Addr() string { return r.addr }

// Ping checks the consumer's health service. Transport failures and a
// NOT_SERVING answer are reported as ErrPeerUnreachable.
func (r *RemoteConsumer) Ping(ctx context.Context) error {
	resp, err := r.health.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ConsumerServiceName})
	if err != nil {
		return classify(err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: consumer reports %s", proxy.ErrPeerUnreachable, resp.GetStatus())
	}
	return nil
}

// Push delivers one message
func (r *RemoteConsumer) Push(ctx context.Context, message string) error {
	push := func() error {
		_, err := r.client.Deliver(ctx, &proto.DeliverRequest{Channel: r.channel, Message: message})
		return err
	}

	if r.breaker == nil {
		return classify(push())
	}

	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, push()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("consumer %s: %w", r.addr, err)
	}
	return classify(err)
}

// Disconnect tells the consumer it has been detached and releases the
// client connection
func (r *RemoteConsumer) Disconnect(ctx context.Context) error {
	defer r.Close()
	_, err := r.client.Disconnect(ctx, &proto.DisconnectRequest{Channel: r.channel})
	return classify(err)
}

// Close releases the client connection without notifying the consumer
func (r *RemoteConsumer) Close() {
	r.closeOnce.Do(func() {
		if err := r.conn.Close(); err != nil {
			r.logger.Debug().Err(err).Msg("Failed to close consumer connection")
		}
	})
}

// classify wraps connection-failure statuses with ErrPeerUnreachable
func classify(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.Unavailable {
		return fmt.Errorf("%w: %v", proxy.ErrPeerUnreachable, err)
	}
	return err
}

// DeliverFunc handles one pushed event on the consumer side. A returned
// error is reported to the broker as a failed delivery.
type DeliverFunc func(ctx context.Context, message string) error

// ConsumerServer is the endpoint a subscriber exposes for the broker to
// push events to
type ConsumerServer struct {
	proto.UnimplementedConsumerServiceServer

	deliver      DeliverFunc
	onDisconnect func()

	grpc     *grpc.Server
	health   *health.Server
	listener net.Listener
	logger   zerolog.Logger
}

// NewConsumerServer creates a consumer endpoint. onDisconnect, if not nil,
// runs when the broker detaches this consumer.
func NewConsumerServer(deliver DeliverFunc, onDisconnect func()) *ConsumerServer {
	s := &ConsumerServer{
		deliver:      deliver,
		onDisconnect: onDisconnect,
		grpc:         grpc.NewServer(),
		health:       health.NewServer(),
		logger:       log.WithComponent("consumer-server"),
	}

	proto.RegisterConsumerServiceServer(s.grpc, s)
	grpc_health_v1.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus(ConsumerServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return s
}

// Listen binds the endpoint; use ":0" for an ephemeral port
func (s *ConsumerServer) Listen(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = lis
	return nil
}

// Addr returns the bound address
func (s *ConsumerServer) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve blocks serving pushes until Stop
func (s *ConsumerServer) Serve() error {
	if s.listener == nil {
		return errors.New("consumer server is not listening")
	}
	s.logger.Info().Str("addr", s.Addr()).Msg("Consumer endpoint listening")
	return s.grpc.Serve(s.listener)
}

// Stop marks the endpoint as not serving and stops it
func (s *ConsumerServer) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

func (s *ConsumerServer) Deliver(ctx context.Context, req *proto.DeliverRequest) (*proto.DeliverResponse, error) {
	if err := s.deliver(ctx, req.GetMessage()); err != nil {
		return nil, status.Error(codes.Aborted, err.Error())
	}
	return &proto.DeliverResponse{}, nil
}

func (s *ConsumerServer) Disconnect(ctx context.Context, req *proto.DisconnectRequest) (*proto.DisconnectResponse, error) {
	s.logger.Info().Str("channel", req.GetChannel()).Msg("Detached by broker")
	if s.onDisconnect != nil {
		go s.onDisconnect()
	}
	return &proto.DisconnectResponse{}, nil
}
