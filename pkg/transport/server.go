package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/cuemby/eventchannel/api/proto"
	"github.com/cuemby/eventchannel/pkg/channel"
	"github.com/cuemby/eventchannel/pkg/events"
	"github.com/cuemby/eventchannel/pkg/log"
	"github.com/cuemby/eventchannel/pkg/proxy"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var errUnknownConnection = errors.New("unknown connection")

type supplierSession struct {
	channel  string
	supplier *proxy.Supplier
}

type consumerSession struct {
	channel  string
	consumer *proxy.Consumer
	remote   *RemoteConsumer
}

// Server exposes the channel registry over gRPC
type Server struct {
	proto.UnimplementedBrokerServiceServer

	registry *channel.Registry
	admin    *channel.Admin
	broker   *events.Broker
	breaker  BreakerSettings

	mu        sync.Mutex
	suppliers map[string]*supplierSession
	consumers map[string]*consumerSession

	grpc     *grpc.Server
	health   *health.Server
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   zerolog.Logger
}

// ServerOptions configures a Server
type ServerOptions struct {
	// Admin handles Reset; Reset is refused when nil
	Admin *channel.Admin

	// Broker feeds Watch; Watch is refused when nil
	Broker *events.Broker

	Breaker BreakerSettings

	// Interceptors wrap every call, for instance with metrics
	UnaryInterceptors  []grpc.UnaryServerInterceptor
	StreamInterceptors []grpc.StreamServerInterceptor
}

// NewServer creates the gRPC front end of registry
func NewServer(registry *channel.Registry, opts ServerOptions) *Server {
	s := &Server{
		registry:  registry,
		admin:     opts.Admin,
		broker:    opts.Broker,
		breaker:   opts.Breaker,
		suppliers: make(map[string]*supplierSession),
		consumers: make(map[string]*consumerSession),
		grpc: grpc.NewServer(
			grpc.ChainUnaryInterceptor(opts.UnaryInterceptors...),
			grpc.ChainStreamInterceptor(opts.StreamInterceptors...),
		),
		health: health.NewServer(),
		stopCh: make(chan struct{}),
		logger: log.WithComponent("grpc"),
	}

	proto.RegisterBrokerServiceServer(s.grpc, s)
	grpc_health_v1.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus(BrokerServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return s
}

// Serve blocks serving on lis until Stop
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info().Str("addr", lis.Addr().String()).Msg("gRPC API listening")
	return s.grpc.Serve(lis)
}

// Start listens on addr and serves
func (s *Server) Start(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(lis)
}

// Stop gracefully stops the gRPC server
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.health.Shutdown()
		s.grpc.GracefulStop()

		s.mu.Lock()
		defer s.mu.Unlock()
		for id, sess := range s.consumers {
			sess.remote.Close()
			delete(s.consumers, id)
		}
	})
}

func (s *Server) ConnectSupplier(ctx context.Context, req *proto.ConnectSupplierRequest) (*proto.ConnectSupplierResponse, error) {
	if req.GetChannel() == "" {
		return nil, status.Error(codes.InvalidArgument, "channel is required")
	}

	ch, err := s.registry.Lookup(req.GetChannel())
	if err != nil {
		return nil, toStatus(err)
	}
	supplier, err := ch.ObtainSupplierProxy()
	if err != nil {
		return nil, toStatus(err)
	}

	id := supplier.ID()
	s.mu.Lock()
	s.suppliers[id] = &supplierSession{channel: req.GetChannel(), supplier: supplier}
	s.mu.Unlock()
	supplier.OnDetach(func() { s.dropSupplier(id) })

	if err := supplier.Connect(proxy.DetachedPeer{}); err != nil {
		s.dropSupplier(id)
		return nil, toStatus(err)
	}
	return &proto.ConnectSupplierResponse{ConnectionId: id}, nil
}

func (s *Server) Push(ctx context.Context, req *proto.PushRequest) (*proto.PushResponse, error) {
	sess, err := s.supplierSession(req.GetChannel(), req.GetConnectionId())
	if err != nil {
		return nil, toStatus(err)
	}
	if err := sess.supplier.Push(ctx, req.GetPayload()); err != nil {
		if errors.Is(err, proxy.ErrNotConnected) {
			s.dropSupplier(req.GetConnectionId())
		}
		return nil, toStatus(err)
	}
	return &proto.PushResponse{}, nil
}

func (s *Server) DisconnectSupplier(ctx context.Context, req *proto.DisconnectSupplierRequest) (*proto.DisconnectSupplierResponse, error) {
	sess, err := s.supplierSession(req.GetChannel(), req.GetConnectionId())
	if err != nil {
		return nil, toStatus(err)
	}
	sess.supplier.Disconnect(ctx)
	return &proto.DisconnectSupplierResponse{}, nil
}

func (s *Server) Subscribe(ctx context.Context, req *proto.SubscribeRequest) (*proto.SubscribeResponse, error) {
	name := req.GetChannel()
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "channel is required")
	}
	if req.GetEndpoint() == "" {
		return nil, status.Error(codes.InvalidArgument, "consumer endpoint is required")
	}

	ch, err := s.registry.Lookup(name)
	if err != nil {
		return nil, toStatus(err)
	}

	remote, err := DialConsumer(req.GetEndpoint(), name, s.breaker)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := remote.Ping(ctx); err != nil {
		remote.Close()
		return nil, status.Errorf(codes.FailedPrecondition, "consumer endpoint not reachable: %v", err)
	}

	consumer, err := ch.ObtainConsumerProxy()
	if err != nil {
		remote.Close()
		return nil, toStatus(err)
	}

	// Register the session first so a prune right after Connect can find it
	id := consumer.ID()
	s.mu.Lock()
	s.consumers[id] = &consumerSession{channel: name, consumer: consumer, remote: remote}
	s.mu.Unlock()
	consumer.OnDetach(func() { s.dropConsumer(id) })

	if err := consumer.Connect(remote); err != nil {
		s.dropConsumer(id)
		return nil, toStatus(err)
	}

	s.logger.Info().
		Str("channel", name).
		Str("conn_id", id).
		Str("endpoint", remote.Addr()).
		Msg("Consumer subscribed")
	return &proto.SubscribeResponse{ConnectionId: id}, nil
}

func (s *Server) Unsubscribe(ctx context.Context, req *proto.UnsubscribeRequest) (*proto.UnsubscribeResponse, error) {
	connID := req.GetConnectionId()

	s.mu.Lock()
	sess, ok := s.consumers[connID]
	s.mu.Unlock()
	if !ok || sess.channel != req.GetChannel() {
		return nil, toStatus(fmt.Errorf("%w: %s", errUnknownConnection, connID))
	}

	// The consumer asked to leave; it is not notified back
	sess.consumer.Disconnect(ctx)
	return &proto.UnsubscribeResponse{}, nil
}

func (s *Server) ListChannels(ctx context.Context, _ *proto.ListChannelsRequest) (*proto.ListChannelsResponse, error) {
	stats := s.registry.Stats()
	out := &proto.ListChannelsResponse{Channels: make([]*proto.ChannelInfo, 0, len(stats))}
	for _, st := range stats {
		out.Channels = append(out.Channels, &proto.ChannelInfo{
			Name:       st.Name,
			Persistent: st.Persistent,
			QueueDepth: int64(st.QueueDepth),
			Consumers:  int32(st.Consumers),
			Suppliers:  int32(st.Suppliers),
		})
	}
	return out, nil
}

func (s *Server) Reset(ctx context.Context, in *proto.ResetRequest) (*proto.ResetResponse, error) {
	if s.admin == nil {
		return nil, status.Error(codes.Unimplemented, "admin channel is not configured")
	}

	req := resetFromProto(in)
	if err := req.Validate(); err != nil {
		return nil, toStatus(err)
	}
	n, err := s.admin.Apply(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &proto.ResetResponse{ResetCount: int64(n)}, nil
}

func (s *Server) Watch(_ *proto.WatchRequest, stream grpc.ServerStreamingServer[proto.LifecycleEvent]) error {
	if s.broker == nil {
		return status.Error(codes.Unimplemented, "lifecycle events are not enabled")
	}

	sub := s.broker.Subscribe()
	defer s.broker.Unsubscribe(sub)

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stopCh:
			return nil
		case ev, ok := <-sub:
			if !ok {
				return nil
			}
			if err := stream.Send(lifecycleEvent(ev)); err != nil {
				return err
			}
		}
	}
}

func lifecycleEvent(ev *events.Event) *proto.LifecycleEvent {
	return &proto.LifecycleEvent{
		Type:      string(ev.Type),
		Channel:   ev.Channel,
		Timestamp: timestamppb.New(ev.Timestamp),
		Message:   ev.Message,
		Metadata:  ev.Metadata,
	}
}

func (s *Server) supplierSession(channelName, connID string) (*supplierSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.suppliers[connID]
	if !ok || sess.channel != channelName {
		return nil, fmt.Errorf("%w: %s", errUnknownConnection, connID)
	}
	return sess, nil
}

func (s *Server) dropSupplier(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.suppliers, connID)
}

func (s *Server) dropConsumer(connID string) {
	s.mu.Lock()
	sess, ok := s.consumers[connID]
	delete(s.consumers, connID)
	s.mu.Unlock()

	if ok {
		sess.remote.Close()
	}
}

// sessionCount reports the open supplier and consumer sessions
func (s *Server) sessionCount() (suppliers, consumers int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.suppliers), len(s.consumers)
}
