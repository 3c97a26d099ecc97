package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/cuemby/eventchannel/pkg/api"
	"github.com/cuemby/eventchannel/pkg/channel"
	"github.com/cuemby/eventchannel/pkg/config"
	"github.com/cuemby/eventchannel/pkg/events"
	"github.com/cuemby/eventchannel/pkg/log"
	"github.com/cuemby/eventchannel/pkg/metrics"
	"github.com/cuemby/eventchannel/pkg/storage"
	"github.com/cuemby/eventchannel/pkg/transport"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
)

// storeProbeInterval is how often the store health is refreshed
const storeProbeInterval = 30 * time.Second

// Server owns the store, the channel registry and the network listeners
type Server struct {
	cfg *config.Config

	store     *storage.BoltStore
	registry  *channel.Registry
	admin     *channel.Admin
	broker    *events.Broker
	collector *metrics.Collector
	health    *metrics.HealthChecker

	grpc *transport.Server
	http *api.HealthServer

	grpcLis net.Listener
	httpLis net.Listener

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	logger   zerolog.Logger
}

// New opens the store and creates every configured channel. Nothing is
// listening until Start.
func New(cfg *config.Config, version string) (*Server, error) {
	logger := log.WithComponent("server")

	if err := os.MkdirAll(cfg.Server.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	store, err := storage.NewBoltStore(cfg.Server.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		store:    store,
		registry: channel.NewRegistry(),
		broker:   events.NewBroker(),
		health:   metrics.NewHealthChecker(version),
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
	s.health.Set(metrics.ComponentStore, true, "")
	s.broker.Start()

	if err := s.createChannels(); err != nil {
		s.registry.Shutdown(context.Background())
		s.broker.Stop()
		_ = store.Close()
		return nil, err
	}
	s.health.Set(metrics.ComponentChannels, true, "")

	s.collector = metrics.NewCollector(s.registry)
	s.grpc = transport.NewServer(s.registry, transport.ServerOptions{
		Admin:              s.admin,
		Broker:             s.broker,
		Breaker:            transport.DefaultBreakerSettings,
		UnaryInterceptors:  []grpc.UnaryServerInterceptor{api.MetricsUnaryInterceptor()},
		StreamInterceptors: []grpc.StreamServerInterceptor{api.MetricsStreamInterceptor()},
	})
	s.http = api.NewHealthServer(s.health)

	return s, nil
}

func (s *Server) createChannels() error {
	opts := []channel.Option{channel.WithEvents(s.broker)}

	for _, cc := range s.cfg.Channels {
		if _, err := s.registry.Create(cc.ChannelConfig(), s.store, opts...); err != nil {
			return fmt.Errorf("failed to create channel %s: %w", cc.Name, err)
		}
	}

	admin, err := channel.NewAdmin(s.cfg.AdminChannel, s.store, s.registry, opts...)
	if err != nil {
		return fmt.Errorf("failed to create admin channel: %w", err)
	}
	if err := s.registry.Register(admin.Channel); err != nil {
		admin.Destroy(context.Background())
		return fmt.Errorf("failed to register admin channel: %w", err)
	}
	s.admin = admin

	s.logger.Info().
		Int("channels", len(s.cfg.Channels)).
		Str("admin_channel", admin.Name()).
		Msg("Channels created")
	return nil
}

// Start binds the gRPC and HTTP listeners and serves in the background
func (s *Server) Start() error {
	grpcLis, err := net.Listen("tcp", s.cfg.Server.GRPCAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Server.GRPCAddr, err)
	}
	httpLis, err := net.Listen("tcp", s.cfg.Server.HTTPAddr)
	if err != nil {
		grpcLis.Close()
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Server.HTTPAddr, err)
	}
	s.grpcLis, s.httpLis = grpcLis, httpLis

	s.wg.Add(4)
	go func() {
		defer s.wg.Done()
		if err := s.grpc.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			s.logger.Error().Err(err).Msg("gRPC server failed")
			s.health.Set(metrics.ComponentGRPC, false, err.Error())
		}
	}()
	go func() {
		defer s.wg.Done()
		if err := s.http.Serve(httpLis); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()
	go func() {
		defer s.wg.Done()
		s.logEvents(s.broker.Subscribe())
	}()
	go func() {
		defer s.wg.Done()
		s.probeStore()
	}()

	s.collector.Start()
	s.health.Set(metrics.ComponentGRPC, true, "")

	s.logger.Info().
		Str("grpc_addr", grpcLis.Addr().String()).
		Str("http_addr", httpLis.Addr().String()).
		Msg("Event channel server started")
	return nil
}

// GRPCAddr returns the bound gRPC address
func (s *Server) GRPCAddr() string {
	if s.grpcLis == nil {
		return ""
	}
	return s.grpcLis.Addr().String()
}

// HTTPAddr returns the bound HTTP address
func (s *Server) HTTPAddr() string {
	if s.httpLis == nil {
		return ""
	}
	return s.httpLis.Addr().String()
}

// Registry returns the channel registry
func (s *Server) Registry() *channel.Registry { return s.registry }

// Health returns the component health checker
func (s *Server) Health() *metrics.HealthChecker { return s.health }

// Stop stops accepting calls, destroys every channel and closes the store
func (s *Server) Stop(ctx context.Context) error {
	var stopErr error
	s.stopOnce.Do(func() {
		s.logger.Info().Msg("Stopping event channel server")
		close(s.stopCh)

		s.health.Set(metrics.ComponentGRPC, false, "shutting down")
		s.grpc.Stop()

		s.registry.Shutdown(ctx)
		s.health.Set(metrics.ComponentChannels, false, "shut down")

		if s.httpLis != nil {
			if err := s.http.Shutdown(ctx); err != nil {
				stopErr = fmt.Errorf("failed to stop HTTP server: %w", err)
			}
		}
		s.collector.Stop()
		s.broker.Stop()
		s.wg.Wait()

		if err := s.store.Close(); err != nil && stopErr == nil {
			stopErr = fmt.Errorf("failed to close store: %w", err)
		}
		s.logger.Info().Msg("Event channel server stopped")
	})
	return stopErr
}

// logEvents writes lifecycle notifications to the log until the broker stops
func (s *Server) logEvents(sub events.Subscriber) {
	for ev := range sub {
		entry := s.logger.Debug()
		if ev.Type == events.EventDeliveryFailed || ev.Type == events.EventFailedEventsReset {
			entry = s.logger.Info()
		}
		entry.
			Str("event", string(ev.Type)).
			Str("channel", ev.Channel).
			Str("detail", ev.Message).
			Msg("Lifecycle event")
	}
}

func (s *Server) probeStore() {
	ticker := time.NewTicker(storeProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.store.Ping(); err != nil {
				s.logger.Error().Err(err).Msg("Store probe failed")
				s.health.Set(metrics.ComponentStore, false, err.Error())
				continue
			}
			s.health.Set(metrics.ComponentStore, true, "")
		case <-s.stopCh:
			return
		}
	}
}
