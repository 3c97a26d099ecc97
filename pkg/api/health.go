package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cuemby/eventchannel/pkg/log"
	"github.com/cuemby/eventchannel/pkg/metrics"
)

// HealthServer serves the HTTP health, readiness and metrics endpoints
type HealthServer struct {
	checker *metrics.HealthChecker
	mux     *http.ServeMux
	server  *http.Server
}

// NewHealthServer creates the HTTP server around checker
func NewHealthServer(checker *metrics.HealthChecker) *HealthServer {
	mux := http.NewServeMux()
	hs := &HealthServer{
		checker: checker,
		mux:     mux,
	}

	mux.HandleFunc("/health", checker.HealthHandler())
	mux.HandleFunc("/ready", checker.ReadyHandler())
	mux.Handle("/metrics", metrics.Handler())

	hs.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return hs
}

// Start listens on addr and serves until Shutdown
func (hs *HealthServer) Start(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return hs.Serve(lis)
}

// Serve serves on lis until Shutdown
func (hs *HealthServer) Serve(lis net.Listener) error {
	log.Logger.Info().Str("addr", lis.Addr().String()).Msg("HTTP health and metrics listening")
	if err := hs.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server
func (hs *HealthServer) Shutdown(ctx context.Context) error {
	return hs.server.Shutdown(ctx)
}

// GetHandler returns the HTTP handler for embedding in other servers
func (hs *HealthServer) GetHandler() http.Handler {
	return hs.mux
}
