package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/cuemby/eventchannel/pkg/config"
	"github.com/cuemby/eventchannel/pkg/metrics"
	"github.com/cuemby/eventchannel/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 5 * time.Second
	tick    = 20 * time.Millisecond
)

func testConfig(t *testing.T, dataDir string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(`
server:
  grpc_addr: 127.0.0.1:0
  http_addr: 127.0.0.1:0
channels:
  - name: orders
    persistent: true
    max_push_wait: 2s
  - name: ticks
`))
	require.NoError(t, err)
	cfg.Server.DataDir = dataDir
	return cfg
}

func startServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	srv, err := New(cfg, "test")
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	return srv
}

type inbox struct {
	mu       sync.Mutex
	messages []string
}

func (i *inbox) deliver(_ context.Context, message string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.messages = append(i.messages, message)
	return nil
}

func (i *inbox) snapshot() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.messages...)
}

func TestServerLifecycle(t *testing.T) {
	srv := startServer(t, testConfig(t, t.TempDir()))
	defer func() { require.NoError(t, srv.Stop(context.Background())) }()

	names := []string{}
	for _, c := range srv.Registry().List() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"admin", "orders", "ticks"}, names)

	resp, err := http.Get("http://" + srv.HTTPAddr() + "/ready")
	require.NoError(t, err)
	defer resp.Body.Close()

	var ready metrics.HealthStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ready))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", ready.Status)
}

func TestDurableEventsSurviveRestart(t *testing.T) {
	dataDir := t.TempDir()
	ctx := context.Background()

	srv := startServer(t, testConfig(t, dataDir))
	client, err := transport.NewClient(srv.GRPCAddr())
	require.NoError(t, err)

	supplier, err := client.ConnectSupplier(ctx, "orders")
	require.NoError(t, err)
	for _, msg := range []string{"a", "b", "c"} {
		require.NoError(t, supplier.Push(ctx, msg))
	}
	require.NoError(t, client.Close())
	require.NoError(t, srv.Stop(ctx))

	srv = startServer(t, testConfig(t, dataDir))
	defer func() { require.NoError(t, srv.Stop(ctx)) }()

	box := &inbox{}
	cs := transport.NewConsumerServer(box.deliver, nil)
	require.NoError(t, cs.Listen("127.0.0.1:0"))
	go func() { _ = cs.Serve() }()
	defer cs.Stop()

	client, err = transport.NewClient(srv.GRPCAddr())
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Subscribe(ctx, "orders", cs.Addr())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(box.snapshot()) == 3
	}, waitFor, tick)
	assert.Equal(t, []string{"a", "b", "c"}, box.snapshot())
}

func TestNewRejectsDuplicateAdminName(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	cfg.AdminChannel = "orders"

	_, err := New(cfg, "test")
	assert.Error(t, err)
}
