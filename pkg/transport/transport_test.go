package transport

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/cuemby/eventchannel/api/proto"
	"github.com/cuemby/eventchannel/pkg/channel"
	"github.com/cuemby/eventchannel/pkg/events"
	"github.com/cuemby/eventchannel/pkg/proxy"
	"github.com/cuemby/eventchannel/pkg/storage"
	"github.com/cuemby/eventchannel/pkg/types"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	waitFor = 5 * time.Second
	tick    = 10 * time.Millisecond
)

type fixture struct {
	registry *channel.Registry
	server   *Server
	client   *Client
	broker   *events.Broker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := storage.NewBoltStore(t.TempDir())
	require.NoError(t, err)

	broker := events.NewBroker()
	broker.Start()

	registry := channel.NewRegistry()
	_, err = registry.Create(channel.Config{Name: "orders"}, store, channel.WithEvents(broker))
	require.NoError(t, err)

	admin, err := channel.NewAdmin(channel.DefaultAdminChannel, store, registry, channel.WithEvents(broker))
	require.NoError(t, err)
	require.NoError(t, registry.Register(admin.Channel))

	srv := NewServer(registry, ServerOptions{Admin: admin, Broker: broker, Breaker: DefaultBreakerSettings})
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(lis) }()

	client, err := NewClient(lis.Addr().String())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
		srv.Stop()
		registry.Shutdown(context.Background())
		broker.Stop()
		_ = store.Close()
	})

	return &fixture{registry: registry, server: srv, client: client, broker: broker}
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

func startConsumer(t *testing.T, deliver DeliverFunc) *ConsumerServer {
	t.Helper()
	cs := NewConsumerServer(deliver, nil)
	require.NoError(t, cs.Listen("127.0.0.1:0"))
	go func() { _ = cs.Serve() }()
	t.Cleanup(cs.Stop)
	return cs
}

func TestPushAndDeliverOverGRPC(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	box := &inbox{}
	cs := startConsumer(t, box.deliver)

	connID, err := f.client.Subscribe(ctx, "orders", cs.Addr())
	require.NoError(t, err)
	assert.NotEmpty(t, connID)

	supplier, err := f.client.ConnectSupplier(ctx, "orders")
	require.NoError(t, err)

	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, supplier.Push(ctx, msg))
	}

	require.Eventually(t, func() bool {
		return len(box.snapshot()) == 3
	}, waitFor, tick)
	assert.Equal(t, []string{"one", "two", "three"}, box.snapshot())

	stats, err := f.client.ListChannels(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "admin", stats[0].Name)
	assert.Equal(t, "orders", stats[1].Name)
	assert.Equal(t, 1, stats[1].Consumers)
	assert.Equal(t, 1, stats[1].Suppliers)

	require.NoError(t, supplier.Disconnect(ctx))
	require.NoError(t, f.client.Unsubscribe(ctx, "orders", connID))

	ch, err := f.registry.Lookup("orders")
	require.NoError(t, err)
	assert.Equal(t, 0, ch.ConsumerCount())
	assert.Equal(t, 0, ch.SupplierCount())

	err = supplier.Push(ctx, "after disconnect")
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestErrorCodes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.client.ConnectSupplier(ctx, "missing")
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = f.client.Subscribe(ctx, "orders", "")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	err = f.client.Unsubscribe(ctx, "orders", "nope")
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = f.client.Reset(ctx, types.ResetRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	negative := -1
	_, err = f.client.Reset(ctx, types.ResetRequest{ChannelName: "orders", RetryCeiling: &negative})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	n, err := f.client.Reset(ctx, types.ResetRequest{ChannelName: "orders"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestSubscribeUnreachableEndpoint(t *testing.T) {
	f := newFixture(t)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	_, err = f.client.Subscribe(ctx, "orders", addr)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestRemoteConsumerPingClassifiesStoppedEndpoint(t *testing.T) {
	cs := NewConsumerServer(func(context.Context, string) error { return nil }, nil)
	require.NoError(t, cs.Listen("127.0.0.1:0"))
	go func() { _ = cs.Serve() }()

	rc, err := DialConsumer(cs.Addr(), "orders", BreakerSettings{})
	require.NoError(t, err)
	defer rc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, rc.Ping(ctx))

	cs.Stop()

	err = rc.Ping(ctx)
	require.Error(t, err)
	assert.True(t, proxy.IsConnectionFailure(err))
}

func TestRemoteConsumerBreakerOpens(t *testing.T) {
	var calls int
	var mu sync.Mutex
	cs := startConsumer(t, func(context.Context, string) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return errors.New("cannot handle")
	})

	rc, err := DialConsumer(cs.Addr(), "orders", BreakerSettings{FailureThreshold: 2, OpenTimeout: time.Minute})
	require.NoError(t, err)
	defer rc.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		err := rc.Push(ctx, "x")
		require.Error(t, err)
		assert.Equal(t, codes.Aborted, status.Code(err))
	}

	err = rc.Push(ctx, "x")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls)
}

func TestConsumerDisconnectNotice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	detached := make(chan struct{})
	cs := NewConsumerServer(func(context.Context, string) error { return nil }, func() { close(detached) })
	require.NoError(t, cs.Listen("127.0.0.1:0"))
	go func() { _ = cs.Serve() }()
	t.Cleanup(cs.Stop)

	_, err := f.client.Subscribe(ctx, "orders", cs.Addr())
	require.NoError(t, err)

	require.NoError(t, f.registry.Remove(ctx, "orders"))

	select {
	case <-detached:
	case <-time.After(waitFor):
		t.Fatal("consumer was not notified of the detach")
	}
}

func TestSessionsDroppedOnDetachWithoutBroker(t *testing.T) {
	store, err := storage.NewBoltStore(t.TempDir())
	require.NoError(t, err)

	registry := channel.NewRegistry()
	_, err = registry.Create(channel.Config{Name: "orders"}, store)
	require.NoError(t, err)

	srv := NewServer(registry, ServerOptions{})
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(lis) }()

	client, err := NewClient(lis.Addr().String())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
		srv.Stop()
		registry.Shutdown(context.Background())
		_ = store.Close()
	})

	ctx := context.Background()
	cs := startConsumer(t, (&inbox{}).deliver)
	_, err = client.Subscribe(ctx, "orders", cs.Addr())
	require.NoError(t, err)
	_, err = client.ConnectSupplier(ctx, "orders")
	require.NoError(t, err)

	suppliers, consumers := srv.sessionCount()
	assert.Equal(t, 1, suppliers)
	assert.Equal(t, 1, consumers)

	require.NoError(t, registry.Remove(ctx, "orders"))

	require.Eventually(t, func() bool {
		suppliers, consumers := srv.sessionCount()
		return suppliers == 0 && consumers == 0
	}, waitFor, tick)
}

func TestWatchWithoutBroker(t *testing.T) {
	srv := NewServer(channel.NewRegistry(), ServerOptions{})
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	client, err := NewClient(lis.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	err = client.Watch(context.Background(), func(*proto.LifecycleEvent) {})
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestWatchStreamsLifecycleEvents(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *proto.LifecycleEvent, 16)
	go func() {
		_ = f.client.Watch(ctx, func(ev *proto.LifecycleEvent) {
			got <- ev
		})
	}()

	// Wait until the stream is subscribed before producing events
	require.Eventually(t, func() bool {
		return f.broker.SubscriberCount() >= 1
	}, waitFor, tick)

	_, err := f.client.ConnectSupplier(context.Background(), "orders")
	require.NoError(t, err)

	select {
	case ev := <-got:
		assert.Equal(t, string(events.EventSupplierAttached), ev.GetType())
		assert.Equal(t, "orders", ev.GetChannel())
		assert.False(t, ev.GetTimestamp().AsTime().IsZero())
	case <-time.After(waitFor):
		t.Fatal("no lifecycle event received")
	}
}
