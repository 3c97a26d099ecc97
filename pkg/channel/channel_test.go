package channel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cuemby/eventchannel/pkg/events"
	"github.com/cuemby/eventchannel/pkg/policy"
	"github.com/cuemby/eventchannel/pkg/proxy"
	"github.com/cuemby/eventchannel/pkg/storage"
	"github.com/cuemby/eventchannel/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 3 * time.Second
	tick    = 10 * time.Millisecond
)

type recordingPeer struct {
	mu          sync.Mutex
	received    []string
	disconnects int
	fail        atomic.Bool
	dead        atomic.Bool
}

func (p *recordingPeer) Ping(context.Context) error {
	if p.dead.Load() {
		return proxy.ErrPeerUnreachable
	}
	return nil
}

func (p *recordingPeer) Disconnect(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnects++
	return nil
}

func (p *recordingPeer) Push(_ context.Context, message string) error {
	if p.fail.Load() {
		return errors.New("consumer rejected event")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.received = append(p.received, message)
	return nil
}

func (p *recordingPeer) messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.received...)
}

type countingPolicy struct {
	calls atomic.Int32
}

func (p *countingPolicy) Deliver(context.Context, []policy.Consumer, *types.Event) types.Outcome {
	p.calls.Add(1)
	return types.Outcome{Status: types.DeliverySuccessful}
}

func newStore(t *testing.T) *storage.BoltStore {
	t.Helper()
	store, err := storage.NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newChannelT(t *testing.T, cfg Config, store storage.EventStore, opts ...Option) *Channel {
	t.Helper()
	c, err := New(cfg, store, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { c.Destroy(context.Background()) })
	return c
}

func attachConsumer(t *testing.T, c *Channel) (*proxy.Consumer, *recordingPeer) {
	t.Helper()
	cons, err := c.ObtainConsumerProxy()
	require.NoError(t, err)
	peer := &recordingPeer{}
	require.NoError(t, cons.Connect(peer))
	return cons, peer
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing name", cfg: Config{}},
		{name: "negative batch", cfg: Config{Name: "orders", BatchSize: -1}},
		{name: "negative push wait", cfg: Config{Name: "orders", MaxPushWait: -time.Second}},
		{name: "negative rate", cfg: Config{Name: "orders", RateLimit: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, nil)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := New(Config{Name: "orders", Persistent: true}, nil)
	assert.Error(t, err)
}

func TestDurableChannelDeliversInOrder(t *testing.T) {
	store := newStore(t)
	c := newChannelT(t, Config{Name: "orders", Persistent: true, BatchSize: 2}, store)

	want := []string{"a", "b", "c", "d", "e"}
	for _, msg := range want {
		require.NoError(t, c.SupplierPush(context.Background(), msg))
	}

	_, peer := attachConsumer(t, c)

	require.Eventually(t, func() bool {
		return len(peer.messages()) == len(want)
	}, waitFor, tick)
	assert.Equal(t, want, peer.messages())

	rows, err := store.ListEvents("orders")
	require.NoError(t, err)
	for _, ev := range rows {
		assert.Equal(t, types.ErrorStatusDelivered, ev.ErrorStatus)
	}
}

func TestTransientChannelDiscardsWithoutConsumers(t *testing.T) {
	c := newChannelT(t, Config{Name: "ticks"}, nil)

	require.NoError(t, c.SupplierPush(context.Background(), "lost-1"))
	require.NoError(t, c.SupplierPush(context.Background(), "lost-2"))

	require.Eventually(t, func() bool {
		return c.Stats().QueueDepth == 0
	}, waitFor, tick)

	_, peer := attachConsumer(t, c)
	require.NoError(t, c.SupplierPush(context.Background(), "kept"))

	require.Eventually(t, func() bool {
		return len(peer.messages()) == 1
	}, waitFor, tick)
	assert.Equal(t, []string{"kept"}, peer.messages())
}

func TestDurableChannelRetainsWithoutConsumers(t *testing.T) {
	store := newStore(t)
	c := newChannelT(t, Config{Name: "orders", Persistent: true}, store)

	require.NoError(t, c.SupplierPush(context.Background(), "a"))
	c.Alert()
	require.NoError(t, c.ConsumerPush(context.Background()))

	rows, err := store.ListEvents("orders")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ErrorStatus.Pending())
}

func TestConsumerPushWithoutConsumersNeverDelivers(t *testing.T) {
	counting := &countingPolicy{}
	c := newChannelT(t, Config{Name: "orders", Persistent: true}, newStore(t), WithPolicy(counting))

	for i := 0; i < 3; i++ {
		require.NoError(t, c.SupplierPush(context.Background(), fmt.Sprintf("m%d", i)))
	}

	require.NoError(t, c.ConsumerPush(context.Background()))
	assert.False(t, c.ReadyToDeliverEvents())
	assert.Equal(t, int32(0), counting.calls.Load())
}

func TestFailedEventsAreRetriedAfterAdminReset(t *testing.T) {
	store := newStore(t)
	registry := NewRegistry()
	t.Cleanup(func() { registry.Shutdown(context.Background()) })

	orders, err := registry.Create(Config{Name: "orders", Persistent: true}, store)
	require.NoError(t, err)

	admin, err := NewAdmin(DefaultAdminChannel, store, registry)
	require.NoError(t, err)
	require.NoError(t, registry.Register(admin.Channel))

	cons, err := orders.ObtainConsumerProxy()
	require.NoError(t, err)
	peer := &recordingPeer{}
	peer.fail.Store(true)
	require.NoError(t, cons.Connect(peer))

	require.NoError(t, orders.SupplierPush(context.Background(), "retry-me"))

	require.Eventually(t, func() bool {
		rows, err := store.ListEvents("orders")
		return err == nil && len(rows) == 1 && rows[0].ErrorStatus == types.ErrorStatusFailed
	}, waitFor, tick)

	rows, err := store.ListEvents("orders")
	require.NoError(t, err)
	assert.Equal(t, 1, rows[0].ErrorCount)
	assert.Contains(t, rows[0].LastErrorMessage, "consumer rejected event")

	peer.fail.Store(false)

	supplier, err := admin.ObtainSupplierProxy()
	require.NoError(t, err)
	require.NoError(t, supplier.Connect(proxy.DetachedPeer{}))
	require.NoError(t, supplier.Push(context.Background(), `{"channelName":"orders"}`))

	require.Eventually(t, func() bool {
		return len(peer.messages()) == 1
	}, waitFor, tick)
	assert.Equal(t, []string{"retry-me"}, peer.messages())

	got, err := store.GetEvent("orders", rows[0].ID)
	require.NoError(t, err)
	assert.Equal(t, types.ErrorStatusDelivered, got.ErrorStatus)
}

// flakyStore fails the first MarkDelivered call
type flakyStore struct {
	*storage.BoltStore
	failed atomic.Bool
}

func (s *flakyStore) MarkDelivered(channel string, id int64, at time.Time) error {
	if s.failed.CompareAndSwap(false, true) {
		return errors.New("disk unavailable")
	}
	return s.BoltStore.MarkDelivered(channel, id, at)
}

func TestStoreErrorOnMarkDeliveredRedelivers(t *testing.T) {
	store := &flakyStore{BoltStore: newStore(t)}
	c := newChannelT(t, Config{Name: "orders", Persistent: true}, store)

	require.NoError(t, c.SupplierPush(context.Background(), "a"))
	_, peer := attachConsumer(t, c)

	// The first pass fails to record the delivery; after the backoff the
	// row is still pending and is delivered again
	require.Eventually(t, func() bool {
		rows, err := store.ListEvents("orders")
		return err == nil && len(rows) == 1 && rows[0].ErrorStatus == types.ErrorStatusDelivered
	}, waitFor+storeErrorBackoff, tick)

	assert.True(t, store.failed.Load())
	assert.Equal(t, []string{"a", "a"}, peer.messages())
}

// detachingPeer disconnects its own proxy while handling the first push
type detachingPeer struct {
	recordingPeer
	cons *proxy.Consumer
	once sync.Once
}

func (p *detachingPeer) Push(ctx context.Context, message string) error {
	err := p.recordingPeer.Push(ctx, message)
	p.once.Do(func() { p.cons.Disconnect(ctx) })
	return err
}

func TestDetachDuringPassStopsDelivery(t *testing.T) {
	store := newStore(t)
	c := newChannelT(t, Config{Name: "orders", Persistent: true}, store)

	for _, msg := range []string{"a", "b", "c"} {
		require.NoError(t, c.SupplierPush(context.Background(), msg))
	}

	cons, err := c.ObtainConsumerProxy()
	require.NoError(t, err)
	peer := &detachingPeer{cons: cons}
	require.NoError(t, cons.Connect(peer))

	require.Eventually(t, func() bool {
		return len(peer.messages()) == 1
	}, waitFor, tick)
	assert.Eventually(t, func() bool { return c.ConsumerCount() == 0 }, waitFor, tick)

	// Give a runaway pass the chance to show up
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"a"}, peer.messages())

	pending, err := store.LoadPending("orders", 0)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "b", pending[0].Message)
	assert.Equal(t, "c", pending[1].Message)
}

func TestSupplierProxyPush(t *testing.T) {
	c := newChannelT(t, Config{Name: "orders"}, nil)
	_, peer := attachConsumer(t, c)

	supplier, err := c.ObtainSupplierProxy()
	require.NoError(t, err)
	require.NoError(t, supplier.Connect(proxy.DetachedPeer{}))
	assert.Equal(t, 1, c.SupplierCount())

	require.NoError(t, supplier.Push(context.Background(), "hello"))
	require.Eventually(t, func() bool {
		return len(peer.messages()) == 1
	}, waitFor, tick)

	supplier.Disconnect(context.Background())
	assert.Equal(t, 0, c.SupplierCount())
}

func TestSweepStalePeers(t *testing.T) {
	c := newChannelT(t, Config{Name: "orders"}, nil)

	_, alive := attachConsumer(t, c)
	_, dead := attachConsumer(t, c)
	dead.dead.Store(true)
	require.Equal(t, 2, c.ConsumerCount())

	assert.Equal(t, 1, c.SweepStalePeers(context.Background()))
	assert.Equal(t, 1, c.ConsumerCount())
	assert.Equal(t, 1, dead.disconnects)
	assert.Equal(t, 0, alive.disconnects)
}

func TestRelaxedChannelKeepsUnreachablePeers(t *testing.T) {
	c := newChannelT(t, Config{Name: "orders", RelaxLivenessChecks: true}, nil)

	_, peer := attachConsumer(t, c)
	peer.dead.Store(true)

	assert.Equal(t, 0, c.SweepStalePeers(context.Background()))
	assert.Equal(t, 1, c.ConsumerCount())
}

func TestRateLimitedPush(t *testing.T) {
	c := newChannelT(t, Config{Name: "orders", RateLimit: 0.001, RateBurst: 1}, nil)

	require.NoError(t, c.SupplierPush(context.Background(), "first"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, c.SupplierPush(ctx, "second"))
}

func TestDestroy(t *testing.T) {
	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()
	sub := broker.Subscribe()

	c, err := New(Config{Name: "orders"}, nil, WithEvents(broker))
	require.NoError(t, err)

	_, peer := attachConsumer(t, c)
	supplier, err := c.ObtainSupplierProxy()
	require.NoError(t, err)
	supplierPeer := &recordingPeer{}
	require.NoError(t, supplier.Connect(supplierPeer))

	c.Destroy(context.Background())
	c.Destroy(context.Background())

	assert.Equal(t, StateDestroyed, c.State())
	assert.Equal(t, 0, c.ConsumerCount())
	assert.Equal(t, 0, c.SupplierCount())
	assert.Equal(t, 1, peer.disconnects)
	assert.Equal(t, 1, supplierPeer.disconnects)

	assert.ErrorIs(t, c.SupplierPush(context.Background(), "late"), ErrChannelUnavailable)
	_, err = c.ObtainConsumerProxy()
	assert.ErrorIs(t, err, ErrChannelUnavailable)

	late := proxy.NewConsumer(c)
	assert.ErrorIs(t, late.Connect(&recordingPeer{}), ErrChannelUnavailable)

	seen := map[events.EventType]bool{}
	deadline := time.After(waitFor)
	for !seen[events.EventChannelDestroyed] {
		select {
		case ev := <-sub:
			seen[ev.Type] = true
		case <-deadline:
			t.Fatal("channel.destroyed was not published")
		}
	}
	assert.True(t, seen[events.EventConsumerAttached])
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "shutting_down", StateShuttingDown.String())
	assert.Equal(t, "destroyed", StateDestroyed.String())
}
