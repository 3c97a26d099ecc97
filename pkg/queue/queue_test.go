package queue

import (
	"errors"
	"testing"
	"time"

	"github.com/cuemby/eventchannel/pkg/storage"
	"github.com/cuemby/eventchannel/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *storage.BoltStore {
	t.Helper()
	store, err := storage.NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewSelectsVariant(t *testing.T) {
	q, err := New(Config{ChannelName: "orders"})
	require.NoError(t, err)
	assert.IsType(t, &Transient{}, q)
	assert.False(t, q.Persistent())

	q, err = New(Config{ChannelName: "orders", Persistent: true, Store: newStore(t)})
	require.NoError(t, err)
	assert.IsType(t, &Durable{}, q)
	assert.True(t, q.Persistent())

	_, err = New(Config{ChannelName: "orders", Persistent: true})
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestTransientFIFO(t *testing.T) {
	q := NewTransient("orders")

	for _, msg := range []string{"a", "b", "c"} {
		require.NoError(t, q.Add(types.NewEvent("orders", msg)))
	}

	var got []string
	for {
		ok, err := q.HasNext(Criteria{})
		require.NoError(t, err)
		if !ok {
			break
		}
		ev := q.Next()
		got = append(got, ev.Message)
		require.NoError(t, q.Update(ev, types.Outcome{Status: types.DeliverySuccessful}))
	}

	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestTransientUpdateRemovesOnEveryOutcome(t *testing.T) {
	outcomes := []types.Outcome{
		{Status: types.DeliverySuccessful},
		{Status: types.DeliveryFailed, LastError: "rejected"},
		{Status: types.NoConsumersAvailable},
	}

	for _, outcome := range outcomes {
		t.Run(outcome.Status.String(), func(t *testing.T) {
			q := NewTransient("orders")
			ev := types.NewEvent("orders", "m")
			require.NoError(t, q.Add(ev))

			require.NoError(t, q.Update(ev, outcome))
			assert.Equal(t, 0, q.Len())
		})
	}
}

func TestTransientFailureRecordsError(t *testing.T) {
	q := NewTransient("orders")
	ev := types.NewEvent("orders", "m")
	require.NoError(t, q.Add(ev))

	require.NoError(t, q.Update(ev, types.Outcome{Status: types.DeliveryFailed, LastError: "rejected"}))
	assert.Equal(t, "rejected", ev.LastErrorMessage)
	assert.Equal(t, 1, ev.ErrorCount)
}

func TestTransientNoConsumersDiscardsBuffer(t *testing.T) {
	q := NewTransient("orders")
	for i := 0; i < 5; i++ {
		require.NoError(t, q.Add(types.NewEvent("orders", "m")))
	}
	require.Equal(t, 5, q.Len())

	q.NoConsumersAvailable()

	assert.Equal(t, 0, q.Len())
	ok, err := q.HasNext(Criteria{Refill: true})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, q.Next())
}

func TestDurableAddDoesNotBuffer(t *testing.T) {
	q, err := NewDurable("orders", newStore(t), 10)
	require.NoError(t, err)

	ev := types.NewEvent("orders", "m")
	require.NoError(t, q.Add(ev))
	assert.NotZero(t, ev.ID)
	assert.Equal(t, 0, q.Len())

	ok, err := q.HasNext(Criteria{})
	require.NoError(t, err)
	assert.False(t, ok, "without refill the buffer stays empty")

	ok, err = q.HasNext(Criteria{Refill: true})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ev.ID, q.Next().ID)
}

func TestDurableBatchLoadCap(t *testing.T) {
	q, err := NewDurable("orders", newStore(t), 10)
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		require.NoError(t, q.Add(types.NewEvent("orders", "m")))
	}

	ok, err := q.HasNext(Criteria{Refill: true})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10, q.Len())

	// A non-empty buffer is not refilled
	ok, err = q.HasNext(Criteria{Refill: true})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10, q.Len())
}

func TestDurableDefaultBatchSize(t *testing.T) {
	q, err := NewDurable("orders", newStore(t), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultBatchSize, q.batchSize)
}

func TestDurableDeliversInIDOrder(t *testing.T) {
	store := newStore(t)
	q, err := NewDurable("orders", store, 3)
	require.NoError(t, err)

	var inserted []int64
	for i := 0; i < 8; i++ {
		ev := types.NewEvent("orders", "m")
		require.NoError(t, q.Add(ev))
		inserted = append(inserted, ev.ID)
	}

	var delivered []int64
	for {
		ok, err := q.HasNext(Criteria{Refill: true})
		require.NoError(t, err)
		if !ok {
			break
		}
		ev := q.Next()
		delivered = append(delivered, ev.ID)
		require.NoError(t, q.Update(ev, types.Outcome{Status: types.DeliverySuccessful}))
	}

	assert.Equal(t, inserted, delivered)

	events, err := store.ListEvents("orders")
	require.NoError(t, err)
	for _, ev := range events {
		assert.Equal(t, types.ErrorStatusDelivered, ev.ErrorStatus)
	}
}

func TestDurableFailureIsNotRedelivered(t *testing.T) {
	store := newStore(t)
	q, err := NewDurable("orders", store, 10)
	require.NoError(t, err)

	ev := types.NewEvent("orders", "m")
	require.NoError(t, q.Add(ev))

	ok, err := q.HasNext(Criteria{Refill: true})
	require.NoError(t, err)
	require.True(t, ok)

	head := q.Next()
	require.NoError(t, q.Update(head, types.Outcome{Status: types.DeliveryFailed, LastError: "consumer rejected"}))
	assert.Equal(t, 0, q.Len())

	stored, err := store.GetEvent("orders", ev.ID)
	require.NoError(t, err)
	assert.Equal(t, types.ErrorStatusFailed, stored.ErrorStatus)
	assert.Equal(t, 1, stored.ErrorCount)
	assert.Equal(t, "consumer rejected", stored.LastErrorMessage)

	ok, err = q.HasNext(Criteria{Refill: true})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDurableNoConsumersRetainsRows(t *testing.T) {
	store := newStore(t)
	q, err := NewDurable("orders", store, 10)
	require.NoError(t, err)

	ev := types.NewEvent("orders", "m")
	require.NoError(t, q.Add(ev))
	_, err = q.HasNext(Criteria{Refill: true})
	require.NoError(t, err)

	q.NoConsumersAvailable()
	require.NoError(t, q.Update(q.Next(), types.Outcome{Status: types.NoConsumersAvailable}))

	assert.Equal(t, 1, q.Len())
	stored, err := store.GetEvent("orders", ev.ID)
	require.NoError(t, err)
	assert.Equal(t, types.ErrorStatusNew, stored.ErrorStatus)

	pending, err := store.LoadPending("orders", 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestDurableResetRoundTrip(t *testing.T) {
	store := newStore(t)
	q, err := NewDurable("orders", store, 10)
	require.NoError(t, err)

	ev := types.NewEvent("orders", "m")
	require.NoError(t, q.Add(ev))
	failedAt := time.Now()
	require.NoError(t, store.MarkFailed("orders", ev.ID, "e1", failedAt))
	require.NoError(t, store.MarkFailed("orders", ev.ID, "e2", failedAt))

	low := 1
	n, err := q.Reset(types.ResetRequest{ChannelName: "orders", RetryCeiling: &low})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	high := 3
	floor := failedAt.Add(-time.Second)
	n, err = q.Reset(types.ResetRequest{ChannelName: "orders", RetryCeiling: &high, DateFloor: &floor})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ok, err := q.HasNext(Criteria{Refill: true})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.ErrorStatusAwaitingRetry, q.Next().ErrorStatus)

	_, err = q.Reset(types.ResetRequest{ChannelName: "billing"})
	assert.ErrorIs(t, err, types.ErrInvalidResetRequest)
}

// failingStore wraps a real store and fails selected operations
type failingStore struct {
	storage.EventStore
	failDelivered bool
	failLoad      bool
}

var errStoreDown = errors.New("store down")

func (s *failingStore) MarkDelivered(channel string, id int64, at time.Time) error {
	if s.failDelivered {
		return errStoreDown
	}
	return s.EventStore.MarkDelivered(channel, id, at)
}

func (s *failingStore) LoadPending(channel string, limit int) ([]*types.Event, error) {
	if s.failLoad {
		return nil, errStoreDown
	}
	return s.EventStore.LoadPending(channel, limit)
}

func TestDurableStoreErrorsAreWrapped(t *testing.T) {
	store := &failingStore{EventStore: newStore(t)}
	q, err := NewDurable("orders", store, 10)
	require.NoError(t, err)

	require.NoError(t, q.Add(types.NewEvent("orders", "a")))
	require.NoError(t, q.Add(types.NewEvent("orders", "b")))

	ok, err := q.HasNext(Criteria{Refill: true})
	require.NoError(t, err)
	require.True(t, ok)

	store.failDelivered = true
	err = q.Update(q.Next(), types.Outcome{Status: types.DeliverySuccessful})
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, 1, q.Len(), "only the event in flight leaves the buffer")
	assert.Equal(t, "b", q.Next().Message)

	q.buffer = nil
	store.failLoad = true
	_, err = q.HasNext(Criteria{Refill: true})
	assert.ErrorIs(t, err, errStoreDown)
}
