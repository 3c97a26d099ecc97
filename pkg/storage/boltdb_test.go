package storage

import (
	"testing"
	"time"

	"github.com/cuemby/eventchannel/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInsertEventAssignsGlobalSequence(t *testing.T) {
	store := newTestStore(t)

	a := types.NewEvent("orders", "a")
	b := types.NewEvent("billing", "b")
	c := types.NewEvent("orders", "c")

	require.NoError(t, store.InsertEvent(a))
	require.NoError(t, store.InsertEvent(b))
	require.NoError(t, store.InsertEvent(c))

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.Equal(t, int64(3), c.ID)

	got, err := store.GetEvent("orders", c.ID)
	require.NoError(t, err)
	assert.Equal(t, "c", got.Message)
	assert.Equal(t, types.ErrorStatusNew, got.ErrorStatus)
}

func TestInsertEventRequiresChannel(t *testing.T) {
	store := newTestStore(t)
	assert.ErrorIs(t, store.InsertEvent(&types.Event{Message: "x"}), ErrInvalidEvent)
}

func TestLoadPendingOrderAndLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 25; i++ {
		require.NoError(t, store.InsertEvent(types.NewEvent("orders", "m")))
	}
	require.NoError(t, store.InsertEvent(types.NewEvent("billing", "other")))

	events, err := store.LoadPending("orders", 10)
	require.NoError(t, err)
	require.Len(t, events, 10)
	for i := 1; i < len(events); i++ {
		assert.Less(t, events[i-1].ID, events[i].ID)
	}

	none, err := store.LoadPending("unknown", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLoadPendingSkipsTerminalEvents(t *testing.T) {
	store := newTestStore(t)

	ids := make([]int64, 0, 3)
	for i := 0; i < 3; i++ {
		ev := types.NewEvent("orders", "m")
		require.NoError(t, store.InsertEvent(ev))
		ids = append(ids, ev.ID)
	}

	now := time.Now()
	require.NoError(t, store.MarkDelivered("orders", ids[0], now))
	require.NoError(t, store.MarkFailed("orders", ids[1], "consumer rejected", now))

	events, err := store.LoadPending("orders", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ids[2], events[0].ID)
}

func pendingIndexSize(t *testing.T, store *BoltStore, channel string) int {
	t.Helper()
	n := 0
	require.NoError(t, store.db.View(func(tx *bolt.Tx) error {
		if idx := tx.Bucket(bucketPending).Bucket([]byte(channel)); idx != nil {
			n = idx.Stats().KeyN
		}
		return nil
	}))
	return n
}

func TestPendingIndexTracksStatus(t *testing.T) {
	store := newTestStore(t)

	ids := make([]int64, 0, 200)
	for i := 0; i < 200; i++ {
		ev := types.NewEvent("orders", "m")
		require.NoError(t, store.InsertEvent(ev))
		ids = append(ids, ev.ID)
	}
	assert.Equal(t, 200, pendingIndexSize(t, store, "orders"))

	now := time.Now()
	for _, id := range ids[:195] {
		require.NoError(t, store.MarkDelivered("orders", id, now))
	}
	require.NoError(t, store.MarkFailed("orders", ids[195], "rejected", now))
	assert.Equal(t, 4, pendingIndexSize(t, store, "orders"))

	events, err := store.LoadPending("orders", 0)
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, ids[196], events[0].ID)

	n, err := store.ResetFailed(types.ResetRequest{ChannelName: "orders"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 5, pendingIndexSize(t, store, "orders"))

	events, err = store.LoadPending("orders", 0)
	require.NoError(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, ids[195], events[0].ID)
	assert.Equal(t, types.ErrorStatusAwaitingRetry, events[0].ErrorStatus)
}

func TestPendingIndexRebuiltOnOpen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewBoltStore(dir)
	require.NoError(t, err)
	a := types.NewEvent("orders", "a")
	b := types.NewEvent("orders", "b")
	require.NoError(t, store.InsertEvent(a))
	require.NoError(t, store.InsertEvent(b))
	require.NoError(t, store.MarkDelivered("orders", a.ID, time.Now()))

	// Simulate a database written before the index existed
	require.NoError(t, store.db.Update(func(tx *bolt.Tx) error {
		return tx.DeleteBucket(bucketPending)
	}))
	require.NoError(t, store.Close())

	reopened, err := NewBoltStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, 1, pendingIndexSize(t, reopened, "orders"))
	events, err := reopened.LoadPending("orders", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, b.ID, events[0].ID)
}

func TestMarkFailedIncrementsErrorCount(t *testing.T) {
	store := newTestStore(t)

	ev := types.NewEvent("orders", "m")
	require.NoError(t, store.InsertEvent(ev))

	now := time.Now().UTC()
	require.NoError(t, store.MarkFailed("orders", ev.ID, "first", now))
	require.NoError(t, store.MarkFailed("orders", ev.ID, "second", now))

	got, err := store.GetEvent("orders", ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ErrorCount)
	assert.Equal(t, types.ErrorStatusFailed, got.ErrorStatus)
	assert.Equal(t, "second", got.LastErrorMessage)
	assert.True(t, got.LastErrorTime.Equal(now))
}

func TestMarkMissingEvent(t *testing.T) {
	store := newTestStore(t)

	assert.ErrorIs(t, store.MarkDelivered("orders", 99, time.Now()), ErrEventNotFound)

	require.NoError(t, store.InsertEvent(types.NewEvent("orders", "m")))
	assert.ErrorIs(t, store.MarkFailed("orders", 99, "x", time.Now()), ErrEventNotFound)
}

func TestResetFailed(t *testing.T) {
	store := newTestStore(t)

	failedAt := time.Now().UTC().Truncate(time.Second)
	ev := types.NewEvent("orders", "m")
	require.NoError(t, store.InsertEvent(ev))
	require.NoError(t, store.MarkFailed("orders", ev.ID, "e1", failedAt))
	require.NoError(t, store.MarkFailed("orders", ev.ID, "e2", failedAt))

	ceilingLow := 1
	n, err := store.ResetFailed(types.ResetRequest{ChannelName: "orders", RetryCeiling: &ceilingLow})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	floor := failedAt.Add(-time.Minute)
	ceiling := 3
	n, err = store.ResetFailed(types.ResetRequest{ChannelName: "orders", RetryCeiling: &ceiling, DateFloor: &floor})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := store.GetEvent("orders", ev.ID)
	require.NoError(t, err)
	assert.Equal(t, types.ErrorStatusAwaitingRetry, got.ErrorStatus)
	assert.Equal(t, 2, got.ErrorCount)

	pending, err := store.LoadPending("orders", 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestResetFailedByEventID(t *testing.T) {
	store := newTestStore(t)

	var ids []int64
	for i := 0; i < 3; i++ {
		ev := types.NewEvent("orders", "m")
		require.NoError(t, store.InsertEvent(ev))
		require.NoError(t, store.MarkFailed("orders", ev.ID, "boom", time.Now()))
		ids = append(ids, ev.ID)
	}

	zero := 0
	n, err := store.ResetFailed(types.ResetRequest{ChannelName: "orders", EventID: &ids[1], RetryCeiling: &zero})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	events, err := store.ListEvents("orders")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, types.ErrorStatusFailed, events[0].ErrorStatus)
	assert.Equal(t, types.ErrorStatusAwaitingRetry, events[1].ErrorStatus)
	assert.Equal(t, types.ErrorStatusFailed, events[2].ErrorStatus)
}

func TestResetFailedValidates(t *testing.T) {
	store := newTestStore(t)
	_, err := store.ResetFailed(types.ResetRequest{})
	assert.ErrorIs(t, err, types.ErrInvalidResetRequest)
}

func TestStoreReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewBoltStore(dir)
	require.NoError(t, err)
	ev := types.NewEvent("orders", "persisted")
	require.NoError(t, store.InsertEvent(ev))
	require.NoError(t, store.Close())

	reopened, err := NewBoltStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	events, err := reopened.LoadPending("orders", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "persisted", events[0].Message)

	next := types.NewEvent("orders", "next")
	require.NoError(t, reopened.InsertEvent(next))
	assert.Greater(t, next.ID, ev.ID)
}

func TestPing(t *testing.T) {
	store, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Ping())
	require.NoError(t, store.Close())
	assert.Error(t, store.Ping())
}
