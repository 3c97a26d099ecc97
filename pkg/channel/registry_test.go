package channel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateIsSingletonPerName(t *testing.T) {
	r := NewRegistry()
	t.Cleanup(func() { r.Shutdown(context.Background()) })

	first, err := r.Create(Config{Name: "orders"}, nil)
	require.NoError(t, err)

	_, err = r.Create(Config{Name: "orders", Persistent: true}, newStore(t))
	assert.ErrorIs(t, err, ErrChannelExists)

	got, err := r.Lookup("orders")
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestRegistryCreateInvalidRegistersNothing(t *testing.T) {
	r := NewRegistry()

	_, err := r.Create(Config{Name: "orders", Persistent: true}, nil)
	require.Error(t, err)

	_, err = r.Lookup("orders")
	assert.ErrorIs(t, err, ErrChannelNotFound)
	assert.Empty(t, r.List())
}

func TestRegistryRemoveDestroysFirst(t *testing.T) {
	r := NewRegistry()

	c, err := r.Create(Config{Name: "orders"}, nil)
	require.NoError(t, err)
	_, peer := attachConsumer(t, c)

	require.NoError(t, r.Remove(context.Background(), "orders"))

	assert.Equal(t, StateDestroyed, c.State())
	assert.Equal(t, 1, peer.disconnects)
	_, err = r.Lookup("orders")
	assert.ErrorIs(t, err, ErrChannelNotFound)

	assert.ErrorIs(t, r.Remove(context.Background(), "orders"), ErrChannelNotFound)
}

func TestRegistryListAndStats(t *testing.T) {
	r := NewRegistry()
	t.Cleanup(func() { r.Shutdown(context.Background()) })

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := r.Create(Config{Name: name}, nil)
		require.NoError(t, err)
	}

	var names []string
	for _, c := range r.List() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)

	stats := r.Stats()
	require.Len(t, stats, 3)
	assert.Equal(t, "alpha", stats[0].Name)
	assert.False(t, stats[0].Persistent)
}

func TestRegistryShutdown(t *testing.T) {
	r := NewRegistry()
	a, err := r.Create(Config{Name: "a"}, nil)
	require.NoError(t, err)
	b, err := r.Create(Config{Name: "b"}, nil)
	require.NoError(t, err)

	r.Shutdown(context.Background())

	assert.Empty(t, r.List())
	assert.Equal(t, StateDestroyed, a.State())
	assert.Equal(t, StateDestroyed, b.State())
}
