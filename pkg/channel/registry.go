package channel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/cuemby/eventchannel/pkg/metrics"
	"github.com/cuemby/eventchannel/pkg/storage"
)

var (
	// ErrChannelExists is returned when a name is registered twice
	ErrChannelExists = errors.New("channel already exists")

	// ErrChannelNotFound is returned for unknown channel names
	ErrChannelNotFound = errors.New("channel not found")
)

// Registry is the set of live channels, at most one per name
type Registry struct {
	mu       sync.RWMutex
	channels map[string]*Channel
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]*Channel),
	}
}

// Create builds a channel from cfg and registers it. No channel is started
// when the name is taken or the configuration is invalid.
func (r *Registry) Create(cfg Config, store storage.EventStore, opts ...Option) (*Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.channels[cfg.Name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrChannelExists, cfg.Name)
	}

	c, err := New(cfg, store, opts...)
	if err != nil {
		return nil, err
	}
	r.channels[c.Name()] = c
	return c, nil
}

// Register adds an already constructed channel
func (r *Registry) Register(c *Channel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.channels[c.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrChannelExists, c.Name())
	}
	r.channels[c.Name()] = c
	return nil
}

// Lookup returns the channel registered under name
func (r *Registry) Lookup(name string) (*Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.channels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, name)
	}
	return c, nil
}

// Remove destroys the named channel and then unregisters it
func (r *Registry) Remove(ctx context.Context, name string) error {
	c, err := r.Lookup(name)
	if err != nil {
		return err
	}

	c.Destroy(ctx)

	r.mu.Lock()
	if r.channels[name] == c {
		delete(r.channels, name)
	}
	r.mu.Unlock()
	return nil
}

// List returns the registered channels ordered by name
func (r *Registry) List() []*Channel {
	r.mu.RLock()
	out := make([]*Channel, 0, len(r.channels))
	for _, c := range r.channels {
		out = append(out, c)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})
	return out
}

// Stats implements metrics.StatsSource
func (r *Registry) Stats() []metrics.ChannelStats {
	channels := r.List()
	stats := make([]metrics.ChannelStats, 0, len(channels))
	for _, c := range channels {
		stats = append(stats, c.Stats())
	}
	return stats
}

// Shutdown destroys and removes every channel
func (r *Registry) Shutdown(ctx context.Context) {
	for _, c := range r.List() {
		if err := r.Remove(ctx, c.Name()); err != nil && !errors.Is(err, ErrChannelNotFound) {
			c.logger.Error().Err(err).Msg("Failed to remove channel")
		}
	}
}
