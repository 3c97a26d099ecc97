package channel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cuemby/eventchannel/pkg/events"
	"github.com/cuemby/eventchannel/pkg/log"
	"github.com/cuemby/eventchannel/pkg/metrics"
	"github.com/cuemby/eventchannel/pkg/policy"
	"github.com/cuemby/eventchannel/pkg/proxy"
	"github.com/cuemby/eventchannel/pkg/queue"
	"github.com/cuemby/eventchannel/pkg/storage"
	"github.com/cuemby/eventchannel/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var (
	// ErrChannelUnavailable is returned once a channel is shutting down
	ErrChannelUnavailable = errors.New("channel unavailable")

	// ErrInvalidConfig wraps channel configuration errors
	ErrInvalidConfig = errors.New("invalid channel config")
)

const (
	// DefaultWakeInterval is the dispatcher's fallback wake period
	DefaultWakeInterval = 30 * time.Minute
)

// State is the lifecycle state of a channel
type State int32

const (
	StateActive State = iota
	StateShuttingDown
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateShuttingDown:
		return "shutting_down"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Config describes one channel
type Config struct {
	Name                string
	Persistent          bool
	RelaxLivenessChecks bool
	BatchSize           int
	MaxPushWait         time.Duration
	WakeInterval        time.Duration

	// RateLimit caps producer pushes per second; zero means unlimited
	RateLimit float64
	RateBurst int
}

func (c Config) withDefaults() Config {
	if c.BatchSize == 0 {
		c.BatchSize = queue.DefaultBatchSize
	}
	if c.MaxPushWait == 0 {
		c.MaxPushWait = policy.DefaultMaxPushWait
	}
	if c.WakeInterval == 0 {
		c.WakeInterval = DefaultWakeInterval
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		c.RateBurst = 1
	}
	return c
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("%w: channel %s: batch size must be positive", ErrInvalidConfig, c.Name)
	}
	if c.MaxPushWait < 0 {
		return fmt.Errorf("%w: channel %s: max push wait must be positive", ErrInvalidConfig, c.Name)
	}
	if c.WakeInterval < 0 {
		return fmt.Errorf("%w: channel %s: wake interval must be positive", ErrInvalidConfig, c.Name)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%w: channel %s: rate limit must not be negative", ErrInvalidConfig, c.Name)
	}
	return nil
}

// Option customizes a channel at construction
type Option func(*Channel)

// WithEvents publishes lifecycle notifications to p
func WithEvents(p events.Publisher) Option {
	return func(c *Channel) {
		c.events = p
	}
}

// WithPolicy replaces the default only-once consumer policy
func WithPolicy(p policy.ConsumerPolicy) Option {
	return func(c *Channel) {
		c.policy = p
	}
}

func withIngest(fn func(ctx context.Context, payload string) error) Option {
	return func(c *Channel) {
		c.ingest = fn
	}
}

func withSelfConsuming() Option {
	return func(c *Channel) {
		c.selfConsuming = true
	}
}

// Channel is a named push-model event channel. It owns a queue, a consumer
// policy, the attached supplier and consumer proxies and one dispatcher
// goroutine.
type Channel struct {
	cfg     Config
	queue   queue.Queue
	policy  policy.ConsumerPolicy
	limiter *rate.Limiter
	events  events.Publisher

	ingest        func(ctx context.Context, payload string) error
	selfConsuming bool

	mu        sync.RWMutex
	suppliers map[string]proxy.Connection
	consumers map[string]*proxy.Consumer

	state       atomic.Int32
	dispatcher  *dispatcher
	destroyOnce sync.Once

	logger zerolog.Logger
}

// New creates a channel and starts its dispatcher. Persistent channels
// require a store.
func New(cfg Config, store storage.EventStore, opts ...Option) (*Channel, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	q, err := queue.New(queue.Config{
		ChannelName: cfg.Name,
		Persistent:  cfg.Persistent,
		BatchSize:   cfg.BatchSize,
		Store:       store,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create queue for channel %s: %w", cfg.Name, err)
	}

	return newChannel(cfg, q, opts...), nil
}

func newChannel(cfg Config, q queue.Queue, opts ...Option) *Channel {
	c := &Channel{
		cfg:       cfg,
		queue:     q,
		suppliers: make(map[string]proxy.Connection),
		consumers: make(map[string]*proxy.Consumer),
		logger:    log.WithChannel("channel", cfg.Name),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.policy == nil {
		c.policy = policy.NewOnlyOnce(cfg.Name, cfg.MaxPushWait)
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	c.dispatcher = newDispatcher(c, cfg.WakeInterval)
	c.dispatcher.start()

	c.logger.Info().
		Bool("persistent", cfg.Persistent).
		Bool("relax_liveness_checks", cfg.RelaxLivenessChecks).
		Int("batch_size", cfg.BatchSize).
		Dur("max_push_wait", cfg.MaxPushWait).
		Msg("Channel created")
	c.publish(events.EventChannelCreated, "")
	return c
}

// Name returns the channel name
func (c *Channel) Name() string { return c.cfg.Name }

// Config returns the effective channel configuration
func (c *Channel) Config() Config { return c.cfg }

// Persistent reports whether the channel uses a durable queue
func (c *Channel) Persistent() bool { return c.queue.Persistent() }

// RelaxLivenessChecks reports whether peer liveness probing is disabled
func (c *Channel) RelaxLivenessChecks() bool { return c.cfg.RelaxLivenessChecks }

// State returns the lifecycle state
func (c *Channel) State() State { return State(c.state.Load()) }

// Attach registers a connected proxy. It is called by the proxy itself
// once its peer is bound.
func (c *Channel) Attach(conn proxy.Connection) error {
	c.mu.Lock()
	if c.State() != StateActive {
		c.mu.Unlock()
		return ErrChannelUnavailable
	}

	var evType events.EventType
	switch conn.Kind() {
	case proxy.KindSupplier:
		c.suppliers[conn.ID()] = conn
		evType = events.EventSupplierAttached
	case proxy.KindConsumer:
		consumer, ok := conn.(*proxy.Consumer)
		if !ok {
			c.mu.Unlock()
			return fmt.Errorf("unsupported consumer connection %T", conn)
		}
		c.consumers[conn.ID()] = consumer
		evType = events.EventConsumerAttached
	default:
		c.mu.Unlock()
		return fmt.Errorf("unknown connection kind %q", conn.Kind())
	}
	c.mu.Unlock()

	c.publish(evType, conn.ID())
	if conn.Kind() == proxy.KindConsumer {
		c.Alert()
	}
	return nil
}

// Detach removes a proxy from the connection sets
func (c *Channel) Detach(conn proxy.Connection) {
	c.mu.Lock()
	var evType events.EventType
	switch conn.Kind() {
	case proxy.KindSupplier:
		delete(c.suppliers, conn.ID())
		evType = events.EventSupplierDetached
	case proxy.KindConsumer:
		delete(c.consumers, conn.ID())
		evType = events.EventConsumerDetached
	}
	c.mu.Unlock()

	if evType != "" {
		c.publish(evType, conn.ID())
	}
}

// ObtainSupplierProxy returns a new unbound supplier proxy
func (c *Channel) ObtainSupplierProxy() (*proxy.Supplier, error) {
	if c.State() != StateActive {
		return nil, ErrChannelUnavailable
	}
	return proxy.NewSupplier(c, c.SupplierPush), nil
}

// ObtainConsumerProxy returns a new unbound consumer proxy
func (c *Channel) ObtainConsumerProxy() (*proxy.Consumer, error) {
	if c.State() != StateActive {
		return nil, ErrChannelUnavailable
	}
	return proxy.NewConsumer(c), nil
}

// SupplierPush wraps payload in an event, enqueues it and wakes the
// dispatcher. It may be called concurrently by any number of producers.
func (c *Channel) SupplierPush(ctx context.Context, payload string) error {
	if c.State() != StateActive {
		return ErrChannelUnavailable
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	if c.ingest != nil {
		return c.ingest(ctx, payload)
	}

	event := types.NewEvent(c.cfg.Name, payload)
	if err := c.queue.Add(event); err != nil {
		return fmt.Errorf("failed to enqueue event: %w", err)
	}
	metrics.EventsEnqueued.WithLabelValues(c.cfg.Name).Inc()

	c.Alert()
	return nil
}

// ConsumerPush delivers queued events until the queue is drained, no
// consumer is left or the channel starts shutting down. Only the
// dispatcher calls it. A store error ends the pass and is returned.
func (c *Channel) ConsumerPush(ctx context.Context) error {
	if c.ConsumerCount() == 0 {
		c.queue.NoConsumersAvailable()
		return nil
	}

	for ctx.Err() == nil && c.State() == StateActive {
		// Re-read every iteration so attach and detach take effect mid-pass
		consumers := c.consumerSnapshot()
		if len(consumers) == 0 {
			return nil
		}

		ok, err := c.queue.HasNext(queue.Criteria{Refill: true})
		if err != nil {
			return fmt.Errorf("failed to check queue: %w", err)
		}
		if !ok {
			return nil
		}

		event := c.queue.Next()
		if event == nil {
			return nil
		}

		outcome := c.policy.Deliver(ctx, consumers, event)
		metrics.DeliveriesTotal.WithLabelValues(c.cfg.Name, outcome.Status.String()).Inc()
		if outcome.Status == types.DeliveryFailed {
			c.publish(events.EventDeliveryFailed, outcome.LastError)
		}

		if err := c.queue.Update(event, outcome); err != nil {
			return fmt.Errorf("failed to record outcome of event %d: %w", event.ID, err)
		}
	}
	return nil
}

// ReadyToDeliverEvents reports whether the queue has data and someone can
// receive it. Data with no consumers is reported to the queue.
func (c *Channel) ReadyToDeliverEvents() bool {
	ok, err := c.queue.HasNext(queue.Criteria{Refill: true})
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to check queue")
		return false
	}
	if !ok {
		return false
	}
	if c.selfConsuming || c.ConsumerCount() > 0 {
		return true
	}

	c.queue.NoConsumersAvailable()
	return false
}

// Alert wakes the dispatcher
func (c *Channel) Alert() {
	c.dispatcher.notify()
}

// SweepStalePeers destroys every attached proxy whose peer is gone and
// returns how many were pruned
func (c *Channel) SweepStalePeers(ctx context.Context) int {
	c.mu.RLock()
	conns := make([]proxy.Connection, 0, len(c.suppliers)+len(c.consumers))
	for _, s := range c.suppliers {
		conns = append(conns, s)
	}
	for _, cons := range c.consumers {
		conns = append(conns, cons)
	}
	c.mu.RUnlock()

	pruned := 0
	for _, conn := range conns {
		if ctx.Err() != nil {
			break
		}
		if proxy.PruneStale(ctx, conn, c.cfg.Name) {
			pruned++
		}
	}

	if pruned > 0 {
		c.logger.Info().Int("pruned", pruned).Msg("Swept stale peers")
	}
	return pruned
}

// ConsumerCount returns the number of attached consumers
func (c *Channel) ConsumerCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.consumers)
}

// SupplierCount returns the number of attached suppliers
func (c *Channel) SupplierCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.suppliers)
}

// Stats returns a point-in-time view for metrics and listings
func (c *Channel) Stats() metrics.ChannelStats {
	c.mu.RLock()
	consumers, suppliers := len(c.consumers), len(c.suppliers)
	c.mu.RUnlock()

	return metrics.ChannelStats{
		Name:       c.cfg.Name,
		Persistent: c.queue.Persistent(),
		QueueDepth: c.queue.Len(),
		Consumers:  consumers,
		Suppliers:  suppliers,
	}
}

// Destroy shuts the channel down: new connections and pushes are refused,
// the dispatcher is stopped after its in-flight event, every connection is
// torn down and the queue is shut down. Safe to call more than once.
func (c *Channel) Destroy(ctx context.Context) {
	c.destroyOnce.Do(func() {
		c.mu.Lock()
		c.state.Store(int32(StateShuttingDown))
		conns := make([]proxy.Connection, 0, len(c.suppliers)+len(c.consumers))
		for _, s := range c.suppliers {
			conns = append(conns, s)
		}
		for _, cons := range c.consumers {
			conns = append(conns, cons)
		}
		c.mu.Unlock()

		c.logger.Info().Int("connections", len(conns)).Msg("Shutting down channel")

		c.dispatcher.stop()

		for _, conn := range conns {
			conn.Destroy(ctx)
		}

		if err := c.queue.Shutdown(); err != nil {
			c.logger.Error().Err(err).Msg("Failed to shut down queue")
		}

		c.state.Store(int32(StateDestroyed))
		c.publish(events.EventChannelDestroyed, "")
		c.logger.Info().Msg("Channel destroyed")
	})
}

func (c *Channel) consumerSnapshot() []policy.Consumer {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]policy.Consumer, 0, len(c.consumers))
	for _, cons := range c.consumers {
		out = append(out, cons)
	}
	return out
}

func (c *Channel) publish(t events.EventType, message string) {
	if c.events == nil {
		return
	}
	c.events.Publish(&events.Event{
		Type:    t,
		Channel: c.cfg.Name,
		Message: message,
	})
}
