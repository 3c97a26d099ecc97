package queue

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cuemby/eventchannel/pkg/log"
	"github.com/cuemby/eventchannel/pkg/metrics"
	"github.com/cuemby/eventchannel/pkg/storage"
	"github.com/cuemby/eventchannel/pkg/types"
	"github.com/rs/zerolog"
)

// ErrNoStore is returned when a durable queue is configured without a store
var ErrNoStore = errors.New("durable queue requires an event store")

// Durable is a prefetch buffer over an EventStore. Producers write straight
// to the store; the buffer is only filled by batch loads on the delivery
// path, so concurrent producers never race the in-memory view.
type Durable struct {
	channel   string
	store     storage.EventStore
	batchSize int

	mu     sync.Mutex
	buffer []*types.Event

	logger zerolog.Logger
}

// NewDurable creates a durable queue for one channel
func NewDurable(channel string, store storage.EventStore, batchSize int) (*Durable, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Durable{
		channel:   channel,
		store:     store,
		batchSize: batchSize,
		logger:    log.WithChannel("queue", channel),
	}, nil
}

// Add persists the event and assigns its id. The event is not buffered;
// it is picked up by a later batch load.
func (q *Durable) Add(event *types.Event) error {
	if err := q.store.InsertEvent(event); err != nil {
		metrics.StoreErrors.WithLabelValues(q.channel, "insert").Inc()
		return fmt.Errorf("failed to persist event: %w", err)
	}
	return nil
}

// HasNext loads the next batch from the store when the buffer is empty and
// criteria allows it
func (q *Durable) HasNext(criteria Criteria) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.buffer) > 0 {
		return true, nil
	}
	if !criteria.Refill {
		return false, nil
	}

	events, err := q.store.LoadPending(q.channel, q.batchSize)
	if err != nil {
		metrics.StoreErrors.WithLabelValues(q.channel, "load").Inc()
		return false, fmt.Errorf("failed to load pending events: %w", err)
	}
	if len(events) > 0 {
		q.logger.Debug().Int("loaded", len(events)).Msg("Loaded pending events")
	}
	q.buffer = append(q.buffer, events...)
	return len(q.buffer) > 0, nil
}

func (q *Durable) Next() *types.Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.buffer) == 0 {
		return nil
	}
	return q.buffer[0]
}

// Update records a terminal outcome in the store and drops the event from
// the buffer. A store error is returned, but the event still leaves the
// buffer; its row keeps the previous status and is reloaded later.
func (q *Durable) Update(event *types.Event, outcome types.Outcome) error {
	now := time.Now()

	var err error
	switch outcome.Status {
	case types.DeliverySuccessful:
		event.RecordDelivered(now)
		if err = q.store.MarkDelivered(q.channel, event.ID, now); err != nil {
			metrics.StoreErrors.WithLabelValues(q.channel, "mark_delivered").Inc()
			err = fmt.Errorf("failed to mark event %d delivered: %w", event.ID, err)
		}
	case types.DeliveryFailed:
		event.RecordFailure(outcome.LastError, now)
		if err = q.store.MarkFailed(q.channel, event.ID, event.LastErrorMessage, now); err != nil {
			metrics.StoreErrors.WithLabelValues(q.channel, "mark_failed").Inc()
			err = fmt.Errorf("failed to mark event %d failed: %w", event.ID, err)
		}
	case types.NoConsumersAvailable:
		// Row stays untouched for a later attempt
		return nil
	}

	q.remove(event)
	return err
}

func (q *Durable) remove(event *types.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.buffer {
		if e == event || e.ID == event.ID {
			q.buffer = append(q.buffer[:i], q.buffer[i+1:]...)
			return
		}
	}
}

// NoConsumersAvailable leaves both buffer and store untouched
func (q *Durable) NoConsumersAvailable() {}

// Reset puts failed events of this channel back into retry
func (q *Durable) Reset(req types.ResetRequest) (int, error) {
	if req.ChannelName != q.channel {
		return 0, fmt.Errorf("%w: channel %q does not own this queue", types.ErrInvalidResetRequest, req.ChannelName)
	}
	n, err := ResetFailed(q.store, req)
	if err != nil {
		metrics.StoreErrors.WithLabelValues(q.channel, "reset").Inc()
		return 0, err
	}
	return n, nil
}

func (q *Durable) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buffer)
}

func (q *Durable) Persistent() bool { return true }

// Shutdown drops the buffer; the store is owned by the server
func (q *Durable) Shutdown() error {
	q.mu.Lock()
	q.buffer = nil
	q.mu.Unlock()
	return nil
}
