package queue

import (
	"container/list"
	"sync"
	"time"

	"github.com/cuemby/eventchannel/pkg/log"
	"github.com/cuemby/eventchannel/pkg/types"
	"github.com/rs/zerolog"
)

// Transient is an in-memory FIFO with no retry obligation. Failed events
// are dropped, and NoConsumersAvailable discards everything buffered.
type Transient struct {
	mu     sync.Mutex
	events *list.List
	logger zerolog.Logger
}

// NewTransient creates an empty in-memory queue
func NewTransient(channel string) *Transient {
	return &Transient{
		events: list.New(),
		logger: log.WithChannel("queue", channel),
	}
}

func (q *Transient) Add(event *types.Event) error {
	if event.ArrivalTime.IsZero() {
		event.ArrivalTime = time.Now()
	}

	q.mu.Lock()
	q.events.PushBack(event)
	q.mu.Unlock()
	return nil
}

func (q *Transient) HasNext(Criteria) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.events.Len() > 0, nil
}

func (q *Transient) Next() *types.Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	front := q.events.Front()
	if front == nil {
		return nil
	}
	return front.Value.(*types.Event)
}

// Update removes the event whatever the outcome
func (q *Transient) Update(event *types.Event, outcome types.Outcome) error {
	switch outcome.Status {
	case types.DeliverySuccessful:
		event.RecordDelivered(time.Now())
	case types.DeliveryFailed:
		event.RecordFailure(outcome.LastError, time.Now())
		q.logger.Warn().
			Str("error", event.LastErrorMessage).
			Msg("Dropping undeliverable transient event")
	}

	q.remove(event)
	return nil
}

func (q *Transient) remove(event *types.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for e := q.events.Front(); e != nil; e = e.Next() {
		if e.Value.(*types.Event) == event {
			q.events.Remove(e)
			return
		}
	}
}

// NoConsumersAvailable drops the whole buffer
func (q *Transient) NoConsumersAvailable() {
	q.mu.Lock()
	dropped := q.events.Len()
	q.events.Init()
	q.mu.Unlock()

	if dropped > 0 {
		q.logger.Info().Int("dropped", dropped).Msg("No consumers attached, discarding transient events")
	}
}

func (q *Transient) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.events.Len()
}

func (q *Transient) Persistent() bool { return false }

func (q *Transient) Shutdown() error {
	q.mu.Lock()
	q.events.Init()
	q.mu.Unlock()
	return nil
}
