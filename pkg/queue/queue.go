package queue

import (
	"github.com/cuemby/eventchannel/pkg/storage"
	"github.com/cuemby/eventchannel/pkg/types"
)

// DefaultBatchSize is the number of rows a durable queue loads at once
const DefaultBatchSize = 10

// Criteria tunes a HasNext call
type Criteria struct {
	// Refill allows a durable queue to load the next batch from the store
	// when its buffer is empty. Transient queues ignore it.
	Refill bool
}

// Queue is the ordered event buffer owned by one channel.
// Next must only be called after HasNext returned true.
type Queue interface {
	Add(event *types.Event) error
	HasNext(criteria Criteria) (bool, error)
	Next() *types.Event
	Update(event *types.Event, outcome types.Outcome) error

	// NoConsumersAvailable is an advisory hook called when delivery could
	// not even be attempted
	NoConsumersAvailable()

	Len() int
	Persistent() bool
	Shutdown() error
}

// Config selects and tunes a queue variant
type Config struct {
	ChannelName string
	Persistent  bool
	BatchSize   int
	Store       storage.EventStore
}

// New builds the queue variant selected by cfg
func New(cfg Config) (Queue, error) {
	if cfg.Persistent {
		return NewDurable(cfg.ChannelName, cfg.Store, cfg.BatchSize)
	}
	return NewTransient(cfg.ChannelName), nil
}

// ResetFailed puts failed durable events selected by req back into retry
func ResetFailed(store storage.EventStore, req types.ResetRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	return store.ResetFailed(req)
}
