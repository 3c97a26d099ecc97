package storage

import (
	"errors"
	"time"

	"github.com/cuemby/eventchannel/pkg/types"
)

var (
	// ErrEventNotFound is returned when an update addresses a missing row
	ErrEventNotFound = errors.New("event not found")

	// ErrInvalidEvent is returned when an event cannot be stored as given
	ErrInvalidEvent = errors.New("invalid event")
)

// EventStore defines the durable backing of persistent channels.
// Every mutating call is committed on return; there are no cross-call
// transactions.
type EventStore interface {
	// InsertEvent persists a new event and assigns its sequence id
	InsertEvent(event *types.Event) error

	// LoadPending returns up to limit events of the channel whose status is
	// new or awaiting retry, ordered by ascending id
	LoadPending(channel string, limit int) ([]*types.Event, error)

	// MarkDelivered records a successful delivery
	MarkDelivered(channel string, id int64, at time.Time) error

	// MarkFailed increments the error count and records the failure
	MarkFailed(channel string, id int64, message string, at time.Time) error

	// ResetFailed moves failed events selected by req back to awaiting retry
	// and returns how many were changed
	ResetFailed(req types.ResetRequest) (int, error)

	GetEvent(channel string, id int64) (*types.Event, error)
	ListEvents(channel string) ([]*types.Event, error)

	Close() error
}
