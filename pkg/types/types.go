package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxErrorMessageLength bounds the stored last error message
const MaxErrorMessageLength = 1024

// ErrorStatus is the retry state of a durable event
type ErrorStatus string

const (
	ErrorStatusNew           ErrorStatus = ""
	ErrorStatusAwaitingRetry ErrorStatus = "awaiting_retry"
	ErrorStatusFailed        ErrorStatus = "failed"
	ErrorStatusDelivered     ErrorStatus = "delivered"
)

// Pending reports whether an event in this state may be loaded for delivery
func (s ErrorStatus) Pending() bool {
	return s == ErrorStatusNew || s == ErrorStatusAwaitingRetry
}

func (s ErrorStatus) String() string {
	if s == ErrorStatusNew {
		return "new"
	}
	return string(s)
}

// Event is the unit of data moving through a channel
type Event struct {
	ChannelName      string      `json:"channel_name"`
	ID               int64       `json:"id"`
	Message          string      `json:"message"`
	ArrivalTime      time.Time   `json:"arrival_time"`
	ErrorStatus      ErrorStatus `json:"error_status,omitempty"`
	ErrorCount       int         `json:"error_count"`
	LastErrorMessage string      `json:"last_error_message,omitempty"`
	LastErrorTime    time.Time   `json:"last_error_time,omitempty"`
	DeliveredAt      time.Time   `json:"delivered_at,omitempty"`
}

// NewEvent creates an event for a producer payload
func NewEvent(channelName, message string) *Event {
	return &Event{
		ChannelName: channelName,
		Message:     message,
		ArrivalTime: time.Now(),
	}
}

// RecordFailure applies a failed delivery attempt to the event
func (e *Event) RecordFailure(msg string, at time.Time) {
	e.ErrorCount++
	e.ErrorStatus = ErrorStatusFailed
	e.LastErrorMessage = TruncateErrorMessage(msg)
	e.LastErrorTime = at
}

// RecordDelivered marks the event as delivered
func (e *Event) RecordDelivered(at time.Time) {
	e.ErrorStatus = ErrorStatusDelivered
	e.DeliveredAt = at
}

// TruncateErrorMessage cuts msg to MaxErrorMessageLength runes
func TruncateErrorMessage(msg string) string {
	if utf8.RuneCountInString(msg) <= MaxErrorMessageLength {
		return msg
	}
	runes := []rune(msg)
	return string(runes[:MaxErrorMessageLength])
}

// DeliveryStatus is the tri-state result of a fan-out attempt
type DeliveryStatus int

const (
	DeliverySuccessful DeliveryStatus = iota
	DeliveryFailed
	NoConsumersAvailable
)

func (s DeliveryStatus) String() string {
	switch s {
	case DeliverySuccessful:
		return "delivered"
	case DeliveryFailed:
		return "failed"
	case NoConsumersAvailable:
		return "no_consumers"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Outcome is what a consumer policy reports for one event
type Outcome struct {
	Status DeliveryStatus

	// LastError is the most recent failure seen before any consumer accepted
	// the event. Empty when the delivery succeeded on the first consumer.
	LastError string
}

// ResetRequest selects failed durable events to put back into retry
type ResetRequest struct {
	ChannelName  string     `json:"channelName"`
	DateFloor    *time.Time `json:"dateFloor,omitempty"`
	RetryCeiling *int       `json:"retryCeiling,omitempty"`
	EventID      *int64     `json:"eventId,omitempty"`
}

// ErrInvalidResetRequest is returned for a reset request without a channel
var ErrInvalidResetRequest = errors.New("invalid reset request")

// Validate checks the required fields of the request
func (r ResetRequest) Validate() error {
	if strings.TrimSpace(r.ChannelName) == "" {
		return fmt.Errorf("%w: channelName is required", ErrInvalidResetRequest)
	}
	if r.RetryCeiling != nil && *r.RetryCeiling < 0 {
		return fmt.Errorf("%w: retryCeiling must not be negative", ErrInvalidResetRequest)
	}
	return nil
}

// Matches reports whether a failed event is selected by the request
func (r ResetRequest) Matches(e *Event) bool {
	if e.ErrorStatus != ErrorStatusFailed || e.ChannelName != r.ChannelName {
		return false
	}
	if r.EventID != nil {
		return e.ID == *r.EventID
	}
	if r.DateFloor != nil && e.LastErrorTime.Before(*r.DateFloor) {
		return false
	}
	if r.RetryCeiling != nil && e.ErrorCount > *r.RetryCeiling {
		return false
	}
	return true
}
