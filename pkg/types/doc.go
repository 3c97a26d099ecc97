/*
Package types defines the core data structures shared by every event channel
component.

The types package contains the Event record that flows from producers to
consumers, the retry status of durable events, the tri-state outcome a
consumer policy reports, and the administrative reset request. These types
are used by the queue, policy, channel and storage packages and are persisted
as JSON inside BoltDB.

# Core Types

Event:
  - ChannelName: owning channel (immutable)
  - ID: store-assigned sequence id, globally monotonic (durable only)
  - Message: opaque producer payload (immutable)
  - ArrivalTime: set when the event is created
  - ErrorStatus / ErrorCount / LastErrorMessage / LastErrorTime: retry
    bookkeeping, mutated only by queue operations

Outcome:
  - Status: DeliverySuccessful, DeliveryFailed or NoConsumersAvailable
  - LastError: failure text recorded while no consumer had accepted yet

ResetRequest:
  - ChannelName: required target channel
  - DateFloor: only events last failed at or after this time
  - RetryCeiling: only events with ErrorCount at or below this value
  - EventID: selects exactly one event, ignoring the two filters above

# Status Machine

Durable events move through:

	new → delivered
	 ↓
	failed → awaiting_retry → delivered
	           ↓
	         failed (again)

Only pending states (new, awaiting_retry) are loaded for delivery. The
failed → awaiting_retry transition is made exclusively by a reset request.

# Usage

	ev := types.NewEvent("orders", `{"id": 42}`)

	ceiling := 3
	req := types.ResetRequest{ChannelName: "orders", RetryCeiling: &ceiling}
	if err := req.Validate(); err != nil {
		return err
	}
*/
package types
