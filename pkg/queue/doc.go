/*
Package queue implements the ordered event buffers owned by channels.

Every channel owns exactly one Queue. Producers add to it from any
goroutine; the channel's dispatcher is the only reader. HasNext, Next
and Update form a peek, deliver, settle cycle in which the event at the
head stays in place until its outcome is recorded.

# Architecture

	┌──────────────────────── QUEUE VARIANTS ────────────────────────┐
	│                                                                 │
	│  Transient                                                      │
	│  ┌───────────────────────────────────────────────┐             │
	│  │ container/list FIFO                            │             │
	│  │  Add ─▶ PushBack                               │             │
	│  │  Next ─▶ Front                                 │             │
	│  │  Update ─▶ Remove (every outcome)              │             │
	│  │  NoConsumersAvailable ─▶ discard everything    │             │
	│  └───────────────────────────────────────────────┘             │
	│                                                                 │
	│  Durable                                                        │
	│  ┌───────────────────────────────────────────────┐             │
	│  │ prefetch buffer (at most BatchSize events)     │             │
	│  │  Add ─▶ EventStore.InsertEvent (not buffered)  │             │
	│  │  HasNext(Refill) ─▶ EventStore.LoadPending     │             │
	│  │  Update ─▶ MarkDelivered / MarkFailed, drop    │             │
	│  │  NoConsumersAvailable ─▶ no-op                 │             │
	│  └──────────────────────┬────────────────────────┘             │
	│                         │                                       │
	│                ┌────────▼────────┐                              │
	│                │ storage.BoltStore│                             │
	│                └─────────────────┘                              │
	└─────────────────────────────────────────────────────────────────┘

Two variants are selected at construction time by the channel's persistence
flag:

Transient:
  - In-memory FIFO in insertion order
  - Update removes the event for every outcome; failures are not retried
  - NoConsumersAvailable discards the whole buffer. Transient channels have
    no retry obligation; use a persistent channel when events must survive
    the absence of consumers.

Durable:
  - Add writes through to the EventStore, which assigns the id; the event
    is not placed in the buffer
  - HasNext with Criteria.Refill loads up to BatchSize pending rows
    (new or awaiting retry) ordered by id when the buffer is empty
  - Update marks the row delivered or failed (error count, truncated last
    error message and time) and drops it from the buffer
  - NoConsumersAvailable leaves the rows untouched
  - Reset moves failed rows back to awaiting retry

# Delivery Cycle

The dispatcher drives a queue like this:

	ok, err := q.HasNext(queue.Criteria{Refill: true})
	if err != nil || !ok {
		return err
	}
	event := q.Next()
	outcome := policy.Deliver(ctx, consumers, event)
	if err := q.Update(event, outcome); err != nil {
		return err
	}

Next does not remove the event; only Update does. A crash between Next
and Update therefore loses nothing on a durable queue: the row is still
pending and is loaded again on restart.

Refill is what keeps the durable buffer small. A durable queue never
holds more than BatchSize events in memory, however many are waiting in
the store. Transient queues ignore Criteria.

# Store Errors

A durable queue reports store failures instead of hiding them:

  - Add returns the InsertEvent error and the producer sees it
  - HasNext returns the LoadPending error and loads nothing
  - Update returns the MarkDelivered or MarkFailed error, but still drops
    the event from the buffer; its row keeps its previous status and is
    reloaded by a later HasNext, so it is delivered again

Every failure increments eventchannel_store_errors_total with the
channel and the operation (insert, load, mark_delivered, mark_failed,
reset).

# Usage

	q, err := queue.New(queue.Config{
		ChannelName: "orders",
		Persistent:  true,
		BatchSize:   queue.DefaultBatchSize,
		Store:       store,
	})
	if err != nil {
		return err
	}

	if err := q.Add(types.NewEvent("orders", payload)); err != nil {
		return err
	}

Resetting failed events without going through a channel:

	ceiling := 3
	n, err := queue.ResetFailed(store, types.ResetRequest{
		ChannelName:  "orders",
		RetryCeiling: &ceiling,
	})

# Concurrency

Only the channel's dispatcher dequeues, so Next/Update calls are
serialized per channel; Add may be called concurrently by producers.
Both variants guard their buffer with a mutex. A durable Add never
touches the buffer, so producers never race the dispatcher's in-memory
view; new rows simply show up in the next batch load.

# Design Patterns

Peek, Then Settle:
  - Next returns the head without removing it
  - Update is the only call that removes, after the outcome is known
  - A pass that stops between the two leaves the event in place

Write-Through, Read-Ahead:
  - Durable producers write to the store and never touch the buffer
  - The dispatcher reads ahead in batches of BatchSize
  - The store is the source of truth; the buffer is a cache of its head

Advisory Hooks:
  - NoConsumersAvailable lets each variant apply its own retention rule
  - The channel calls it without knowing which variant it owns

# Troubleshooting

Events Delivered Twice:
  - Cause: Update could not record the outcome after a successful push
  - Check: eventchannel_store_errors_total{operation="mark_delivered"}
  - Expected: delivery is at least once; consumers must be idempotent

Transient Events Disappearing:
  - Cause: NoConsumersAvailable or a failed push drops transient events
  - Solution: make the channel persistent when events must be kept

Durable Queue Not Draining:
  - Symptom: rows stay new although consumers are attached
  - Check: eventchannel_store_errors_total{operation="load"} and the
    dispatcher's "Delivery pass failed" log lines
  - Cause: every pass fails on the store, and the dispatcher backs off

Failed Events Never Retried:
  - Cause: failed is not pending; nothing retries it automatically
  - Solution: issue a reset through the admin channel or eventd reset

# Monitoring

  - eventchannel_queue_depth: buffered events per channel; for a
    durable queue this is the prefetch buffer, not the backlog
  - eventchannel_store_errors_total: store failures per operation
  - eventchannel_events_reset_total: events put back into retry

# See Also

  - pkg/channel for the dispatcher that drives queues
  - pkg/storage for the EventStore behind durable queues
  - pkg/types for Event, Outcome and ResetRequest
*/
package queue
