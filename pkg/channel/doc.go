/*
Package channel implements named push-model event channels, the
dispatcher goroutine that drives their delivery, the registry that owns
them and the admin channel that resets failed durable events.

A channel decouples producers from consumers. Producers hand it opaque
string payloads; the channel queues them and a single dispatcher
goroutine pushes each one to the attached consumers through a consumer
policy. Nothing is ever pulled: consumers only receive what the
dispatcher pushes.

# Architecture

	┌──────────────────────────── CHANNEL ─────────────────────────────┐
	│                                                                   │
	│  producers                                                        │
	│  ┌──────────────┐   SupplierPush    ┌──────────────────────────┐ │
	│  │ Supplier     │ ────────────────▶ │ rate.Limiter (optional)  │ │
	│  │ proxies      │                   └────────────┬─────────────┘ │
	│  └──────────────┘                                │               │
	│                                   ┌──────────────▼─────────────┐ │
	│                                   │ queue.Queue                │ │
	│                                   │  Transient: in-memory FIFO │ │
	│                                   │  Durable:   EventStore     │ │
	│                                   └──────────────┬─────────────┘ │
	│                                      Alert()     │               │
	│                                   ┌──────────────▼─────────────┐ │
	│                                   │ dispatcher goroutine       │ │
	│                                   │  notify chan (1 slot)      │ │
	│                                   │  ticker at WakeInterval    │ │
	│                                   └──────────────┬─────────────┘ │
	│                                   ConsumerPush   │               │
	│                                   ┌──────────────▼─────────────┐ │
	│                                   │ policy.ConsumerPolicy      │ │
	│                                   │  OnlyOnce by default       │ │
	│                                   └──────────────┬─────────────┘ │
	│  consumers                                       │               │
	│  ┌──────────────┐        Push                    │               │
	│  │ Consumer     │ ◀──────────────────────────────┘               │
	│  │ proxies      │                                                │
	│  └──────────────┘                                                │
	│                                                                   │
	│  events.Publisher ◀── attach, detach, delivery failed, destroyed  │
	└───────────────────────────────────────────────────────────────────┘

# Core Components

Channel:
  - Owns one queue, one dispatcher and the sets of supplier and
    consumer proxies
  - Implements proxy.Owner, so proxies attach and detach themselves
  - Publishes lifecycle notifications when built WithEvents
  - Optionally throttles producers with golang.org/x/time/rate

Registry:
  - Name to channel map guarded by a RWMutex
  - Create builds and registers a channel in one step
  - Remove destroys the channel before unregistering it
  - Shutdown removes every channel, used on server stop
  - Stats returns one metrics.ChannelStats snapshot per channel

Admin:
  - A channel whose producer payloads are reset commands
  - Applies them to the shared EventStore and alerts the target channel
  - Never queues anything and needs no consumers

dispatcher:
  - One goroutine per channel, started by New
  - Sleeps on a one-slot notify channel and a fallback ticker
  - Runs ConsumerPush while ReadyToDeliverEvents holds

# Lifecycle

A channel is created by New (or Registry.Create) and is Active until
Destroy. Destroy moves it to ShuttingDown, which refuses new connections
and pushes, stops the dispatcher once its in-flight event is settled,
tears every connection down, shuts the queue down and finally marks it
Destroyed. Registry.Remove destroys the channel before unregistering it.

	Active ──Destroy──▶ ShuttingDown ──(connections gone)──▶ Destroyed

Destroy is idempotent. Calls made on a channel that is no longer Active
return ErrChannelUnavailable.

# Delivery

Producers call SupplierPush, directly or through a Supplier proxy. The
payload is wrapped in an Event, added to the queue and the dispatcher is
alerted. The dispatcher waits until ReadyToDeliverEvents reports queued
data and at least one consumer, then runs ConsumerPush:

	for channel active and consumers attached and queue.HasNext {
		event := queue.Next()
		outcome := policy.Deliver(ctx, consumers, event)
		queue.Update(event, outcome)
	}

The consumer set is re-read on every iteration. A consumer that detaches
during a push, for instance from inside its own Push handler, is gone
from the next iteration; when it was the last one the pass ends and the
remaining events stay queued for the next consumer.

Alerts coalesce on a one-slot notify channel; a ticker at WakeInterval
recovers missed alerts and sweeps stale suppliers and consumers. A store
error ends the pass, is logged, and the dispatcher tries again after a
one second backoff. The event whose outcome could not be recorded keeps
its previous status in the store, so it is loaded and delivered again:
delivery is at least once.

Within one channel events are delivered in queue order: insertion order
for transient channels, ascending id for persistent ones. There is no
ordering across channels.

# Outcomes

The policy reports one of three outcomes for each event:

	DeliverySuccessful    at least one consumer accepted the event
	DeliveryFailed        every live consumer failed; LastError is kept
	NoConsumersAvailable  no consumer was live, or the pass was cancelled

A persistent channel records the first two in the store and leaves the
row untouched on the third. A transient channel drops the event in every
case and discards its whole buffer when nobody is attached.

# Admin channel

The admin channel accepts JSON reset commands as producer payloads:

	{"channelName": "orders", "dateFloor": "2026-01-02T00:00:00Z", "retryCeiling": 3}
	{"channelName": "orders", "eventId": 42}

Failed events matching the command are moved back to awaiting retry and
the target channel is alerted. Nothing is ever queued on the admin
channel, and it does not need consumers. The gRPC Reset call and the
eventd reset command go through Admin.Apply with the same selection.

# Usage

Creating a registry with one durable and one transient channel:

	store, err := storage.NewBoltStore(dataDir)
	if err != nil {
		return err
	}

	registry := channel.NewRegistry()
	orders, err := registry.Create(channel.Config{
		Name:       "orders",
		Persistent: true,
		BatchSize:  50,
	}, store, channel.WithEvents(broker))
	if err != nil {
		return err
	}

	_, err = registry.Create(channel.Config{
		Name:                "metrics",
		RelaxLivenessChecks: true,
		RateLimit:           500,
		RateBurst:           100,
	}, nil)

Attaching a consumer and producing:

	cons, err := orders.ObtainConsumerProxy()
	if err != nil {
		return err
	}
	if err := cons.Connect(peer); err != nil {
		return err
	}

	supplier, err := orders.ObtainSupplierProxy()
	if err != nil {
		return err
	}
	if err := supplier.Connect(proxy.DetachedPeer{}); err != nil {
		return err
	}
	err = supplier.Push(ctx, `{"order":42}`)

Shutting down:

	registry.Shutdown(ctx)

# Concurrency

  - SupplierPush, attach and detach may be called from any goroutine
  - ConsumerPush runs only on the dispatcher goroutine, so queue Next and
    Update calls are serialized per channel
  - The proxy sets are guarded by the channel mutex; the dispatcher works
    on a snapshot taken each iteration and never holds the mutex while
    pushing
  - Channel state is an atomic value readable without the mutex
  - Destroy waits for the dispatcher to exit before tearing connections
    down, so no push runs against a destroyed proxy

# Liveness

A proxy whose peer is known to be gone is pruned: destroyed and removed
from its channel. The OnlyOnce policy checks each consumer before
pushing to it, and the fallback tick sweeps every proxy. Only connection
failures prune; a timeout or any other error leaves the peer attached.
Channels configured with RelaxLivenessChecks never prune.

# Troubleshooting

Consumer Attached But Nothing Delivered:
  - Check: eventd channels for QUEUED and CONSUMERS
  - Cause: the dispatcher backs off after store errors; look for
    "Delivery pass failed" in the logs
  - Cause: the consumer keeps failing; its events are marked failed and
    wait for a reset on persistent channels

Consumers Disappearing:
  - Cause: their peer was found unreachable and pruned
  - Check: eventchannel_stale_peers_pruned_total
  - Solution: set relax_liveness_checks on channels whose consumers are
    known to be slow to answer health checks

Slow Producers:
  - Cause: the channel's rate limit; SupplierPush waits for a token
  - Check: rate_limit and rate_burst in the channel configuration

Duplicate Deliveries:
  - Cause: the outcome of a delivered event could not be stored
  - Expected under store errors; consumers must be idempotent

# Monitoring

  - eventchannel_events_enqueued_total: events accepted per channel
  - eventchannel_deliveries_total: outcomes per channel and status
  - eventchannel_consumers_attached, eventchannel_suppliers_attached
  - eventchannel_stale_peers_pruned_total: pruned proxies per kind
  - eventchannel_events_reset_total: events put back into retry

# See Also

  - pkg/queue for the two queue variants
  - pkg/policy for the only-once consumer policy
  - pkg/proxy for supplier and consumer connections
  - pkg/storage for the durable event store
  - pkg/transport for the gRPC front end
*/
package channel
