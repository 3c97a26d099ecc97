/*
Package policy decides how an event is fanned out to a channel's consumers.

OnlyOnce is the only policy. For every event it:

 1. Snapshots the consumers and destroys those whose peer is gone
 2. Returns NoConsumersAvailable if none are left
 3. Pushes the event to each remaining consumer in turn, waiting at most
    MaxPushWait for each one
 4. Reports DeliverySuccessful if any consumer accepted the event, and
    DeliveryFailed with the last error otherwise

A single event can therefore hold the dispatcher for up to MaxPushWait
times the number of live consumers. Each push runs on its own goroutine
with a context carrying the deadline; a consumer that ignores the context
is abandoned by the waiter and finishes unobserved.

"Only once" means at least one consumer succeeded, not that every consumer
saw the event exactly once.
*/
package policy
