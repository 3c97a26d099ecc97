/*
Package storage provides the durable event store behind persistent channels,
backed by BoltDB (go.etcd.io/bbolt).

The EventStore interface is what durable queues and the admin channel
depend on; BoltStore is its only implementation. One store, and one
database file, is shared by every persistent channel of a server.

# Architecture

	┌───────────────────────── BOLTDB STORE ──────────────────────────┐
	│                                                                  │
	│  ┌────────────────────────────────────────────┐                 │
	│  │ BoltStore                                   │                 │
	│  │  - File: <dataDir>/events.db (mode 0600)    │                 │
	│  │  - Open timeout: 5s on the file lock        │                 │
	│  └──────────────────┬─────────────────────────┘                 │
	│                     │                                            │
	│  ┌──────────────────▼─────────────────────────┐                 │
	│  │ events bucket                               │                 │
	│  │  sequence: global event id generator        │                 │
	│  │  one nested bucket per channel:             │                 │
	│  │    big-endian id → JSON types.Event         │                 │
	│  └──────────────────┬─────────────────────────┘                 │
	│                     │                                            │
	│  ┌──────────────────▼─────────────────────────┐                 │
	│  │ pending bucket                              │                 │
	│  │  one nested bucket per channel:             │                 │
	│  │    big-endian id of every new or            │                 │
	│  │    awaiting-retry event                     │                 │
	│  └────────────────────────────────────────────┘                 │
	└──────────────────────────────────────────────────────────────────┘

# Layout

	events.db
	├── events                  (bucket, sequence = global id generator)
	│   ├── orders              (nested bucket per channel)
	│   │   ├── 0x...01 → {"channel_name":"orders","id":1,...}
	│   │   └── 0x...04 → {...}
	│   └── billing
	│       └── 0x...02 → {...}
	└── pending
	    ├── orders
	    │   └── 0x...04
	    └── billing
	        └── 0x...02

Keys are big-endian uint64 event ids, so a cursor walks a channel in
ascending id order. Values are the JSON encoding of types.Event and carry
the message, arrival time, error status, error count, last error message
and last error time.

Ids come from NextSequence on the top-level bucket and are therefore unique
and monotonic across all channels, not per channel.

# Pending Index

Rows are never deleted, so a channel's bucket keeps growing with
delivered and failed history. LoadPending does not scan it. It walks the
channel's bucket under pending, which holds only the ids whose status is
new or awaiting retry, and reads those rows by key.

The index is maintained in the same transaction as the row it follows:

	InsertEvent     adds the id
	MarkDelivered   removes it
	MarkFailed      removes it
	ResetFailed     adds it back for every row it resets

NewBoltStore rebuilds the index from the rows when it opens a database
that has none, which covers files written before it existed.

# Transactions

Every EventStore method runs in its own bolt transaction and is committed
before it returns. There are no transactions spanning calls.

Updates addressing a missing row return ErrEventNotFound, wrapped with the
channel and id. InsertEvent rejects an event without a channel name with
ErrInvalidEvent. ResetFailed validates its request first and returns
types.ErrInvalidResetRequest for a missing channel or a negative retry
ceiling.

InsertEvent only writes the assigned id, arrival time and status back to
the caller's event once the row is part of the transaction.

# Status Transitions

	new ──MarkDelivered──▶ delivered
	new ──MarkFailed─────▶ failed ──ResetFailed──▶ awaiting retry
	awaiting retry ──MarkDelivered──▶ delivered
	awaiting retry ──MarkFailed─────▶ failed

Delivered is terminal. MarkFailed increments the error count and keeps
the last error message, truncated to types.MaxErrorMessageLength runes.

# Usage

	store, err := storage.NewBoltStore("/var/lib/eventchannel")
	if err != nil {
		return err
	}
	defer store.Close()

	ev := types.NewEvent("orders", payload)
	if err := store.InsertEvent(ev); err != nil {
		return err
	}

	pending, err := store.LoadPending("orders", 10)
	if err != nil {
		return err
	}
	for _, ev := range pending {
		if err := deliver(ev); err != nil {
			_ = store.MarkFailed("orders", ev.ID, err.Error(), time.Now())
			continue
		}
		_ = store.MarkDelivered("orders", ev.ID, time.Now())
	}

Putting failed events back into retry:

	floor := time.Now().Add(-24 * time.Hour)
	n, err := store.ResetFailed(types.ResetRequest{
		ChannelName: "orders",
		DateFloor:   &floor,
	})

# Concurrency

BoltStore is safe for concurrent use. Reads run in View transactions and
proceed in parallel; writes run in Update transactions, which bolt
serializes. Each channel's dispatcher is the only writer of outcomes for
its own rows, while producers insert concurrently.

Only one process can open the file at a time. A second NewBoltStore on
the same directory fails after the open timeout.

# Performance Characteristics

  - InsertEvent, MarkDelivered, MarkFailed: O(log n) plus one fsync
  - LoadPending: O(limit) index reads plus O(log n) per row fetched,
    independent of how much delivered history the channel holds
  - ResetFailed by event id: O(log n)
  - ResetFailed by channel: full scan of the channel's rows
  - ListEvents: full scan, meant for tests and tooling

# Design Patterns

Closure Transactions:
  - Every method wraps its work in db.View or db.Update
  - Returning an error from the closure rolls back
  - Nothing outside the closure sees partial writes

Read-Modify-Write:
  - MarkDelivered and MarkFailed decode the row, apply one types.Event
    method and write it back with its index entry in one transaction
  - Status rules live in pkg/types, not in the store

Collect, Then Write:
  - ResetFailed copies matching rows out of ForEach before writing
  - Bolt forbids modifying a bucket while iterating it

Error Wrapping:
  - Errors are wrapped with context: fmt.Errorf("...: %w", err)
  - Sentinels stay reachable through errors.Is

# Troubleshooting

Timeout On Open:
  - Symptom: "failed to open database: timeout"
  - Cause: another eventd holds the file lock on events.db
  - Solution: run one server per data directory

Backlog Not Shrinking:
  - Check: eventd channels shows the queue depth, not the backlog;
    count pending rows with ListEvents in tooling
  - Cause: no consumer attached, or every delivery fails

Large Database File:
  - Cause: delivered and failed rows are kept as history
  - Bolt reuses freed pages but never shrinks the file
  - Solution: compact offline with the bbolt CLI

Decode Errors:
  - Symptom: "failed to decode event N"
  - Cause: a row written by a foreign tool or a corrupted file
  - Solution: inspect the row with the bbolt CLI and repair or remove it

# Data Integrity

  - Atomicity: a row and its pending index entry change together
  - Durability: bolt fsyncs on every commit
  - Ordering: ids are assigned under the single writer lock, so a
    channel's rows are totally ordered by insertion
  - Backup: copy events.db while the server is stopped, or from a
    View transaction with tx.WriteTo

# Monitoring

  - eventchannel_store_errors_total counts failed store calls per channel
    and operation; it is incremented by the durable queue
  - The server checks Ping every 30s and reports the store in /ready

# See Also

  - pkg/queue for the durable queue built on EventStore
  - pkg/channel for the admin channel that issues resets
  - pkg/types for Event and ResetRequest
  - BoltDB documentation: https://github.com/etcd-io/bbolt
*/
package storage
