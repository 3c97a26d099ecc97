package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cuemby/eventchannel/pkg/types"
	bolt "go.etcd.io/bbolt"
)

var (
	// Top-level bucket; holds one nested bucket per channel. Its sequence
	// is the global id generator shared by all channels.
	bucketEvents = []byte("events")

	// Index of the ids still waiting for delivery, one nested bucket per
	// channel. It lets LoadPending skip delivered and failed rows.
	bucketPending = []byte("pending")

	pendingMark = []byte{1}
)

// BoltStore implements EventStore using BoltDB
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore creates a new BoltDB-backed store
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "events.db")

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketEvents); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketEvents, err)
		}
		if tx.Bucket(bucketPending) != nil {
			return nil
		}
		if _, err := tx.CreateBucket(bucketPending); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketPending, err)
		}
		return rebuildPending(tx)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Ping runs an empty read transaction to check the database is usable
func (s *BoltStore) Ping() error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketEvents) == nil {
			return fmt.Errorf("bucket %s is missing", bucketEvents)
		}
		return nil
	})
}

func idKey(id int64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(id))
	return k
}

// channelBucket returns the nested bucket of a channel, or nil
func channelBucket(tx *bolt.Tx, channel string) *bolt.Bucket {
	return tx.Bucket(bucketEvents).Bucket([]byte(channel))
}

// indexPending adds or removes the id of event in the pending index,
// following its status
func indexPending(tx *bolt.Tx, event *types.Event) error {
	idx, err := tx.Bucket(bucketPending).CreateBucketIfNotExists([]byte(event.ChannelName))
	if err != nil {
		return fmt.Errorf("failed to create pending index: %w", err)
	}
	if event.ErrorStatus.Pending() {
		return idx.Put(idKey(event.ID), pendingMark)
	}
	return idx.Delete(idKey(event.ID))
}

// rebuildPending fills the pending index from the stored rows. Used when
// opening a database written before the index existed.
func rebuildPending(tx *bolt.Tx) error {
	root := tx.Bucket(bucketEvents)
	return root.ForEach(func(name, v []byte) error {
		if v != nil {
			return nil
		}
		return root.Bucket(name).ForEach(func(k, v []byte) error {
			var event types.Event
			if err := json.Unmarshal(v, &event); err != nil {
				return fmt.Errorf("failed to decode event %d: %w", binary.BigEndian.Uint64(k), err)
			}
			event.ChannelName = string(name)
			return indexPending(tx, &event)
		})
	})
}

func (s *BoltStore) InsertEvent(event *types.Event) error {
	if event.ChannelName == "" {
		return fmt.Errorf("%w: channel name is required", ErrInvalidEvent)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketEvents)
		b, err := root.CreateBucketIfNotExists([]byte(event.ChannelName))
		if err != nil {
			return fmt.Errorf("failed to create channel bucket: %w", err)
		}

		seq, err := root.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate event id: %w", err)
		}

		stored := *event
		stored.ID = int64(seq)
		stored.ErrorStatus = types.ErrorStatusNew
		if stored.ArrivalTime.IsZero() {
			stored.ArrivalTime = time.Now()
		}

		data, err := json.Marshal(&stored)
		if err != nil {
			return err
		}
		if err := b.Put(idKey(stored.ID), data); err != nil {
			return err
		}
		if err := indexPending(tx, &stored); err != nil {
			return err
		}

		// Only publish the id once the write is part of the transaction
		event.ID = stored.ID
		event.ArrivalTime = stored.ArrivalTime
		event.ErrorStatus = stored.ErrorStatus
		return nil
	})
}

// LoadPending walks the pending index in id order and returns up to limit
// events awaiting delivery
func (s *BoltStore) LoadPending(channel string, limit int) ([]*types.Event, error) {
	var events []*types.Event
	err := s.db.View(func(tx *bolt.Tx) error {
		b := channelBucket(tx, channel)
		idx := tx.Bucket(bucketPending).Bucket([]byte(channel))
		if b == nil || idx == nil {
			return nil
		}

		c := idx.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if limit > 0 && len(events) >= limit {
				break
			}
			v := b.Get(k)
			if v == nil {
				continue
			}
			var event types.Event
			if err := json.Unmarshal(v, &event); err != nil {
				return fmt.Errorf("failed to decode event %d: %w", binary.BigEndian.Uint64(k), err)
			}
			if event.ErrorStatus.Pending() {
				events = append(events, &event)
			}
		}
		return nil
	})
	return events, err
}

// update applies fn to one stored event inside a single transaction
func (s *BoltStore) update(channel string, id int64, fn func(*types.Event)) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := channelBucket(tx, channel)
		if b == nil {
			return fmt.Errorf("%w: %s/%d", ErrEventNotFound, channel, id)
		}
		data := b.Get(idKey(id))
		if data == nil {
			return fmt.Errorf("%w: %s/%d", ErrEventNotFound, channel, id)
		}

		var event types.Event
		if err := json.Unmarshal(data, &event); err != nil {
			return err
		}
		fn(&event)

		updated, err := json.Marshal(&event)
		if err != nil {
			return err
		}
		if err := b.Put(idKey(id), updated); err != nil {
			return err
		}
		return indexPending(tx, &event)
	})
}

func (s *BoltStore) MarkDelivered(channel string, id int64, at time.Time) error {
	return s.update(channel, id, func(e *types.Event) {
		e.RecordDelivered(at)
	})
}

func (s *BoltStore) MarkFailed(channel string, id int64, message string, at time.Time) error {
	return s.update(channel, id, func(e *types.Event) {
		e.RecordFailure(message, at)
	})
}

func (s *BoltStore) ResetFailed(req types.ResetRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := channelBucket(tx, req.ChannelName)
		if b == nil {
			return nil
		}

		reset := func(k, v []byte) error {
			var event types.Event
			if err := json.Unmarshal(v, &event); err != nil {
				return err
			}
			if !req.Matches(&event) {
				return nil
			}
			event.ErrorStatus = types.ErrorStatusAwaitingRetry
			data, err := json.Marshal(&event)
			if err != nil {
				return err
			}
			if err := b.Put(k, data); err != nil {
				return err
			}
			if err := indexPending(tx, &event); err != nil {
				return err
			}
			count++
			return nil
		}

		if req.EventID != nil {
			k := idKey(*req.EventID)
			if v := b.Get(k); v != nil {
				return reset(k, v)
			}
			return nil
		}

		// Collect first; bolt forbids Put while iterating with ForEach
		type kv struct{ k, v []byte }
		var rows []kv
		if err := b.ForEach(func(k, v []byte) error {
			rows = append(rows, kv{append([]byte(nil), k...), append([]byte(nil), v...)})
			return nil
		}); err != nil {
			return err
		}
		for _, row := range rows {
			if err := reset(row.k, row.v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *BoltStore) GetEvent(channel string, id int64) (*types.Event, error) {
	var event types.Event
	err := s.db.View(func(tx *bolt.Tx) error {
		b := channelBucket(tx, channel)
		if b == nil {
			return fmt.Errorf("%w: %s/%d", ErrEventNotFound, channel, id)
		}
		data := b.Get(idKey(id))
		if data == nil {
			return fmt.Errorf("%w: %s/%d", ErrEventNotFound, channel, id)
		}
		return json.Unmarshal(data, &event)
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *BoltStore) ListEvents(channel string) ([]*types.Event, error) {
	var events []*types.Event
	err := s.db.View(func(tx *bolt.Tx) error {
		b := channelBucket(tx, channel)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var event types.Event
			if err := json.Unmarshal(v, &event); err != nil {
				return err
			}
			events = append(events, &event)
			return nil
		})
	})
	return events, err
}
