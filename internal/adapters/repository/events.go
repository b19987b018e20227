package repository

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/okian/encore/internal/domain/model"
)

const defaultShardCount = 8

// InMemoryEventStore implements EventStore with id-hashed shards to
// keep write contention low while ingest workers and read requests run
// concurrently.
type InMemoryEventStore struct {
	shards []eventShard
}

type eventShard struct {
	mu     sync.RWMutex
	events map[string]model.Event
}

// NewInMemoryEventStore creates an event store with configuration options.
func NewInMemoryEventStore(opts ...storeConfig) *InMemoryEventStore {
	cfg := config{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &InMemoryEventStore{
		shards: make([]eventShard, cfg.shardCount),
	}
	for i := range s.shards {
		s.shards[i].events = make(map[string]model.Event)
	}
	return s
}

func (s *InMemoryEventStore) shard(id string) *eventShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.shards[h.Sum32()%uint32(len(s.shards))]
}

// Upsert inserts or replaces an event by id.
func (s *InMemoryEventStore) Upsert(_ context.Context, ev model.Event) (bool, error) {
	if err := ev.Validate(); err != nil {
		return false, err
	}
	sh := s.shard(ev.ID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	_, exists := sh.events[ev.ID]
	sh.events[ev.ID] = ev
	return !exists, nil
}

// Get returns the event with the given id.
func (s *InMemoryEventStore) Get(_ context.Context, id string) (model.Event, error) {
	sh := s.shard(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	ev, ok := sh.events[id]
	if !ok {
		return model.Event{}, ErrNotFound
	}
	return ev, nil
}

// List returns a snapshot of all events.
func (s *InMemoryEventStore) List(_ context.Context) []model.Event {
	var out []model.Event
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		for _, ev := range sh.events {
			out = append(out, ev)
		}
		sh.mu.RUnlock()
	}
	return out
}

// Count returns the number of events in the catalogue.
func (s *InMemoryEventStore) Count(_ context.Context) int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.events)
		sh.mu.RUnlock()
	}
	return n
}
