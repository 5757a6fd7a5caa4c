package eventstore

import (
	"context"
	"sync"
)

// MemoryStore keeps the log in process memory. Suitable for tests and
// for hosts that replay from an external source on start.
type MemoryStore struct {
	mu     sync.RWMutex
	events []*Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(ctx context.Context, expected uint64, events []*Event) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tail := uint64(0)
	if len(s.events) > 0 {
		tail = s.events[len(s.events)-1].Seq
	}
	if tail != expected {
		return tail, ErrSequenceConflict
	}
	if err := checkContiguous(tail, events); err != nil {
		return tail, err
	}

	s.events = append(s.events, events...)
	if len(s.events) > 0 {
		tail = s.events[len(s.events)-1].Seq
	}
	return tail, nil
}

func (s *MemoryStore) Read(ctx context.Context, from uint64) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Event
	for _, e := range s.events {
		if e.Seq >= from {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore) LastSeq(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) == 0 {
		return 0, nil
	}
	return s.events[len(s.events)-1].Seq, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
