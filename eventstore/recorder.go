package eventstore

import (
	"context"
	"sync"

	"github.com/thirupathireddy27/NFT-smart-contract/registry"
)

// Recorder buffers registry notices and appends them to a store on
// Flush. The registry observer runs under the registry lock, so the
// recorder only queues there and defers I/O to the caller's flush.
type Recorder struct {
	mu      sync.Mutex
	store   Store
	pending []*Event
	tail    uint64 // last sequence known to be in the store
}

// NewRecorder creates a recorder over store, resuming from the
// store's current tail.
func NewRecorder(ctx context.Context, store Store) (*Recorder, error) {
	tail, err := store.LastSeq(ctx)
	if err != nil {
		return nil, err
	}
	return &Recorder{store: store, tail: tail}, nil
}

// Observe queues a notice. Wire it as registry.Config.Observer or via
// Registry.SetObserver.
func (rec *Recorder) Observe(n registry.Notice) {
	e, err := FromNotice(n)
	if err != nil {
		// Notices are plain data; marshaling cannot fail for values
		// the registry emits.
		panic("eventstore: marshal notice: " + err.Error())
	}
	rec.mu.Lock()
	rec.pending = append(rec.pending, e)
	rec.mu.Unlock()
}

// Pending returns the number of queued, unflushed notices.
func (rec *Recorder) Pending() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.pending)
}

// Flush appends the queued notices to the store and returns the new
// tail sequence. On failure the queue is kept for a retry.
func (rec *Recorder) Flush(ctx context.Context) (uint64, error) {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if len(rec.pending) == 0 {
		return rec.tail, nil
	}
	tail, err := rec.store.Append(ctx, rec.tail, rec.pending)
	if err != nil {
		return rec.tail, err
	}
	rec.tail = tail
	rec.pending = nil
	return tail, nil
}
