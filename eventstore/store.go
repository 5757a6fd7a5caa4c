// Package eventstore persists the registry's notification log.
// Stores are append-only and ordered: an append states the sequence
// number it expects the log to end at, so two writers racing on the
// same store cannot interleave or drop notices silently.
package eventstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/thirupathireddy27/NFT-smart-contract/registry"
)

var (
	// ErrSequenceConflict is returned when an append expects a
	// different tail sequence than the store holds.
	ErrSequenceConflict = errors.New("eventstore: sequence conflict")

	// ErrSequenceGap is returned when appended events do not continue
	// the sequence contiguously.
	ErrSequenceGap = errors.New("eventstore: sequence gap")
)

// Event is one stored notice. Seq mirrors the notice's registry
// sequence number; ID is a store-level identifier.
type Event struct {
	ID        string          `json:"id"`
	Seq       uint64          `json:"seq"`
	Kind      string          `json:"kind"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// FromNotice wraps a notice for storage.
func FromNotice(n registry.Notice) (*Event, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:        uuid.New().String(),
		Seq:       n.Seq,
		Kind:      string(n.Kind),
		Data:      data,
		CreatedAt: n.Time,
	}, nil
}

// Notice unwraps the stored notice.
func (e *Event) Notice() (registry.Notice, error) {
	var n registry.Notice
	if err := json.Unmarshal(e.Data, &n); err != nil {
		return registry.Notice{}, err
	}
	return n, nil
}

// Store is the persistence contract for the notice log.
type Store interface {
	// Append adds events to the log. expected is the sequence number
	// the log currently ends at (0 for an empty log); on mismatch the
	// append fails with ErrSequenceConflict and stores nothing. The
	// events themselves must continue the sequence contiguously.
	// Returns the new tail sequence.
	Append(ctx context.Context, expected uint64, events []*Event) (uint64, error)

	// Read returns all events with Seq >= from, in sequence order.
	Read(ctx context.Context, from uint64) ([]*Event, error)

	// LastSeq returns the sequence number the log ends at, 0 if
	// empty.
	LastSeq(ctx context.Context) (uint64, error)

	// Close releases store resources.
	Close() error
}

// checkContiguous verifies events continue tail without gaps.
func checkContiguous(tail uint64, events []*Event) error {
	next := tail + 1
	for _, e := range events {
		if e.Seq != next {
			return ErrSequenceGap
		}
		next++
	}
	return nil
}
