package eventstore

import (
	"context"
	"fmt"

	"github.com/thirupathireddy27/NFT-smart-contract/registry"
)

// Rebuild reconstructs a registry from a stored notice log by folding
// every event over an empty snapshot of the given construction
// parameters. The returned registry continues sequence numbering from
// the last stored notice, so a Recorder over the same store picks up
// where the log left off.
func Rebuild(ctx context.Context, store Store, cfg registry.Config) (*registry.Registry, error) {
	events, err := store.Read(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	snap := registry.NewSnapshot(cfg)
	for _, e := range events {
		n, err := e.Notice()
		if err != nil {
			return nil, fmt.Errorf("decode seq %d: %w", e.Seq, err)
		}
		if err := snap.Apply(n); err != nil {
			return nil, fmt.Errorf("replay seq %d: %w", e.Seq, err)
		}
	}

	r, err := registry.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	if cfg.Observer != nil {
		r.SetObserver(cfg.Observer)
	}
	return r, nil
}
