package registry

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Snapshot is a JSON-serializable copy of the full registry state.
// Token ids are keyed by their decimal rendering. Snapshots serve two
// purposes: checkpointing a live registry, and acting as the fold
// target when replaying a notice log (see Apply).
type Snapshot struct {
	Admin     Address `json:"admin"`
	SupplyCap uint64  `json:"supply_cap"`
	BaseURI   string  `json:"base_uri"`
	Paused    bool    `json:"paused"`
	Seq       uint64  `json:"seq"`

	Holders   map[string]Address           `json:"holders,omitempty"`
	Approvals map[string]Address           `json:"approvals,omitempty"`
	Operators map[Address]map[Address]bool `json:"operators,omitempty"`
}

// NewSnapshot creates an empty snapshot carrying only the
// construction parameters.
func NewSnapshot(cfg Config) *Snapshot {
	return &Snapshot{
		Admin:     cfg.Admin,
		SupplyCap: cfg.SupplyCap,
		BaseURI:   cfg.BaseURI,
		Holders:   make(map[string]Address),
		Approvals: make(map[string]Address),
		Operators: make(map[Address]map[Address]bool),
	}
}

// Snapshot copies the current registry state.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := &Snapshot{
		Admin:     r.admin,
		SupplyCap: r.cap,
		BaseURI:   r.baseURI,
		Paused:    r.paused,
		Seq:       r.seq,
		Holders:   make(map[string]Address, len(r.ledger.holders)),
		Approvals: make(map[string]Address, len(r.ledger.approvals)),
		Operators: make(map[Address]map[Address]bool, len(r.ledger.operators)),
	}
	for id, holder := range r.ledger.holders {
		s.Holders[id.Dec()] = holder
	}
	for id, spender := range r.ledger.approvals {
		s.Approvals[id.Dec()] = spender
	}
	for owner, ops := range r.ledger.operators {
		m := make(map[Address]bool, len(ops))
		for op, allowed := range ops {
			m[op] = allowed
		}
		s.Operators[owner] = m
	}
	return s
}

// Clone deep-copies the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Admin:     s.Admin,
		SupplyCap: s.SupplyCap,
		BaseURI:   s.BaseURI,
		Paused:    s.Paused,
		Seq:       s.Seq,
		Holders:   make(map[string]Address, len(s.Holders)),
		Approvals: make(map[string]Address, len(s.Approvals)),
		Operators: make(map[Address]map[Address]bool, len(s.Operators)),
	}
	for id, holder := range s.Holders {
		c.Holders[id] = holder
	}
	for id, spender := range s.Approvals {
		c.Approvals[id] = spender
	}
	for owner, ops := range s.Operators {
		m := make(map[Address]bool, len(ops))
		for op, allowed := range ops {
			m[op] = allowed
		}
		c.Operators[owner] = m
	}
	return c
}

// Apply folds one notice into the snapshot. Folding a registry's
// notice log, in order, over NewSnapshot of the same construction
// parameters reproduces its state.
func (s *Snapshot) Apply(n Notice) error {
	switch n.Kind {
	case NoticeTransfer:
		if n.TokenID == nil {
			return fmt.Errorf("registry: transfer notice %d has no token id", n.Seq)
		}
		key := n.TokenID.Dec()
		switch {
		case n.From.IsZero(): // mint
			s.Holders[key] = n.To
		case n.To.IsZero(): // burn
			delete(s.Holders, key)
			delete(s.Approvals, key)
		default:
			s.Holders[key] = n.To
			delete(s.Approvals, key)
		}
	case NoticeApproval:
		if n.TokenID == nil {
			return fmt.Errorf("registry: approval notice %d has no token id", n.Seq)
		}
		key := n.TokenID.Dec()
		if n.Spender.IsZero() {
			delete(s.Approvals, key)
		} else {
			s.Approvals[key] = n.Spender
		}
	case NoticeApprovalForAll:
		if !n.Approved {
			delete(s.Operators[n.Owner], n.Operator)
			if len(s.Operators[n.Owner]) == 0 {
				delete(s.Operators, n.Owner)
			}
			break
		}
		if s.Operators[n.Owner] == nil {
			s.Operators[n.Owner] = make(map[Address]bool)
		}
		s.Operators[n.Owner][n.Operator] = true
	case NoticeBaseURIUpdated:
		s.BaseURI = n.URI
	case NoticePaused:
		s.Paused = n.Paused
	case NoticeAdminChanged:
		s.Admin = n.To
	default:
		return fmt.Errorf("registry: unknown notice kind %q", n.Kind)
	}
	s.Seq = n.Seq
	return nil
}

// Restore builds a registry from a snapshot. Supply and balances are
// recomputed from the holder entries; the notice log starts empty but
// sequence numbering continues from the snapshot.
func Restore(s *Snapshot) (*Registry, error) {
	r, err := New(Config{Admin: s.Admin, SupplyCap: s.SupplyCap, BaseURI: s.BaseURI})
	if err != nil {
		return nil, err
	}
	r.paused = s.Paused
	r.seq = s.Seq

	for dec, holder := range s.Holders {
		id, err := uint256.FromDecimal(dec)
		if err != nil {
			return nil, fmt.Errorf("registry: bad token id %q: %w", dec, err)
		}
		r.ledger.insert(*id, holder)
	}
	for dec, spender := range s.Approvals {
		id, err := uint256.FromDecimal(dec)
		if err != nil {
			return nil, fmt.Errorf("registry: bad token id %q: %w", dec, err)
		}
		if !r.ledger.exists(*id) {
			return nil, fmt.Errorf("registry: approval for nonexistent id %s", dec)
		}
		r.ledger.setApproval(*id, spender)
	}
	for owner, ops := range s.Operators {
		for op, allowed := range ops {
			r.ledger.setOperator(owner, op, allowed)
		}
	}

	if v := r.constraints(); len(v) > 0 {
		return nil, fmt.Errorf("registry: snapshot violates %s: %s", v[0].Name, v[0].Detail)
	}
	return r, nil
}
