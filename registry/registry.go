package registry

import (
	"sync"
	"time"

	"github.com/holiman/uint256"
)

// Config holds the constructor parameters of a registry. Admin and
// SupplyCap are fixed for the lifetime of the instance (admin moves
// only through TransferAdmin).
type Config struct {
	// Admin is the identity allowed to mint, pause, and change the
	// base URI. Required.
	Admin Address

	// SupplyCap is the maximum number of tokens that may exist at the
	// same time. A cap of zero means no token can ever be minted.
	SupplyCap uint64

	// BaseURI is the initial metadata prefix; TokenURI returns
	// BaseURI + decimal token id.
	BaseURI string

	// Observer, when set, receives every notice synchronously, in
	// emission order, after the mutation that produced it has been
	// applied. The callback runs under the registry lock and must not
	// call back into the registry.
	Observer func(Notice)
}

// Registry is the token lifecycle state machine. All exported methods
// are safe for concurrent use; each operation runs its full
// check-then-mutate sequence under one exclusive lock.
type Registry struct {
	mu       sync.RWMutex
	ledger   *ledger
	cap      uint64
	baseURI  string
	admin    Address
	paused   bool
	seq      uint64
	log      []Notice
	observer func(Notice)

	// CheckInvariants re-verifies the data-model invariants after
	// every successful mutation and panics on violation. On by
	// default; toggle only before the registry is shared.
	CheckInvariants bool
}

// New creates an empty registry.
func New(cfg Config) (*Registry, error) {
	if cfg.Admin.IsZero() {
		return nil, ErrZeroAdmin
	}
	return &Registry{
		ledger:          newLedger(),
		cap:             cfg.SupplyCap,
		baseURI:         cfg.BaseURI,
		admin:           cfg.Admin,
		observer:        cfg.Observer,
		CheckInvariants: true,
	}, nil
}

// --- gates ---

func (r *Registry) requireAdmin(caller Address) error {
	if caller != r.admin {
		return ErrUnauthorized
	}
	return nil
}

func (r *Registry) requireNotPaused() error {
	if r.paused {
		return ErrPaused
	}
	return nil
}

// emit appends a notice to the log and fans it out. Callers hold the
// write lock and have already committed the mutation.
func (r *Registry) emit(n Notice) {
	r.seq++
	n.Seq = r.seq
	n.Time = time.Now().UTC()
	r.log = append(r.log, n)
	if r.observer != nil {
		r.observer(n)
	}
}

func (r *Registry) afterMutation() {
	if !r.CheckInvariants {
		return
	}
	if v := r.constraints(); len(v) > 0 {
		panic("registry: invariant violated: " + v[0].Name + ": " + v[0].Detail)
	}
}

// --- lifecycle operations ---

// Mint creates token id owned by to. Admin only, blocked while
// paused. All checks precede all mutations: a failure leaves the
// registry untouched and emits nothing.
func (r *Registry) Mint(caller, to Address, id *uint256.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireNotPaused(); err != nil {
		return err
	}
	if err := r.requireAdmin(caller); err != nil {
		return err
	}
	if to.IsZero() {
		return ErrZeroRecipient
	}
	key := *id
	if r.ledger.exists(key) {
		return ErrDuplicateToken
	}
	if r.ledger.supply+1 > r.cap {
		return ErrSupplyCapReached
	}

	r.ledger.insert(key, to)
	r.emit(Notice{Kind: NoticeTransfer, To: to, TokenID: id.Clone()})
	r.afterMutation()
	return nil
}

// MintBatch mints ids[i] to recipients[i], in order, as one atomic
// unit: the whole batch is validated against the current state and
// against itself (duplicates inside the batch, cumulative cap) before
// the first mutation, so a failure anywhere leaves the registry
// completely unchanged.
func (r *Registry) MintBatch(caller Address, recipients []Address, ids []*uint256.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireNotPaused(); err != nil {
		return err
	}
	if err := r.requireAdmin(caller); err != nil {
		return err
	}
	if len(recipients) != len(ids) {
		return ErrLengthMismatch
	}

	seen := make(map[uint256.Int]bool, len(ids))
	for i, id := range ids {
		if recipients[i].IsZero() {
			return ErrZeroRecipient
		}
		key := *id
		if r.ledger.exists(key) || seen[key] {
			return ErrDuplicateToken
		}
		seen[key] = true
	}
	if r.ledger.supply+uint64(len(ids)) > r.cap {
		return ErrSupplyCapReached
	}

	for i, id := range ids {
		r.ledger.insert(*id, recipients[i])
	}
	for i, id := range ids {
		r.emit(Notice{Kind: NoticeTransfer, To: recipients[i], TokenID: id.Clone()})
	}
	r.afterMutation()
	return nil
}

// Transfer moves token id from from to to. The caller must be the
// holder, the token's approved spender, or an operator of the holder.
// A successful transfer clears the token approval.
func (r *Registry) Transfer(caller, from, to Address, id *uint256.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireNotPaused(); err != nil {
		return err
	}
	key := *id
	if !r.ledger.exists(key) {
		return ErrNonexistentToken
	}
	if r.ledger.holderOf(key) != from {
		return ErrNotOwner
	}
	if to.IsZero() {
		return ErrZeroRecipient
	}
	if caller != from && caller != r.ledger.approvalOf(key) && !r.ledger.isOperator(from, caller) {
		return ErrNotAuthorized
	}

	r.ledger.setHolder(key, to)
	r.ledger.clearApproval(key)
	r.emit(Notice{Kind: NoticeTransfer, From: from, To: to, TokenID: id.Clone()})
	r.afterMutation()
	return nil
}

// Approve grants spender the right to transfer token id once, or
// revokes it when spender is the null identity. The caller must be
// the holder or one of the holder's operators. Approvals are
// configuration, not asset movement, so the pause gate does not
// apply.
func (r *Registry) Approve(caller, spender Address, id *uint256.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := *id
	if !r.ledger.exists(key) {
		return ErrNonexistentToken
	}
	owner := r.ledger.holderOf(key)
	if caller != owner && !r.ledger.isOperator(owner, caller) {
		return ErrNotAuthorized
	}

	r.ledger.setApproval(key, spender)
	r.emit(Notice{Kind: NoticeApproval, Owner: owner, Spender: spender, TokenID: id.Clone()})
	r.afterMutation()
	return nil
}

// SetApprovalForAll grants or revokes operator rights over all of the
// caller's tokens, present and future. Not pause-gated.
func (r *Registry) SetApprovalForAll(caller, operator Address, allowed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if operator == caller {
		return ErrSelfApproval
	}

	r.ledger.setOperator(caller, operator, allowed)
	r.emit(Notice{Kind: NoticeApprovalForAll, Owner: caller, Operator: operator, Approved: allowed})
	r.afterMutation()
	return nil
}

// Burn destroys token id. The caller must be the holder, the approved
// spender, or an operator of the holder. The id may be minted again
// afterwards.
func (r *Registry) Burn(caller Address, id *uint256.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireNotPaused(); err != nil {
		return err
	}
	key := *id
	if !r.ledger.exists(key) {
		return ErrNonexistentToken
	}
	owner := r.ledger.holderOf(key)
	if caller != owner && caller != r.ledger.approvalOf(key) && !r.ledger.isOperator(owner, caller) {
		return ErrNotAuthorized
	}

	r.ledger.remove(key)
	r.emit(Notice{Kind: NoticeTransfer, From: owner, TokenID: id.Clone()})
	r.afterMutation()
	return nil
}

// TokenURI returns the metadata location of token id: the base prefix
// followed by the decimal id.
func (r *Registry) TokenURI(id *uint256.Int) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.ledger.exists(*id) {
		return "", ErrNonexistentToken
	}
	return r.baseURI + id.Dec(), nil
}

// SetBaseURI replaces the metadata prefix. Admin only, not
// pause-gated.
func (r *Registry) SetBaseURI(caller Address, uri string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireAdmin(caller); err != nil {
		return err
	}
	r.baseURI = uri
	r.emit(Notice{Kind: NoticeBaseURIUpdated, URI: uri})
	return nil
}

// SetPaused writes the pause flag. Admin only, never pause-gated, and
// unconditional: pausing while paused or unpausing while unpaused
// succeeds and still emits a notice.
func (r *Registry) SetPaused(caller Address, paused bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireAdmin(caller); err != nil {
		return err
	}
	r.paused = paused
	r.emit(Notice{Kind: NoticePaused, Paused: paused})
	return nil
}

// TransferAdmin hands the admin role to next. Admin only.
func (r *Registry) TransferAdmin(caller, next Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireAdmin(caller); err != nil {
		return err
	}
	if next.IsZero() {
		return ErrZeroRecipient
	}
	prev := r.admin
	r.admin = next
	r.emit(Notice{Kind: NoticeAdminChanged, From: prev, To: next})
	return nil
}

// SetObserver replaces the notice observer. Useful after Restore,
// which cannot carry one over.
func (r *Registry) SetObserver(fn func(Notice)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer = fn
}

// --- read surface ---

// OwnerOf returns the current holder of token id.
func (r *Registry) OwnerOf(id *uint256.Int) (Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.ledger.exists(*id) {
		return ZeroAddress, ErrNonexistentToken
	}
	return r.ledger.holderOf(*id), nil
}

// Exists reports whether token id currently exists.
func (r *Registry) Exists(id *uint256.Int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.exists(*id)
}

// BalanceOf returns the number of tokens held by a.
func (r *Registry) BalanceOf(a Address) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.balanceOf(a)
}

// TotalSupply returns the number of tokens that currently exist.
func (r *Registry) TotalSupply() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.supply
}

// SupplyCap returns the immutable mint ceiling.
func (r *Registry) SupplyCap() uint64 {
	return r.cap
}

// ApprovedFor returns the approved spender of token id, or the null
// identity if none is set.
func (r *Registry) ApprovedFor(id *uint256.Int) (Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.ledger.exists(*id) {
		return ZeroAddress, ErrNonexistentToken
	}
	return r.ledger.approvalOf(*id), nil
}

// IsOperator reports whether operator may manage all of owner's
// tokens.
func (r *Registry) IsOperator(owner, operator Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.isOperator(owner, operator)
}

// Paused reports the pause flag.
func (r *Registry) Paused() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.paused
}

// Admin returns the current admin identity.
func (r *Registry) Admin() Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.admin
}

// BaseURI returns the current metadata prefix.
func (r *Registry) BaseURI() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.baseURI
}

// Notices returns a copy of the full notification log, in emission
// order.
func (r *Registry) Notices() []Notice {
	return r.NoticesSince(0)
}

// NoticesSince returns a copy of the notices with Seq > after.
func (r *Registry) NoticesSince(after uint64) []Notice {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := 0
	for i < len(r.log) && r.log[i].Seq <= after {
		i++
	}
	out := make([]Notice, len(r.log)-i)
	copy(out, r.log[i:])
	return out
}
