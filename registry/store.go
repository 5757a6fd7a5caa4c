package registry

import "github.com/holiman/uint256"

// ledger is the registry store: holders, approvals, operators, and the
// live supply counter. Its mutation primitives enforce no business
// rules — uniqueness, caps, and authorization are the caller's job —
// but they do keep the store internally consistent: a token id has a
// holder entry iff it exists, balances track holder entries, and
// supply equals the number of existing ids.
type ledger struct {
	holders   map[uint256.Int]Address
	approvals map[uint256.Int]Address
	operators map[Address]map[Address]bool
	balances  map[Address]uint64
	supply    uint64
}

func newLedger() *ledger {
	return &ledger{
		holders:   make(map[uint256.Int]Address),
		approvals: make(map[uint256.Int]Address),
		operators: make(map[Address]map[Address]bool),
		balances:  make(map[Address]uint64),
	}
}

// --- read accessors ---

func (l *ledger) exists(id uint256.Int) bool {
	_, ok := l.holders[id]
	return ok
}

func (l *ledger) holderOf(id uint256.Int) Address {
	return l.holders[id]
}

func (l *ledger) balanceOf(a Address) uint64 {
	return l.balances[a]
}

func (l *ledger) approvalOf(id uint256.Int) Address {
	return l.approvals[id]
}

func (l *ledger) isOperator(owner, operator Address) bool {
	return l.operators[owner][operator]
}

// --- mutation primitives ---

// insert creates a token with the given holder and bumps the supply.
func (l *ledger) insert(id uint256.Int, holder Address) {
	l.holders[id] = holder
	l.balances[holder]++
	l.supply++
}

// setHolder moves a token to a new holder, adjusting both balances.
func (l *ledger) setHolder(id uint256.Int, holder Address) {
	prev := l.holders[id]
	l.holders[id] = holder
	l.decBalance(prev)
	l.balances[holder]++
}

func (l *ledger) setApproval(id uint256.Int, spender Address) {
	if spender.IsZero() {
		delete(l.approvals, id)
		return
	}
	l.approvals[id] = spender
}

func (l *ledger) clearApproval(id uint256.Int) {
	delete(l.approvals, id)
}

func (l *ledger) setOperator(owner, operator Address, allowed bool) {
	if !allowed {
		delete(l.operators[owner], operator)
		if len(l.operators[owner]) == 0 {
			delete(l.operators, owner)
		}
		return
	}
	if l.operators[owner] == nil {
		l.operators[owner] = make(map[Address]bool)
	}
	l.operators[owner][operator] = true
}

// remove destroys a token, clears its approval, and drops the supply.
// The supply underflow check is unreachable while the primitives are
// used correctly; it guards against programming errors, not input.
func (l *ledger) remove(id uint256.Int) {
	holder, ok := l.holders[id]
	if !ok {
		return
	}
	if l.supply == 0 {
		panic("registry: supply underflow")
	}
	delete(l.holders, id)
	delete(l.approvals, id)
	l.decBalance(holder)
	l.supply--
}

func (l *ledger) decBalance(a Address) {
	if l.balances[a] <= 1 {
		delete(l.balances, a)
		return
	}
	l.balances[a]--
}
