package registry

import "fmt"

// Violation describes one failed data-model invariant.
type Violation struct {
	Name   string
	Detail string
}

// Constraints re-checks the registry's data-model invariants against
// the live state and returns any violations. A healthy registry
// always returns an empty slice; a non-empty result indicates a
// programming error in the mutation path, not bad input.
func (r *Registry) Constraints() []Violation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.constraints()
}

func (r *Registry) constraints() []Violation {
	var violations []Violation
	l := r.ledger

	if l.supply != uint64(len(l.holders)) {
		violations = append(violations, Violation{
			Name:   "supply_matches_existence",
			Detail: fmt.Sprintf("supply %d, existing ids %d", l.supply, len(l.holders)),
		})
	}
	if l.supply > r.cap {
		violations = append(violations, Violation{
			Name:   "supply_within_cap",
			Detail: fmt.Sprintf("supply %d exceeds cap %d", l.supply, r.cap),
		})
	}

	for id := range l.approvals {
		if !l.exists(id) {
			violations = append(violations, Violation{
				Name:   "approval_on_existing_token",
				Detail: fmt.Sprintf("approval for nonexistent id %s", id.Dec()),
			})
		}
	}

	counted := make(map[Address]uint64, len(l.balances))
	for _, holder := range l.holders {
		counted[holder]++
	}
	if len(counted) != len(l.balances) {
		violations = append(violations, Violation{
			Name:   "balances_match_holders",
			Detail: fmt.Sprintf("%d holders counted, %d balance entries", len(counted), len(l.balances)),
		})
	}
	for holder, n := range counted {
		if l.balances[holder] != n {
			violations = append(violations, Violation{
				Name:   "balances_match_holders",
				Detail: fmt.Sprintf("holder %q: balance %d, holds %d", holder, l.balances[holder], n),
			})
		}
	}

	return violations
}
