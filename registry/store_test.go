package registry

import (
	"testing"

	"github.com/holiman/uint256"
)

// The ledger primitives keep the store internally consistent without
// enforcing any business rule; these tests poke them directly.

func TestLedgerInsertRemove(t *testing.T) {
	l := newLedger()
	one := *uint256.NewInt(1)
	two := *uint256.NewInt(2)

	l.insert(one, "a")
	l.insert(two, "a")
	if !l.exists(one) || !l.exists(two) {
		t.Fatal("inserted ids missing")
	}
	if l.supply != 2 {
		t.Errorf("expected supply 2, got %d", l.supply)
	}
	if l.balanceOf("a") != 2 {
		t.Errorf("expected balance 2, got %d", l.balanceOf("a"))
	}

	l.remove(one)
	if l.exists(one) {
		t.Error("removed id still exists")
	}
	if l.supply != 1 {
		t.Errorf("expected supply 1, got %d", l.supply)
	}
	if l.balanceOf("a") != 1 {
		t.Errorf("expected balance 1, got %d", l.balanceOf("a"))
	}

	l.remove(two)
	if l.balanceOf("a") != 0 {
		t.Errorf("expected balance 0, got %d", l.balanceOf("a"))
	}
	if len(l.balances) != 0 {
		t.Errorf("empty holder left a balance entry: %v", l.balances)
	}
}

func TestLedgerSetHolderMovesBalance(t *testing.T) {
	l := newLedger()
	one := *uint256.NewInt(1)

	l.insert(one, "a")
	l.setHolder(one, "b")

	if got := l.holderOf(one); got != "b" {
		t.Errorf("expected holder b, got %s", got)
	}
	if l.balanceOf("a") != 0 || l.balanceOf("b") != 1 {
		t.Errorf("balances not moved: a=%d b=%d", l.balanceOf("a"), l.balanceOf("b"))
	}
	if l.supply != 1 {
		t.Errorf("setHolder changed supply: %d", l.supply)
	}
}

func TestLedgerApprovals(t *testing.T) {
	l := newLedger()
	one := *uint256.NewInt(1)
	l.insert(one, "a")

	l.setApproval(one, "b")
	if got := l.approvalOf(one); got != "b" {
		t.Errorf("expected approval b, got %s", got)
	}
	// Setting the null identity revokes.
	l.setApproval(one, ZeroAddress)
	if got := l.approvalOf(one); !got.IsZero() {
		t.Errorf("expected no approval, got %s", got)
	}
	l.setApproval(one, "b")
	l.clearApproval(one)
	if got := l.approvalOf(one); !got.IsZero() {
		t.Errorf("expected no approval, got %s", got)
	}
}

func TestLedgerRemoveClearsApproval(t *testing.T) {
	l := newLedger()
	one := *uint256.NewInt(1)
	l.insert(one, "a")
	l.setApproval(one, "b")

	l.remove(one)
	if got := l.approvalOf(one); !got.IsZero() {
		t.Errorf("approval survived remove: %s", got)
	}
	if len(l.approvals) != 0 {
		t.Errorf("stale approval entries: %v", l.approvals)
	}
}

func TestLedgerOperators(t *testing.T) {
	l := newLedger()

	l.setOperator("a", "b", true)
	l.setOperator("a", "c", true)
	if !l.isOperator("a", "b") || !l.isOperator("a", "c") {
		t.Fatal("operators not recorded")
	}
	if l.isOperator("b", "a") {
		t.Error("operator relation is not symmetric")
	}

	l.setOperator("a", "b", false)
	if l.isOperator("a", "b") {
		t.Error("revoked operator still set")
	}
	l.setOperator("a", "c", false)
	if len(l.operators) != 0 {
		t.Errorf("empty owner left an operator entry: %v", l.operators)
	}
	// Revoking an absent grant is harmless.
	l.setOperator("x", "y", false)
}

func TestLedgerRemoveMissingIsNoop(t *testing.T) {
	l := newLedger()
	l.remove(*uint256.NewInt(7))
	if l.supply != 0 {
		t.Errorf("remove of missing id changed supply: %d", l.supply)
	}
}
