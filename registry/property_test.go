package registry_test

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"pgregory.net/rapid"

	"github.com/thirupathireddy27/NFT-smart-contract/registry"
)

// Random operation sequences against a small id and identity space,
// checking after every step that supply stays within [0, cap], moves
// by at most one, and the data-model constraints hold.
func TestPropertyLifecycleInvariants(t *testing.T) {
	identities := []registry.Address{admin, alice, bob, carol}

	rapid.Check(t, func(rt *rapid.T) {
		cap := rapid.Uint64Range(0, 6).Draw(rt, "cap")
		r, err := registry.New(registry.Config{Admin: admin, SupplyCap: cap, BaseURI: "u/"})
		if err != nil {
			rt.Fatalf("new registry: %v", err)
		}

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			before := r.TotalSupply()

			caller := rapid.SampledFrom(identities).Draw(rt, "caller")
			target := rapid.SampledFrom(identities).Draw(rt, "target")
			tok := uint256.NewInt(rapid.Uint64Range(1, 8).Draw(rt, "id"))

			var opErr error
			op := rapid.IntRange(0, 6).Draw(rt, "op")
			switch op {
			case 0:
				opErr = r.Mint(caller, target, tok)
			case 1:
				opErr = r.Transfer(caller, caller, target, tok)
			case 2:
				opErr = r.Approve(caller, target, tok)
			case 3:
				opErr = r.SetApprovalForAll(caller, target, rapid.Bool().Draw(rt, "allowed"))
			case 4:
				opErr = r.Burn(caller, tok)
			case 5:
				opErr = r.SetPaused(caller, rapid.Bool().Draw(rt, "paused"))
			case 6:
				opErr = r.SetBaseURI(caller, "u2/")
			}

			after := r.TotalSupply()
			if after > cap {
				rt.Fatalf("supply %d exceeds cap %d", after, cap)
			}
			switch {
			case opErr != nil:
				if after != before {
					rt.Fatalf("failed op %d changed supply %d -> %d: %v", op, before, after, opErr)
				}
			case op == 0:
				if after != before+1 {
					rt.Fatalf("mint moved supply %d -> %d", before, after)
				}
			case op == 4:
				if after != before-1 {
					rt.Fatalf("burn moved supply %d -> %d", before, after)
				}
			default:
				if after != before {
					rt.Fatalf("op %d moved supply %d -> %d", op, before, after)
				}
			}

			if v := r.Constraints(); len(v) != 0 {
				rt.Fatalf("step %d violated %s: %s", i, v[0].Name, v[0].Detail)
			}
		}
	})
}

// Approvals never outlive the token or the holder that granted them:
// after any successful transfer or burn the token approval is gone.
func TestPropertyApprovalClearing(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r, err := registry.New(registry.Config{Admin: admin, SupplyCap: 4})
		if err != nil {
			rt.Fatalf("new registry: %v", err)
		}
		tok := uint256.NewInt(rapid.Uint64Range(1, 3).Draw(rt, "id"))
		if err := r.Mint(admin, alice, tok); err != nil {
			rt.Fatalf("mint: %v", err)
		}
		if err := r.Approve(alice, bob, tok); err != nil {
			rt.Fatalf("approve: %v", err)
		}

		if rapid.Bool().Draw(rt, "burn") {
			if err := r.Burn(bob, tok); err != nil {
				rt.Fatalf("burn by spender: %v", err)
			}
			if _, err := r.ApprovedFor(tok); !errors.Is(err, registry.ErrNonexistentToken) {
				rt.Fatalf("expected ErrNonexistentToken, got %v", err)
			}
			return
		}
		if err := r.Transfer(bob, alice, carol, tok); err != nil {
			rt.Fatalf("transfer by spender: %v", err)
		}
		spender, err := r.ApprovedFor(tok)
		if err != nil {
			rt.Fatalf("approved for: %v", err)
		}
		if !spender.IsZero() {
			rt.Fatalf("approval survived transfer: %s", spender)
		}
	})
}

// Replaying the notice log over an empty snapshot reproduces the
// registry state, whatever the operation sequence was.
func TestPropertyReplayMatchesState(t *testing.T) {
	identities := []registry.Address{admin, alice, bob, carol}

	rapid.Check(t, func(rt *rapid.T) {
		cfg := registry.Config{Admin: admin, SupplyCap: 5, BaseURI: "u/"}
		r, err := registry.New(cfg)
		if err != nil {
			rt.Fatalf("new registry: %v", err)
		}

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			caller := rapid.SampledFrom(identities).Draw(rt, "caller")
			target := rapid.SampledFrom(identities).Draw(rt, "target")
			tok := uint256.NewInt(rapid.Uint64Range(1, 6).Draw(rt, "id"))

			switch rapid.IntRange(0, 4).Draw(rt, "op") {
			case 0:
				_ = r.Mint(caller, target, tok)
			case 1:
				_ = r.Transfer(caller, caller, target, tok)
			case 2:
				_ = r.Approve(caller, target, tok)
			case 3:
				_ = r.SetApprovalForAll(caller, target, rapid.Bool().Draw(rt, "allowed"))
			case 4:
				_ = r.Burn(caller, tok)
			}
		}

		snap := registry.NewSnapshot(cfg)
		for _, n := range r.Notices() {
			if err := snap.Apply(n); err != nil {
				rt.Fatalf("apply notice %d: %v", n.Seq, err)
			}
		}
		rebuilt, err := registry.Restore(snap)
		if err != nil {
			rt.Fatalf("restore: %v", err)
		}

		if rebuilt.TotalSupply() != r.TotalSupply() {
			rt.Fatalf("replay supply %d, live %d", rebuilt.TotalSupply(), r.TotalSupply())
		}
		for n := uint64(1); n <= 6; n++ {
			tok := uint256.NewInt(n)
			if rebuilt.Exists(tok) != r.Exists(tok) {
				rt.Fatalf("replay existence mismatch for id %d", n)
			}
			if !r.Exists(tok) {
				continue
			}
			liveOwner, _ := r.OwnerOf(tok)
			replayOwner, _ := rebuilt.OwnerOf(tok)
			if liveOwner != replayOwner {
				rt.Fatalf("replay owner mismatch for id %d: %s vs %s", n, replayOwner, liveOwner)
			}
			liveSpender, _ := r.ApprovedFor(tok)
			replaySpender, _ := rebuilt.ApprovedFor(tok)
			if liveSpender != replaySpender {
				rt.Fatalf("replay approval mismatch for id %d: %s vs %s", n, replaySpender, liveSpender)
			}
		}
		for _, owner := range identities {
			if rebuilt.BalanceOf(owner) != r.BalanceOf(owner) {
				rt.Fatalf("replay balance mismatch for %s", owner)
			}
			for _, op := range identities {
				if rebuilt.IsOperator(owner, op) != r.IsOperator(owner, op) {
					rt.Fatalf("replay operator mismatch for %s/%s", owner, op)
				}
			}
		}
	})
}
