// Package commit binds a notice log into a single running MiMC
// commitment over BN254. Each absorbed notice advances the root:
//
//	root_n = MiMC(root_{n-1}, hi(notice_n), lo(notice_n))
//
// where hi/lo are the two halves of the notice's SHA-256 digest,
// padded to field width. The root is deterministic in the log content
// and order, so two parties holding the same log agree on one
// commitment, and any reordering, drop, or edit changes it.
package commit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

	"github.com/thirupathireddy27/NFT-smart-contract/registry"
)

// Size is the commitment width in bytes (one BN254 scalar).
const Size = 32

// Chain is a running commitment. The zero value is ready to use and
// represents the empty log.
type Chain struct {
	root [Size]byte
	n    uint64
}

// NewChain returns an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Absorb folds one notice into the commitment and returns the new
// root.
func (c *Chain) Absorb(n registry.Notice) ([Size]byte, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return c.root, err
	}
	sum := sha256.Sum256(payload)

	// Halve the digest and left-pad each part to 32 bytes: a 128-bit
	// value always fits the BN254 scalar field.
	var hi, lo [Size]byte
	copy(hi[Size/2:], sum[:Size/2])
	copy(lo[Size/2:], sum[Size/2:])

	h := mimc.NewMiMC()
	if _, err := h.Write(c.root[:]); err != nil {
		return c.root, err
	}
	if _, err := h.Write(hi[:]); err != nil {
		return c.root, err
	}
	if _, err := h.Write(lo[:]); err != nil {
		return c.root, err
	}
	copy(c.root[:], h.Sum(nil))
	c.n++
	return c.root, nil
}

// Root returns the current commitment. The empty log commits to all
// zeros.
func (c *Chain) Root() [Size]byte {
	return c.root
}

// RootHex returns the current commitment as a hex string.
func (c *Chain) RootHex() string {
	return hex.EncodeToString(c.root[:])
}

// Len returns the number of absorbed notices.
func (c *Chain) Len() uint64 {
	return c.n
}

// Fold commits to a whole log at once.
func Fold(notices []registry.Notice) ([Size]byte, error) {
	c := NewChain()
	for _, n := range notices {
		if _, err := c.Absorb(n); err != nil {
			return c.Root(), err
		}
	}
	return c.Root(), nil
}
