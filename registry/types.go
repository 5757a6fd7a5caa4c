// Package registry implements a supply-capped registry of unique,
// ownable tokens: each token has one holder, an optional approved
// spender, and holders may grant blanket operator rights. An admin
// mints new tokens up to an immutable cap and may pause asset
// movement. Every state change produces an ordered Notice that
// external observers can persist or export.
//
// The registry is a single-process, synchronously invoked state
// machine. One lock guards the whole check-then-mutate sequence of
// each operation, so no caller can observe a partially applied
// change.
package registry

import (
	"time"

	"github.com/holiman/uint256"
)

// Address identifies a caller, holder, or delegate. The zero value is
// the null identity: never a valid recipient, used to revoke a token
// approval, and the "none" side of mint and burn transfer notices.
type Address string

// ZeroAddress is the null identity.
const ZeroAddress Address = ""

// IsZero reports whether the address is the null identity.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// NoticeKind discriminates the notification types emitted by the
// registry.
type NoticeKind string

const (
	// NoticeTransfer records a change of holder. Mints have an empty
	// From, burns an empty To.
	NoticeTransfer NoticeKind = "Transfer"

	// NoticeApproval records a per-token spender grant or revocation.
	NoticeApproval NoticeKind = "Approval"

	// NoticeApprovalForAll records an operator grant or revocation.
	NoticeApprovalForAll NoticeKind = "ApprovalForAll"

	// NoticeBaseURIUpdated records a change of the metadata prefix.
	NoticeBaseURIUpdated NoticeKind = "BaseURIUpdated"

	// NoticePaused records a pause flag write, including no-op
	// toggles.
	NoticePaused NoticeKind = "Paused"

	// NoticeAdminChanged records an admin handover. From is the
	// previous admin, To the new one.
	NoticeAdminChanged NoticeKind = "AdminChanged"
)

// Notice is one entry of the registry's append-only notification log.
// Seq starts at 1 and increases by exactly one per emitted notice.
// Only the fields relevant to Kind are populated.
type Notice struct {
	Seq  uint64     `json:"seq"`
	Kind NoticeKind `json:"kind"`

	// Transfer and AdminChanged endpoints.
	From Address `json:"from,omitempty"`
	To   Address `json:"to,omitempty"`

	// Token the notice concerns (Transfer, Approval).
	TokenID *uint256.Int `json:"token_id,omitempty"`

	// Approval and ApprovalForAll fields.
	Owner    Address `json:"owner,omitempty"`
	Spender  Address `json:"spender,omitempty"`
	Operator Address `json:"operator,omitempty"`
	Approved bool    `json:"approved,omitempty"`

	// BaseURIUpdated payload.
	URI string `json:"uri,omitempty"`

	// Paused payload.
	Paused bool `json:"paused,omitempty"`

	Time time.Time `json:"time"`
}
