package registry

import "errors"

var (
	// Construction errors
	ErrZeroAdmin = errors.New("registry: admin must not be the null identity")

	// Gate errors
	ErrUnauthorized = errors.New("registry: caller is not the admin")
	ErrPaused       = errors.New("registry: paused")

	// Lifecycle errors
	ErrZeroRecipient    = errors.New("registry: recipient is the null identity")
	ErrDuplicateToken   = errors.New("registry: token already exists")
	ErrSupplyCapReached = errors.New("registry: supply cap reached")
	ErrNonexistentToken = errors.New("registry: token does not exist")
	ErrNotOwner         = errors.New("registry: from is not the holder")
	ErrNotAuthorized    = errors.New("registry: caller may not act on this token")
	ErrSelfApproval     = errors.New("registry: operator approval for self")
	ErrLengthMismatch   = errors.New("registry: recipients and ids differ in length")
)
