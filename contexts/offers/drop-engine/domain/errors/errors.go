package errors

import "errors"

var (
	ErrDropNotFound         = errors.New("drop not found")
	ErrClaimNotFound        = errors.New("claim not found")
	ErrInvalidDrop          = errors.New("invalid drop definition")
	ErrInvalidWaitlistEntry = errors.New("invalid waitlist entry")
	ErrInvalidClaimRequest  = errors.New("invalid claim request")

	ErrAlreadyJoined      = errors.New("user already in waitlist")
	ErrNotInWaitlist      = errors.New("user not in waitlist")
	ErrPendingClaimExists = errors.New("pending claim exists for waitlist entry")
	ErrDropNotJoinable    = errors.New("drop is not open for waitlist joins")

	ErrDropNotActive     = errors.New("drop is not active")
	ErrDuplicateClaim    = errors.New("pending claim already exists")
	ErrOutOfRange        = errors.New("claim attempted outside drop geofence")
	ErrOutOfStock        = errors.New("drop has no remaining stock")
	ErrInsufficientStock = errors.New("insufficient stock for reservation")
	ErrClaimNotPending   = errors.New("claim already decided")

	ErrNotClaimOwner            = errors.New("claim belongs to another user")
	ErrRepositoryInvariantBroke = errors.New("repository invariant violated")
)
