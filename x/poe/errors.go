package poe

import (
	"github.com/iov-one/weave/errors"
)

var (
	// ErrContentTooLong is returned when the content key is longer than
	// the configured limit.
	ErrContentTooLong = errors.Register(4100, "content too long")

	// ErrAlreadyClaimed is returned when creating a claim for a content
	// key that is already owned.
	ErrAlreadyClaimed = errors.Register(4101, "content already claimed")

	// ErrNoSuchClaim is returned when a content key has no claim.
	ErrNoSuchClaim = errors.Register(4102, "no such claim")

	// ErrNotOwner is returned when the caller does not own the claim.
	ErrNotOwner = errors.Register(4103, "not the claim owner")
)
