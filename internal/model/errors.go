package model

import "errors"

// Domain error kinds. Operations wrap these so callers can classify
// failures with errors.Is without inspecting messages.
var (
	// ErrNotFound means a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the mutation would violate a domain invariant.
	ErrConflict = errors.New("conflict")

	// ErrForbidden means the caller's role does not permit the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation means the input to a mutation is malformed.
	ErrValidation = errors.New("invalid input")
)
