package repository

import "errors"

var (
	// ErrNotFound means a referenced id does not exist in a registry.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate means an insert collided on id. Ids are uuid-generated,
	// so hitting this indicates a defect in the caller, not user input.
	ErrDuplicate = errors.New("duplicate id")

	// ErrInvalidTransition means an attempted status change violates the
	// alarm state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrIssueClosed means an action was addressed to a DONE issue.
	// DONE is terminal; closed issues accept no further mutation.
	ErrIssueClosed = errors.New("issue is closed")
)
