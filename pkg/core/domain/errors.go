package domain

import "errors"

var (
	// ErrInvalidInput indicates a malformed or empty identifier or slug.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates the requested or a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates an association already exists under the same composite identity.
	ErrConflict = errors.New("conflict")
	// ErrRepository indicates the storage collaborator failed.
	ErrRepository = errors.New("repository failure")
	// ErrInconsistentState indicates stored data violates a catalog invariant.
	ErrInconsistentState = errors.New("inconsistent state")
)
