package types

import "errors"

// Store operation errors. These are the outcomes every store method can
// surface; callers branch with errors.Is and map them to transport codes.
var (
	// ErrNotFound indicates the project or the (project, fileType) key
	// does not exist, or the entity id is unknown.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the project exists but belongs to a
	// different principal.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates a concurrent writer advanced the version
	// first, or a uniqueness constraint was violated. The caller must
	// re-read current state before retrying.
	ErrConflict = errors.New("conflict")

	// ErrUnauthenticated indicates the identity provider rejected the
	// request credentials.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnavailable indicates a storage timeout or transient failure.
	// Safe to retry with the original inputs; nothing was committed.
	ErrUnavailable = errors.New("storage unavailable")
)

// Lifecycle errors for the store.
var (
	ErrStoreClosed     = errors.New("store is closed")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Validation errors returned before any statement runs.
var (
	ErrInvalidID      = errors.New("invalid entity ID")
	ErrInvalidName    = errors.New("invalid name")
	ErrInvalidEmail   = errors.New("invalid email")
	ErrInvalidContent = errors.New("content must not be empty")
	ErrInvalidRole    = errors.New("invalid role")
	ErrInvalidStatus  = errors.New("invalid status value")
)
