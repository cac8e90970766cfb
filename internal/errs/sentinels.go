// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist
	// (or is owned by a different account, which must look the same).
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed authentication: bad credentials,
	// a forged/expired token, or a token removed on logout.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation indicates a malformed or missing required field.
	ErrValidation = errors.New("validation")

	// ErrInvalidID indicates a structurally invalid identifier,
	// rejected before any store round-trip.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidToken indicates token verification failure. Internal to the
	// auth layer; callers only ever see ErrUnauthorized.
	ErrInvalidToken = errors.New("invalid token")

	// ErrHashing indicates a password hashing/verification failure on a
	// malformed digest. Internal to the auth layer.
	ErrHashing = errors.New("hashing failed")
)
