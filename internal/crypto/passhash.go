// Package crypto implements server-side password hashing and verification.
package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/avelichko/taskkeeper/internal/errs"
)

// bcryptCost is the work factor for new digests. Raised above the library
// default; existing digests keep the cost they were created with.
const bcryptCost = 12

// HashPassword returns the bcrypt digest of plaintext. The digest embeds a
// random salt, so two calls for the same password produce different strings.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrHashing, err)
	}
	return string(digest), nil
}

// VerifyPassword checks plaintext against a stored bcrypt digest.
// A plain mismatch returns (false, nil); only a malformed digest is an error.
func VerifyPassword(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", errs.ErrHashing, err)
	}
}
