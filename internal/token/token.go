// Package token implements the signed session token codec.
//
// Verification is pure and stateless: a forged or malformed token is rejected
// without touching the store. Store-level revocation (the account token list)
// stays authoritative on top of signature validity.
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/avelichko/taskkeeper/internal/errs"
)

// PurposeAuth marks session tokens issued on registration and login.
const PurposeAuth = "auth"

// Claims is the decoded payload of a verified token.
type Claims struct {
	AccountID uuid.UUID
	Purpose   string
}

type tokenClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Codec signs and verifies account tokens with a process-wide HS256 key.
// The key is injected at construction so tests can swap it deterministically.
type Codec struct {
	key []byte
	ttl time.Duration
}

// New constructs a Codec. ttl <= 0 disables token expiry; revocation via the
// account token list still applies.
func New(key []byte, ttl time.Duration) *Codec {
	return &Codec{key: key, ttl: ttl}
}

// Issue creates a signed HS256 token for the given account and purpose.
// A random token id keeps two tokens issued within the same second distinct,
// so the stored token list never sees duplicate strings.
func (c *Codec) Issue(accountID uuid.UUID, purpose string) (string, error) {
	jti, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := tokenClaims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       jti.String(),
			Subject:  accountID.String(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// Verify checks the signature and decodes the payload. Every failure mode
// (bad signature, wrong algorithm, malformed token, expired token, bad
// subject) is reported as errs.ErrInvalidToken.
func (c *Codec) Verify(tok string) (Claims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.key, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, errs.ErrInvalidToken
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return Claims{}, errs.ErrInvalidToken
	}
	return Claims{AccountID: id, Purpose: claims.Purpose}, nil
}
