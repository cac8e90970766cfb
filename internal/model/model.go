// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// AuthToken is a single issued session token bound to an account.
// A token stays valid only while it is present in the account's token list;
// logout removes it even though the signature remains verifiable.
type AuthToken struct {
	Purpose string // token purpose, "auth" for session tokens
	Token   string // signed token string
}

// Account is a registered user. The password is stored as a one-way digest,
// never in plaintext.
type Account struct {
	ID             uuid.UUID // PK
	Email          string    // unique, trimmed, lower-cased
	PasswordDigest string    // bcrypt digest of the password
	Tokens         []AuthToken
	CreatedAt      time.Time
}

// AccountPatch carries optional account mutations. The password digest is
// recomputed only when Password is set.
type AccountPatch struct {
	Email    *string
	Password *string
}

// Task is a single todo item owned by exactly one account.
type Task struct {
	ID          uuid.UUID // PK
	OwnerID     uuid.UUID // FK -> accounts.id, immutable after creation
	Text        string
	Completed   bool
	CompletedAt *int64 // epoch milliseconds; nil unless Completed is true
	CreatedAt   time.Time
}

// TaskPatch carries optional task mutations for a partial update.
type TaskPatch struct {
	Text      *string
	Completed *bool
}
