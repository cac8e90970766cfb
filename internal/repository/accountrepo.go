// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/avelichko/taskkeeper/internal/model"
)

// AccountRepository provides CRUD access for accounts and their token lists.
type AccountRepository interface {
	// Create inserts a new account with an empty token list.
	Create(ctx context.Context, a *model.Account) error
	// GetByID loads an account by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// GetByEmail loads an account by its unique email.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	// GetByIDAndToken loads an account only if the exact token string with the
	// given purpose is present in its token list.
	GetByIDAndToken(ctx context.Context, id uuid.UUID, purpose, tok string) (*model.Account, error)
	// AddToken appends an issued token to the account's token list.
	AddToken(ctx context.Context, id uuid.UUID, purpose, tok string) error
	// RemoveToken deletes a token from the account's token list.
	// Removing an absent token is not an error.
	RemoveToken(ctx context.Context, id uuid.UUID, tok string) error
	// UpdateEmail changes the account email.
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
	// UpdateDigest replaces the stored password digest.
	UpdateDigest(ctx context.Context, id uuid.UUID, digest string) error
}
