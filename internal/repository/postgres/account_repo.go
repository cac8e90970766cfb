package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/avelichko/taskkeeper/internal/errs"
	"github.com/avelichko/taskkeeper/internal/model"
)

// AccountRepo implements AccountRepository using PostgreSQL. The account token
// list lives in account_tokens, keyed by (account_id, token).
type AccountRepo struct{ db *DB }

// NewAccountRepo constructs an account repository.
func NewAccountRepo(db *DB) *AccountRepo { return &AccountRepo{db: db} }

// Create inserts a new account row.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	const q = `
INSERT INTO accounts (id, email, password_digest)
VALUES ($1, $2, $3)`
	_, err := r.db.Pool.Exec(ctx, q, a.ID, a.Email, a.PasswordDigest)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	const q = `
SELECT id, email, password_digest, created_at
FROM accounts WHERE id=$1`
	return r.scanAccount(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByEmail selects an account by its unique email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	const q = `
SELECT id, email, password_digest, created_at
FROM accounts WHERE email=$1`
	return r.scanAccount(r.db.Pool.QueryRow(ctx, q, email))
}

// GetByIDAndToken selects an account only if the exact token string is still
// present in its token list. A signature-valid token removed on logout yields
// ErrNotFound here.
func (r *AccountRepo) GetByIDAndToken(ctx context.Context, id uuid.UUID, purpose, tok string) (*model.Account, error) {
	const q = `
SELECT a.id, a.email, a.password_digest, a.created_at
FROM accounts a
JOIN account_tokens t ON t.account_id = a.id
WHERE a.id=$1 AND t.purpose=$2 AND t.token=$3`
	return r.scanAccount(r.db.Pool.QueryRow(ctx, q, id, purpose, tok))
}

// AddToken appends an issued token to the account's token list.
func (r *AccountRepo) AddToken(ctx context.Context, id uuid.UUID, purpose, tok string) error {
	const q = `
INSERT INTO account_tokens (account_id, purpose, token)
VALUES ($1, $2, $3)`
	_, err := r.db.Pool.Exec(ctx, q, id, purpose, tok)
	return err
}

// RemoveToken deletes a token from the account's token list. Idempotent:
// removing an absent token affects zero rows and is not an error.
func (r *AccountRepo) RemoveToken(ctx context.Context, id uuid.UUID, tok string) error {
	const q = `
DELETE FROM account_tokens WHERE account_id=$1 AND token=$2`
	_, err := r.db.Pool.Exec(ctx, q, id, tok)
	return err
}

// UpdateEmail changes the account email.
func (r *AccountRepo) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	const q = `
UPDATE accounts SET email=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, email)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// UpdateDigest replaces the stored password digest.
func (r *AccountRepo) UpdateDigest(ctx context.Context, id uuid.UUID, digest string) error {
	const q = `
UPDATE accounts SET password_digest=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, digest)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordDigest, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
