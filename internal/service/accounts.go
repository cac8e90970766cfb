// Package service contains application services for accounts and tasks.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/avelichko/taskkeeper/internal/crypto"
	"github.com/avelichko/taskkeeper/internal/errs"
	"github.com/avelichko/taskkeeper/internal/model"
	"github.com/avelichko/taskkeeper/internal/repository"
	"github.com/avelichko/taskkeeper/internal/token"
)

const minEmailLen = 6
const minPasswordLen = 6

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AccountService defines registration, login and token lifecycle operations.
type AccountService interface {
	// Register creates a new account with a hashed password and no tokens.
	Register(ctx context.Context, email, password string) (*model.Account, error)
	// Login authenticates by credentials. Missing account and wrong password
	// are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (*model.Account, error)
	// FindByToken resolves a token to its account. The token must verify
	// cryptographically AND still be present in the account's token list.
	FindByToken(ctx context.Context, tok string) (*model.Account, error)
	// IssueAuthToken signs a session token, appends it to the account's token
	// list and returns it.
	IssueAuthToken(ctx context.Context, a *model.Account) (string, error)
	// Logout removes a token from the account's token list. Idempotent.
	Logout(ctx context.Context, accountID uuid.UUID, tok string) error
	// Update applies a partial account edit. The password digest is recomputed
	// only when the patch carries a new password.
	Update(ctx context.Context, accountID uuid.UUID, patch model.AccountPatch) (*model.Account, error)
}

type AccountServiceImpl struct {
	accounts repository.AccountRepository
	codec    *token.Codec
}

// NewAccountService constructs AccountService with required dependencies.
func NewAccountService(accounts repository.AccountRepository, codec *token.Codec) *AccountServiceImpl {
	return &AccountServiceImpl{accounts: accounts, codec: codec}
}

// normalizeEmail trims and lower-cases an email for storage and comparison.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if len(email) < minEmailLen {
		return fmt.Errorf("%w: email too short", errs.ErrValidation)
	}
	if !emailRx.MatchString(email) {
		return fmt.Errorf("%w: malformed email", errs.ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password too short", errs.ErrValidation)
	}
	return nil
}

// Register validates credentials, hashes the password and persists the account.
func (s *AccountServiceImpl) Register(ctx context.Context, email, password string) (*model.Account, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	digest, err := pkgcrypto.HashPassword(password)
	if err != nil {
		// internal hashing failure is never exposed as such
		return nil, errs.ErrUnauthorized
	}
	a := &model.Account{ID: id, Email: email, PasswordDigest: digest}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Login looks up the account by email and verifies the password digest.
// An unknown email and a wrong password both collapse to ErrUnauthorized so
// callers cannot distinguish them; a store failure passes through unchanged.
func (s *AccountServiceImpl) Login(ctx context.Context, email, password string) (*model.Account, error) {
	a, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	ok, err := pkgcrypto.VerifyPassword(password, a.PasswordDigest)
	if err != nil || !ok {
		return nil, errs.ErrUnauthorized
	}
	return a, nil
}

// FindByToken verifies the token signature first (pure, no store I/O), then
// requires the exact token string to still be on the account. A logged-out
// token stays cryptographically valid but is rejected here.
func (s *AccountServiceImpl) FindByToken(ctx context.Context, tok string) (*model.Account, error) {
	claims, err := s.codec.Verify(tok)
	if err != nil {
		return nil, errs.ErrUnauthorized
	}
	if claims.Purpose != token.PurposeAuth {
		return nil, errs.ErrUnauthorized
	}
	a, err := s.accounts.GetByIDAndToken(ctx, claims.AccountID, token.PurposeAuth, tok)
	if err != nil {
		return nil, errs.ErrUnauthorized
	}
	return a, nil
}

// IssueAuthToken signs a session token and records it on the account.
func (s *AccountServiceImpl) IssueAuthToken(ctx context.Context, a *model.Account) (string, error) {
	tok, err := s.codec.Issue(a.ID, token.PurposeAuth)
	if err != nil {
		return "", errs.ErrUnauthorized
	}
	if err := s.accounts.AddToken(ctx, a.ID, token.PurposeAuth, tok); err != nil {
		return "", err
	}
	a.Tokens = append(a.Tokens, model.AuthToken{Purpose: token.PurposeAuth, Token: tok})
	return tok, nil
}

// Logout removes the token from the account's token list.
func (s *AccountServiceImpl) Logout(ctx context.Context, accountID uuid.UUID, tok string) error {
	return s.accounts.RemoveToken(ctx, accountID, tok)
}

// Update applies account edits. The whole patch is validated before any write,
// so a rejected patch leaves the account untouched. An unchanged password never
// re-hashes: the digest is only recomputed when the patch carries a new one.
func (s *AccountServiceImpl) Update(ctx context.Context, accountID uuid.UUID, patch model.AccountPatch) (*model.Account, error) {
	var email string
	if patch.Email != nil {
		email = normalizeEmail(*patch.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}
	if patch.Password != nil {
		if err := validatePassword(*patch.Password); err != nil {
			return nil, err
		}
	}

	if patch.Email != nil {
		if err := s.accounts.UpdateEmail(ctx, accountID, email); err != nil {
			return nil, err
		}
	}
	if patch.Password != nil {
		digest, err := pkgcrypto.HashPassword(*patch.Password)
		if err != nil {
			return nil, errs.ErrUnauthorized
		}
		if err := s.accounts.UpdateDigest(ctx, accountID, digest); err != nil {
			return nil, err
		}
	}
	return s.accounts.GetByID(ctx, accountID)
}
