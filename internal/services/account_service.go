// Package services – AccountService
//
// This file implements the AccountService, which owns the account lifecycle:
// registration (with password hashing and the confirmation email hand-off),
// login, lookup, and partial updates. Service-level errors (e.g.
// ErrDuplicateAccount, ErrInvalidCredentials) are returned for predictable
// cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hackhub/hackathon-backend/internal/auth"
	"github.com/hackhub/hackathon-backend/internal/domain"
	"github.com/hackhub/hackathon-backend/internal/email"
	"github.com/hackhub/hackathon-backend/internal/repo"
)

// AccountService provides account registration, authentication, lookup, and
// patch operations. It opens its own transactions where multiple writes must
// land together.
type AccountService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Tokens issues bearer tokens on successful login.
	Tokens *auth.TokenManager
	// Mailer delivers confirmation emails; registration fails without it.
	Mailer email.Mailer
	// ConfirmTTL bounds the confirmation-token lifetime.
	ConfirmTTL time.Duration
}

// NewAccountService constructs an AccountService with a default confirmation
// lifetime when ttl is zero.
func NewAccountService(db *gorm.DB, tokens *auth.TokenManager, mailer email.Mailer, ttl time.Duration) *AccountService {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &AccountService{DB: db, Tokens: tokens, Mailer: mailer, ConfirmTTL: ttl}
}

// RegisterInput carries the validated registration payload.
type RegisterInput struct {
	FirstName           string
	LastName            string
	Email               string
	Password            string
	DietaryRestrictions string
	ShirtSize           string
}

// Register creates an account with hacker-level permissions, stores a pending
// confirmation token, and hands the confirmation email to the mailer.
//
// Semantics:
//   - The email is lowercased and must be globally unique; a duplicate yields
//     ErrDuplicateAccount (the unique index decides under concurrency).
//   - The password is stored only as a bcrypt hash.
//   - Mailer failure yields ErrEmailSend; the account row still exists and
//     the token can be re-issued out of band.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	acc := &domain.Account{
		FirstName:           strings.TrimSpace(in.FirstName),
		LastName:            strings.TrimSpace(in.LastName),
		Email:               strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:        hash,
		DietaryRestrictions: in.DietaryRestrictions,
		ShirtSize:           in.ShirtSize,
	}

	created, err := repo.CreateAccount(ctx, s.DB, acc, []string{domain.PermissionHacker})
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}

	token, err := repo.CreateConfirmationToken(ctx, s.DB, created.ID, repo.NewTokenValue(), s.ConfirmTTL)
	if err != nil {
		return nil, err
	}
	if err := s.Mailer.SendConfirmation(ctx, created.Email, token.Token); err != nil {
		return nil, ErrEmailSend
	}
	return created, nil
}

// Login verifies the email/password pair and returns a signed bearer token
// together with the account. Unknown email and wrong password are
// indistinguishable to the caller: both yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, emailAddr, password string) (string, *domain.Account, error) {
	acc, err := repo.GetAccountByEmail(ctx, s.DB, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.CheckPassword(acc.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.Tokens.Generate(acc.ID)
	if err != nil {
		return "", nil, err
	}
	return token, acc, nil
}

// FindByID returns the account with the given id, or ErrAccountNotFound.
func (s *AccountService) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	acc, err := repo.GetAccount(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return acc, nil
}

// FindByEmail returns the account registered under the email, or
// ErrAccountNotFound.
func (s *AccountService) FindByEmail(ctx context.Context, emailAddr string) (*domain.Account, error) {
	acc, err := repo.GetAccountByEmail(ctx, s.DB, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return acc, nil
}

// Patch applies a partial update to the account. Only whitelisted columns
// reach the database; a password field is re-hashed before storage. The
// caller receives ErrAccountNotFound when the id does not exist.
func (s *AccountService) Patch(ctx context.Context, id string, fields map[string]any) error {
	cols := make(map[string]any, len(fields))
	for k, v := range fields {
		switch k {
		case "firstName":
			cols["first_name"] = v
		case "lastName":
			cols["last_name"] = v
		case "dietaryRestrictions":
			cols["dietary_restrictions"] = v
		case "shirtSize":
			cols["shirt_size"] = v
		case "password":
			pw, ok := v.(string)
			if !ok || pw == "" {
				continue
			}
			hash, err := auth.HashPassword(pw)
			if err != nil {
				return err
			}
			cols["password_hash"] = hash
		}
	}
	if len(cols) == 0 {
		return nil
	}
	if err := repo.UpdateAccountFields(ctx, s.DB, id, cols); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}

// SetConfirmed flips the confirmed flag directly. This is the administrative
// override of the token flow.
func (s *AccountService) SetConfirmed(ctx context.Context, id string, confirmed bool) error {
	if err := repo.SetAccountConfirmed(ctx, s.DB, id, confirmed); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}

// Confirm redeems a confirmation token: the matching account is marked
// confirmed and the token row is deleted, all in one transaction. A missing
// or expired token yields ErrInvalidConfirmationToken.
func (s *AccountService) Confirm(ctx context.Context, token string) (*domain.Account, error) {
	var confirmed *domain.Account
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ct, err := repo.GetConfirmationByToken(ctx, tx, token)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrInvalidConfirmationToken
			}
			return err
		}
		if ct.Expired(time.Now().UTC()) {
			return ErrInvalidConfirmationToken
		}
		if err := repo.SetAccountConfirmed(ctx, tx, ct.AccountID, true); err != nil {
			return err
		}
		if err := repo.DeleteConfirmation(ctx, tx, ct.ID); err != nil {
			return err
		}
		acc, err := repo.GetAccount(ctx, tx, ct.AccountID)
		if err != nil {
			return err
		}
		confirmed = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
