// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Account
// model and its permission set.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an account is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Read operations additionally log at debug level whether a match was found.
// That is an observability side effect at the collaborator boundary, not part
// of the contract.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/hackhub/hackathon-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// logLookup records the outcome of a read at the persistence boundary.
func logLookup(op, key, value string, found bool, err error) {
	switch {
	case err != nil && err != gorm.ErrRecordNotFound:
		log.Error().Err(err).Str("op", op).Str(key, value).Msg("account lookup failed")
	case found:
		log.Debug().Str("op", op).Str(key, value).Msg("account exists")
	default:
		log.Debug().Str("op", op).Str(key, value).Msg("account does not exist")
	}
}

// CreateAccount inserts a new Account row together with its initial
// permission set in a single transaction. The account ID is a randomly
// generated UUID and CreatedAt is set to UTC.
//
// On success, it returns the persisted Account with permissions attached.
// A duplicate email violates ux_accounts_email and the raw DB error is
// returned for the service layer to classify.
func CreateAccount(ctx context.Context, db *gorm.DB, acc *domain.Account, permissions []string) (*domain.Account, error) {
	if acc.ID == "" {
		acc.ID = uuid.NewString()
	}
	acc.CreatedAt = time.Now().UTC()

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(acc).Error; err != nil {
			return err
		}
		for _, name := range permissions {
			p := domain.Permission{
				ID:        uuid.NewString(),
				AccountID: acc.ID,
				Name:      name,
				CreatedAt: time.Now().UTC(),
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			acc.Permissions = append(acc.Permissions, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// GetAccount fetches a single account by ID, permissions preloaded.
// Returns ErrNotFound when the record does not exist.
func GetAccount(ctx context.Context, db *gorm.DB, id string) (*domain.Account, error) {
	var acc domain.Account
	err := db.WithContext(ctx).
		Preload("Permissions").
		Where("id = ?", id).
		First(&acc).Error
	logLookup("GetAccount", "account_id", id, err == nil, err)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// GetAccountByEmail fetches a single account by its unique email,
// permissions preloaded. Returns ErrNotFound when no account matches.
func GetAccountByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Account, error) {
	var acc domain.Account
	err := db.WithContext(ctx).
		Preload("Permissions").
		Where("email = ?", email).
		First(&acc).Error
	logLookup("GetAccountByEmail", "email", email, err == nil, err)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// FindAccount fetches the first account matching the given column conditions
// (generic findOne). Returns ErrNotFound when nothing matches.
func FindAccount(ctx context.Context, db *gorm.DB, conds map[string]any) (*domain.Account, error) {
	var acc domain.Account
	err := db.WithContext(ctx).
		Preload("Permissions").
		Where(conds).
		First(&acc).Error
	logLookup("FindAccount", "conds", "query", err == nil, err)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// UpdateAccountFields applies a partial update to the account identified by
// id. Only the provided columns are touched. If no rows are affected (account
// missing), it returns ErrNotFound.
func UpdateAccountFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetAccountConfirmed flips the confirmed flag on the account identified by
// id. Returns ErrNotFound when the account does not exist.
func SetAccountConfirmed(ctx context.Context, db *gorm.DB, id string, confirmed bool) error {
	return UpdateAccountFields(ctx, db, id, map[string]any{"confirmed": confirmed})
}

// HasPermission reports whether the account holds the named capability.
func HasPermission(ctx context.Context, db *gorm.DB, accountID, name string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Permission{}).
		Where("account_id = ? AND name = ?", accountID, name).
		Count(&count).Error
	return count > 0, err
}

// GrantPermission attaches a capability to the account. Granting an already
// held capability is a no-op (the unique index is treated as idempotent).
func GrantPermission(ctx context.Context, db *gorm.DB, accountID, name string) error {
	held, err := HasPermission(ctx, db, accountID, name)
	if err != nil || held {
		return err
	}
	p := domain.Permission{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(&p).Error
}
