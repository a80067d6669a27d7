// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the single-use
// account confirmation tokens.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hackhub/hackathon-backend/internal/domain"
)

// CreateConfirmationToken inserts a pending confirmation for accountID with
// the given opaque token value and lifetime. Any previous pending token for
// the account is replaced so the unique index on account_id holds.
func CreateConfirmationToken(ctx context.Context, db *gorm.DB, accountID, token string, ttl time.Duration) (*domain.ConfirmationToken, error) {
	now := time.Now().UTC()
	ct := &domain.ConfirmationToken{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Token:     token,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("account_id = ?", accountID).
			Delete(&domain.ConfirmationToken{}).Error; err != nil {
			return err
		}
		return tx.Create(ct).Error
	})
	if err != nil {
		return nil, err
	}
	return ct, nil
}

// GetConfirmationByToken fetches the pending confirmation carrying the given
// token value, or ErrNotFound when no such token is pending.
func GetConfirmationByToken(ctx context.Context, db *gorm.DB, token string) (*domain.ConfirmationToken, error) {
	var ct domain.ConfirmationToken
	if err := db.WithContext(ctx).Where("token = ?", token).First(&ct).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

// DeleteConfirmation removes a confirmation row for good. Tokens are single
// use, so redemption deletes rather than soft-deletes.
func DeleteConfirmation(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Unscoped().
		Where("id = ?", id).
		Delete(&domain.ConfirmationToken{}).Error
}

// NewTokenValue returns a fresh opaque token value. UUIDs give enough entropy
// for an emailed, short-lived, single-use credential.
func NewTokenValue() string { return uuid.NewString() }
