// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the role
// profiles: Hacker, Sponsor, and Volunteer.
//
// Each profile carries a unique index on account_id, so a second create for
// the same account fails at the storage layer. Services classify that failure
// as a conflict; two concurrent creates race down to exactly one winner here.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hackhub/hackathon-backend/internal/domain"
)

// CreateHacker inserts a new Hacker profile. The ID is a generated UUID and
// CreatedAt is set to UTC. A duplicate account link surfaces as the raw
// unique-constraint error.
func CreateHacker(ctx context.Context, db *gorm.DB, h *domain.Hacker) (*domain.Hacker, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	h.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(h).Error; err != nil {
		return nil, err
	}
	return h, nil
}

// GetHacker fetches a hacker profile by ID, or ErrNotFound if missing.
func GetHacker(ctx context.Context, db *gorm.DB, id string) (*domain.Hacker, error) {
	var h domain.Hacker
	if err := db.WithContext(ctx).Where("id = ?", id).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// GetHackerByAccount fetches the hacker profile linked to accountID, or
// ErrNotFound when the account has none.
func GetHackerByAccount(ctx context.Context, db *gorm.DB, accountID string) (*domain.Hacker, error) {
	var h domain.Hacker
	if err := db.WithContext(ctx).Where("account_id = ?", accountID).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// UpdateHackerFields applies a partial update to the hacker identified by id.
// Only the provided columns are touched. Returns ErrNotFound when no rows
// are affected.
func UpdateHackerFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Hacker{}).
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

// CreateSponsor inserts a new Sponsor profile with a generated UUID.
func CreateSponsor(ctx context.Context, db *gorm.DB, s *domain.Sponsor) (*domain.Sponsor, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSponsor fetches a sponsor profile by ID, or ErrNotFound if missing.
func GetSponsor(ctx context.Context, db *gorm.DB, id string) (*domain.Sponsor, error) {
	var s domain.Sponsor
	if err := db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateVolunteer inserts a new Volunteer profile with a generated UUID.
func CreateVolunteer(ctx context.Context, db *gorm.DB, v *domain.Volunteer) (*domain.Volunteer, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	v.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// GetVolunteer fetches a volunteer profile by ID, or ErrNotFound if missing.
func GetVolunteer(ctx context.Context, db *gorm.DB, id string) (*domain.Volunteer, error) {
	var v domain.Volunteer
	if err := db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}
