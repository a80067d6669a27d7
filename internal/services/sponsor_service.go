// Package services – SponsorService and VolunteerService
//
// Sponsor and volunteer profiles share the hacker profile's creation rules:
// the owning account must exist and be confirmed, and each account carries at
// most one profile per role.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hackhub/hackathon-backend/internal/domain"
	"github.com/hackhub/hackathon-backend/internal/repo"
)

// SponsorService implements the use-cases around sponsor profiles.
type SponsorService struct {
	DB *gorm.DB
}

// Create validates and persists a new sponsor profile. See HackerService.Create
// for the shared account-existence, confirmation, and uniqueness rules.
func (s *SponsorService) Create(ctx context.Context, sp *domain.Sponsor) (*domain.Sponsor, error) {
	var created *domain.Sponsor
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireConfirmedAccount(ctx, tx, sp.AccountID); err != nil {
			return err
		}
		out, err := repo.CreateSponsor(ctx, tx, sp)
		if err != nil {
			if isDuplicate(err) {
				return ErrDuplicateProfile
			}
			return err
		}
		created = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FindByID returns the sponsor profile with the given id, or ErrSponsorNotFound.
func (s *SponsorService) FindByID(ctx context.Context, id string) (*domain.Sponsor, error) {
	sp, err := repo.GetSponsor(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSponsorNotFound
		}
		return nil, err
	}
	return sp, nil
}

// VolunteerService implements the use-cases around volunteer profiles.
type VolunteerService struct {
	DB *gorm.DB
}

// Create validates and persists a new volunteer profile under the shared
// profile-creation rules.
func (s *VolunteerService) Create(ctx context.Context, v *domain.Volunteer) (*domain.Volunteer, error) {
	var created *domain.Volunteer
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireConfirmedAccount(ctx, tx, v.AccountID); err != nil {
			return err
		}
		out, err := repo.CreateVolunteer(ctx, tx, v)
		if err != nil {
			if isDuplicate(err) {
				return ErrDuplicateProfile
			}
			return err
		}
		created = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FindByID returns the volunteer profile with the given id, or
// ErrVolunteerNotFound.
func (s *VolunteerService) FindByID(ctx context.Context, id string) (*domain.Volunteer, error) {
	v, err := repo.GetVolunteer(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrVolunteerNotFound
		}
		return nil, err
	}
	return v, nil
}

// requireConfirmedAccount loads the account and enforces the confirmed-email
// precondition shared by every profile creation path.
func requireConfirmedAccount(ctx context.Context, tx *gorm.DB, accountID string) error {
	acc, err := repo.GetAccount(ctx, tx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if !acc.Confirmed {
		return ErrAccountNotConfirmed
	}
	return nil
}
