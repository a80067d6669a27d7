// Package services – HackerService
//
// This file implements the HackerService, which governs hacker profile
// creation and updates. Creation enforces two business rules ahead of the
// write: the owning account must exist and be confirmed, and the account must
// not already have a hacker profile. The unique index on account_id remains
// the final arbiter when two creates race.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hackhub/hackathon-backend/internal/domain"
	"github.com/hackhub/hackathon-backend/internal/repo"
)

// HackerService implements the use-cases around hacker profiles.
type HackerService struct {
	// DB is the database handle used for all hacker operations.
	DB *gorm.DB
}

// Create validates and persists a new hacker profile.
//
// Semantics:
//   - The owning account must exist; otherwise ErrAccountNotFound.
//   - The account must be confirmed; otherwise ErrAccountNotConfirmed, no
//     matter who issues the request.
//   - At most one hacker profile per account; a duplicate link yields
//     ErrDuplicateProfile, whether detected by the precheck or by the unique
//     index under concurrency.
func (s *HackerService) Create(ctx context.Context, h *domain.Hacker) (*domain.Hacker, error) {
	var created *domain.Hacker
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		acc, err := repo.GetAccount(ctx, tx, h.AccountID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
		if !acc.Confirmed {
			return ErrAccountNotConfirmed
		}
		if _, err := repo.GetHackerByAccount(ctx, tx, h.AccountID); err == nil {
			return ErrDuplicateProfile
		} else if !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		out, err := repo.CreateHacker(ctx, tx, h)
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

// FindByID returns the hacker profile with the given id, or ErrHackerNotFound.
func (s *HackerService) FindByID(ctx context.Context, id string) (*domain.Hacker, error) {
	h, err := repo.GetHacker(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrHackerNotFound
		}
		return nil, err
	}
	return h, nil
}

// Patch applies a partial update to the hacker profile. Only whitelisted
// columns reach the database. Returns ErrHackerNotFound when the id does not
// exist.
func (s *HackerService) Patch(ctx context.Context, id string, fields map[string]any) error {
	cols := make(map[string]any, len(fields))
	for k, v := range fields {
		switch k {
		case "school":
			cols["school"] = v
		case "gender":
			cols["gender"] = v
		case "needsBus":
			cols["needs_bus"] = v
		case "status":
			cols["status"] = v
		}
	}
	if len(cols) == 0 {
		return nil
	}
	if err := repo.UpdateHackerFields(ctx, s.DB, id, cols); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrHackerNotFound
		}
		return err
	}
	return nil
}
