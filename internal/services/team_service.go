// Package services – TeamService
//
// This file implements the TeamService, which creates teams and attaches
// hacker members. A payload listing the same hacker twice is a validation
// failure; a hacker already on another team is a conflict. Membership writes
// run in one transaction so a failed member never leaves a half-formed team.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hackhub/hackathon-backend/internal/domain"
	"github.com/hackhub/hackathon-backend/internal/repo"
)

// TeamService implements the use-cases around teams and membership.
type TeamService struct {
	// DB is the database handle used for all team operations.
	DB *gorm.DB
}

// Create persists a new team and assigns the listed hackers to it.
//
// Semantics and validation:
//   - memberIDs must not repeat; otherwise ErrDuplicateTeamMember.
//   - Every member must be an existing hacker; otherwise ErrHackerNotFound.
//   - A hacker already on a team yields ErrMemberOnAnotherTeam. The
//     assignment update is guarded by team_id IS NULL, so two concurrent
//     creates cannot both claim the same hacker.
func (s *TeamService) Create(ctx context.Context, t *domain.Team, memberIDs []string) (*domain.Team, error) {
	seen := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateTeamMember
		}
		seen[id] = struct{}{}
	}

	var created *domain.Team
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		out, err := repo.CreateTeam(ctx, tx, t)
		if err != nil {
			return err
		}
		for _, id := range memberIDs {
			if _, err := repo.GetHacker(ctx, tx, id); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return ErrHackerNotFound
				}
				return err
			}
			if err := repo.AssignHackerTeam(ctx, tx, id, out.ID); err != nil {
				// Row exists but was not teamless.
				if errors.Is(err, repo.ErrNotFound) {
					return ErrMemberOnAnotherTeam
				}
				return err
			}
		}
		created = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, created.ID)
}

// FindByID returns the team with its members, or ErrTeamNotFound.
func (s *TeamService) FindByID(ctx context.Context, id string) (*domain.Team, error) {
	t, err := repo.GetTeam(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}
