// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for Team and for
// team membership, which lives on Hacker.TeamID.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hackhub/hackathon-backend/internal/domain"
)

// CreateTeam inserts a new Team row with a generated UUID.
func CreateTeam(ctx context.Context, db *gorm.DB, t *domain.Team) (*domain.Team, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTeam fetches a team by ID with its members preloaded, or ErrNotFound
// if missing.
func GetTeam(ctx context.Context, db *gorm.DB, id string) (*domain.Team, error) {
	var t domain.Team
	err := db.WithContext(ctx).
		Preload("Members").
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AssignHackerTeam sets the team of the hacker identified by hackerID, but
// only while the hacker is teamless. A hacker already on a team is not
// reassigned; the caller sees zero rows affected and gets ErrNotFound, which
// the service layer classifies as a membership conflict.
func AssignHackerTeam(ctx context.Context, db *gorm.DB, hackerID, teamID string) error {
	res := db.WithContext(ctx).
		Model(&domain.Hacker{}).
		Where("id = ? AND team_id IS NULL", hackerID).
		Update("team_id", teamID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountTeamMembers returns the number of hackers currently on the team.
func CountTeamMembers(ctx context.Context, db *gorm.DB, teamID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Hacker{}).
		Where("team_id = ?", teamID).
		Count(&total).Error
	return total, err
}
