// Package domain defines the persistence models for accounts, role profiles
// (hacker, sponsor, volunteer), teams, and confirmation tokens. These types
// are mapped with GORM and form the core data layer of the hackathon backend.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Permission names used in authorization checks. An account is authorized for
// a protected resource when it holds PermissionAdmin or owns the resource.
const (
	PermissionAdmin  = "admin"
	PermissionHacker = "hacker"
)

// Account is the identity record behind every login. One account may own at
// most one profile per role (hacker, sponsor, volunteer).
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: login identifier; globally unique.
//   - PasswordHash: bcrypt hash; never serialized.
//   - Confirmed: flipped once the confirmation token is consumed (or by an
//     administrator). Profile creation requires a confirmed account.
//   - Permissions: owned capability set, loaded eagerly where needed.
type Account struct {
	ID                  string         `json:"id"                   gorm:"type:char(36);primaryKey"`
	FirstName           string         `json:"firstName"            gorm:"type:varchar(64);not null"`
	LastName            string         `json:"lastName"             gorm:"type:varchar(64);not null"`
	Email               string         `json:"email"                gorm:"type:varchar(254);not null;uniqueIndex:ux_accounts_email"`
	PasswordHash        string         `json:"-"                    gorm:"type:varchar(128);not null"`
	DietaryRestrictions string         `json:"dietaryRestrictions"  gorm:"type:varchar(255)"`
	ShirtSize           string         `json:"shirtSize"            gorm:"type:varchar(8)"`
	Confirmed           bool           `json:"confirmed"            gorm:"not null;default:false"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `json:"-"                    gorm:"index"`

	Permissions []Permission `json:"permissions,omitempty" gorm:"foreignKey:AccountID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Account.
func (Account) TableName() string { return "accounts" }

// HasPermission reports whether the loaded permission set contains name.
// It only inspects Permissions already attached to the struct; use the
// repository lookup when the set has not been preloaded.
func (a *Account) HasPermission(name string) bool {
	for _, p := range a.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Permission is a capability grant attached to an account. Authorization is a
// flat capability-set check, not role inheritance.
type Permission struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	AccountID string         `json:"account_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_permissions_account_name"`
	Name      string         `json:"name"       gorm:"type:varchar(64);not null;uniqueIndex:ux_permissions_account_name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Permission.
func (Permission) TableName() string { return "permissions" }

// Hacker is the participant profile. The unique index on AccountID enforces
// the at-most-one-profile-per-account invariant at the storage layer; a race
// between two concurrent creates resolves there, and the loser surfaces as a
// conflict.
type Hacker struct {
	ID        string         `json:"id"                  gorm:"type:char(36);primaryKey"`
	AccountID string         `json:"accountId"           gorm:"type:char(36);not null;uniqueIndex:ux_hackers_account"`
	School    string         `json:"school"              gorm:"type:varchar(255);not null"`
	Gender    string         `json:"gender"              gorm:"type:varchar(32)"`
	NeedsBus  bool           `json:"needsBus"            gorm:"not null;default:false"`
	Status    string         `json:"status"              gorm:"type:varchar(32);not null;default:'applied'"`
	TeamID    *string        `json:"teamId,omitempty"    gorm:"type:char(36);index"`
	ResumeKey string         `json:"-"                   gorm:"type:varchar(512)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"                   gorm:"index"`

	Account Account `json:"-" gorm:"foreignKey:AccountID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Hacker.
func (Hacker) TableName() string { return "hackers" }

// Sponsor is the sponsor-representative profile, one per account.
type Sponsor struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	AccountID   string         `json:"accountId"   gorm:"type:char(36);not null;uniqueIndex:ux_sponsors_account"`
	Company     string         `json:"company"     gorm:"type:varchar(255);not null"`
	Tier        int            `json:"tier"        gorm:"not null;default:1"`
	ContractURL string         `json:"contractURL" gorm:"type:varchar(512)"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`

	Account Account `json:"-" gorm:"foreignKey:AccountID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Sponsor.
func (Sponsor) TableName() string { return "sponsors" }

// Volunteer is the volunteer profile, one per account.
type Volunteer struct {
	ID        string         `json:"id"        gorm:"type:char(36);primaryKey"`
	AccountID string         `json:"accountId" gorm:"type:char(36);not null;uniqueIndex:ux_volunteers_account"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"         gorm:"index"`

	Account Account `json:"-" gorm:"foreignKey:AccountID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Volunteer.
func (Volunteer) TableName() string { return "volunteers" }

// Team is a named group of hackers. Membership lives on Hacker.TeamID, so a
// hacker belongs to at most one team by construction.
type Team struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	Name        string         `json:"name"        gorm:"type:varchar(255);not null"`
	ProjectName string         `json:"projectName" gorm:"type:varchar(255)"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`

	Members []Hacker `json:"members,omitempty" gorm:"foreignKey:TeamID;references:ID"`
}

// TableName returns the database table name for Team.
func (Team) TableName() string { return "teams" }

// ConfirmationToken binds an unconfirmed account to a pending email
// confirmation. It is single use: consumed rows are deleted, and a mismatch
// or an expired token is rejected. One pending token per account.
type ConfirmationToken struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	AccountID string         `json:"account_id" gorm:"type:char(36);not null;uniqueIndex:ux_confirmations_account"`
	Token     string         `json:"-"          gorm:"type:varchar(128);not null;index"`
	ExpiresAt time.Time      `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`

	Account Account `json:"-" gorm:"foreignKey:AccountID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ConfirmationToken.
func (ConfirmationToken) TableName() string { return "confirmation_tokens" }

// Expired reports whether the token can no longer be redeemed at now.
func (t *ConfirmationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
