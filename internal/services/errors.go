// Package services defines the business logic for accounts, role profiles,
// teams, confirmation tokens, and resumes. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

// Account-related errors.
var (
	// ErrAccountNotFound indicates that the requested account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount is returned when registration reuses an email that
	// already has an account.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInvalidCredentials is returned when login fails on email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountNotConfirmed is returned when a profile is created for an
	// account whose email has not been confirmed. This applies regardless of
	// who issues the request, administrators included.
	ErrAccountNotConfirmed = errors.New("account not confirmed")

	// ErrInvalidConfirmationToken is returned when a presented confirmation
	// token does not match a pending confirmation or has expired.
	ErrInvalidConfirmationToken = errors.New("invalid confirmation token")

	// ErrEmailSend is returned when the confirmation email cannot be handed
	// to the mail collaborator.
	ErrEmailSend = errors.New("confirmation email failed")
)

// Profile-related errors.
var (
	// ErrHackerNotFound indicates that the requested hacker profile does not exist.
	ErrHackerNotFound = errors.New("hacker not found")

	// ErrSponsorNotFound indicates that the requested sponsor profile does not exist.
	ErrSponsorNotFound = errors.New("sponsor not found")

	// ErrVolunteerNotFound indicates that the requested volunteer profile does not exist.
	ErrVolunteerNotFound = errors.New("volunteer not found")

	// ErrDuplicateProfile is returned when the target account already has a
	// profile of the requested role. The storage layer's unique index on
	// account_id is the final arbiter under concurrency.
	ErrDuplicateProfile = errors.New("account already linked to a profile of this role")

	// ErrResumeNotFound indicates the hacker has no stored resume.
	ErrResumeNotFound = errors.New("resume not found")

	// ErrStorageUnavailable is returned when resume transfers are requested
	// but no object store is configured.
	ErrStorageUnavailable = errors.New("object store not configured")
)

// Team-related errors.
var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")

	// ErrDuplicateTeamMember is returned when a create-team payload lists the
	// same hacker twice.
	ErrDuplicateTeamMember = errors.New("duplicate team member in input")

	// ErrMemberOnAnotherTeam is returned when a listed hacker already belongs
	// to a team.
	ErrMemberOnAnotherTeam = errors.New("team member already belongs to another team")
)
