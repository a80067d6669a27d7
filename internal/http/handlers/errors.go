// Package handlers defines the HTTP-layer error catalog used across all API
// endpoints.
//
// The catalog has two halves, both consumed by the `fail()` helper in this
// package:
//   - symbolic codes: lowercase, snake_case, machine-readable strings that
//     clients branch on;
//   - user-facing messages: fixed, human-readable strings tied to the
//     conventional status class (404 not-found, 409 conflict, 422 validation,
//     401 authentication/authorization, 500 internal).
//
// Handlers pick the most specific matching pair and pass it to `fail()`
// together with the HTTP status. There is no logic here beyond the table.
package handlers

// Symbolic error codes.
const (
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeValidation   = "validation_failed"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// User-facing messages, grouped by status class.
const (
	// 404
	MsgAccountNotFound   = "Account not found"
	MsgHackerNotFound    = "Hacker not found"
	MsgSponsorNotFound   = "Sponsor not found"
	MsgVolunteerNotFound = "Volunteer not found"
	MsgTeamNotFound      = "Team not found"
	MsgResumeNotFound    = "Resume not found"

	// 409
	MsgHackerIDConflict    = "Conflict with hacker accountId link"
	MsgSponsorIDConflict   = "Conflict with sponsor accountId link"
	MsgVolunteerIDConflict = "Conflict with volunteer accountId link"
	MsgTeamMemberConflict  = "Conflict with team member being in another team"

	// 422
	MsgValidationFailed    = "Validation failed"
	MsgDuplicateAccount    = "Account already exists"
	MsgDuplicateTeamMember = "Duplicate team member in input"

	// 401
	MsgInvalidToken = "Invalid token for account"
	MsgUnauthorized     = "Unauthorized"
	MsgInvalidAuth      = "Invalid Authentication"

	// 500
	MsgAccountCreateFailed   = "Error while creating account"
	MsgAccountUpdateFailed   = "Error while updating account"
	MsgHackerCreateFailed    = "Error while creating hacker"
	MsgHackerUpdateFailed    = "Error while updating hacker"
	MsgSponsorCreateFailed   = "Error while creating sponsor"
	MsgVolunteerCreateFailed = "Error while creating volunteer"
	MsgTeamCreateFailed      = "Error while creating team"
	MsgEmailFailed           = "Error while generating email"
	MsgLoginFailed           = "Error while logging in"
	MsgInternalError         = "Internal error"
)
