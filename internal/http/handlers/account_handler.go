// Account HTTP handlers.
//
// This file exposes REST endpoints for account resources:
//   - GET    /account/self              (current account)
//   - POST   /account                   (register)
//   - GET    /account/:id               (fetch, owner or admin)
//   - PATCH  /account/:id               (partial update, owner or admin)
//   - PATCH  /account/confirmation/:id  (admin confirmation override)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into `{message, data}` responses. PATCH
// responses echo exactly the submitted fields, not the full record.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hackhub/hackathon-backend/internal/domain"
	"github.com/hackhub/hackathon-backend/internal/http/middleware"
	"github.com/hackhub/hackathon-backend/internal/services"
)

// AccountService defines account lifecycle operations consumed by HTTP
// handlers. Implementations must honor the provided context.
type AccountService interface {
	Register(ctx context.Context, in services.RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Patch(ctx context.Context, id string, fields map[string]any) error
	SetConfirmed(ctx context.Context, id string, confirmed bool) error
	Confirm(ctx context.Context, token string) (*domain.Account, error)
}

// CreateAccountRequest is the JSON payload for registration.
type CreateAccountRequest struct {
	FirstName           string `json:"firstName" binding:"required,min=1,max=64"`
	LastName            string `json:"lastName"  binding:"required,min=1,max=64"`
	Email               string `json:"email"     binding:"required,email"`
	Password            string `json:"password"  binding:"required,min=8,max=128"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
	ShirtSize           string `json:"shirtSize" binding:"omitempty,oneof=XS S M L XL XXL"`
}

// UpdateConfirmationRequest is the JSON payload for the admin confirmation
// override.
type UpdateConfirmationRequest struct {
	Confirmed *bool `json:"confirmed" binding:"required"`
}

// accountPatchFields whitelists the mutable account attributes. The password
// is accepted here but handled (hashed) by the service.
var accountPatchFields = map[string]struct{}{
	"firstName":           {},
	"lastName":            {},
	"dietaryRestrictions": {},
	"shirtSize":           {},
	"password":            {},
}

// bindPatch decodes a JSON object and keeps only whitelisted scalar fields.
// The filtered map doubles as the response payload: PATCH echoes back what
// was submitted.
func bindPatch(c *gin.Context, allowed map[string]struct{}) (map[string]any, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil || len(raw) == 0 {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return nil, false
	}
	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		if _, ok := allowed[k]; ok {
			fields[k] = v
		}
	}
	if len(fields) == 0 {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return nil, false
	}
	return fields, true
}

// GetSelf returns the account of the authenticated caller.
func (h *Handlers) GetSelf(c *gin.Context) {
	acc, err := h.accountSvc.FindByID(c.Request.Context(), middleware.AccountIDFrom(c))
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, MsgAccountNotFound)
		return
	}
	ok(c, http.StatusOK, "Account found by user email", acc)
}

// CreateAccount registers a new account and kicks off the confirmation
// email. A duplicate email is a 422 per the observed contract.
func (h *Handlers) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return
	}

	acc, err := h.accountSvc.Register(c.Request.Context(), services.RegisterInput{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Password:            req.Password,
		DietaryRestrictions: req.DietaryRestrictions,
		ShirtSize:           req.ShirtSize,
	})
	switch {
	case err == nil:
		ok(c, http.StatusOK, "Account creation successful", acc)
	case errors.Is(err, services.ErrDuplicateAccount):
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgDuplicateAccount)
	case errors.Is(err, services.ErrEmailSend):
		fail(c, http.StatusInternalServerError, ErrCodeInternal, MsgEmailFailed)
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, MsgAccountCreateFailed)
	}
}

// GetAccount returns the account identified by the route id. Authorization
// (owner or admin) is enforced upstream.
func (h *Handlers) GetAccount(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return
	}
	acc, err := h.accountSvc.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, MsgAccountNotFound)
		return
	}
	ok(c, http.StatusOK, "Account found by user id", acc)
}

// UpdateAccount applies a partial update and echoes back exactly the
// submitted fields.
func (h *Handlers) UpdateAccount(c *gin.Context) {
	id := c.Param("id")
	fields, bound := bindPatch(c, accountPatchFields)
	if !bound {
		return
	}

	if err := h.accountSvc.Patch(c.Request.Context(), id, fields); err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, MsgAccountNotFound)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, MsgAccountUpdateFailed)
		return
	}
	// The stored password hash is not echoed. The service holds a reference
	// to fields, so the echo is built from a copy rather than deleting in place.
	echo := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "password" {
			continue
		}
		echo[k] = v
	}
	ok(c, http.StatusOK, "Changed account information", echo)
}

// UpdateConfirmation is the administrative confirmation override. It responds
// with only the confirmed flag.
func (h *Handlers) UpdateConfirmation(c *gin.Context) {
	id := c.Param("id")
	var req UpdateConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Confirmed == nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return
	}

	if err := h.accountSvc.SetConfirmed(c.Request.Context(), id, *req.Confirmed); err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, MsgAccountNotFound)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, MsgAccountUpdateFailed)
		return
	}
	ok(c, http.StatusOK, "Changed account information", gin.H{"confirmed": *req.Confirmed})
}
