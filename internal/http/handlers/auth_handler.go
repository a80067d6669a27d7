// Auth HTTP handlers.
//
// This file exposes the unauthenticated credential endpoints:
//   - POST /auth/login            (issue a bearer token)
//   - POST /auth/confirm/:token   (redeem a confirmation token)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackhub/hackathon-backend/internal/services"
)

// LoginRequest is the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a signed bearer token. Unknown
// email and wrong password are deliberately indistinguishable.
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return
	}

	token, acc, err := h.accountSvc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		ok(c, http.StatusOK, "Successfully logged in", gin.H{
			"token":   token,
			"account": acc,
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, MsgInvalidAuth)
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, MsgLoginFailed)
	}
}

// ConfirmAccount redeems a single-use confirmation token. An unknown or
// expired token yields 401 with the invalid-token message.
func (h *Handlers) ConfirmAccount(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, MsgInvalidToken)
		return
	}

	acc, err := h.accountSvc.Confirm(c.Request.Context(), token)
	switch {
	case err == nil:
		ok(c, http.StatusOK, "Account confirmed", gin.H{"confirmed": acc.Confirmed})
	case errors.Is(err, services.ErrInvalidConfirmationToken):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, MsgInvalidToken)
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, MsgInternalError)
	}
}
