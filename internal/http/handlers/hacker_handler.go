// Hacker HTTP handlers.
//
// This file exposes REST endpoints for hacker resources:
//   - GET    /hacker/:id          (fetch, owner or admin)
//   - POST   /hacker              (create, confirmed account required)
//   - PATCH  /hacker/:id          (partial update, owner or admin)
//   - POST   /hacker/resume/:id   (allocate a presigned resume upload)
//   - GET    /hacker/resume/:id   (presigned resume download)
//
// Successful creation echoes the validated input; PATCH echoes only the
// submitted fields. Resume endpoints return URL/key metadata only — the
// bytes go straight between the client and the object store.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hackhub/hackathon-backend/internal/domain"
	"github.com/hackhub/hackathon-backend/internal/services"
)

// HackerService defines hacker profile operations consumed by HTTP handlers.
type HackerService interface {
	Create(ctx context.Context, h *domain.Hacker) (*domain.Hacker, error)
	FindByID(ctx context.Context, id string) (*domain.Hacker, error)
	Patch(ctx context.Context, id string, fields map[string]any) error
}

// ResumeService brokers presigned resume transfers with the object store.
type ResumeService interface {
	RequestUpload(ctx context.Context, hackerID string) (key, url string, err error)
	RequestDownload(ctx context.Context, hackerID string) (string, error)
}

// CreateHackerRequest is the JSON payload for hacker creation.
type CreateHackerRequest struct {
	AccountID string `json:"accountId" binding:"required,uuid"`
	School    string `json:"school"    binding:"required,min=1,max=255"`
	Gender    string `json:"gender"    binding:"omitempty,max=32"`
	NeedsBus  bool   `json:"needsBus"`
}

// hackerPatchFields whitelists the mutable hacker attributes.
var hackerPatchFields = map[string]struct{}{
	"school":   {},
	"gender":   {},
	"needsBus": {},
	"status":   {},
}

// GetHacker returns the hacker profile identified by the route id.
func (h *Handlers) GetHacker(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return
	}
	hk, err := h.hackerSvc.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, MsgHackerNotFound)
		return
	}
	ok(c, http.StatusOK, "Successfully retrieved hacker information", hk)
}

// CreateHacker creates a hacker profile for a confirmed account and echoes
// the created resource. An unconfirmed account is 401 even for admins; a
// second profile for the same account is 409.
func (h *Handlers) CreateHacker(c *gin.Context) {
	var req CreateHackerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return
	}

	created, err := h.hackerSvc.Create(c.Request.Context(), &domain.Hacker{
		AccountID: req.AccountID,
		School:    req.School,
		Gender:    req.Gender,
		NeedsBus:  req.NeedsBus,
	})
	switch {
	case err == nil:
		ok(c, http.StatusOK, "Hacker creation successful", created)
	case errors.Is(err, services.ErrAccountNotConfirmed):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, MsgUnauthorized)
	case errors.Is(err, services.ErrDuplicateProfile):
		fail(c, http.StatusConflict, ErrCodeConflict, MsgHackerIDConflict)
	case errors.Is(err, services.ErrAccountNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, MsgAccountNotFound)
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, MsgHackerCreateFailed)
	}
}

// UpdateHacker applies a partial update and echoes back exactly the
// submitted fields, preserving the observed per-resource PATCH contract.
func (h *Handlers) UpdateHacker(c *gin.Context) {
	id := c.Param("id")
	fields, bound := bindPatch(c, hackerPatchFields)
	if !bound {
		return
	}

	if err := h.hackerSvc.Patch(c.Request.Context(), id, fields); err != nil {
		if errors.Is(err, services.ErrHackerNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, MsgHackerNotFound)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, MsgHackerUpdateFailed)
		return
	}
	ok(c, http.StatusOK, "Changed hacker information", fields)
}

// UploadResume allocates an object key plus presigned PUT URL for the
// hacker's resume and returns both as metadata.
func (h *Handlers) UploadResume(c *gin.Context) {
	id := c.Param("id")
	key, url, err := h.resumeSvc.RequestUpload(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrHackerNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, MsgHackerNotFound)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, MsgInternalError)
		return
	}
	ok(c, http.StatusOK, "Uploaded resume", gin.H{
		"filename":  key,
		"uploadUrl": url,
	})
}

// DownloadResume returns a presigned GET URL for the hacker's stored resume.
func (h *Handlers) DownloadResume(c *gin.Context) {
	id := c.Param("id")
	url, err := h.resumeSvc.RequestDownload(c.Request.Context(), id)
	switch {
	case err == nil:
		ok(c, http.StatusOK, "Downloaded resume", gin.H{
			"id":     id,
			"resume": url,
		})
	case errors.Is(err, services.ErrHackerNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, MsgHackerNotFound)
	case errors.Is(err, services.ErrResumeNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, MsgResumeNotFound)
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, MsgInternalError)
	}
}
