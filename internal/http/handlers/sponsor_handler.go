// Sponsor and volunteer HTTP handlers.
//
//   - GET  /sponsor/:id   (fetch, owner or admin)
//   - POST /sponsor       (create, confirmed account required)
//   - GET  /volunteer/:id (fetch, owner or admin)
//   - POST /volunteer     (create, confirmed account required)
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

// SponsorService defines sponsor profile operations consumed by HTTP handlers.
type SponsorService interface {
	Create(ctx context.Context, s *domain.Sponsor) (*domain.Sponsor, error)
	FindByID(ctx context.Context, id string) (*domain.Sponsor, error)
}

// VolunteerService defines volunteer profile operations consumed by HTTP handlers.
type VolunteerService interface {
	Create(ctx context.Context, v *domain.Volunteer) (*domain.Volunteer, error)
	FindByID(ctx context.Context, id string) (*domain.Volunteer, error)
}

// CreateSponsorRequest is the JSON payload for sponsor creation.
type CreateSponsorRequest struct {
	AccountID   string `json:"accountId"   binding:"required,uuid"`
	Company     string `json:"company"     binding:"required,min=1,max=255"`
	Tier        int    `json:"tier"        binding:"required,min=1,max=5"`
	ContractURL string `json:"contractURL" binding:"omitempty,url"`
}

// CreateVolunteerRequest is the JSON payload for volunteer creation.
type CreateVolunteerRequest struct {
	AccountID string `json:"accountId" binding:"required,uuid"`
}

// GetSponsor returns the sponsor profile identified by the route id.
func (h *Handlers) GetSponsor(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return
	}
	sp, err := h.sponsorSvc.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, MsgSponsorNotFound)
		return
	}
	ok(c, http.StatusOK, "Successfully retrieved sponsor information", sp)
}

// CreateSponsor creates a sponsor profile under the shared profile rules and
// echoes the created resource.
func (h *Handlers) CreateSponsor(c *gin.Context) {
	var req CreateSponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return
	}

	created, err := h.sponsorSvc.Create(c.Request.Context(), &domain.Sponsor{
		AccountID:   req.AccountID,
		Company:     req.Company,
		Tier:        req.Tier,
		ContractURL: req.ContractURL,
	})
	switch {
	case err == nil:
		ok(c, http.StatusOK, "Sponsor creation successful", created)
	case errors.Is(err, services.ErrAccountNotConfirmed):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, MsgUnauthorized)
	case errors.Is(err, services.ErrDuplicateProfile):
		fail(c, http.StatusConflict, ErrCodeConflict, MsgSponsorIDConflict)
	case errors.Is(err, services.ErrAccountNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, MsgAccountNotFound)
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, MsgSponsorCreateFailed)
	}
}

// GetVolunteer returns the volunteer profile identified by the route id.
func (h *Handlers) GetVolunteer(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return
	}
	v, err := h.volunteerSvc.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, MsgVolunteerNotFound)
		return
	}
	ok(c, http.StatusOK, "Successfully retrieved volunteer information", v)
}

// CreateVolunteer creates a volunteer profile under the shared profile rules.
func (h *Handlers) CreateVolunteer(c *gin.Context) {
	var req CreateVolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return
	}

	created, err := h.volunteerSvc.Create(c.Request.Context(), &domain.Volunteer{
		AccountID: req.AccountID,
	})
	switch {
	case err == nil:
		ok(c, http.StatusOK, "Volunteer creation successful", created)
	case errors.Is(err, services.ErrAccountNotConfirmed):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, MsgUnauthorized)
	case errors.Is(err, services.ErrDuplicateProfile):
		fail(c, http.StatusConflict, ErrCodeConflict, MsgVolunteerIDConflict)
	case errors.Is(err, services.ErrAccountNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, MsgAccountNotFound)
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, MsgVolunteerCreateFailed)
	}
}
