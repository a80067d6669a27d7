// Team HTTP handlers.
//
//   - GET  /team/:id (fetch with members)
//   - POST /team     (create with initial members)
//
// This file also declares the Handlers aggregate that binds every resource
// handler to its service dependencies; the router constructs one instance at
// process start (explicit dependency injection, no package-level state).
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

// TeamService defines team operations consumed by HTTP handlers.
type TeamService interface {
	Create(ctx context.Context, t *domain.Team, memberIDs []string) (*domain.Team, error)
	FindByID(ctx context.Context, id string) (*domain.Team, error)
}

// Handlers groups the HTTP endpoints for every resource. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	accountSvc   AccountService
	hackerSvc    HackerService
	sponsorSvc   SponsorService
	volunteerSvc VolunteerService
	teamSvc      TeamService
	resumeSvc    ResumeService
}

// New constructs a Handlers instance bound to the given services.
func New(
	accountSvc AccountService,
	hackerSvc HackerService,
	sponsorSvc SponsorService,
	volunteerSvc VolunteerService,
	teamSvc TeamService,
	resumeSvc ResumeService,
) *Handlers {
	return &Handlers{
		accountSvc:   accountSvc,
		hackerSvc:    hackerSvc,
		sponsorSvc:   sponsorSvc,
		volunteerSvc: volunteerSvc,
		teamSvc:      teamSvc,
		resumeSvc:    resumeSvc,
	}
}

// CreateTeamRequest is the JSON payload for team creation.
type CreateTeamRequest struct {
	Name        string   `json:"name"        binding:"required,min=1,max=255"`
	ProjectName string   `json:"projectName" binding:"omitempty,max=255"`
	Members     []string `json:"members"     binding:"omitempty,dive,uuid"`
}

// GetTeam returns the team with its members.
func (h *Handlers) GetTeam(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return
	}
	t, err := h.teamSvc.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, MsgTeamNotFound)
		return
	}
	ok(c, http.StatusOK, "Successfully retrieved team information", t)
}

// CreateTeam creates a team and assigns the listed hackers. A repeated
// member id in the payload is 422; a member already on another team is 409.
func (h *Handlers) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgValidationFailed)
		return
	}

	created, err := h.teamSvc.Create(c.Request.Context(), &domain.Team{
		Name:        req.Name,
		ProjectName: req.ProjectName,
	}, req.Members)
	switch {
	case err == nil:
		ok(c, http.StatusOK, "Team creation successful", created)
	case errors.Is(err, services.ErrDuplicateTeamMember):
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, MsgDuplicateTeamMember)
	case errors.Is(err, services.ErrMemberOnAnotherTeam):
		fail(c, http.StatusConflict, ErrCodeConflict, MsgTeamMemberConflict)
	case errors.Is(err, services.ErrHackerNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, MsgHackerNotFound)
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, MsgTeamCreateFailed)
	}
}
