package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hackhub/hackathon-backend/internal/domain"
	"github.com/hackhub/hackathon-backend/internal/services"
)

// ---- stub services -------------------------------------------------------
//
// Each stub returns canned values or errors set per test. Handlers only see
// the interfaces, so these cover the full error-mapping surface without a
// database.

type stubAccountSvc struct {
	registerAcc *domain.Account
	registerErr error
	loginToken  string
	loginAcc    *domain.Account
	loginErr    error
	findAcc     *domain.Account
	findErr     error
	patchErr    error
	confirmAcc  *domain.Account
	confirmErr  error
	setConfErr  error

	patchedID     string
	patchedFields map[string]any
	setConfID     string
	setConfValue  bool
}

func (s *stubAccountSvc) Register(_ context.Context, _ services.RegisterInput) (*domain.Account, error) {
	return s.registerAcc, s.registerErr
}
func (s *stubAccountSvc) Login(_ context.Context, _, _ string) (string, *domain.Account, error) {
	return s.loginToken, s.loginAcc, s.loginErr
}
func (s *stubAccountSvc) FindByID(_ context.Context, _ string) (*domain.Account, error) {
	return s.findAcc, s.findErr
}
func (s *stubAccountSvc) FindByEmail(_ context.Context, _ string) (*domain.Account, error) {
	return s.findAcc, s.findErr
}
func (s *stubAccountSvc) Patch(_ context.Context, id string, fields map[string]any) error {
	s.patchedID, s.patchedFields = id, fields
	return s.patchErr
}
func (s *stubAccountSvc) SetConfirmed(_ context.Context, id string, confirmed bool) error {
	s.setConfID, s.setConfValue = id, confirmed
	return s.setConfErr
}
func (s *stubAccountSvc) Confirm(_ context.Context, _ string) (*domain.Account, error) {
	return s.confirmAcc, s.confirmErr
}

type stubHackerSvc struct {
	createH   *domain.Hacker
	createErr error
	findH     *domain.Hacker
	findErr   error
	patchErr  error

	patchedID     string
	patchedFields map[string]any
}

func (s *stubHackerSvc) Create(_ context.Context, _ *domain.Hacker) (*domain.Hacker, error) {
	return s.createH, s.createErr
}
func (s *stubHackerSvc) FindByID(_ context.Context, _ string) (*domain.Hacker, error) {
	return s.findH, s.findErr
}
func (s *stubHackerSvc) Patch(_ context.Context, id string, fields map[string]any) error {
	s.patchedID, s.patchedFields = id, fields
	return s.patchErr
}

type stubSponsorSvc struct {
	createS   *domain.Sponsor
	createErr error
	findS     *domain.Sponsor
	findErr   error
}

func (s *stubSponsorSvc) Create(_ context.Context, _ *domain.Sponsor) (*domain.Sponsor, error) {
	return s.createS, s.createErr
}
func (s *stubSponsorSvc) FindByID(_ context.Context, _ string) (*domain.Sponsor, error) {
	return s.findS, s.findErr
}

type stubVolunteerSvc struct {
	createV   *domain.Volunteer
	createErr error
	findV     *domain.Volunteer
	findErr   error
}

func (s *stubVolunteerSvc) Create(_ context.Context, _ *domain.Volunteer) (*domain.Volunteer, error) {
	return s.createV, s.createErr
}
func (s *stubVolunteerSvc) FindByID(_ context.Context, _ string) (*domain.Volunteer, error) {
	return s.findV, s.findErr
}

type stubTeamSvc struct {
	createT   *domain.Team
	createErr error
	findT     *domain.Team
	findErr   error
}

func (s *stubTeamSvc) Create(_ context.Context, _ *domain.Team, _ []string) (*domain.Team, error) {
	return s.createT, s.createErr
}
func (s *stubTeamSvc) FindByID(_ context.Context, _ string) (*domain.Team, error) {
	return s.findT, s.findErr
}

type stubResumeSvc struct {
	uploadKey string
	uploadURL string
	uploadErr error
	dlURL     string
	dlErr     error
}

func (s *stubResumeSvc) RequestUpload(_ context.Context, _ string) (string, string, error) {
	return s.uploadKey, s.uploadURL, s.uploadErr
}
func (s *stubResumeSvc) RequestDownload(_ context.Context, _ string) (string, error) {
	return s.dlURL, s.dlErr
}

// stubs bundles one of each stub for tests that only care about a subset.
type stubs struct {
	account   *stubAccountSvc
	hacker    *stubHackerSvc
	sponsor   *stubSponsorSvc
	volunteer *stubVolunteerSvc
	team      *stubTeamSvc
	resume    *stubResumeSvc
}

func newStubs() *stubs {
	return &stubs{
		account:   &stubAccountSvc{},
		hacker:    &stubHackerSvc{},
		sponsor:   &stubSponsorSvc{},
		volunteer: &stubVolunteerSvc{},
		team:      &stubTeamSvc{},
		resume:    &stubResumeSvc{},
	}
}

func (s *stubs) handlers() *Handlers {
	return New(s.account, s.hacker, s.sponsor, s.volunteer, s.team, s.resume)
}

// perform runs a single request against a bare router with the given route.
func perform(t *testing.T, method, path, reqPath string, fn gin.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, path, fn)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, reqPath, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope decodes the standard response body.
func envelope(t *testing.T, w *httptest.ResponseRecorder) (string, map[string]any) {
	t.Helper()
	var resp struct {
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid envelope JSON: %v (body=%s)", err, w.Body.String())
	}
	return resp.Message, resp.Data
}
