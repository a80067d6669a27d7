package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/hackhub/hackathon-backend/internal/domain"
	"github.com/hackhub/hackathon-backend/internal/services"
)

func validHackerBody() map[string]any {
	return map[string]any{
		"accountId": uuid.NewString(),
		"school":    "McGill",
		"needsBus":  true,
	}
}

func TestCreateHacker_Success(t *testing.T) {
	s := newStubs()
	s.hacker.createH = &domain.Hacker{ID: uuid.NewString(), School: "McGill", NeedsBus: true}
	h := s.handlers()

	w := perform(t, http.MethodPost, "/hacker", "/hacker", h.CreateHacker, validHackerBody())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	msg, data := envelope(t, w)
	if msg != "Hacker creation successful" {
		t.Fatalf("message = %q", msg)
	}
	if data["school"] != "McGill" || data["needsBus"] != true {
		t.Fatalf("expected created hacker echoed, got %v", data)
	}
}

func TestCreateHacker_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		// An unconfirmed account is 401 for everyone, admins included.
		{"unconfirmed account", services.ErrAccountNotConfirmed, http.StatusUnauthorized, MsgUnauthorized},
		{"second profile", services.ErrDuplicateProfile, http.StatusConflict, MsgHackerIDConflict},
		{"unknown account", services.ErrAccountNotFound, http.StatusNotFound, MsgAccountNotFound},
		{"unexpected", services.ErrTeamNotFound, http.StatusInternalServerError, MsgHackerCreateFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStubs()
			s.hacker.createErr = tc.err
			h := s.handlers()

			w := perform(t, http.MethodPost, "/hacker", "/hacker", h.CreateHacker, validHackerBody())
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			msg, _ := envelope(t, w)
			if msg != tc.message {
				t.Fatalf("message = %q, want %q", msg, tc.message)
			}
		})
	}
}

func TestCreateHacker_Validation(t *testing.T) {
	h := newStubs().handlers()

	w := perform(t, http.MethodPost, "/hacker", "/hacker", h.CreateHacker, map[string]any{
		"accountId": "not-a-uuid",
		"school":    "S",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetHacker(t *testing.T) {
	id := uuid.NewString()
	s := newStubs()
	s.hacker.findH = &domain.Hacker{ID: id, School: "ETS"}
	h := s.handlers()

	w := perform(t, http.MethodGet, "/hacker/:id", "/hacker/"+id, h.GetHacker, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	msg, data := envelope(t, w)
	if msg != "Successfully retrieved hacker information" {
		t.Fatalf("message = %q", msg)
	}
	if data["id"] != id {
		t.Fatalf("unexpected data %v", data)
	}

	// Not found.
	s.hacker.findH, s.hacker.findErr = nil, services.ErrHackerNotFound
	w = perform(t, http.MethodGet, "/hacker/:id", "/hacker/"+uuid.NewString(), h.GetHacker, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestUpdateHacker_EchoesSubmittedFieldsOnly(t *testing.T) {
	s := newStubs()
	h := s.handlers()
	id := uuid.NewString()

	w := perform(t, http.MethodPatch, "/hacker/:id", "/hacker/"+id, h.UpdateHacker, map[string]any{
		"school":    "New School",
		"status":    "accepted",
		"accountId": uuid.NewString(), // not patchable
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	msg, data := envelope(t, w)
	if msg != "Changed hacker information" {
		t.Fatalf("message = %q", msg)
	}
	if data["school"] != "New School" || data["status"] != "accepted" {
		t.Fatalf("expected submitted fields echoed, got %v", data)
	}
	if _, present := data["accountId"]; present {
		t.Fatalf("non-whitelisted field must not be echoed")
	}
	if s.hacker.patchedID != id {
		t.Fatalf("service got id %q", s.hacker.patchedID)
	}
}

func TestUploadResume(t *testing.T) {
	s := newStubs()
	s.resume.uploadKey = "resumes/2026/08/h1/obj"
	s.resume.uploadURL = "https://bucket.test/put/obj"
	h := s.handlers()

	w := perform(t, http.MethodPost, "/hacker/resume/:id", "/hacker/resume/"+uuid.NewString(),
		h.UploadResume, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	msg, data := envelope(t, w)
	if msg != "Uploaded resume" {
		t.Fatalf("message = %q", msg)
	}
	if data["filename"] != "resumes/2026/08/h1/obj" || data["uploadUrl"] != "https://bucket.test/put/obj" {
		t.Fatalf("unexpected data %v", data)
	}
}

func TestUploadResume_UnknownHacker(t *testing.T) {
	s := newStubs()
	s.resume.uploadErr = services.ErrHackerNotFound
	h := s.handlers()

	w := perform(t, http.MethodPost, "/hacker/resume/:id", "/hacker/resume/"+uuid.NewString(),
		h.UploadResume, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	msg, _ := envelope(t, w)
	if msg != MsgHackerNotFound {
		t.Fatalf("message = %q", msg)
	}
}

func TestDownloadResume(t *testing.T) {
	id := uuid.NewString()
	s := newStubs()
	s.resume.dlURL = "https://bucket.test/get/obj"
	h := s.handlers()

	w := perform(t, http.MethodGet, "/hacker/resume/:id", "/hacker/resume/"+id, h.DownloadResume, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	msg, data := envelope(t, w)
	if msg != "Downloaded resume" {
		t.Fatalf("message = %q", msg)
	}
	if data["id"] != id || data["resume"] != "https://bucket.test/get/obj" {
		t.Fatalf("unexpected data %v", data)
	}
}

func TestDownloadResume_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unknown hacker", services.ErrHackerNotFound, http.StatusNotFound, MsgHackerNotFound},
		{"nothing uploaded", services.ErrResumeNotFound, http.StatusNotFound, MsgResumeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStubs()
			s.resume.dlErr = tc.err
			h := s.handlers()

			w := perform(t, http.MethodGet, "/hacker/resume/:id", "/hacker/resume/"+uuid.NewString(),
				h.DownloadResume, nil)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			msg, _ := envelope(t, w)
			if msg != tc.message {
				t.Fatalf("message = %q, want %q", msg, tc.message)
			}
		})
	}
}
