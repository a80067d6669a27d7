package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hackhub/hackathon-backend/internal/auth"
	"github.com/hackhub/hackathon-backend/internal/config"
	"github.com/hackhub/hackathon-backend/internal/email"
	"github.com/hackhub/hackathon-backend/internal/repo"
)

func testConfig() config.Config {
	return config.Config{
		GinMode:     gin.TestMode,
		APIBasePath: "/api/v1",
		RateRPS:     1000,
		RateBurst:   1000,
		Auth: config.AuthConfig{
			JWTSecret:  "router-test-secret",
			JWTIssuer:  "router-test",
			JWTTTL:     time.Hour,
			ConfirmTTL: time.Hour,
		},
		Security: config.SecurityConfig{EnableHSTS: false},
		OTEL:     config.OTELConfig{ServiceName: "router-test"},
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestRouterWithConfig(t, testConfig())
}

func newTestRouterWithConfig(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("router_test_%d.db", time.Now().UnixNano()))
	db, err := repo.OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:     db,
		Tokens: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTTTL),
		Mailer: email.LogMailer{},
	}, cfg)
	return r
}

func doJSON(r *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return resp.Data
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
	// Default CORS posture advertises ACAO: * on every response.
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing ACAO header: %v", w.Header())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rec.Code)
	}
}

func TestRouter_Fallbacks(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("NoRoute: %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	rid, _ := body["request_id"].(string)
	if body["code"] != "not_found" || rid == "" {
		t.Fatalf("unexpected NoRoute envelope: %v", body)
	}

	w = doJSON(r, http.MethodDelete, "/health", "", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("NoMethod: %d", w.Code)
	}
}

func TestRouter_RegisterLoginSelf(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/account", "", map[string]any{
		"firstName": "Grace",
		"lastName":  "Hopper",
		"email":     "grace@navy.mil",
		"password":  "correct-horse-battery",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register: %d body=%s", w.Code, w.Body.String())
	}
	accountID, _ := decodeData(t, w)["id"].(string)
	if accountID == "" {
		t.Fatalf("no account id in response")
	}

	w = doJSON(r, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "grace@navy.mil",
		"password": "correct-horse-battery",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d body=%s", w.Code, w.Body.String())
	}
	token, _ := decodeData(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("no token in login response")
	}

	// Bearer token resolves the caller's own account.
	w = doJSON(r, http.MethodGet, "/api/v1/account/self", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("self: %d body=%s", w.Code, w.Body.String())
	}
	if got := decodeData(t, w)["email"]; got != "grace@navy.mil" {
		t.Fatalf("self email = %v", got)
	}

	// Same id through the ownership-guarded route.
	w = doJSON(r, http.MethodGet, "/api/v1/account/"+accountID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get by id: %d body=%s", w.Code, w.Body.String())
	}

	// No token at all.
	w = doJSON(r, http.MethodGet, "/api/v1/account/self", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("self without token: %d", w.Code)
	}
}

func TestRouter_OwnershipIsEnforcedAcrossAccounts(t *testing.T) {
	r := newTestRouter(t)

	register := func(mail string) string {
		w := doJSON(r, http.MethodPost, "/api/v1/account", "", map[string]any{
			"firstName": "X", "lastName": "Y", "email": mail, "password": "longenoughpw",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("register %s: %d body=%s", mail, w.Code, w.Body.String())
		}
		id, _ := decodeData(t, w)["id"].(string)
		return id
	}
	login := func(mail string) string {
		w := doJSON(r, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email": mail, "password": "longenoughpw",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("login %s: %d", mail, w.Code)
		}
		tok, _ := decodeData(t, w)["token"].(string)
		return tok
	}

	aliceID := register("alice@x.io")
	_ = register("bob@x.io")
	bobToken := login("bob@x.io")

	// Bob cannot read Alice's account.
	w := doJSON(r, http.MethodGet, "/api/v1/account/"+aliceID, bobToken, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("cross-account read: %d body=%s", w.Code, w.Body.String())
	}

	// Nor flip her confirmation flag.
	w = doJSON(r, http.MethodPatch, "/api/v1/account/confirmation/"+aliceID, bobToken,
		map[string]any{"confirmed": true})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("non-admin confirmation: %d", w.Code)
	}
}

func TestRouter_ProfileRequiresConfirmedAccount(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/account", "", map[string]any{
		"firstName": "New", "lastName": "Comer", "email": "new@x.io", "password": "longenoughpw",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register: %d", w.Code)
	}
	accountID, _ := decodeData(t, w)["id"].(string)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "new@x.io", "password": "longenoughpw",
	})
	token, _ := decodeData(t, w)["token"].(string)

	// Email is unconfirmed, so the hacker profile is refused.
	w = doJSON(r, http.MethodPost, "/api/v1/hacker", token, map[string]any{
		"accountId": accountID,
		"school":    "Waterloo",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unconfirmed profile create: %d body=%s", w.Code, w.Body.String())
	}
}

func TestRouter_SwaggerSpecServedWhenEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.SwaggerEnabled = true
	r := newTestRouterWithConfig(t, cfg)

	w := doJSON(r, http.MethodGet, "/swagger/doc.json", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("doc.json: %d body=%s", w.Code, w.Body.String())
	}
	var spec struct {
		Swagger  string         `json:"swagger"`
		BasePath string         `json:"basePath"`
		Paths    map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &spec); err != nil {
		t.Fatalf("doc.json is not JSON: %v", err)
	}
	if spec.Swagger != "2.0" || spec.BasePath != "/api/v1" {
		t.Fatalf("unexpected spec header: swagger=%q basePath=%q", spec.Swagger, spec.BasePath)
	}
	for _, p := range []string{"/account", "/auth/login", "/hacker/resume/{id}", "/team/{id}"} {
		if _, ok := spec.Paths[p]; !ok {
			t.Fatalf("spec missing path %s", p)
		}
	}

	// Disabled by default: the route is not mounted.
	off := newTestRouter(t)
	if w := doJSON(off, http.MethodGet, "/swagger/doc.json", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("doc.json with swagger disabled: %d", w.Code)
	}
}

func TestGroupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := groupWithPrefix(r, "/")
	g.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doJSON(r, http.MethodGet, "/x", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("root-mounted group: %d", w.Code)
	}
}
