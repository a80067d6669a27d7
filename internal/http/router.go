// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, compression, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/hackhub/hackathon-backend/docs" // generated swagger spec
	"github.com/hackhub/hackathon-backend/internal/auth"
	"github.com/hackhub/hackathon-backend/internal/config"
	"github.com/hackhub/hackathon-backend/internal/email"
	"github.com/hackhub/hackathon-backend/internal/http/handlers"
	"github.com/hackhub/hackathon-backend/internal/http/middleware"
	"github.com/hackhub/hackathon-backend/internal/services"
)

// Deps bundles the externally constructed collaborators the router needs.
// The database and config are mandatory; Presigner and Mailer may be nil, in
// which case resume transfers degrade to errors and confirmation emails are
// logged instead of sent.
type Deps struct {
	DB        *gorm.DB
	Tokens    *auth.TokenManager
	Mailer    email.Mailer
	Presigner services.ResumePresigner
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, health and metrics endpoints, and then mounts the
// versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per account/IP)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	db := deps.DB

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction. Resumes and account payloads are
	// dense with PII, so the scrubbing logger is the default, not an option.
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB). Resume bytes never transit this
	// server (presigned URLs), so a small cap is safe.
	r.Use(limitBody(1 << 20))

	// 6) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per account/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByAccountOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS). Login
	// responses embed bearer tokens and resume responses embed presigned URLs,
	// so those prefixes are forced to no-store.
	secBase := strings.TrimSuffix(cfg.APIBasePath, "/")
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		NoStorePaths: []string{secBase + "/auth", secBase + "/hacker/resume"},
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (dev/staging only)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← db and external collaborators
	accountSvc := services.NewAccountService(db, deps.Tokens, deps.Mailer, cfg.Auth.ConfirmTTL)
	hackerSvc := &services.HackerService{DB: db}
	sponsorSvc := &services.SponsorService{DB: db}
	volunteerSvc := &services.VolunteerService{DB: db}
	teamSvc := &services.TeamService{DB: db}
	resumeSvc := &services.ResumeService{DB: db, Presigner: deps.Presigner}

	h := handlers.New(accountSvc, hackerSvc, sponsorSvc, volunteerSvc, teamSvc, resumeSvc)

	authn := middleware.Authenticate(deps.Tokens)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Credentials (no bearer token required)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/confirm/:token", h.ConfirmAccount)

		// Accounts
		api.POST("/account", h.CreateAccount) // open: account self-registration
		api.GET("/account/self", authn, h.GetSelf)
		api.GET("/account/:id", authn,
			middleware.Authorize(db, middleware.AccountOwner), h.GetAccount)
		api.PATCH("/account/:id", authn,
			middleware.Authorize(db, middleware.AccountOwner), h.UpdateAccount)
		api.PATCH("/account/confirmation/:id", authn,
			middleware.RequireAdmin(db), h.UpdateConfirmation)

		// Hackers
		api.POST("/hacker", authn, middleware.Authorize(db), h.CreateHacker)
		api.GET("/hacker/:id", authn,
			middleware.Authorize(db, middleware.HackerOwner), h.GetHacker)
		api.PATCH("/hacker/:id", authn,
			middleware.Authorize(db, middleware.HackerOwner), h.UpdateHacker)
		api.POST("/hacker/resume/:id", authn,
			middleware.Authorize(db, middleware.HackerOwner), h.UploadResume)
		api.GET("/hacker/resume/:id", authn,
			middleware.Authorize(db, middleware.HackerOwner), h.DownloadResume)

		// Sponsors
		api.POST("/sponsor", authn, middleware.Authorize(db), h.CreateSponsor)
		api.GET("/sponsor/:id", authn,
			middleware.Authorize(db, middleware.SponsorOwner), h.GetSponsor)

		// Volunteers
		api.POST("/volunteer", authn, middleware.Authorize(db), h.CreateVolunteer)
		api.GET("/volunteer/:id", authn,
			middleware.Authorize(db, middleware.VolunteerOwner), h.GetVolunteer)

		// Teams
		api.GET("/team/:id", authn, middleware.Authorize(db), h.GetTeam)
		api.POST("/team", authn, middleware.Authorize(db), h.CreateTeam)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
