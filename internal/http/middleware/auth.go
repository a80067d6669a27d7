// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the authentication and authorization gates in front
// of every protected route, executed in order:
//
//  1. Authenticate: requires a valid bearer token; on failure the chain halts
//     with 401 "Not Authenticated".
//  2. Authorize: given zero or more owner resolvers for the `:id` route
//     parameter, passes when the authenticated account either holds the admin
//     permission or owns the resolved resource. Fails closed: a resolver
//     returning no match, or an identity with neither condition, yields 401
//     "Not Authorized for this route".
//
// The check is a flat capability test (admin OR owner), not role inheritance.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hackhub/hackathon-backend/internal/domain"
	"github.com/hackhub/hackathon-backend/internal/repo"
)

const (
	// accountIDKey is the Gin context key under which the authenticated
	// account id is stored.
	accountIDKey = "accountID"
	// bearerPrefix is the expected Authorization scheme.
	bearerPrefix = "Bearer "

	// codeUnauthorized and the two messages below are the only failure
	// vocabulary the auth gates emit. They mirror the handlers catalog, which
	// middleware cannot import (handlers depends on this package).
	codeUnauthorized    = "unauthorized"
	msgNotAuthenticated = "Not Authenticated"
	msgNotAuthorized    = "Not Authorized for this route"
)

// TokenVerifier validates a presented bearer token and returns the account id
// it was issued for. *auth.TokenManager satisfies this.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// OwnerResolver maps a resource id from the route to the account id that
// owns the resource. Implementations live next to the repositories, e.g.
// "the hacker with this id is owned by account X".
type OwnerResolver func(ctx context.Context, db *gorm.DB, resourceID string) (string, error)

// AccountIDFrom returns the authenticated account id stored by Authenticate,
// or "" when the request is anonymous.
func AccountIDFrom(c *gin.Context) string {
	if v, ok := c.Get(accountIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// authFail writes the standard `{message, data}` failure envelope. The
// handlers package owns the richer helper; middleware keeps its own minimal
// copy to avoid an import cycle.
func authFail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       code,
		"message":    msg,
		"data":       gin.H{},
	})
}

// Authenticate requires a valid "Authorization: Bearer <token>" header. On
// success the account id is stored in the Gin context for downstream
// middleware and handlers; on failure the chain stops with 401.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			authFail(c, http.StatusUnauthorized, codeUnauthorized, msgNotAuthenticated)
			return
		}
		accountID, err := verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			authFail(c, http.StatusUnauthorized, codeUnauthorized, msgNotAuthenticated)
			return
		}
		c.Set(accountIDKey, accountID)
		c.Next()
	}
}

// Authorize gates a route behind the admin-or-owner predicate.
//
// With no resolvers the route targets the caller's own resources and any
// authenticated account passes. With resolvers, the account must hold the
// admin permission, or one of the resolvers must map the `:id` parameter to
// the caller's own account id. Resolver misses fail closed.
func Authorize(db *gorm.DB, resolvers ...OwnerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := AccountIDFrom(c)
		if accountID == "" {
			authFail(c, http.StatusUnauthorized, codeUnauthorized, msgNotAuthenticated)
			return
		}
		if len(resolvers) == 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		isAdmin, err := repo.HasPermission(ctx, db, accountID, domain.PermissionAdmin)
		if err == nil && isAdmin {
			c.Next()
			return
		}

		resourceID := c.Param("id")
		for _, resolve := range resolvers {
			owner, err := resolve(ctx, db, resourceID)
			if err != nil {
				continue
			}
			if owner == accountID {
				c.Next()
				return
			}
		}
		authFail(c, http.StatusUnauthorized, codeUnauthorized, msgNotAuthorized)
	}
}

// AccountOwner resolves an account route: the account is its own owner.
func AccountOwner(ctx context.Context, db *gorm.DB, resourceID string) (string, error) {
	acc, err := repo.GetAccount(ctx, db, resourceID)
	if err != nil {
		return "", err
	}
	return acc.ID, nil
}

// HackerOwner resolves a hacker route to the owning account.
func HackerOwner(ctx context.Context, db *gorm.DB, resourceID string) (string, error) {
	h, err := repo.GetHacker(ctx, db, resourceID)
	if err != nil {
		return "", err
	}
	return h.AccountID, nil
}

// SponsorOwner resolves a sponsor route to the owning account.
func SponsorOwner(ctx context.Context, db *gorm.DB, resourceID string) (string, error) {
	s, err := repo.GetSponsor(ctx, db, resourceID)
	if err != nil {
		return "", err
	}
	return s.AccountID, nil
}

// VolunteerOwner resolves a volunteer route to the owning account.
func VolunteerOwner(ctx context.Context, db *gorm.DB, resourceID string) (string, error) {
	v, err := repo.GetVolunteer(ctx, db, resourceID)
	if err != nil {
		return "", err
	}
	return v.AccountID, nil
}

// RequireAdmin passes only accounts holding the admin permission. Used for
// administrative routes such as the confirmation override.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := AccountIDFrom(c)
		if accountID == "" {
			authFail(c, http.StatusUnauthorized, codeUnauthorized, msgNotAuthenticated)
			return
		}
		isAdmin, err := repo.HasPermission(c.Request.Context(), db, accountID, domain.PermissionAdmin)
		if err != nil || !isAdmin {
			authFail(c, http.StatusUnauthorized, codeUnauthorized, msgNotAuthorized)
			return
		}
		c.Next()
	}
}
