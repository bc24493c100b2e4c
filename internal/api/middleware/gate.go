package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"referral-network-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	roleCtx = "userRole"

	LoginPath           = "/login"
	DefaultRedirectPath = "/"
)

// ProfileLoader reads the caller's profile; services.ProfileService satisfies it.
type ProfileLoader interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// GetRoleFromContext returns the role placed on the context by a gate.
func GetRoleFromContext(c *gin.Context) (models.Role, error) {
	v, ok := c.Get(roleCtx)
	if !ok {
		return "", errors.New("role not found in context")
	}
	role, ok := v.(models.Role)
	if !ok {
		return "", errors.New("role in context is of invalid type")
	}
	return role, nil
}

// loadRole resolves the caller's role. Any failure, including a missing
// profile, is reported the same way.
func loadRole(c *gin.Context, loader ProfileLoader, userID uuid.UUID) (models.Role, bool) {
	p, err := loader.GetProfile(c.Request.Context(), userID)
	if err != nil || p == nil {
		log.Printf("Gate: no usable profile for %s: %v", userID, err)
		return "", false
	}
	return p.Role, true
}

// RequireCapability admits API callers whose role grants any of caps and
// answers 403 otherwise. It must run after JWTAuthMiddleware.
func RequireCapability(loader ProfileLoader, caps ...models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := GetUserIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		role, ok := loadRole(c, loader, userID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		for _, cp := range caps {
			if role.Can(cp) {
				c.Set(roleCtx, role)
				c.Next()
				return
			}
		}
		log.Printf("Gate: %s (%s) lacks %v", userID, role, caps)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}

// RequireAuth gates page routes: no session redirects to the login page.
func RequireAuth(verifier *SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := verifier.FromRequest(c.Request)
		if err != nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		setSession(c, session)
		c.Next()
	}
}

// RequireRole gates page routes by role. No session redirects to the login
// page; a missing profile, lookup error or disallowed role redirects to
// redirectPath ("/" when empty). On success user and role are on the context.
func RequireRole(verifier *SessionVerifier, loader ProfileLoader, redirectPath string, roles ...models.Role) gin.HandlerFunc {
	if redirectPath == "" {
		redirectPath = DefaultRedirectPath
	}
	return func(c *gin.Context) {
		session, err := verifier.FromRequest(c.Request)
		if err != nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		setSession(c, session)

		role, ok := loadRole(c, loader, session.UserID)
		if ok {
			for _, r := range roles {
				if r == role {
					c.Set(roleCtx, role)
					c.Next()
					return
				}
			}
		}
		c.Redirect(http.StatusFound, redirectPath)
		c.Abort()
	}
}
