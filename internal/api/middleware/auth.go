// internal/api/middleware/auth.go
package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"referral-network-api/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid" // For parsing UUID from claim
)

const (
	authorizationHeader = "Authorization"
	userCtx             = "userID" // Key to store user ID in context
	emailCtx            = "userEmail"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
)

// sessionClaims are the identity provider's access token claims we rely on.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Session is a verified caller identity.
type Session struct {
	UserID uuid.UUID
	Email  string
}

// SessionVerifier checks identity-provider access tokens. Tokens are HS256
// signed with the project secret; issuance happens elsewhere.
type SessionVerifier struct {
	secret     []byte
	cookieName string
	parser     *jwt.Parser
}

// NewSessionVerifier builds a verifier from the auth settings.
func NewSessionVerifier(cfg config.AuthConfig) *SessionVerifier {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.JWTAudience != "" {
		opts = append(opts, jwt.WithAudience(cfg.JWTAudience))
	}
	return &SessionVerifier{
		secret:     []byte(cfg.JWTSecret),
		cookieName: cfg.CookieName,
		parser:     jwt.NewParser(opts...),
	}
}

// tokenFromRequest prefers the Authorization header and falls back to the session cookie.
func (v *SessionVerifier) tokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get(authorizationHeader); authHeader != "" {
		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			return "", fmt.Errorf("%w: malformed Authorization header", ErrInvalidSession)
		}
		return headerParts[1], nil
	}
	if v.cookieName != "" {
		if cookie, err := r.Cookie(v.cookieName); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", ErrNoSession
}

// Verify parses and validates a token string.
func (v *SessionVerifier) Verify(tokenString string) (*Session, error) {
	claims := &sessionClaims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !token.Valid {
		return nil, ErrInvalidSession
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject %q is not a user id", ErrInvalidSession, claims.Subject)
	}
	return &Session{UserID: userID, Email: claims.Email}, nil
}

// FromRequest extracts and verifies the caller's session.
func (v *SessionVerifier) FromRequest(r *http.Request) (*Session, error) {
	tokenString, err := v.tokenFromRequest(r)
	if err != nil {
		return nil, err
	}
	return v.Verify(tokenString)
}

func setSession(c *gin.Context, s *Session) {
	c.Set(userCtx, s.UserID)
	c.Set(emailCtx, s.Email)
}

// JWTAuthMiddleware rejects requests without a valid session with 401.
func JWTAuthMiddleware(verifier *SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := verifier.FromRequest(c.Request)
		if err != nil {
			if !errors.Is(err, ErrNoSession) {
				log.Printf("Auth middleware: %v", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		setSession(c, session)
		c.Next() // Proceed to the next handler
	}
}

// Helper function to get user ID from context (optional but convenient)
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	userIDAny, exists := c.Get(userCtx)
	if !exists {
		return uuid.Nil, errors.New("user ID not found in context")
	}

	userID, ok := userIDAny.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user ID in context is of invalid type")
	}

	return userID, nil
}

// GetEmailFromContext returns the session email, or "" when absent.
func GetEmailFromContext(c *gin.Context) string {
	return c.GetString(emailCtx)
}
