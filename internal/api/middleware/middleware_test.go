package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"referral-network-api/config"
	"referral-network-api/internal/api/middleware"
	"referral-network-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var testAuth = config.AuthConfig{JWTSecret: testSecret, JWTAudience: "authenticated", CookieName: "sb-access-token"}

type testClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func generateTestToken(t *testing.T, userID uuid.UUID, secret string, expiration time.Duration) string {
	t.Helper()
	claims := &testClaims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

type stubProfiles map[uuid.UUID]models.Role

func (s stubProfiles) GetProfile(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	role, ok := s[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &models.Profile{ID: id, Role: role}, nil
}

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier := middleware.NewSessionVerifier(testAuth)
	router := gin.New()
	router.GET("/me", middleware.JWTAuthMiddleware(verifier), func(c *gin.Context) {
		id, err := middleware.GetUserIDFromContext(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"id": id, "email": middleware.GetEmailFromContext(c)})
	})
	userID := uuid.New()

	tests := []struct {
		name     string
		setup    func(r *http.Request)
		wantCode int
	}{
		{"Bearer header", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+generateTestToken(t, userID, testSecret, time.Hour))
		}, http.StatusOK},
		{"Session cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "sb-access-token", Value: generateTestToken(t, userID, testSecret, time.Hour)})
		}, http.StatusOK},
		{"No credentials", func(r *http.Request) {}, http.StatusUnauthorized},
		{"Malformed header", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }, http.StatusUnauthorized},
		{"Wrong secret", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+generateTestToken(t, userID, "other", time.Hour))
		}, http.StatusUnauthorized},
		{"Expired", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+generateTestToken(t, userID, testSecret, -time.Minute))
		}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request, _ := http.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(request)
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			if tt.wantCode == http.StatusOK {
				assert.Contains(t, recorder.Body.String(), userID.String())
				assert.Contains(t, recorder.Body.String(), "user@example.com")
			} else {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, recorder.Body.String())
			}
		})
	}
}

func TestRequireCapability(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier := middleware.NewSessionVerifier(testAuth)
	client, candidate, orphan := uuid.New(), uuid.New(), uuid.New()
	profiles := stubProfiles{client: models.RoleClient, candidate: models.RoleCandidate}

	router := gin.New()
	router.POST("/jobs",
		middleware.JWTAuthMiddleware(verifier),
		middleware.RequireCapability(profiles, models.CapPostJobs),
		func(c *gin.Context) {
			role, err := middleware.GetRoleFromContext(c)
			require.NoError(t, err)
			c.JSON(http.StatusOK, gin.H{"role": role})
		})

	do := func(id uuid.UUID) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/jobs", nil)
		request.Header.Set("Authorization", "Bearer "+generateTestToken(t, id, testSecret, time.Hour))
		router.ServeHTTP(recorder, request)
		return recorder
	}

	t.Run("Allowed role", func(t *testing.T) {
		rec := do(client)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "client")
	})
	t.Run("Role without capability", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(candidate).Code)
	})
	t.Run("Missing profile", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(orphan).Code)
	})
}

func TestPageGates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier := middleware.NewSessionVerifier(testAuth)
	referrer, client, orphan := uuid.New(), uuid.New(), uuid.New()
	profiles := stubProfiles{referrer: models.RoleSelectCircle, client: models.RoleClient}

	router := gin.New()
	router.GET("/home", middleware.RequireAuth(verifier), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/refer",
		middleware.RequireRole(verifier, profiles, "", models.RoleFoundingCircle, models.RoleSelectCircle),
		func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/post",
		middleware.RequireRole(verifier, profiles, "/dashboard", models.RoleClient),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(path string, id *uuid.UUID) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, path, nil)
		if id != nil {
			request.AddCookie(&http.Cookie{Name: "sb-access-token", Value: generateTestToken(t, *id, testSecret, time.Hour)})
		}
		router.ServeHTTP(recorder, request)
		return recorder
	}

	tests := []struct {
		name     string
		path     string
		user     *uuid.UUID
		wantCode int
		wantLoc  string
	}{
		{"No session to login", "/home", nil, http.StatusFound, "/login"},
		{"Session passes", "/home", &orphan, http.StatusOK, ""},
		{"Role gate without session", "/refer", nil, http.StatusFound, "/login"},
		{"Allowed role", "/refer", &referrer, http.StatusOK, ""},
		{"Disallowed role to default", "/refer", &client, http.StatusFound, "/"},
		{"Missing profile to default", "/refer", &orphan, http.StatusFound, "/"},
		{"Custom redirect", "/post", &referrer, http.StatusFound, "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(tt.path, tt.user)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	t.Run("Generated when absent", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(recorder, request)

		_, err := uuid.Parse(recorder.Header().Get(middleware.RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("Incoming id echoed", func(t *testing.T) {
		id := uuid.NewString()
		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		request.Header.Set(middleware.RequestIDHeader, id)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, id, recorder.Header().Get(middleware.RequestIDHeader))
	})
}
