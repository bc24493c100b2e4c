package routes_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"referral-network-api/config"
	"referral-network-api/internal/api/handlers"
	"referral-network-api/internal/api/middleware"
	"referral-network-api/internal/api/routes"
	"referral-network-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "routes-secret"

type stubProfiles map[uuid.UUID]models.Role

func (s stubProfiles) GetProfile(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	role, ok := s[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &models.Profile{ID: id, Role: role}, nil
}

func generateTestToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := &jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// setupRouter registers every API resource with real middleware. Handlers
// get nil services, so only requests stopped before the service are safe.
func setupRouter(profiles stubProfiles) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	validate := validator.New()

	verifier := middleware.NewSessionVerifier(config.AuthConfig{JWTSecret: testSecret})
	authMiddleware := middleware.JWTAuthMiddleware(verifier)
	gate := func(caps ...models.Capability) gin.HandlerFunc {
		return middleware.RequireCapability(profiles, caps...)
	}

	routes.RegisterProfileRoutes(api, handlers.NewProfileHandler(nil, validate), authMiddleware)
	routes.RegisterDevRoutes(api, handlers.NewDevHandler(nil, validate), authMiddleware)
	routes.RegisterJobRoutes(api, handlers.NewJobHandler(nil, validate), authMiddleware, gate)
	routes.RegisterReferralRoutes(api, handlers.NewReferralHandler(nil, validate), authMiddleware, gate)
	routes.RegisterAIRoutes(api, handlers.NewAIHandler(nil, nil, validate), authMiddleware, gate)
	routes.RegisterStorageRoutes(api, handlers.NewResumeHandler(nil, validate), authMiddleware, gate)
	routes.RegisterDashboardRoutes(api, handlers.NewDashboardHandler(nil), authMiddleware, gate)
	routes.RegisterRealtimeRoutes(api, handlers.NewRealtimeHandler(nil), authMiddleware)
	routes.RegisterPageRoutes(router, handlers.NewDashboardHandler(nil), handlers.NewProfileHandler(nil, validate), routes.PageGates{
		Auth: func() gin.HandlerFunc { return middleware.RequireAuth(verifier) },
		Role: func(redirectPath string, roles ...models.Role) gin.HandlerFunc {
			return middleware.RequireRole(verifier, profiles, redirectPath, roles...)
		},
	})
	return router
}

func TestRegisterRoutes(t *testing.T) {
	router := setupRouter(stubProfiles{})

	expectedRoutes := []struct {
		Method string
		Path   string
	}{
		{http.MethodGet, "/api/profile"},
		{http.MethodPost, "/api/profile"},
		{http.MethodPatch, "/api/profile"},
		{http.MethodPost, "/api/dev/role"},
		{http.MethodPost, "/api/dev/test-users"},
		{http.MethodPost, "/api/jobs"},
		{http.MethodGet, "/api/jobs"},
		{http.MethodGet, "/api/jobs/:id"},
		{http.MethodPatch, "/api/jobs/:id"},
		{http.MethodGet, "/api/jobs/:id/changes"},
		{http.MethodPost, "/api/referrals"},
		{http.MethodGet, "/api/referrals"},
		{http.MethodPost, "/api/ai/match"},
		{http.MethodGet, "/api/ai/match"},
		{http.MethodPost, "/api/ai/suggestions"},
		{http.MethodGet, "/api/ai/suggestions"},
		{http.MethodPatch, "/api/ai/suggestions/:id"},
		{http.MethodPost, "/api/storage/resumes"},
		{http.MethodPut, "/api/storage/resumes/upload"},
		{http.MethodGet, "/api/dashboard"},
		{http.MethodGet, "/api/ws"},
		{http.MethodGet, "/profile"},
		{http.MethodGet, "/dashboard"},
		{http.MethodGet, "/dashboard/client"},
		{http.MethodGet, "/dashboard/network"},
		{http.MethodGet, "/dashboard/candidate"},
	}

	registeredRoutes := router.Routes()
	registeredMap := make(map[string]bool)
	for _, routeInfo := range registeredRoutes {
		registeredMap[routeInfo.Method+" "+routeInfo.Path] = true
	}

	assert.Len(t, registeredRoutes, len(expectedRoutes), "Number of registered routes should match expected")
	for _, expected := range expectedRoutes {
		assert.True(t, registeredMap[expected.Method+" "+expected.Path], "Expected route %s %s to be registered", expected.Method, expected.Path)
	}
}

func TestRouteGates(t *testing.T) {
	candidate, founding := uuid.New(), uuid.New()
	router := setupRouter(stubProfiles{candidate: models.RoleCandidate, founding: models.RoleFoundingCircle})

	tests := []struct {
		name     string
		method   string
		path     string
		user     *uuid.UUID
		wantCode int
	}{
		{"Jobs need a session", http.MethodPost, "/api/jobs", nil, http.StatusUnauthorized},
		{"Candidates cannot post jobs", http.MethodPost, "/api/jobs", &candidate, http.StatusForbidden},
		{"Network members cannot post jobs", http.MethodPost, "/api/jobs", &founding, http.StatusForbidden},
		{"Candidates cannot refer", http.MethodPost, "/api/referrals", &candidate, http.StatusForbidden},
		{"Candidates cannot run matching", http.MethodPost, "/api/ai/match", &candidate, http.StatusForbidden},
		{"Dashboard needs a session", http.MethodGet, "/api/dashboard", nil, http.StatusUnauthorized},
		{"Websocket needs a session", http.MethodGet, "/api/ws", nil, http.StatusUnauthorized},
		{"Upload is token authorized", http.MethodPut, "/api/storage/resumes/upload", nil, http.StatusForbidden},
		{"Network page rejects candidates", http.MethodGet, "/dashboard/network", &candidate, http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request, _ := http.NewRequest(tt.method, tt.path, nil)
			if tt.user != nil {
				request.Header.Set("Authorization", "Bearer "+generateTestToken(t, *tt.user))
			}
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}
