package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"referral-network-api/config"
	"referral-network-api/internal/api/handlers"
	"referral-network-api/internal/api/middleware"
	"referral-network-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-secret"

type staticProfile struct {
	id   uuid.UUID
	role models.Role
}

func (s staticProfile) GetProfile(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	if id != s.id {
		return nil, errors.New("not found")
	}
	return &models.Profile{ID: id, Role: s.role}, nil
}

// testEnv routes requests through the real session and capability
// middleware for a single signed-in user.
type testEnv struct {
	router   *gin.Engine
	userID   uuid.UUID
	token    string
	validate *validator.Validate
}

func newTestEnv(t *testing.T, role models.Role) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	verifier := middleware.NewSessionVerifier(config.AuthConfig{JWTSecret: testSecret})
	router := gin.New()
	router.Use(
		middleware.JWTAuthMiddleware(verifier),
		middleware.RequireCapability(staticProfile{id: userID, role: role}, models.CapViewDashboard),
	)
	return &testEnv{router: router, userID: userID, token: token, validate: validator.New()}
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	var request *http.Request
	if body == "" {
		request, _ = http.NewRequest(method, target, nil)
	} else {
		request, _ = http.NewRequest(method, target, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Authorization", "Bearer "+e.token)
	e.router.ServeHTTP(recorder, request)
	return recorder
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", handlers.HealthCheck)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReadiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"Database up", nil, http.StatusOK},
		{"Database down", errors.New("connection refused"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/ready", handlers.Readiness(pingerFunc(func(context.Context) error { return tt.err })))

			recorder := httptest.NewRecorder()
			request, _ := http.NewRequest(http.MethodGet, "/ready", nil)
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	type sample struct {
		Email  string `validate:"required,email"`
		Status string `validate:"oneof=a b"`
		Link   string `validate:"omitempty,url"`
	}
	err := validator.New().Struct(sample{Email: "nope", Status: "c", Link: "not a url"})
	require.Error(t, err)

	details := handlers.FormatValidationErrors(err)

	assert.Equal(t, "Field 'Email' must be a valid email address", details["Email"])
	assert.Equal(t, "Field 'Status' must be one of: a b", details["Status"])
	assert.Equal(t, "Field 'Link' must be a valid URL", details["Link"])
	assert.Equal(t, map[string]string{"error": "Invalid validation error type"}, handlers.FormatValidationErrors(errors.New("x")))
}
