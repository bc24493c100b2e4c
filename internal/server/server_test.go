package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"referral-network-api/config"
	"referral-network-api/internal/ai"
	"referral-network-api/internal/app"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T, origins ...string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, Environment: "test"},
		CORS:   config.CORSConfig{AllowedOrigins: origins},
		Auth:   config.AuthConfig{JWTSecret: "test-secret", CookieName: "sb-access-token"},
	}
	application := app.New(cfg, nil, nil, ai.Disabled(ai.ErrModelUnavailable), nil, nil)
	return NewServer(application)
}

func TestServer_HealthCarriesRequestID(t *testing.T) {
	srv := newTestServer(t, "http://localhost:3000")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_CORS(t *testing.T) {
	srv := newTestServer(t, "http://localhost:3000")

	preflight := func(origin string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		srv.Handler().ServeHTTP(rec, req)
		return rec
	}

	allowed := preflight("http://localhost:3000")
	assert.Equal(t, http.StatusNoContent, allowed.Code)
	assert.Equal(t, "http://localhost:3000", allowed.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", allowed.Header().Get("Access-Control-Allow-Credentials"))

	denied := preflight("https://evil.example")
	assert.Equal(t, http.StatusForbidden, denied.Code)
}

func TestServer_APIRequiresSession(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAllowOrigin(t *testing.T) {
	assert.True(t, allowOrigin([]string{"*"})("https://any.example"))
	assert.False(t, allowOrigin(nil)("https://any.example"))
}
