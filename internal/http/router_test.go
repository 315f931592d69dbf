package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nnmag/storefront/internal/mocks"
)

func TestNewRouter(t *testing.T) {
	healthHandler := NewHealthHandler()

	tests := []struct {
		name string
		cfg  RouterConfig
		test func(*testing.T, *gin.Engine)
	}{
		{
			name: "creates router with default config",
			cfg:  DefaultRouterConfig(),
			test: func(t *testing.T, router *gin.Engine) {
				assert.NotNil(t, router)
			},
		},
		{
			name: "creates router with API key uploads",
			cfg: RouterConfig{
				RateLimit:    100,
				RateWindow:   time.Minute,
				APIKeys:      map[string]bool{"test-key": true},
				IssueService: new(mocks.MockIssueService),
			},
			test: func(t *testing.T, router *gin.Engine) {
				assert.NotNil(t, router)
			},
		},
		{
			name: "creates router with auth service",
			cfg: RouterConfig{
				RateLimit:    100,
				RateWindow:   time.Minute,
				AuthService:  new(mocks.MockAuthService),
				IssueService: new(mocks.MockIssueService),
			},
			test: func(t *testing.T, router *gin.Engine) {
				assert.NotNil(t, router)
			},
		},
		{
			name: "creates router with rate limiting",
			cfg: RouterConfig{
				RateLimit:  5,
				RateWindow: time.Second,
			},
			test: func(t *testing.T, router *gin.Engine) {
				assert.NotNil(t, router)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(healthHandler, tt.cfg)
			if tt.test != nil {
				tt.test(t, router)
			}
		})
	}
}

func TestRouter_Endpoints(t *testing.T) {
	healthHandler := NewHealthHandler()
	cfg := DefaultRouterConfig()
	cfg.CheckoutService = new(mocks.MockCheckoutService)
	router := NewRouter(healthHandler, cfg)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "healthz endpoint",
			method:         http.MethodGet,
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "readyz endpoint",
			method:         http.MethodGet,
			path:           "/readyz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "metrics endpoint",
			method:         http.MethodGet,
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "swagger endpoint",
			method:         http.MethodGet,
			path:           "/swagger/index.html",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "request_checkout endpoint rejects an empty body",
			method:         http.MethodPost,
			path:           "/request_checkout",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_AuthRoutesRegistered(t *testing.T) {
	healthHandler := NewHealthHandler()
	cfg := DefaultRouterConfig()
	cfg.AuthService = new(mocks.MockAuthService)
	cfg.IssueService = new(mocks.MockIssueService)
	router := NewRouter(healthHandler, cfg)

	// Missing body, but the route exists and rejects it with 400 rather
	// than falling through to 404.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Upload requires a JWT when an auth service is configured.
	req = httptest.NewRequest(http.MethodPost, "/upload", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
