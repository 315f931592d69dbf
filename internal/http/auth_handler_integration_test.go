//go:build integration

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/domain/dto"
	"github.com/nnmag/storefront/internal/domain/model"
	"github.com/nnmag/storefront/internal/repository"
	"github.com/nnmag/storefront/internal/service"
)

// seedStaffUser creates an editorial staff account directly in the database,
// the way the seeding script does. There is no registration endpoint.
func seedStaffUser(t *testing.T, userRepo *repository.UserRepository, email, password, name string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &model.User{
		Email:    email,
		Username: email,
		Password: string(hash),
		Name:     name,
		Roles:    []string{"editor"},
		Active:   true,
	}
	require.NoError(t, userRepo.Create(context.Background(), user))
}

func setupAuthIntegrationRouter(t *testing.T, dbName string) (*gin.Engine, *repository.UserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uri := getSharedContainerURI()
	db, err := repository.NewMongoDB(uri, dbName)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close(context.Background())
	})

	userRepo := repository.NewUserRepository(db.Database)
	tokenRepo := repository.NewTokenRepository(db.Database)

	authConfig := config.AuthConfig{
		JWTSecretKey:     "test-secret-key",
		JWTRefreshSecret: "test-refresh-secret-key",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
	}
	authService := service.NewAuthService(userRepo, tokenRepo, authConfig)

	cfg := RouterConfig{
		RateLimit:   100,
		RateWindow:  time.Minute,
		AuthService: authService,
	}

	return NewRouter(NewHealthHandler(), cfg), userRepo
}

func loginAs(t *testing.T, router *gin.Engine, email, password string) dto.LoginResponse {
	t.Helper()

	loginBody := dto.LoginRequest{Email: email, Password: password}
	bodyBytes, _ := json.Marshal(loginBody)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "login should succeed: %s", w.Body.String())

	var response dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	dataBytes, _ := json.Marshal(response.Data)
	var loginResponse dto.LoginResponse
	require.NoError(t, json.Unmarshal(dataBytes, &loginResponse))
	return loginResponse
}

func TestAuthHandler_Login_Integration(t *testing.T) {
	t.Parallel()

	t.Run("seeded staff member can log in", func(t *testing.T) {
		dbName := sanitizeDBNameForHTTP(t.Name())
		router, userRepo := setupAuthIntegrationRouter(t, dbName)
		seedStaffUser(t, userRepo, "editor@example.com", "password123", "Editor")

		loginResponse := loginAs(t, router, "editor@example.com", "password123")
		assert.NotEmpty(t, loginResponse.Token)
		assert.NotEmpty(t, loginResponse.RefreshToken)
		assert.Equal(t, "editor@example.com", loginResponse.User.Email)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		dbName := sanitizeDBNameForHTTP(t.Name())
		router, userRepo := setupAuthIntegrationRouter(t, dbName)
		seedStaffUser(t, userRepo, "editor@example.com", "password123", "Editor")

		loginBody := dto.LoginRequest{
			Email:    "editor@example.com",
			Password: "wrongpassword",
		}
		bodyBytes, _ := json.Marshal(loginBody)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("login with unknown account", func(t *testing.T) {
		dbName := sanitizeDBNameForHTTP(t.Name())
		router, _ := setupAuthIntegrationRouter(t, dbName)

		loginBody := dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		}
		bodyBytes, _ := json.Marshal(loginBody)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no registration endpoint", func(t *testing.T) {
		dbName := sanitizeDBNameForHTTP(t.Name())
		router, _ := setupAuthIntegrationRouter(t, dbName)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthHandler_RefreshToken_Integration(t *testing.T) {
	t.Parallel()

	t.Run("successful token refresh", func(t *testing.T) {
		dbName := sanitizeDBNameForHTTP(t.Name())
		router, userRepo := setupAuthIntegrationRouter(t, dbName)
		seedStaffUser(t, userRepo, "refresh@example.com", "password123", "Refresh Test")

		loginResponse := loginAs(t, router, "refresh@example.com", "password123")

		// Wait for at least 1 second to ensure JWT timestamps differ
		time.Sleep(time.Second)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Refresh-Token", loginResponse.RefreshToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var refreshResponse dto.SuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refreshResponse))

		dataBytes, _ := json.Marshal(refreshResponse.Data)
		var newTokenPair dto.LoginResponse
		require.NoError(t, json.Unmarshal(dataBytes, &newTokenPair))
		assert.NotEmpty(t, newTokenPair.Token)
		assert.NotEmpty(t, newTokenPair.RefreshToken)
		assert.NotEqual(t, loginResponse.Token, newTokenPair.Token)
	})

	t.Run("refresh with invalid token", func(t *testing.T) {
		dbName := sanitizeDBNameForHTTP(t.Name())
		router, _ := setupAuthIntegrationRouter(t, dbName)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Refresh-Token", "invalid-refresh-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Logout_Integration(t *testing.T) {
	t.Parallel()

	t.Run("successful logout", func(t *testing.T) {
		dbName := sanitizeDBNameForHTTP(t.Name())
		router, userRepo := setupAuthIntegrationRouter(t, dbName)
		seedStaffUser(t, userRepo, "logout@example.com", "password123", "Logout Test")

		loginResponse := loginAs(t, router, "logout@example.com", "password123")

		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+loginResponse.Token)
		req.Header.Set("X-Refresh-Token", loginResponse.RefreshToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("refresh is rejected after logout", func(t *testing.T) {
		dbName := sanitizeDBNameForHTTP(t.Name())
		router, userRepo := setupAuthIntegrationRouter(t, dbName)
		seedStaffUser(t, userRepo, "logout2@example.com", "password123", "Logout Test")

		loginResponse := loginAs(t, router, "logout2@example.com", "password123")

		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+loginResponse.Token)
		req.Header.Set("X-Refresh-Token", loginResponse.RefreshToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		req.Header.Set("X-Refresh-Token", loginResponse.RefreshToken)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
