package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nnmag/storefront/internal/domain/dto"
	"github.com/nnmag/storefront/internal/i18n"
	"github.com/nnmag/storefront/internal/service"
)

// AuthHandler provides HTTP handlers for authentication routes.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Login user
// @Description  Authenticates an editorial staff member and returns a JWT token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.LoginResponse "Successful login"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)
	locale := i18n.GetLocale(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := req.Validate(); err != nil {
		if validationErr, ok := err.(*dto.ValidationError); ok {
			message := "validation error: " + validationErr.Message
			builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New(message))
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	tokenPair, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidCredentials, locale)
			builder.Error(http.StatusUnauthorized, dto.ErrCodeUnauthorized, errors.New(message))
		} else {
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	c.Set("user_id", user.ID)
	c.Set("user_email", user.Email)

	response := dto.LoginResponse{
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User: dto.UserResponse{
			Email: user.Email,
			Name:  user.Name,
		},
	}
	builder.SuccessOK(response)
}

// RefreshToken handles POST /api/auth/refresh requests.
//
// @Summary      Refresh access token
// @Description  Generates a new access token using a refresh token. Refresh token is extracted from X-Refresh-Token header.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.LoginResponse "Successful token refresh"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid refresh token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	builder := NewResponseBuilder(c)
	locale := i18n.GetLocale(c)

	// Extract refresh token from X-Refresh-Token header
	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New("X-Refresh-Token header is required"))
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		if err == service.ErrInvalidToken {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidToken, locale)
			builder.Error(http.StatusUnauthorized, dto.ErrCodeUnauthorized, errors.New(message))
		} else {
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	response := dto.LoginResponse{
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
	}
	builder.SuccessOK(response)
}

// Logout handles POST /api/auth/logout requests.
//
// @Summary      Logout user
// @Description  Invalidates access and refresh tokens. Access token is extracted from Authorization header, refresh token from X-Refresh-Token header.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization header string true "Bearer token" default(Bearer )
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.SuccessResponse "Successful logout"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	// Extract access token from Authorization header (already validated by JWTAuth middleware)
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		builder.Error(http.StatusUnauthorized, dto.ErrCodeUnauthorized, errors.New("authorization header required"))
		return
	}

	// Extract token from "Bearer <token>"
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		builder.Error(http.StatusUnauthorized, dto.ErrCodeUnauthorized, errors.New("invalid authorization header format"))
		return
	}

	accessToken := strings.TrimPrefix(authHeader, bearerPrefix)
	if accessToken == "" {
		builder.Error(http.StatusUnauthorized, dto.ErrCodeUnauthorized, errors.New("access token required"))
		return
	}

	// Extract refresh token from X-Refresh-Token header
	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New("X-Refresh-Token header is required"))
		return
	}

	err := h.authService.Logout(c.Request.Context(), accessToken, refreshToken)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(map[string]string{"message": "Logged out successfully"})
}
