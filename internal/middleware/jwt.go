package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nnmag/storefront/internal/domain/dto"
	"github.com/nnmag/storefront/internal/i18n"
	"github.com/nnmag/storefront/internal/service"
)

// JWTAuth guards the staff-only endpoints, mainly issue uploads. It
// expects a bearer access token and leaves the validated claims on the
// context for downstream handlers and the per-user rate limiter.
func JWTAuth(authService service.AuthService) gin.HandlerFunc {
	unauthorized := func(c *gin.Context, key string) {
		locale := i18n.GetLocale(c)
		message := i18n.GetTranslator().Translate(key, locale)
		errorResp := dto.NewError(dto.ErrCodeUnauthorized, message).
			WithRequestID(GetRequestID(c))
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			unauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			unauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("user_roles", claims.Roles)
		c.Set("user_claims", claims)

		c.Next()
	}
}
