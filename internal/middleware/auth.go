package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nnmag/storefront/internal/domain/dto"
	"github.com/nnmag/storefront/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header carrying the upload API key.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter fallback for the API key.
	APIKeyQuery = "api_key"
)

// APIKeyAuth protects the upload endpoint when staff JWT auth is not
// configured. The key comes from the X-API-Key header or, for tooling
// that cannot set headers, the api_key query parameter. An empty key set
// disables the check entirely.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		locale := i18n.GetLocale(c)
		requestID := GetRequestID(c)

		if key == "" {
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, i18n.GetTranslator().Translate(i18n.ErrKeyAPIKeyRequired, locale)).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
			return
		}

		if !validKeys[key] {
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, i18n.GetTranslator().Translate(i18n.ErrKeyInvalidAPIKey, locale)).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
			return
		}

		c.Next()
	}
}
