package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nnmag/storefront/internal/domain/dto"
	"github.com/nnmag/storefront/internal/logger"
)

// Recovery traps handler panics and answers with a JSON 500. The panic
// value is logged together with the request ID, which is echoed back in
// the error envelope so the incident can be matched to the logs.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(c)
				log := logger.Logger()
				log.Error().
					Str("request_id", requestID).
					Interface("panic", err).
					Msg("PANIC recovered")

				errorResp := dto.NewError(dto.ErrCodeInternal, "An unexpected error occurred").
					WithRequestID(requestID)
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorResp)
			}
		}()
		c.Next()
	}
}
