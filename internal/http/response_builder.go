package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nnmag/storefront/internal/domain/dto"
	"github.com/nnmag/storefront/internal/i18n"
	"github.com/nnmag/storefront/internal/middleware"
)

// Response envelopes are pooled; catalog polling from the frontend makes
// these the hottest allocations in the handler path.
var (
	successResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.SuccessResponse{}
		},
	}

	errorResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.ErrorResponse{}
		},
	}
)

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	resp.Data = nil
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	successResponsePool.Put(resp)
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	resp.Error = ""
	resp.Message = ""
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	resp.Details = nil
	resp.TraceID = ""
	errorResponsePool.Put(resp)
}

// ResponseBuilder writes the standard success and error envelopes,
// stamping each with the request ID and a timestamp.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends a success envelope with the given status and payload.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := getSuccessResponse()

	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// Gin serializes synchronously, so the envelope can go straight
	// back to the pool.
	b.c.JSON(statusCode, resp)
	putSuccessResponse(resp)
}

// SuccessOK sends a 200 OK envelope.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created envelope.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error aborts the request with a localized error envelope. The message
// key is translated for the request locale and err, when non-nil, is
// attached to the context for the logging middleware.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	locale := i18n.GetLocale(b.c)

	resp := getErrorResponse()

	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = i18n.GetTranslator().Translate(messageKey, locale)
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	putErrorResponse(resp)
}
