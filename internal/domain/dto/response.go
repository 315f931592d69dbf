package dto

import (
	"net/http"
	"time"
)

// Machine-readable error codes carried in the error envelope. Frontend
// clients branch on these rather than on HTTP status alone.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInternal       = "internal_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeForbidden      = "forbidden"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeConflict       = "conflict"
	ErrCodeTimeout        = "timeout"
)

// SuccessResponse is the envelope for auth and upload responses. Catalog
// and checkout reads return their payloads bare for frontend simplicity.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data is the endpoint-specific payload
	// Example: {"number": 12, "object_key": "issues/issue_12.pdf", "size_bytes": 10485760}
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the standard error envelope for every endpoint.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"quantity: must be a positive integer"`
	// Details carries optional field-level validation messages
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	TraceID   string            `json:"trace_id,omitempty" example:"trace-123"`
} // @name ErrorResponse

// NewError creates an ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeInternal
	}
}
