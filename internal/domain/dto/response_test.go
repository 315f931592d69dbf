package dto

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := NewError(ErrCodeInvalidRequest, "quantity: must be a positive integer")

	assert.Equal(t, ErrCodeInvalidRequest, err.Error)
	assert.Equal(t, "quantity: must be a positive integer", err.Message)
	assert.NotZero(t, err.Timestamp)
	assert.WithinDuration(t, time.Now(), err.Timestamp, time.Second)
}

func TestErrorResponse_WithRequestID(t *testing.T) {
	err := NewError(ErrCodeInternal, "storefront unavailable").WithRequestID("req-123")

	assert.Equal(t, "req-123", err.RequestID)
	assert.Equal(t, ErrCodeInternal, err.Error)
	assert.Equal(t, "storefront unavailable", err.Message)
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status       int
		expectedCode string
	}{
		{400, ErrCodeInvalidRequest},
		{401, ErrCodeUnauthorized},
		{403, ErrCodeForbidden},
		{404, ErrCodeNotFound},
		{409, ErrCodeConflict},
		{429, ErrCodeRateLimit},
		{500, ErrCodeInternal},
		{502, ErrCodeInternal},
		{503, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, ErrCodeFromStatus(tt.status))
		})
	}
}

func TestSuccessResponse_JSONShape(t *testing.T) {
	resp := SuccessResponse{
		Data:      UploadIssueResponse{Number: 3, ObjectKey: "issues/issue_3.pdf", SizeBytes: 1024},
		RequestID: "req-456",
		Timestamp: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "data")
	assert.Equal(t, "req-456", decoded["request_id"])

	data, ok := decoded["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "issues/issue_3.pdf", data["object_key"])
}
