// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, objectKey, contentType string, r io.Reader) (int64, error) {
	args := m.Called(ctx, objectKey, contentType, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockObjectStore) SignedDownloadURL(objectKey string, ttl time.Duration) (string, error) {
	args := m.Called(objectKey, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

func (m *MockObjectStore) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockObjectStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
