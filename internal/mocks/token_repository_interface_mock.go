// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nnmag/storefront/internal/domain/model"
)

type MockTokenRepositoryInterface struct {
	mock.Mock
}

func (m *MockTokenRepositoryInterface) Create(ctx context.Context, token *model.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) FindByToken(ctx context.Context, tokenString string) (*model.Token, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}

func (m *MockTokenRepositoryInterface) DeleteByToken(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) DeleteByUserID(ctx context.Context, userID primitive.ObjectID, tokenType string) error {
	args := m.Called(ctx, userID, tokenType)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) IsBlacklisted(ctx context.Context, tokenString string) (bool, error) {
	args := m.Called(ctx, tokenString)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepositoryInterface) CleanupExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
