// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nnmag/storefront/internal/domain/dto"
	"github.com/nnmag/storefront/internal/domain/model"
	"github.com/nnmag/storefront/pkg/checkout"
)

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) CreateCheckout(ctx context.Context) (*checkout.Checkout, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Checkout), args.Error(1)
}

func (m *MockCheckoutService) GetCheckout(ctx context.Context, id string) (*checkout.Checkout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Checkout), args.Error(1)
}

func (m *MockCheckoutService) ReplaceCheckout(ctx context.Context, lines []dto.CheckoutLine) (*checkout.Checkout, error) {
	args := m.Called(ctx, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Checkout), args.Error(1)
}

type MockIssueService struct {
	mock.Mock
}

func (m *MockIssueService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIssueService) SignedURL(ctx context.Context, number int) (string, error) {
	args := m.Called(ctx, number)
	return args.String(0), args.Error(1)
}

func (m *MockIssueService) LatestSignedURL(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockIssueService) Data(ctx context.Context, number int) (*model.Issue, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueService) LatestData(ctx context.Context) (*model.Issue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueService) Upload(ctx context.Context, number int, title, contentType, uploadedBy string, r io.Reader) (*model.Issue, error) {
	args := m.Called(ctx, number, title, contentType, uploadedBy, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueService) SetEditorial(ctx context.Context, number int, blurb string, contributors []model.Contributor) (*model.Issue, error) {
	args := m.Called(ctx, number, blurb, contributors)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.User, error) {
	args := m.Called(ctx, email, password)
	var pair *dto.TokenPair
	var user *model.User
	if args.Get(0) != nil {
		pair = args.Get(0).(*dto.TokenPair)
	}
	if args.Get(1) != nil {
		user = args.Get(1).(*model.User)
	}
	return pair, user, args.Error(2)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPair), args.Error(1)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Claims), args.Error(1)
}

func (m *MockAuthService) InvalidateToken(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *MockAuthService) InvalidateUserTokens(ctx context.Context, userID primitive.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	args := m.Called(ctx, accessToken, refreshToken)
	return args.Error(0)
}
