// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nnmag/storefront/internal/domain/model"
)

type MockIssueRepositoryInterface struct {
	mock.Mock
}

func (m *MockIssueRepositoryInterface) Upsert(ctx context.Context, issue *model.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockIssueRepositoryInterface) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIssueRepositoryInterface) FindByNumber(ctx context.Context, number int) (*model.Issue, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueRepositoryInterface) FindLatest(ctx context.Context) (*model.Issue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueRepositoryInterface) SetEditorial(ctx context.Context, number int, blurb string, contributors []model.Contributor) (*model.Issue, error) {
	args := m.Called(ctx, number, blurb, contributors)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issue), args.Error(1)
}

func (m *MockIssueRepositoryInterface) List(ctx context.Context, limit int) ([]model.Issue, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Issue), args.Error(1)
}
