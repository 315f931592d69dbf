// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"github.com/nnmag/storefront/internal/domain/model"
)

// IssueRepositoryInterface defines the interface for issue repository operations.
type IssueRepositoryInterface interface {
	Upsert(ctx context.Context, issue *model.Issue) error
	Count(ctx context.Context) (int64, error)
	FindByNumber(ctx context.Context, number int) (*model.Issue, error)
	FindLatest(ctx context.Context) (*model.Issue, error)
	SetEditorial(ctx context.Context, number int, blurb string, contributors []model.Contributor) (*model.Issue, error)
	List(ctx context.Context, limit int) ([]model.Issue, error)
}
