// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"github.com/nnmag/storefront/internal/circuitbreaker"
	"github.com/nnmag/storefront/internal/domain/model"
)

// IssueRepositoryWithCircuitBreaker wraps IssueRepository with circuit breaker protection.
type IssueRepositoryWithCircuitBreaker struct {
	repo           *IssueRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewIssueRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewIssueRepositoryWithCircuitBreaker(repo *IssueRepository, cb *circuitbreaker.CircuitBreaker) *IssueRepositoryWithCircuitBreaker {
	return &IssueRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Upsert stores an issue with circuit breaker protection.
func (r *IssueRepositoryWithCircuitBreaker) Upsert(ctx context.Context, issue *model.Issue) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Upsert(ctx, issue)
	})
}

// Count returns the number of published issues with circuit breaker protection.
func (r *IssueRepositoryWithCircuitBreaker) Count(ctx context.Context) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx)
		return cbErr
	})
	return result, err
}

// FindByNumber finds an issue by number with circuit breaker protection.
func (r *IssueRepositoryWithCircuitBreaker) FindByNumber(ctx context.Context, number int) (*model.Issue, error) {
	var result *model.Issue
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FindByNumber(ctx, number)
		return cbErr
	})
	return result, err
}

// FindLatest returns the most recent issue with circuit breaker protection.
func (r *IssueRepositoryWithCircuitBreaker) FindLatest(ctx context.Context) (*model.Issue, error) {
	var result *model.Issue
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FindLatest(ctx)
		return cbErr
	})
	return result, err
}

// SetEditorial updates an issue's blurb and credits with circuit breaker protection.
func (r *IssueRepositoryWithCircuitBreaker) SetEditorial(ctx context.Context, number int, blurb string, contributors []model.Contributor) (*model.Issue, error) {
	var result *model.Issue
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.SetEditorial(ctx, number, blurb, contributors)
		return cbErr
	})
	return result, err
}

// List returns issues with circuit breaker protection.
func (r *IssueRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]model.Issue, error) {
	var result []model.Issue
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx, limit)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *IssueRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
