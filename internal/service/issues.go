package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/nnmag/storefront/internal/domain/model"
	"github.com/nnmag/storefront/internal/repository"
	"github.com/nnmag/storefront/internal/storage"
)

// ErrIssueNotFound is returned when no issue exists for the requested number.
var ErrIssueNotFound = errors.New("issue not found")

// IssueService provides access to the magazine's published issues.
type IssueService interface {
	// Count returns the number of published issues.
	Count(ctx context.Context) (int64, error)
	// SignedURL returns a short-lived download URL for the given issue.
	SignedURL(ctx context.Context, number int) (string, error)
	// LatestSignedURL returns a download URL for the most recent issue.
	LatestSignedURL(ctx context.Context) (string, error)
	// Data returns the editorial metadata of an issue.
	Data(ctx context.Context, number int) (*model.Issue, error)
	// LatestData returns the metadata of the most recent issue.
	LatestData(ctx context.Context) (*model.Issue, error)
	// Upload stores an issue PDF and records it in the catalog.
	Upload(ctx context.Context, number int, title, contentType, uploadedBy string, r io.Reader) (*model.Issue, error)
	// SetEditorial stores the generated blurb and credits for an issue.
	SetEditorial(ctx context.Context, number int, blurb string, contributors []model.Contributor) (*model.Issue, error)
}

// IssueServiceImpl implements IssueService on MongoDB metadata plus a
// private object-storage bucket for the PDFs themselves.
type IssueServiceImpl struct {
	issueRepo    repository.IssueRepositoryInterface
	store        storage.ObjectStore
	signedURLTTL time.Duration
	urlCache     *urlCache
	logger       zerolog.Logger
}

// urlCacheCapacity bounds the signed URL cache. The catalog is small, so this
// is effectively "all issues".
const urlCacheCapacity = 256

// NewIssueService creates a new issue service. Signed URLs are cached for half
// their validity so a cached URL always has time left to download with.
func NewIssueService(
	issueRepo repository.IssueRepositoryInterface,
	store storage.ObjectStore,
	signedURLTTL time.Duration,
	logger zerolog.Logger,
) *IssueServiceImpl {
	return &IssueServiceImpl{
		issueRepo:    issueRepo,
		store:        store,
		signedURLTTL: signedURLTTL,
		urlCache:     newURLCache(urlCacheCapacity, signedURLTTL/2),
		logger:       logger.With().Str("component", "issues").Logger(),
	}
}

// Close stops the background cache maintenance.
func (s *IssueServiceImpl) Close() {
	s.urlCache.Stop()
}

// Count returns the number of published issues.
func (s *IssueServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.issueRepo.Count(ctx)
}

// SignedURL returns a short-lived download URL for the given issue number.
func (s *IssueServiceImpl) SignedURL(ctx context.Context, number int) (string, error) {
	if url, ok := s.urlCache.Get(number); ok {
		return url, nil
	}

	issue, err := s.issueRepo.FindByNumber(ctx, number)
	if err != nil {
		return "", fmt.Errorf("failed to look up issue %d: %w", number, err)
	}
	if issue == nil {
		return "", ErrIssueNotFound
	}

	url, err := s.store.SignedDownloadURL(issue.ObjectKey, s.signedURLTTL)
	if err != nil {
		return "", err
	}
	s.urlCache.Set(number, url)
	return url, nil
}

// LatestSignedURL returns a download URL for the most recent issue.
func (s *IssueServiceImpl) LatestSignedURL(ctx context.Context) (string, error) {
	issue, err := s.issueRepo.FindLatest(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to look up latest issue: %w", err)
	}
	if issue == nil {
		return "", ErrIssueNotFound
	}

	if url, ok := s.urlCache.Get(issue.Number); ok {
		return url, nil
	}

	url, err := s.store.SignedDownloadURL(issue.ObjectKey, s.signedURLTTL)
	if err != nil {
		return "", err
	}
	s.urlCache.Set(issue.Number, url)
	return url, nil
}

// Data returns the editorial metadata of an issue.
func (s *IssueServiceImpl) Data(ctx context.Context, number int) (*model.Issue, error) {
	issue, err := s.issueRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to look up issue %d: %w", number, err)
	}
	if issue == nil {
		return nil, ErrIssueNotFound
	}
	return issue, nil
}

// LatestData returns the metadata of the most recent issue.
func (s *IssueServiceImpl) LatestData(ctx context.Context) (*model.Issue, error) {
	issue, err := s.issueRepo.FindLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up latest issue: %w", err)
	}
	if issue == nil {
		return nil, ErrIssueNotFound
	}
	return issue, nil
}

// Upload stores the PDF under a deterministic object key and upserts the
// issue record. Re-uploading an issue number replaces both.
func (s *IssueServiceImpl) Upload(ctx context.Context, number int, title, contentType, uploadedBy string, r io.Reader) (*model.Issue, error) {
	objectKey := IssueObjectKey(number)

	size, err := s.store.Upload(ctx, objectKey, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store issue %d: %w", number, err)
	}

	issue := &model.Issue{
		Number:      number,
		Title:       title,
		ObjectKey:   objectKey,
		ContentType: contentType,
		SizeBytes:   size,
		UploadedBy:  uploadedBy,
	}
	if err := s.issueRepo.Upsert(ctx, issue); err != nil {
		return nil, fmt.Errorf("failed to record issue %d: %w", number, err)
	}
	// A re-upload replaces the object, so any cached URL points at stale bytes.
	s.urlCache.Invalidate(number)

	s.logger.Info().
		Int("number", number).
		Str("object_key", objectKey).
		Int64("size_bytes", size).
		Msg("issue uploaded")
	return issue, nil
}

// SetEditorial stores the generated blurb and contributor credits.
func (s *IssueServiceImpl) SetEditorial(ctx context.Context, number int, blurb string, contributors []model.Contributor) (*model.Issue, error) {
	issue, err := s.issueRepo.SetEditorial(ctx, number, blurb, contributors)
	if err != nil {
		return nil, fmt.Errorf("failed to update issue %d: %w", number, err)
	}
	if issue == nil {
		return nil, ErrIssueNotFound
	}
	return issue, nil
}

// IssueObjectKey returns the bucket key an issue PDF is stored under.
func IssueObjectKey(number int) string {
	return fmt.Sprintf("issues/issue_%d.pdf", number)
}
