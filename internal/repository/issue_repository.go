// Package repository provides issue data access layer.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nnmag/storefront/internal/domain/model"
)

// IssueRepository implements IssueRepositoryInterface using MongoDB.
type IssueRepository struct {
	collection *mongo.Collection
}

// NewIssueRepository creates a new issue repository.
func NewIssueRepository(db *MongoDB) *IssueRepository {
	return &IssueRepository{
		collection: db.Issues,
	}
}

// Upsert stores an issue, replacing any existing document with the same
// number. Re-uploading an issue PDF overwrites the previous record.
func (r *IssueRepository) Upsert(ctx context.Context, issue *model.Issue) error {
	now := time.Now()
	issue.UpdatedAt = now
	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = now
	}
	if issue.PublishedAt.IsZero() {
		issue.PublishedAt = now
	}

	update := bson.M{
		"$set": bson.M{
			"title":        issue.Title,
			"blurb":        issue.Blurb,
			"contributors": issue.Contributors,
			"object_key":   issue.ObjectKey,
			"content_type": issue.ContentType,
			"size_bytes":   issue.SizeBytes,
			"uploaded_by":  issue.UploadedBy,
			"published_at": issue.PublishedAt,
			"updated_at":   issue.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        issue.ID,
			"number":     issue.Number,
			"created_at": issue.CreatedAt,
		},
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"number": issue.Number},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

// Count returns the number of published issues.
func (r *IssueRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// FindByNumber finds an issue by its number.
func (r *IssueRepository) FindByNumber(ctx context.Context, number int) (*model.Issue, error) {
	var issue model.Issue
	err := r.collection.FindOne(ctx, bson.M{"number": number}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// FindLatest returns the most recently published issue.
func (r *IssueRepository) FindLatest(ctx context.Context) (*model.Issue, error) {
	opts := options.FindOne().SetSort(bson.M{"number": -1})

	var issue model.Issue
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// SetEditorial updates the generated blurb and contributor credits of an
// issue. Returns the updated document.
func (r *IssueRepository) SetEditorial(ctx context.Context, number int, blurb string, contributors []model.Contributor) (*model.Issue, error) {
	update := bson.M{
		"$set": bson.M{
			"blurb":        blurb,
			"contributors": contributors,
			"updated_at":   time.Now(),
		},
	}

	var issue model.Issue
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"number": number},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// List returns issues sorted by number descending.
func (r *IssueRepository) List(ctx context.Context, limit int) ([]model.Issue, error) {
	opts := options.Find().SetSort(bson.M{"number": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var issues []model.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}

	return issues, nil
}
