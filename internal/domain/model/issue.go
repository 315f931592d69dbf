package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contributor is a single credited collaborator on an issue.
type Contributor struct {
	Name string `bson:"name" json:"name"`
	Role string `bson:"role" json:"role"` // e.g. "photography", "words"
}

// Issue represents one published magazine issue. The PDF itself lives in
// object storage under ObjectKey; the document holds everything the
// storefront and the copywriter pipeline need without touching the file.
type Issue struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Number       int                `bson:"number" json:"number"`
	Title        string             `bson:"title" json:"title"`
	Blurb        string             `bson:"blurb" json:"blurb"`
	Contributors []Contributor      `bson:"contributors" json:"contributors"`
	ObjectKey    string             `bson:"object_key" json:"object_key"`
	ContentType  string             `bson:"content_type" json:"content_type"`
	SizeBytes    int64              `bson:"size_bytes" json:"size_bytes"`
	UploadedBy   string             `bson:"uploaded_by" json:"uploaded_by"`
	PublishedAt  time.Time          `bson:"published_at" json:"published_at"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
