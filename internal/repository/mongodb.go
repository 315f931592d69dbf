// Package repository provides data access layer for MongoDB.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	// MaxPoolSize is the maximum number of connections in the pool.
	MaxPoolSize uint64
	// MinPoolSize is the minimum number of connections to keep in the pool.
	MinPoolSize uint64
	// MaxConnIdleTime is how long a connection can remain idle before being closed.
	MaxConnIdleTime time.Duration
	// ConnectTimeout is the timeout for establishing a connection.
	ConnectTimeout time.Duration
	// ServerSelectionTimeout is how long to wait for server selection.
	ServerSelectionTimeout time.Duration
	// SocketTimeout is the timeout for socket read/write operations.
	SocketTimeout time.Duration
	// EnableCompression enables wire protocol compression.
	EnableCompression bool
}

// DefaultMongoConfig returns production-optimized MongoDB configuration.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            10,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB provides MongoDB client and database access.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Issues   *mongo.Collection
	Users    *mongo.Collection
	Tokens   *mongo.Collection
}

// NewMongoDB creates a new MongoDB connection with default configuration.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig creates a new MongoDB connection with custom configuration.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	// Build client options with connection pool configuration
	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout)

	// Enable compression if configured
	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	clientOptions.SetRetryWrites(true)
	clientOptions.SetRetryReads(true)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(databaseName)
	mongoDB := &MongoDB{
		Client:   client,
		Database: db,
		Issues:   db.Collection("issues"),
		Users:    db.Collection("users"),
		Tokens:   db.Collection("tokens"),
	}

	// Create indexes
	if err := mongoDB.createIndexes(ctx); err != nil {
		return nil, err
	}

	return mongoDB, nil
}

// createIndexes creates necessary indexes for collections.
func (m *MongoDB) createIndexes(ctx context.Context) error {
	// Issues index: one document per issue number
	issueNumberIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"number": 1},
		Options: options.Index().SetUnique(true),
	}
	_, err := m.Issues.Indexes().CreateOne(ctx, issueNumberIndex)
	if err != nil {
		return err
	}

	// Issues index: latest-issue lookups sort by published_at
	publishedAtIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"published_at": -1},
		Options: options.Index().SetUnique(false),
	}
	_, _ = m.Issues.Indexes().CreateOne(ctx, publishedAtIndex)
	// Ignore errors if index already exists

	// Users indexes
	emailIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"email": 1},
		Options: options.Index().SetUnique(true),
	}
	_, _ = m.Users.Indexes().CreateOne(ctx, emailIndex)

	// Tokens indexes
	tokenIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"token": 1},
		Options: options.Index().SetUnique(true),
	}
	_, _ = m.Tokens.Indexes().CreateOne(ctx, tokenIndex)

	userIDTypeIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"user_id": 1, "type": 1},
		Options: options.Index().SetUnique(false),
	}
	_, _ = m.Tokens.Indexes().CreateOne(ctx, userIDTypeIndex)

	// TTL index for tokens (auto-delete expired tokens)
	tokenTTLIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"expires_at": 1},
		Options: options.Index().SetExpireAfterSeconds(0), // 0 means use expires_at field
	}
	_, _ = m.Tokens.Indexes().CreateOne(ctx, tokenTTLIndex)

	return nil
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck verifies the MongoDB connection is healthy.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	// Use a short timeout for health checks
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
