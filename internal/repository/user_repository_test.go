//go:build !integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newOfflineMongoClient builds a client without dialing anything. The
// driver connects lazily, so naming databases and collections is safe.
func newOfflineMongoClient(t *testing.T) *mongo.Client {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)
	return client
}

// Query behavior is covered in user_repository_integration_test.go
// against a real MongoDB container. This only checks the wiring that
// needs no connection.
func TestNewUserRepository(t *testing.T) {
	client := newOfflineMongoClient(t)
	defer client.Disconnect(context.Background())

	repo := NewUserRepository(client.Database("storefront_unit"))

	require.NotNil(t, repo)
	assert.Equal(t, "users", repo.collection.Name())
}
