//go:build integration

// Package testutil boots throwaway MongoDB containers for the
// storefront's integration tests.
package testutil

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// MongoDBContainer pairs a running MongoDB testcontainer with its
// connection URI.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB starts a fresh MongoDB container. Most packages should
// go through GetSharedMongoDB instead so a single container serves the
// whole test binary.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	mongoContainer, err := mongodb.Run(ctx, "mongo:7.0")
	if err != nil {
		return nil, fmt.Errorf("failed to start MongoDB container: %w", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		mongoContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &MongoDBContainer{
		Container: mongoContainer,
		URI:       uri,
	}, nil
}

// Cleanup terminates the container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m.Container != nil {
		if err := m.Container.Terminate(ctx); err != nil {
			return fmt.Errorf("failed to terminate container: %w", err)
		}
	}
	return nil
}
