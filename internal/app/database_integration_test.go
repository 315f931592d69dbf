//go:build integration

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/domain/model"
)

func TestInitializeDatabase_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Use shared container with unique database names for each subtest
	uri := getSharedContainerURI()

	t.Run("initialize with enabled database", func(t *testing.T) {
		t.Parallel()
		dbName := sanitizeDBNameForApp(t.Name())
		cfg := config.DatabaseConfig{
			URI:          uri,
			DatabaseName: dbName,
			Enabled:      true,
		}

		components := InitializeDatabase(cfg)

		require.NotNil(t, components)
		assert.NotNil(t, components.DB)
		assert.NotNil(t, components.IssueRepo)
		assert.NotNil(t, components.IssueCircuitBreaker)
		assert.NotNil(t, components.UserRepo)
		assert.NotNil(t, components.TokenRepo)

		defer func() { _ = components.DB.Close(ctx) }()
	})

	t.Run("initialize with disabled database", func(t *testing.T) {
		t.Parallel()
		cfg := config.DatabaseConfig{
			Enabled: false,
		}

		components := InitializeDatabase(cfg)
		assert.Nil(t, components)
	})

	t.Run("issue repository is usable through circuit breaker", func(t *testing.T) {
		t.Parallel()
		dbName := sanitizeDBNameForApp(t.Name())
		cfg := config.DatabaseConfig{
			URI:          uri,
			DatabaseName: dbName,
			Enabled:      true,
		}

		components := InitializeDatabase(cfg)
		require.NotNil(t, components)
		defer func() { _ = components.DB.Close(ctx) }()

		err := components.IssueRepo.Upsert(ctx, &model.Issue{
			Number:    1,
			Title:     "Launch Issue",
			ObjectKey: "issues/issue_1.pdf",
		})
		require.NoError(t, err)

		count, err := components.IssueRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		found, err := components.IssueRepo.FindByNumber(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Launch Issue", found.Title)

		stats := components.IssueCircuitBreaker.GetStats()
		assert.Equal(t, "closed", stats.State)
		assert.True(t, stats.IsHealthy)
	})
}
