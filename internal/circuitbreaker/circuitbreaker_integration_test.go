//go:build integration

package circuitbreaker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nnmag/storefront/internal/circuitbreaker"
	"github.com/nnmag/storefront/internal/domain/model"
	"github.com/nnmag/storefront/internal/repository"
	"github.com/nnmag/storefront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerWithMongoDB_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongoContainer.Cleanup(ctx))
	}()

	t.Run("circuit breaker protects issue repository", func(t *testing.T) {
		db, err := repository.NewMongoDB(mongoContainer.URI, "test_storefront")
		require.NoError(t, err)
		defer func() {
			_ = db.Close(ctx)
		}()

		repo := repository.NewIssueRepository(db)
		cb := circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: 2,
			SuccessThreshold: 1,
			Timeout:          100 * time.Millisecond,
			Name:             "test-issues",
		})
		wrappedRepo := repository.NewIssueRepositoryWithCircuitBreaker(repo, cb)

		// Successful operations
		err = wrappedRepo.Upsert(ctx, &model.Issue{
			Number:    1,
			Title:     "First Issue",
			ObjectKey: "issues/issue_1.pdf",
			SizeBytes: 1024,
		})
		require.NoError(t, err)

		issue, err := wrappedRepo.FindByNumber(ctx, 1)
		require.NoError(t, err)
		assert.NotNil(t, issue)

		count, err := wrappedRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		stats := cb.GetStats()
		assert.Equal(t, circuitbreaker.StateClosed, cb.State())
		assert.True(t, stats.IsHealthy)
	})

	t.Run("circuit breaker opens on failures", func(t *testing.T) {
		cb := circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: 2,
			SuccessThreshold: 1,
			Timeout:          100 * time.Millisecond,
			Name:             "test-failures",
		})

		// Simulate failures
		for i := 0; i < 2; i++ {
			err := cb.Execute(ctx, func() error {
				return errors.New("simulated error")
			})
			assert.Error(t, err)
		}

		assert.Equal(t, circuitbreaker.StateOpen, cb.State())
		assert.True(t, cb.IsOpen())

		err := cb.Execute(ctx, func() error {
			return nil // This won't be called
		})
		assert.Equal(t, circuitbreaker.ErrCircuitOpen, err)
	})

	t.Run("circuit breaker recovers after timeout", func(t *testing.T) {
		cb := circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: 1,
			SuccessThreshold: 1,
			Timeout:          50 * time.Millisecond,
			Name:             "test-recovery",
		})

		// Open the circuit
		_ = cb.Execute(ctx, func() error {
			return errors.New("error")
		})
		assert.Equal(t, circuitbreaker.StateOpen, cb.State())

		// Wait for timeout
		time.Sleep(60 * time.Millisecond)

		// Should transition to half-open
		err := cb.Execute(ctx, func() error {
			return nil // Success
		})
		assert.NoError(t, err)
		assert.Equal(t, circuitbreaker.StateClosed, cb.State())
	})
}
