// Package app provides database initialization and setup.
package app

import (
	"github.com/rs/zerolog/log"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/circuitbreaker"
	"github.com/nnmag/storefront/internal/repository"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                  *repository.MongoDB
	IssueRepo           repository.IssueRepositoryInterface
	IssueCircuitBreaker *circuitbreaker.CircuitBreaker
	UserRepo            repository.UserRepositoryInterface
	TokenRepo           repository.TokenRepositoryInterface
}

// InitializeDatabase initializes the MongoDB connection and creates the issue
// and auth repositories. Returns nil if the database is disabled or the
// connection fails; the service then runs without the issue catalog and
// without JWT auth.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	cbConfig := circuitbreaker.DefaultConfig()
	cbConfig.Name = "mongodb-issues"
	issueCB := circuitbreaker.New(cbConfig)

	issueRepo := repository.NewIssueRepository(db)
	issueRepoWithCB := repository.NewIssueRepositoryWithCircuitBreaker(issueRepo, issueCB)

	userRepo := repository.NewUserRepository(db.Database)
	tokenRepo := repository.NewTokenRepository(db.Database)

	return &DatabaseComponents{
		DB:                  db,
		IssueRepo:           issueRepoWithCB,
		IssueCircuitBreaker: issueCB,
		UserRepo:            userRepo,
		TokenRepo:           tokenRepo,
	}
}
