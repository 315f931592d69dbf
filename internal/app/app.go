// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/http"
	"github.com/nnmag/storefront/internal/service"
)

// InitializeApp creates and wires all application dependencies.
// The returned cleanup function closes the database, storage, and cache
// resources and is safe to call once.
func InitializeApp(cfg config.Config) (*gin.Engine, func()) {
	// Initialize logger first (needed by other components)
	InitializeLogger()

	serviceComponents := InitializeServices(cfg.Shopify)

	dbComponents := InitializeDatabase(cfg.Database)
	storageComponents := InitializeStorage(context.Background(), cfg.Storage)

	// The issue catalog needs both the metadata store and the bucket.
	var issueService service.IssueService
	var issueServiceImpl *service.IssueServiceImpl
	if dbComponents != nil && storageComponents != nil {
		issueServiceImpl = service.NewIssueService(
			dbComponents.IssueRepo,
			storageComponents.Store,
			cfg.Storage.SignedURLTTL,
			log.Logger,
		)
		issueService = issueServiceImpl
	} else {
		log.Warn().Msg("Issue endpoints disabled - require both MongoDB and object storage")
	}

	if cfg.Auth.Enabled && dbComponents != nil {
		if err := bootstrapStaffAccount(dbComponents.UserRepo, cfg.Auth); err != nil {
			log.Warn().Err(err).Msg("Failed to bootstrap staff account")
		}
	}

	routerComponents := InitializeRouter(serviceComponents, dbComponents, storageComponents, issueService, cfg)

	router := http.NewRouter(routerComponents.HealthHandler, routerComponents.Config)

	cleanup := func() {
		if issueServiceImpl != nil {
			issueServiceImpl.Close()
		}
		if storageComponents != nil {
			if err := storageComponents.Store.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close storage client")
			}
		}
		if dbComponents != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := dbComponents.DB.Close(ctx); err != nil {
				log.Warn().Err(err).Msg("Failed to close MongoDB connection")
			}
		}
	}

	return router, cleanup
}
