// Package app provides router configuration.
package app

import (
	"context"
	"time"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/http"
	"github.com/nnmag/storefront/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// mongoChecker adapts the MongoDB connection to the health checker interface.
type mongoChecker struct {
	components *DatabaseComponents
}

func (c mongoChecker) Check() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.components.DB.HealthCheck(ctx)
}

// storeChecker adapts the object store to the health checker interface.
type storeChecker struct {
	components *StorageComponents
}

func (c storeChecker) Check() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.components.Store.HealthCheck(ctx)
}

// InitializeRouter initializes the health handler and router configuration
// from the service, database, and storage components.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	storageComponents *StorageComponents,
	issueService service.IssueService,
	cfg config.Config,
) *RouterComponents {
	healthHandler := http.NewHealthHandler()

	if services.shopify != nil {
		healthHandler.RegisterCircuitBreaker("shopify_storefront", services.shopify.GetCircuitBreaker())
	}
	if dbComponents != nil {
		healthHandler.RegisterCircuitBreaker("mongodb_issues", dbComponents.IssueCircuitBreaker)
		healthHandler.RegisterChecker("mongodb", mongoChecker{components: dbComponents})
	}
	if storageComponents != nil {
		healthHandler.RegisterChecker("object_storage", storeChecker{components: storageComponents})
	}

	// JWT auth needs the user and token stores.
	var authService service.AuthService
	if cfg.Auth.Enabled && dbComponents != nil {
		authService = service.NewAuthService(dbComponents.UserRepo, dbComponents.TokenRepo, cfg.Auth)
	}

	routerCfg := http.RouterConfig{
		RateLimit:       cfg.Server.RateLimit,
		RateWindow:      cfg.Server.RateWindow,
		APIKeys:         cfg.Auth.APIKeys,
		CORSOrigins:     cfg.Server.CORSOrigins,
		SwaggerUser:     cfg.Server.SwaggerUser,
		SwaggerPass:     cfg.Server.SwaggerPass,
		CheckoutService: services.Checkout,
		IssueService:    issueService,
		AuthService:     authService,
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
