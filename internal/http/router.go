package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nnmag/storefront/internal/metrics"
	"github.com/nnmag/storefront/internal/middleware"
	"github.com/nnmag/storefront/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit       int
	RateWindow      time.Duration
	APIKeys         map[string]bool
	CORSOrigins     []string
	SwaggerUser     string
	SwaggerPass     string
	CheckoutService service.CheckoutService
	IssueService    service.IssueService
	AuthService     service.AuthService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:  100,
		RateWindow: time.Minute,
	}
}

// NewRouter creates and configures the Gin router for the storefront service.
//
// The checkout and issue read endpoints sit at the root of the URL space
// because the cart SDK and the reader app address them there; the auth
// endpoints live under /api.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)

	// Register infrastructure routes (health, metrics, swagger)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	root := router.Group("/")

	if cfg.CheckoutService != nil {
		NewCheckoutRoutes(cfg.CheckoutService).RegisterPublicRoutes(root)
	}

	var issueRoutes *IssueRoutes
	if cfg.IssueService != nil {
		issueRoutes = NewIssueRoutes(cfg.IssueService)
		issueRoutes.RegisterPublicRoutes(root)
	}

	if cfg.AuthService != nil {
		api := router.Group("/api")

		authRoutes := NewAuthRoutes(cfg.AuthService)
		authRoutes.RegisterPublicRoutes(api)

		protectedAPI := authRoutes.GetProtectedGroup(api, &cfg)
		protectedAPI.POST("/auth/logout", authRoutes.handler.Logout)

		if issueRoutes != nil {
			protectedRoot := authRoutes.GetProtectedGroup(root, &cfg)
			issueRoutes.RegisterProtectedRoutes(protectedRoot, &cfg)
		}
	} else if issueRoutes != nil && len(cfg.APIKeys) > 0 {
		// Without JWT auth, fall back to API key protection for uploads.
		keyed := root.Group("", middleware.APIKeyAuth(cfg.APIKeys))
		issueRoutes.RegisterProtectedRoutes(keyed, &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	// CORS configuration
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "X-CSRF-Token", "Authorization", "X-Refresh-Token", "accept", "Cache-Control", "X-Requested-With", "X-API-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	// Core middleware stack
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
	)

	// Global rate limiting
	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger with optional basic auth
	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
