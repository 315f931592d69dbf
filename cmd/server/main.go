// Package main is the entry point for the storefront backend service.
//
// @title           Storefront API
// @version         1.0.0
// @description     Backend for the magazine storefront: Shopify-backed checkout,
//
//	issue catalog with signed download URLs, and staff uploads.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/nnmag/storefront
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key protecting the upload endpoint when JWT auth is disabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT access token, prefixed with "Bearer ".
//
// @tag.name        Checkout
// @tag.description Shopify cart and checkout operations
//
// @tag.name        Issues
// @tag.description Magazine issue catalog and downloads
//
// @tag.name        Auth
// @tag.description Staff authentication endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/nnmag/storefront/docs" // swagger docs

	"github.com/rs/zerolog/log"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/app"
)

func main() {
	cfg := config.Load()

	router, cleanup := app.InitializeApp(cfg)
	defer cleanup()

	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
