// Package app provides service initialization.
package app

import (
	"github.com/rs/zerolog/log"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/service"
)

// ServiceComponents holds the services backed by external APIs.
type ServiceComponents struct {
	Checkout service.CheckoutService

	// shopify keeps the concrete type around for health registration; nil
	// when checkout is disabled.
	shopify *service.ShopifyCheckoutService
}

// InitializeServices initializes the Shopify-backed checkout service.
// Returns a component set with a nil Checkout when no storefront endpoint is
// configured; the checkout routes are then not registered.
func InitializeServices(cfg config.ShopifyConfig) *ServiceComponents {
	if cfg.StorefrontURL == "" {
		log.Warn().Msg("No Shopify storefront URL configured - checkout endpoints disabled")
		return &ServiceComponents{}
	}

	shopify := service.NewShopifyCheckoutService(cfg, log.Logger)
	return &ServiceComponents{
		Checkout: shopify,
		shopify:  shopify,
	}
}
