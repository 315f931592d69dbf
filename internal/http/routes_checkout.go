package http

import (
	"github.com/gin-gonic/gin"
	"github.com/nnmag/storefront/internal/service"
)

// CheckoutRoutes handles checkout route registration.
//
// The checkout endpoints live at the root of the URL space, not under /api,
// because the cart SDK addresses them there.
type CheckoutRoutes struct {
	handler *Handler
}

// NewCheckoutRoutes creates a new CheckoutRoutes instance.
func NewCheckoutRoutes(checkoutService service.CheckoutService) *CheckoutRoutes {
	return &CheckoutRoutes{
		handler: NewHandler(checkoutService),
	}
}

// RegisterPublicRoutes registers the checkout routes. They carry no
// authentication; the checkout id is the capability.
func (r *CheckoutRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/create_checkout", r.handler.CreateCheckout)
	rg.GET("/checkout/:id", r.handler.GetCheckout)
	rg.POST("/request_checkout", r.handler.RequestCheckout)
}

// GetHandler returns the underlying checkout handler.
func (r *CheckoutRoutes) GetHandler() *Handler {
	return r.handler
}
