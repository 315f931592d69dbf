package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nnmag/storefront/internal/circuitbreaker"
	"github.com/nnmag/storefront/internal/domain/dto"
	"github.com/nnmag/storefront/internal/i18n"
	"github.com/nnmag/storefront/internal/service"
)

// Handler provides HTTP handlers for the checkout routes.
//
// The checkout endpoints return the remote cart resource verbatim, at the top
// level of the response body, because the cart SDK decodes exactly that shape.
// Errors still use the standard envelope.
type Handler struct {
	checkoutService service.CheckoutService
}

// NewHandler creates a new Handler instance.
func NewHandler(checkoutService service.CheckoutService) *Handler {
	return &Handler{
		checkoutService: checkoutService,
	}
}

// CreateCheckout handles GET /create_checkout requests.
//
// @Summary      Create checkout
// @Description  Creates a brand-new empty checkout on the Storefront API and returns it.
// @Tags         Checkout
// @Produce      json
// @Success      200 {object} checkout.Checkout "New checkout"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      502 {object} dto.ErrorResponse "Bad gateway - upstream failure"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - circuit open"
// @Router       /create_checkout [get]
func (h *Handler) CreateCheckout(c *gin.Context) {
	co, err := h.checkoutService.CreateCheckout(c.Request.Context())
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

// GetCheckout handles GET /checkout/:id requests.
//
// @Summary      Get checkout
// @Description  Fetches an existing checkout by its bare identifier.
// @Tags         Checkout
// @Produce      json
// @Param        id path string true "Checkout identifier (without the gid prefix)"
// @Success      200 {object} checkout.Checkout "Checkout"
// @Failure      404 {object} dto.ErrorResponse "Not found - checkout expired or unknown"
// @Failure      502 {object} dto.ErrorResponse "Bad gateway - upstream failure"
// @Router       /checkout/{id} [get]
func (h *Handler) GetCheckout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id := c.Param("id")
	if id == "" {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, errors.New("checkout id is required"))
		return
	}

	co, err := h.checkoutService.GetCheckout(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCheckoutNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
			return
		}
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

// RequestCheckout handles POST /request_checkout requests.
//
// @Summary      Request checkout with lines
// @Description  Builds a fresh checkout containing exactly the posted line set. The returned checkout carries a new identifier which the client adopts.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        request body dto.RequestCheckoutRequest true "Desired line set"
// @Success      200 {object} checkout.Checkout "New checkout with the posted lines"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      502 {object} dto.ErrorResponse "Bad gateway - upstream failure"
// @Router       /request_checkout [post]
func (h *Handler) RequestCheckout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.RequestCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := req.Validate(); err != nil {
		if _, ok := err.(*dto.ValidationError); ok {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	co, err := h.checkoutService.ReplaceCheckout(c.Request.Context(), req.Items)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

// upstreamError maps Storefront API failures onto gateway status codes.
func (h *Handler) upstreamError(c *gin.Context, err error) {
	builder := NewResponseBuilder(c)

	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyInternalError, err)
	case errors.Is(err, service.ErrShopifyUserError):
		builder.Error(http.StatusBadGateway, i18n.ErrKeyInternalError, err)
	default:
		builder.Error(http.StatusBadGateway, i18n.ErrKeyInternalError, err)
	}
}
