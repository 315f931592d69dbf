// Package service provides business logic for the storefront backend.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/circuitbreaker"
	"github.com/nnmag/storefront/internal/metrics"
	"github.com/nnmag/storefront/internal/domain/dto"
	"github.com/nnmag/storefront/pkg/checkout"
)

var (
	// ErrCheckoutNotFound is returned when the Shopify cart no longer exists.
	ErrCheckoutNotFound = errors.New("checkout not found")
	// ErrShopifyUserError is returned when the storefront API rejects a mutation.
	ErrShopifyUserError = errors.New("storefront request rejected")
)

// cartSelection is the field set requested for every cart operation. It
// matches the wire shape the checkout client decodes.
const cartSelection = `id
checkoutUrl
totalQuantity
lines(first: 250) {
  nodes {
    id
    quantity
    merchandise {
      ... on ProductVariant {
        id
      }
    }
    cost {
      amountPerQuantity {
        amount
        currencyCode
      }
    }
  }
}`

// CheckoutService proxies cart operations to the Shopify Storefront API.
type CheckoutService interface {
	// CreateCheckout creates a new empty cart.
	CreateCheckout(ctx context.Context) (*checkout.Checkout, error)
	// GetCheckout fetches an existing cart. The id may be bare or carry the
	// gid prefix.
	GetCheckout(ctx context.Context, id string) (*checkout.Checkout, error)
	// ReplaceCheckout creates a fresh cart holding exactly the given lines.
	// The previous cart is abandoned rather than mutated, so the caller
	// always receives a new cart id.
	ReplaceCheckout(ctx context.Context, lines []dto.CheckoutLine) (*checkout.Checkout, error)
}

// ShopifyCheckoutService implements CheckoutService against the Storefront
// GraphQL endpoint.
type ShopifyCheckoutService struct {
	httpClient     *http.Client
	endpoint       string
	accessToken    string
	circuitBreaker *circuitbreaker.CircuitBreaker
	logger         zerolog.Logger
}

// NewShopifyCheckoutService creates a new Shopify-backed checkout service.
func NewShopifyCheckoutService(cfg config.ShopifyConfig, logger zerolog.Logger) *ShopifyCheckoutService {
	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "shopify-storefront",
	})

	return &ShopifyCheckoutService{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		endpoint:       cfg.StorefrontURL,
		accessToken:    cfg.AccessToken,
		circuitBreaker: cb,
		logger:         logger.With().Str("component", "shopify").Logger(),
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type userError struct {
	Field   interface{} `json:"field"`
	Message string      `json:"message"`
}

// cartPayload is the shared response shape of cart mutations.
type cartPayload struct {
	Cart       *checkout.Checkout `json:"cart"`
	UserErrors []userError        `json:"userErrors"`
}

type graphQLResponse struct {
	Data struct {
		Cart         *checkout.Checkout `json:"cart"`
		CartCreate   *cartPayload       `json:"cartCreate"`
		CartLinesAdd *cartPayload       `json:"cartLinesAdd"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// CreateCheckout creates a new empty cart.
func (s *ShopifyCheckoutService) CreateCheckout(ctx context.Context) (*checkout.Checkout, error) {
	query := fmt.Sprintf(`mutation {
  cartCreate {
    cart {
      %s
    }
    userErrors {
      field
      message
    }
  }
}`, cartSelection)

	resp, err := s.do(ctx, "cartCreate", graphQLRequest{Query: query})
	if err != nil {
		return nil, err
	}
	if resp.Data.CartCreate == nil {
		return nil, fmt.Errorf("%w: empty cartCreate response", ErrShopifyUserError)
	}
	if err := userErrorsToErr(resp.Data.CartCreate.UserErrors); err != nil {
		return nil, err
	}
	if resp.Data.CartCreate.Cart == nil {
		return nil, fmt.Errorf("%w: cartCreate returned no cart", ErrShopifyUserError)
	}

	s.logger.Info().Str("cart_id", resp.Data.CartCreate.Cart.ID).Msg("created checkout")
	return resp.Data.CartCreate.Cart, nil
}

// GetCheckout fetches an existing cart by id.
func (s *ShopifyCheckoutService) GetCheckout(ctx context.Context, id string) (*checkout.Checkout, error) {
	query := fmt.Sprintf(`query ($id: ID!) {
  cart(id: $id) {
    %s
  }
}`, cartSelection)

	resp, err := s.do(ctx, "cart", graphQLRequest{
		Query:     query,
		Variables: map[string]interface{}{"id": gid(id)},
	})
	if err != nil {
		return nil, err
	}

	// Shopify returns a null cart for unknown or expired ids.
	if resp.Data.Cart == nil || resp.Data.Cart.ID == "" {
		return nil, ErrCheckoutNotFound
	}
	return resp.Data.Cart, nil
}

// ReplaceCheckout builds a fresh cart containing exactly the given lines.
// A new cart is created first and the lines are added to it; the client
// adopts the returned id, leaving any previous cart behind.
func (s *ShopifyCheckoutService) ReplaceCheckout(ctx context.Context, lines []dto.CheckoutLine) (*checkout.Checkout, error) {
	created, err := s.CreateCheckout(ctx)
	if err != nil {
		return nil, err
	}

	lineInputs := make([]map[string]interface{}, 0, len(lines))
	for _, line := range lines {
		lineInputs = append(lineInputs, map[string]interface{}{
			"merchandiseId": line.ProductID,
			"quantity":      line.Quantity,
		})
	}

	query := fmt.Sprintf(`mutation ($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {
      %s
    }
    userErrors {
      field
      message
    }
  }
}`, cartSelection)

	resp, err := s.do(ctx, "cartLinesAdd", graphQLRequest{
		Query: query,
		Variables: map[string]interface{}{
			"cartId": gid(created.ID),
			"lines":  lineInputs,
		},
	})
	if err != nil {
		return nil, err
	}
	if resp.Data.CartLinesAdd == nil {
		return nil, fmt.Errorf("%w: empty cartLinesAdd response", ErrShopifyUserError)
	}
	if err := userErrorsToErr(resp.Data.CartLinesAdd.UserErrors); err != nil {
		return nil, err
	}
	if resp.Data.CartLinesAdd.Cart == nil {
		return nil, fmt.Errorf("%w: cartLinesAdd returned no cart", ErrShopifyUserError)
	}

	cart := resp.Data.CartLinesAdd.Cart
	s.logger.Info().
		Str("cart_id", cart.ID).
		Int("lines", len(lines)).
		Msg("replaced checkout")
	return cart, nil
}

// do executes one GraphQL round-trip under the circuit breaker.
func (s *ShopifyCheckoutService) do(ctx context.Context, operation string, reqBody graphQLRequest) (*graphQLResponse, error) {
	var result *graphQLResponse
	start := time.Now()

	err := s.circuitBreaker.Execute(ctx, func() error {
		body, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Shopify-Storefront-Access-Token", s.accessToken)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("storefront request failed: %w", err)
		}
		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("storefront returned status %d", resp.StatusCode)
		}

		var parsed graphQLResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		if len(parsed.Errors) > 0 {
			return fmt.Errorf("%w: %s", ErrShopifyUserError, parsed.Errors[0].Message)
		}

		result = &parsed
		return nil
	})
	if err != nil {
		metrics.RecordCheckoutRequest(operation, time.Since(start), "error")
		return nil, err
	}
	metrics.RecordCheckoutRequest(operation, time.Since(start), "success")
	return result, nil
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (s *ShopifyCheckoutService) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return s.circuitBreaker
}

// gid ensures the id carries the full gid prefix expected by the API.
func gid(id string) string {
	if strings.HasPrefix(id, checkout.CheckoutIDPrefix) {
		return id
	}
	return checkout.CheckoutIDPrefix + id
}

func userErrorsToErr(errs []userError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("%w: %s", ErrShopifyUserError, strings.Join(msgs, "; "))
}
