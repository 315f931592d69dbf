package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/circuitbreaker"
	"github.com/nnmag/storefront/internal/domain/dto"
)

func shopifyTestConfig(url string) config.ShopifyConfig {
	return config.ShopifyConfig{
		StorefrontURL:                  url,
		AccessToken:                    "test-token",
		Timeout:                        5 * time.Second,
		CircuitBreakerFailureThreshold: 3,
		CircuitBreakerSuccessThreshold: 1,
		CircuitBreakerTimeout:          30 * time.Second,
	}
}

func cartJSON(id string, totalQuantity int) string {
	return fmt.Sprintf(`{
		"id": "gid://shopify/Cart/%s",
		"checkoutUrl": "https://shop.example.com/checkout/%s",
		"totalQuantity": %d,
		"lines": {"nodes": []}
	}`, id, id, totalQuantity)
}

func TestShopifyCheckoutService_CreateCheckout(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Storefront-Access-Token")

		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "cartCreate")

		fmt.Fprintf(w, `{"data": {"cartCreate": {"cart": %s, "userErrors": []}}}`, cartJSON("abc123", 0))
	}))
	defer server.Close()

	svc := NewShopifyCheckoutService(shopifyTestConfig(server.URL), zerolog.Nop())

	cart, err := svc.CreateCheckout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Cart/abc123", cart.ID)
	assert.Equal(t, "https://shop.example.com/checkout/abc123", cart.CheckoutURL)
	assert.Equal(t, "test-token", gotToken)
}

func TestShopifyCheckoutService_GetCheckout(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		wantErr   error
		expectGid string
	}{
		{
			name:      "existing cart",
			response:  fmt.Sprintf(`{"data": {"cart": %s}}`, cartJSON("abc123", 2)),
			expectGid: "gid://shopify/Cart/abc123",
		},
		{
			name:     "unknown cart returns null",
			response: `{"data": {"cart": null}}`,
			wantErr:  ErrCheckoutNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotVariables map[string]interface{}
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req graphQLRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				gotVariables = req.Variables

				fmt.Fprint(w, tt.response)
			}))
			defer server.Close()

			svc := NewShopifyCheckoutService(shopifyTestConfig(server.URL), zerolog.Nop())

			cart, err := svc.GetCheckout(context.Background(), "abc123")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectGid, cart.ID)
			// Bare ids are expanded to the full gid before hitting the API
			assert.Equal(t, "gid://shopify/Cart/abc123", gotVariables["id"])
		})
	}
}

func TestShopifyCheckoutService_ReplaceCheckout(t *testing.T) {
	var calls []string
	var addVariables map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch {
		case containsQuery(req.Query, "cartLinesAdd"):
			calls = append(calls, "cartLinesAdd")
			addVariables = req.Variables
			fmt.Fprintf(w, `{"data": {"cartLinesAdd": {"cart": %s, "userErrors": []}}}`, cartJSON("fresh", 3))
		case containsQuery(req.Query, "cartCreate"):
			calls = append(calls, "cartCreate")
			fmt.Fprintf(w, `{"data": {"cartCreate": {"cart": %s, "userErrors": []}}}`, cartJSON("fresh", 0))
		default:
			t.Fatalf("unexpected query: %s", req.Query)
		}
	}))
	defer server.Close()

	svc := NewShopifyCheckoutService(shopifyTestConfig(server.URL), zerolog.Nop())

	cart, err := svc.ReplaceCheckout(context.Background(), []dto.CheckoutLine{
		{ProductID: "gid://shopify/ProductVariant/1", Quantity: 2},
		{ProductID: "gid://shopify/ProductVariant/2", Quantity: 1},
	})
	require.NoError(t, err)

	// A replacement is always a fresh cart plus one lines-add call
	assert.Equal(t, []string{"cartCreate", "cartLinesAdd"}, calls)
	assert.Equal(t, "gid://shopify/Cart/fresh", cart.ID)
	assert.Equal(t, 3, cart.TotalQuantity)

	assert.Equal(t, "gid://shopify/Cart/fresh", addVariables["cartId"])
	lines, ok := addVariables["lines"].([]interface{})
	require.True(t, ok)
	require.Len(t, lines, 2)
	first, ok := lines[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "gid://shopify/ProductVariant/1", first["merchandiseId"])
	assert.Equal(t, float64(2), first["quantity"])
}

func TestShopifyCheckoutService_UserErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"cartCreate": {"cart": null, "userErrors": [{"field": ["input"], "message": "merchandise not found"}]}}}`)
	}))
	defer server.Close()

	svc := NewShopifyCheckoutService(shopifyTestConfig(server.URL), zerolog.Nop())

	_, err := svc.CreateCheckout(context.Background())
	assert.ErrorIs(t, err, ErrShopifyUserError)
	assert.Contains(t, err.Error(), "merchandise not found")
}

func TestShopifyCheckoutService_GraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {}, "errors": [{"message": "syntax error"}]}`)
	}))
	defer server.Close()

	svc := NewShopifyCheckoutService(shopifyTestConfig(server.URL), zerolog.Nop())

	_, err := svc.CreateCheckout(context.Background())
	assert.ErrorIs(t, err, ErrShopifyUserError)
}

func TestShopifyCheckoutService_CircuitOpens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewShopifyCheckoutService(shopifyTestConfig(server.URL), zerolog.Nop())

	for i := 0; i < 3; i++ {
		_, err := svc.CreateCheckout(context.Background())
		require.Error(t, err)
	}
	require.True(t, svc.GetCircuitBreaker().IsOpen())

	_, err := svc.CreateCheckout(context.Background())
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}

func TestGid(t *testing.T) {
	assert.Equal(t, "gid://shopify/Cart/abc", gid("abc"))
	assert.Equal(t, "gid://shopify/Cart/abc", gid("gid://shopify/Cart/abc"))
}

func containsQuery(query, op string) bool {
	return strings.Contains(query, op)
}
