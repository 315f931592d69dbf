package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned when the remote checkout resource no longer exists,
// e.g. because it expired server-side.
var ErrNotFound = errors.New("checkout not found")

// Client talks to the storefront checkout API.
type Client interface {
	// Create requests a brand-new checkout resource.
	Create(ctx context.Context) (*Checkout, error)
	// Get fetches an existing checkout by its bare identifier.
	// Returns ErrNotFound if the resource no longer exists.
	Get(ctx context.Context, id string) (*Checkout, error)
	// Replace posts the entire desired line set and returns the authoritative
	// checkout. The service may recompute prices and assign a fresh id.
	Replace(ctx context.Context, lines []Line) (*Checkout, error)
}

type client struct {
	httpClient *http.Client
	baseURL    string
}

// ClientOption configures the HTTP client.
type ClientOption func(*client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *client) {
		c.httpClient = hc
	}
}

// NewClient creates a checkout API client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) Client {
	c := &client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) Create(ctx context.Context) (*Checkout, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/create_checkout", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req)
}

func (c *client) Get(ctx context.Context, id string) (*Checkout, error) {
	endpoint := c.baseURL + "/checkout/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req)
}

func (c *client) Replace(ctx context.Context, lines []Line) (*Checkout, error) {
	body, err := json.Marshal(ReplacePayload{Items: lines})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/request_checkout", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *client) do(req *http.Request) (*Checkout, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("checkout request failed with status %d", resp.StatusCode)
	}

	var co Checkout
	if err := json.NewDecoder(resp.Body).Decode(&co); err != nil {
		return nil, fmt.Errorf("failed to decode checkout response: %w", err)
	}
	return &co, nil
}
