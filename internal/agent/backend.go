// Package agent implements the copywriter pipeline: an LLM with catalog
// tools that drafts editorial copy for the newest magazine issue.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nnmag/storefront/internal/domain/dto"
)

// BackendClient reads the issue catalog through the storefront backend's
// public endpoints.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendClient creates a client for the backend at baseURL.
func NewBackendClient(baseURL string) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IssueCount returns the number of published issues.
func (c *BackendClient) IssueCount(ctx context.Context) (int, error) {
	var count dto.IssueCountResponse
	if err := c.getJSON(ctx, "/issue/count", &count); err != nil {
		return 0, err
	}
	return count.Count, nil
}

// IssueData returns the editorial metadata of the given issue.
func (c *BackendClient) IssueData(ctx context.Context, number int) (*dto.IssueDataResponse, error) {
	var data dto.IssueDataResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/issue_data/%d", number), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// LatestIssueData returns the editorial metadata of the newest issue.
func (c *BackendClient) LatestIssueData(ctx context.Context) (*dto.IssueDataResponse, error) {
	count, err := c.IssueCount(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("no issues published yet")
	}
	return c.IssueData(ctx, count)
}

func (c *BackendClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}
