// =============================================================================
// Sales Analytics - Product Catalog Client
// =============================================================================
//
// This module fetches the external product catalog used for enrichment.
// The catalog service is treated as an untrusted, best-effort collaborator:
// the fetch happens once per run, with no retry, and every failure mode
// (network, non-success status, malformed body) surfaces as an error that
// the caller degrades to an empty catalog.
//
// The endpoint, product limit, and timeout are explicit configuration so
// tests can point the client at a local double.
//
// =============================================================================

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rgupta-dev/sales-analytics/internal/config"
	"github.com/rgupta-dev/sales-analytics/internal/types"
)

// UnknownBrand is the sentinel used when the catalog omits a brand.
const UnknownBrand = "Unknown"

// Client fetches product data from the catalog service.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
}

// NewClient creates a catalog client from configuration.
func NewClient(settings config.CatalogSettings) *Client {
	return &Client{
		baseURL: settings.BaseURL,
		limit:   settings.Limit,
		httpClient: &http.Client{
			Timeout: time.Duration(settings.TimeoutSeconds) * time.Second,
		},
	}
}

// rawProduct mirrors the catalog service's JSON schema. Brand and rating
// are optional in the upstream payload.
type rawProduct struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Brand    string   `json:"brand"`
	Price    float64  `json:"price"`
	Rating   *float64 `json:"rating"`
}

// productsResponse is the top-level catalog payload.
type productsResponse struct {
	Products []rawProduct `json:"products"`
}

// FetchAll fetches up to the configured number of products and normalizes
// them into catalog entries.
//
// RETURNS:
//   - The normalized entries.
//   - An error for any fetch or decode failure. The caller continues with
//     an empty catalog; this client never retries.
func (c *Client) FetchAll(ctx context.Context) ([]types.CatalogEntry, error) {
	requestURL, err := c.buildURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode)
	}

	var payload productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	entries := make([]types.CatalogEntry, 0, len(payload.Products))
	for _, p := range payload.Products {
		entries = append(entries, normalize(p))
	}

	return entries, nil
}

// buildURL composes the catalog request URL with the product limit.
func (c *Client) buildURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid catalog base URL %q: %w", c.baseURL, err)
	}

	q := u.Query()
	q.Set("limit", strconv.Itoa(c.limit))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// normalize converts a raw product into a catalog entry, applying the
// brand fallback.
func normalize(p rawProduct) types.CatalogEntry {
	brand := p.Brand
	if brand == "" {
		brand = UnknownBrand
	}

	return types.CatalogEntry{
		ID:       p.ID,
		Title:    p.Title,
		Category: p.Category,
		Brand:    brand,
		Price:    p.Price,
		Rating:   p.Rating,
	}
}

// BuildIndex builds the read-only lookup from numeric product id to the
// metadata subset used by the enricher.
func BuildIndex(entries []types.CatalogEntry) types.CatalogIndex {
	index := make(types.CatalogIndex, len(entries))
	for _, entry := range entries {
		index[entry.ID] = types.ProductInfo{
			Title:    entry.Title,
			Category: entry.Category,
			Brand:    entry.Brand,
			Rating:   entry.Rating,
		}
	}
	return index
}
