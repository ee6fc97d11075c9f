package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultKeyword is the category filter applied when a nearby search is issued
// without an explicit keyword.
const DefaultKeyword = "bar|restaurant"

// Field projections sent to the details endpoint. Kept minimal and stable to
// bound response payload size.
const (
	detailsFields = "place_id,name,formatted_address,geometry,formatted_phone_number,website,opening_hours"
	reviewsFields = "name,rating,reviews,user_ratings_total"
)

// ProviderError reports an upstream failure: timeout, non-2xx status, or an
// undecodable body. Callers are expected to recover from it locally.
type ProviderError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("places: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("places: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Client issues requests against the Google Places web service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a places client with a bounded request timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// NearbySearch looks up places around (lat, lng) within radiusMeters. An empty
// keyword falls back to DefaultKeyword.
func (c *Client) NearbySearch(ctx context.Context, lat, lng float64, radiusMeters int, keyword string) (*SearchResponse, error) {
	if keyword == "" {
		keyword = DefaultKeyword
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("location", formatLocation(lat, lng))
	q.Set("radius", strconv.Itoa(radiusMeters))
	q.Set("keyword", keyword)

	var resp SearchResponse
	if err := c.getJSON(ctx, "nearby search", "/place/nearbysearch/json", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlaceDetails fetches the fixed minimal field projection for one place.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*DetailsResponse, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("place_id", placeID)
	q.Set("fields", detailsFields)

	var resp DetailsResponse
	if err := c.getJSON(ctx, "place details", "/place/details/json", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlaceReviews fetches rating and review data for one place.
func (c *Client) PlaceReviews(ctx context.Context, placeID string) (*ReviewsResponse, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("place_id", placeID)
	q.Set("fields", reviewsFields)

	var resp ReviewsResponse
	if err := c.getJSON(ctx, "place reviews", "/place/details/json", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TextSearch is the free-text variant of NearbySearch.
func (c *Client) TextSearch(ctx context.Context, query string, lat, lng float64, radiusMeters int) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("query", query)
	q.Set("location", formatLocation(lat, lng))
	q.Set("radius", strconv.Itoa(radiusMeters))

	var resp SearchResponse
	if err := c.getJSON(ctx, "text search", "/place/textsearch/json", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, q url.Values, out any) error {
	u := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &ProviderError{Op: op, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ProviderError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &ProviderError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response status")}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}

	return nil
}

func formatLocation(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}
