package restodex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	timeout    time.Duration
	httpClient *http.Client
}

// WithTimeout sets the per-request timeout. Default: 30s.
// Ignored when a custom HTTP client is supplied.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// Client is the restodex API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the API at baseURL (scheme and host, no trailing slash).
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("restodex: base URL required")
	}

	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}, nil
}

// List returns a page of the full directory.
func (c *Client) List(ctx context.Context, opts *ListOptions) (RestaurantPage, error) {
	return c.page(ctx, "/api/v1/restaurants", listValues(opts))
}

// Search returns restaurants whose name or cuisine contains q.
func (c *Client) Search(ctx context.Context, q string, opts *ListOptions) (RestaurantPage, error) {
	v := listValues(opts)
	v.Set("q", q)
	return c.page(ctx, "/api/v1/restaurants/search", v)
}

// Filter returns restaurants matching cuisine and/or borough substrings.
// Empty strings skip the corresponding filter.
func (c *Client) Filter(ctx context.Context, cuisine, borough string, opts *ListOptions) (RestaurantPage, error) {
	v := listValues(opts)
	if cuisine != "" {
		v.Set("cuisine", cuisine)
	}
	if borough != "" {
		v.Set("borough", borough)
	}
	return c.page(ctx, "/api/v1/restaurants/filter", v)
}

// ByScoreRange returns restaurants whose average grade score falls in
// [min, max], ordered by ascending average.
func (c *Client) ByScoreRange(ctx context.Context, min, max float64, opts *ListOptions) (RestaurantPage, error) {
	v := listValues(opts)
	v.Set("min", strconv.FormatFloat(min, 'f', -1, 64))
	v.Set("max", strconv.FormatFloat(max, 'f', -1, 64))
	return c.page(ctx, "/api/v1/restaurants/score-range", v)
}

// Nearby returns restaurants within radiusMeters of (lng, lat), ordered
// by ascending distance.
func (c *Client) Nearby(ctx context.Context, lng, lat float64, radiusMeters int, opts *ListOptions) (RestaurantPage, error) {
	v := listValues(opts)
	v.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	v.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	if radiusMeters > 0 {
		v.Set("radius", strconv.Itoa(radiusMeters))
	}
	return c.page(ctx, "/api/v1/restaurants/nearby", v)
}

// Get returns a restaurant by its storage identifier.
func (c *Client) Get(ctx context.Context, id string) (Restaurant, error) {
	var out Restaurant
	err := c.do(ctx, http.MethodGet, "/api/v1/restaurants/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

// GetByBusinessID returns a restaurant by its business identifier.
func (c *Client) GetByBusinessID(ctx context.Context, businessID int) (Restaurant, error) {
	var out Restaurant
	err := c.do(ctx, http.MethodGet, "/api/v1/restaurants/business-id/"+strconv.Itoa(businessID), nil, nil, &out)
	return out, err
}

// Create adds a restaurant to the directory.
func (c *Client) Create(ctx context.Context, in RestaurantInput) (Restaurant, error) {
	var out Restaurant
	err := c.do(ctx, http.MethodPost, "/api/v1/restaurants", nil, in, &out)
	return out, err
}

// Update replaces every mutable field of a restaurant.
func (c *Client) Update(ctx context.Context, id string, in RestaurantInput) (Restaurant, error) {
	var out Restaurant
	err := c.do(ctx, http.MethodPut, "/api/v1/restaurants/"+url.PathEscape(id), nil, in, &out)
	return out, err
}

// PartialUpdate applies a patch; untouched fields keep their values.
func (c *Client) PartialUpdate(ctx context.Context, id string, p RestaurantPatch) (Restaurant, error) {
	var out Restaurant
	err := c.do(ctx, http.MethodPatch, "/api/v1/restaurants/"+url.PathEscape(id), nil, p, &out)
	return out, err
}

// Delete removes a restaurant by its storage identifier.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/restaurants/"+url.PathEscape(id), nil, nil, nil)
}

// Stats returns directory-level counters.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	err := c.do(ctx, http.MethodGet, "/api/v1/restaurants/stats", nil, nil, &out)
	return out, err
}

func (c *Client) page(ctx context.Context, path string, query url.Values) (RestaurantPage, error) {
	var out RestaurantPage
	err := c.do(ctx, http.MethodGet, path, query, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("restodex: encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("restodex: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("restodex: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("restodex: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Code       string   `json:"code"`
		Message    string   `json:"message"`
		Violations []string `json:"violations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
		apiErr.Violations = payload.Violations
	}
	if apiErr.Code == "" {
		apiErr.Code = resp.Status
	}
	return apiErr
}

func listValues(opts *ListOptions) url.Values {
	v := url.Values{}
	if opts == nil {
		return v
	}
	if opts.Page > 0 {
		v.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		v.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.SortBy != "" {
		v.Set("sort_by", opts.SortBy)
	}
	if opts.Order != "" {
		v.Set("order", opts.Order)
	}
	return v
}
