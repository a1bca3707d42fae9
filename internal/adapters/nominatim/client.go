// Package nominatim implements ports.Geocoder against the OpenStreetMap
// Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hyfac/catalog/internal/core/domain"
	"github.com/hyfac/catalog/internal/pkg/metrics"
)

// Client issues one search request per Geocode call. The caller is
// responsible for pacing requests to the provider's rate limit; the client
// itself never retries.
type Client struct {
	baseURL      string
	userAgent    string
	countryCodes string
	http         *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Nominatim client. countryCodes restricts results
// (e.g. "dz"); empty means no restriction.
func New(baseURL, userAgent, countryCodes string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:      baseURL,
		userAgent:    userAgent,
		countryCodes: countryCodes,
		http:         &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResult is the subset of the Nominatim response we consume. lat/lon
// are returned as strings by the API.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-text query to a coordinate. An empty response is
// domain.ErrNoResult; network and decode failures are returned as-is. All of
// them mean the same thing to callers: fall back.
func (c *Client) Geocode(ctx context.Context, query string) (*domain.GeoPoint, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	if c.countryCodes != "" {
		params.Set("countrycodes", c.countryCodes)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	metrics.GeocodeRequests.Inc()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: unexpected status %s", resp.Status)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("nominatim: decode: %w", err)
	}
	if len(results) == 0 {
		return nil, domain.ErrNoResult
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: parse lat %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: parse lon %q: %w", results[0].Lon, err)
	}

	return &domain.GeoPoint{Lat: lat, Lng: lng}, nil
}
