// Package geocoding resolves free-text place names to coordinates through a
// Nominatim compatible search API.
package geocoding

import (
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

	"golang.org/x/time/rate"
)

// ErrEmptyQuery is returned for a blank search string.
var ErrEmptyQuery = errors.New("query is required")

const defaultLimit = 5

// Place is one search result.
type Place struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Country   string  `json:"country,omitempty"`
}

// Client calls the search endpoint, waiting on a shared limiter before each
// request. Public Nominatim allows one request per second per application.
type Client struct {
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewClient creates a geocoding client. ratePerSecond <= 0 means one request per second.
func NewClient(baseURL, userAgent string, ratePerSecond float64) *Client {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// nominatimResult is the subset of a jsonv2 search hit we use.
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Address     struct {
		Country string `json:"country"`
	} `json:"address"`
}

// Search returns up to five places matching q.
func (c *Client) Search(ctx context.Context, q string) ([]Place, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrEmptyQuery
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(defaultLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call geocoder: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d: %s", resp.StatusCode, string(body))
	}

	var hits []nominatimResult
	if err := json.Unmarshal(body, &hits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	places := make([]Place, 0, len(hits))
	for _, h := range hits {
		lat, err1 := strconv.ParseFloat(h.Lat, 64)
		lng, err2 := strconv.ParseFloat(h.Lon, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		name := h.DisplayName
		if name == "" {
			name = h.Name
		}
		places = append(places, Place{
			Name:      name,
			Latitude:  lat,
			Longitude: lng,
			Country:   h.Address.Country,
		})
	}
	return places, nil
}
