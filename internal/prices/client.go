// Package prices fetches divination card price snapshots and merges them
// into the local cache.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"divistash/internal/store"
)

// Client fetches card price overviews from the remote API.
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient returns a Client with the given endpoint and timeout.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		UserAgent:  userAgent,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// overview mirrors the wire format of the price endpoint.
type overview struct {
	Lines []struct {
		Name         string  `json:"name"`
		ChaosValue   float64 `json:"chaosValue"`
		ListingCount int     `json:"listingCount"`
	} `json:"lines"`
}

// Fetch retrieves the divination card price snapshot for a league.
func (c *Client) Fetch(ctx context.Context, league string) ([]store.CardPrice, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid price endpoint: %w", err)
	}
	q := u.Query()
	q.Set("league", league)
	q.Set("type", "DivinationCard")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price endpoint returned %s", resp.Status)
	}

	var body overview
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode prices: %w", err)
	}

	now := time.Now().UTC()
	prices := make([]store.CardPrice, 0, len(body.Lines))
	for _, line := range body.Lines {
		if line.Name == "" {
			continue
		}
		prices = append(prices, store.CardPrice{
			League:       league,
			Card:         line.Name,
			ChaosValue:   line.ChaosValue,
			ListingCount: line.ListingCount,
			FetchedAt:    now,
		})
	}
	return prices, nil
}
