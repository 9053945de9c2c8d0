// Package league fetches the game's league list and caches it in the local
// store with a freshness TTL.
package league

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"divistash/internal/store"
)

// Client fetches the league list from the remote API.
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

// leagueEntry mirrors the wire format of the league endpoint.
type leagueEntry struct {
	ID      string    `json:"id"`
	Realm   string    `json:"realm"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// Fetch retrieves the current league list.
func (c *Client) Fetch(ctx context.Context) ([]store.League, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leagues: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("league endpoint returned %s", resp.Status)
	}

	var entries []leagueEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode leagues: %w", err)
	}

	now := time.Now().UTC()
	leagues := make([]store.League, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		leagues = append(leagues, store.League{
			ID:        e.ID,
			Realm:     e.Realm,
			StartAt:   e.StartAt,
			EndAt:     e.EndAt,
			FetchedAt: now,
		})
	}
	return leagues, nil
}
