// Package tmdb is a minimal client for The Movie Database search API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MovieResult is the subset of a TMDB search hit kept for enrichment.
type MovieResult struct {
	Adult            bool    `json:"adult"`
	BackdropPath     string  `json:"backdrop_path"`
	ID               int64   `json:"id"`
	OriginalLanguage string  `json:"original_language"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	Popularity       float64 `json:"popularity"`
	Video            bool    `json:"video"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
}

type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: apiToken,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchMovie returns the first search hit for the title, optionally
// narrowed by release year. The bool reports whether anything matched.
func (c *Client) SearchMovie(ctx context.Context, title, year string) (MovieResult, bool, error) {
	q := url.Values{}
	q.Set("query", title)
	q.Set("include_adult", "false")
	if strings.TrimSpace(year) != "" {
		q.Set("year", year)
	}
	endpoint := fmt.Sprintf("%s/search/movie?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return MovieResult{}, false, fmt.Errorf("build tmdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return MovieResult{}, false, fmt.Errorf("tmdb search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return MovieResult{}, false, fmt.Errorf("tmdb search: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Results []MovieResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return MovieResult{}, false, fmt.Errorf("decode tmdb response: %w", err)
	}
	if len(body.Results) == 0 {
		return MovieResult{}, false, nil
	}
	return body.Results[0], true, nil
}
