// Package deezer implements [metadata.Provider] against the public Deezer
// search API. No authentication is required for track search.
package deezer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/antzucaro/matchr"

	"github.com/ultraxas/musicbot/pkg/provider/metadata"
)

// defaultBaseURL is the public Deezer API endpoint.
const defaultBaseURL = "https://api.deezer.com"

// rankedHits is how many top hits are compared against the query before
// picking a winner. Deezer's own ranking is good but favours popularity over
// textual closeness, so a small similarity re-rank helps odd queries.
const rankedHits = 5

// Provider queries the Deezer search API.
type Provider struct {
	baseURL string
	client  *http.Client
}

// Option configures a [Provider].
type Option func(*Provider)

// WithBaseURL overrides the API endpoint. Used in tests against httptest
// servers.
func WithBaseURL(u string) Option {
	return func(p *Provider) { p.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.client = c }
}

// New creates a Deezer provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// searchResponse mirrors the subset of the Deezer payload we consume.
type searchResponse struct {
	Data []struct {
		Title  string `json:"title"`
		Artist struct {
			Name string `json:"name"`
		} `json:"artist"`
	} `json:"data"`
}

// BestMatch searches Deezer and returns the hit whose "title artist" text is
// closest to the query by Jaro-Winkler similarity among the top hits.
func (p *Provider) BestMatch(ctx context.Context, query string) (metadata.Match, error) {
	u := fmt.Sprintf("%s/search?q=%s", p.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return metadata.Match{}, fmt.Errorf("deezer: build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return metadata.Match{}, fmt.Errorf("deezer: search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return metadata.Match{}, fmt.Errorf("deezer: search: unexpected status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return metadata.Match{}, fmt.Errorf("deezer: decode response: %w", err)
	}
	if len(body.Data) == 0 {
		return metadata.Match{}, metadata.ErrNoMatch
	}

	hits := body.Data
	if len(hits) > rankedHits {
		hits = hits[:rankedHits]
	}

	want := strings.ToLower(query)
	best := 0
	bestScore := -1.0
	for i, h := range hits {
		got := strings.ToLower(strings.TrimSpace(h.Title + " " + h.Artist.Name))
		score := matchr.JaroWinkler(want, got, false)
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	return metadata.Match{
		Title:  hits[best].Title,
		Artist: hits[best].Artist.Name,
	}, nil
}
