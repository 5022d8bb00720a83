// Package ytsearch implements [media.Searcher] using the lightweight scraping
// client from github.com/ppalone/ytsearch. It is faster than a yt-dlp search
// but returns thinner metadata, which is fine for the picker list.
package ytsearch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ppalone/ytsearch"

	"github.com/ultraxas/musicbot/pkg/provider/media"
)

// Provider wraps a ytsearch client.
type Provider struct {
	client *ytsearch.Client
}

// New creates a Provider. httpClient may be nil to use http.DefaultClient.
func New(httpClient *http.Client) *Provider {
	return &Provider{client: ytsearch.NewClient(httpClient)}
}

// Search returns up to limit candidates in provider rank order. Entries
// without a video ID are dropped.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]media.Candidate, error) {
	if limit <= 0 {
		return nil, nil
	}

	res, err := p.client.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ytsearch: search %q: %w", query, err)
	}

	out := make([]media.Candidate, 0, limit)
	seen := make(map[string]bool, limit)
	for _, v := range res.Results {
		if v.VideoID == "" || seen[v.VideoID] {
			continue
		}
		seen[v.VideoID] = true
		out = append(out, media.Candidate{
			ID:    v.VideoID,
			Title: v.Title,
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
