// Package ytmusic implements [metadata.Provider] using YouTube Music track
// search. It serves as a keyless fallback when the primary metadata service
// is unavailable.
package ytmusic

import (
	"context"
	"fmt"

	"github.com/raitonoberu/ytmusic"

	"github.com/ultraxas/musicbot/pkg/provider/metadata"
)

// Provider performs track searches against YouTube Music.
// The zero value is ready to use.
type Provider struct{}

// New creates a Provider.
func New() *Provider {
	return &Provider{}
}

// BestMatch returns the first track hit as the canonical match. The ytmusic
// client has no context plumbing, so cancellation is checked before and after
// the blocking call.
func (p *Provider) BestMatch(ctx context.Context, query string) (metadata.Match, error) {
	if err := ctx.Err(); err != nil {
		return metadata.Match{}, err
	}

	search := ytmusic.TrackSearch(query)
	result, err := search.Next()
	if err != nil {
		return metadata.Match{}, fmt.Errorf("ytmusic: search %q: %w", query, err)
	}
	if err := ctx.Err(); err != nil {
		return metadata.Match{}, err
	}

	for _, t := range result.Tracks {
		if t.VideoID == "" || t.Title == "" {
			continue
		}
		m := metadata.Match{Title: t.Title}
		if len(t.Artists) > 0 {
			m.Artist = t.Artists[0].Name
		}
		return m, nil
	}
	return metadata.Match{}, metadata.ErrNoMatch
}
