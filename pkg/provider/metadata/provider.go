// Package metadata defines the lookup provider that resolves free text to a
// canonical track title/artist pair. The lookup is a best-effort refinement
// step for search queries: callers treat any failure, including
// [ErrNoMatch], as "keep the original text".
package metadata

import (
	"context"
	"errors"
	"strings"
)

// ErrNoMatch is the valid, non-error-ish outcome of a lookup that found
// nothing. Providers return it instead of fabricating a match.
var ErrNoMatch = errors.New("metadata: no match")

// Match is the canonical form of a track as known to the metadata provider.
type Match struct {
	Title  string
	Artist string
}

// Query renders the match as a refined search query, "{title} {artist}".
func (m Match) Query() string {
	return strings.TrimSpace(m.Title + " " + m.Artist)
}

// Provider resolves free text to its best canonical match.
// Implementations must be safe for concurrent use.
type Provider interface {
	// BestMatch returns the canonical track for the query, or [ErrNoMatch]
	// when the provider has no opinion.
	BestMatch(ctx context.Context, query string) (Match, error)
}
