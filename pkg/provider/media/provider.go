// Package media defines the provider interfaces for searching and fetching
// audio from an external media source (YouTube in the default build).
//
// Two independent capabilities are modelled, mirroring the two ways the bot
// talks to the provider: a fast, flattened text search that yields candidate
// tracks with minimal metadata, and an identifier-based fetch that resolves a
// candidate to a transcoded local audio file.
package media

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by [Fetcher.Fetch] when the identifier does not
// resolve to any playable media.
var ErrNotFound = errors.New("media: not found")

// Candidate is one entry of a search result list. The ID is the provider's
// stable identifier (a YouTube video ID) and is all that is needed to fetch
// the audio later. Flattened search does not guarantee full metadata, so
// Uploader and Duration may be zero.
type Candidate struct {
	// ID is the stable provider identifier used to resolve a download.
	ID string

	// Title is the display title. May be empty for broken provider entries;
	// renderers must substitute a placeholder.
	Title string

	// Uploader is the channel or artist name, when known.
	Uploader string

	// Duration is the track length, when known.
	Duration time.Duration
}

// Download describes a fetched audio artifact on the local filesystem.
// The caller owns Path and must remove it (or its parent directory) when done.
type Download struct {
	// Path is the absolute path of the transcoded audio file.
	Path string

	// Title is the resolved track title (may differ from the search title).
	Title string

	// Uploader is the resolved uploader/performer name.
	Uploader string
}

// Searcher performs a flattened text search against the media provider.
// Implementations must be safe for concurrent use.
type Searcher interface {
	// Search returns up to limit candidates ranked by provider relevance.
	// An empty result is not an error.
	Search(ctx context.Context, query string, limit int) ([]Candidate, error)
}

// FetchOptions selects the audio extraction parameters for a fetch. These are
// requested parameters, not negotiated: the provider transcodes to exactly
// this codec and bitrate.
type FetchOptions struct {
	// Codec is the target audio codec/container (e.g. "mp3").
	Codec string

	// BitrateKbps is the target bitrate in kbit/s (e.g. 192).
	BitrateKbps int
}

// Fetcher resolves a candidate identifier to a local audio file.
// Implementations must be safe for concurrent use and must write each fetch
// to a distinct path under dir so that simultaneous fetches never collide.
type Fetcher interface {
	// Fetch downloads and transcodes the audio for id into dir.
	Fetch(ctx context.Context, id string, dir string, opts FetchOptions) (Download, error)
}
