// Package mock provides recording test doubles for the media provider
// interfaces.
package mock

import (
	"context"
	"sync"

	"github.com/ultraxas/musicbot/pkg/provider/media"
)

// Searcher is a scripted [media.Searcher] that records every query.
type Searcher struct {
	mu sync.Mutex

	// Candidates is returned by every Search call when Err is nil.
	Candidates []media.Candidate

	// Err is returned by Search when non-nil.
	Err error

	// Queries records the query strings passed to Search.
	Queries []string

	// Limits records the limit passed to Search.
	Limits []int
}

// Search records the call and returns the scripted result.
func (s *Searcher) Search(_ context.Context, query string, limit int) ([]media.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Queries = append(s.Queries, query)
	s.Limits = append(s.Limits, limit)
	if s.Err != nil {
		return nil, s.Err
	}
	out := s.Candidates
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// FetchCall records the arguments of one Fetch invocation.
type FetchCall struct {
	ID   string
	Dir  string
	Opts media.FetchOptions
}

// Fetcher is a scripted [media.Fetcher] that records every call.
type Fetcher struct {
	mu sync.Mutex

	// Result is returned by Fetch when Err is nil. When Result.Path is
	// empty, Fetch synthesises a path under the requested dir.
	Result media.Download

	// Err is returned by Fetch when non-nil.
	Err error

	// Calls records all Fetch invocations.
	Calls []FetchCall
}

// Fetch records the call and returns the scripted result.
func (f *Fetcher) Fetch(_ context.Context, id string, dir string, opts media.FetchOptions) (media.Download, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, FetchCall{ID: id, Dir: dir, Opts: opts})
	if f.Err != nil {
		return media.Download{}, f.Err
	}
	res := f.Result
	if res.Path == "" {
		res.Path = dir + "/" + id + "." + opts.Codec
	}
	return res, nil
}

// CallCount returns the number of recorded Fetch calls.
func (f *Fetcher) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
