// Package mock provides a scripted test double for [metadata.Provider].
package mock

import (
	"context"
	"sync"

	"github.com/ultraxas/musicbot/pkg/provider/metadata"
)

// Provider is a scripted [metadata.Provider] that records every query.
type Provider struct {
	mu sync.Mutex

	// Match is returned by BestMatch when Err is nil.
	Match metadata.Match

	// Err is returned by BestMatch when non-nil.
	Err error

	// Queries records the query strings passed to BestMatch.
	Queries []string
}

// BestMatch records the call and returns the scripted result.
func (p *Provider) BestMatch(_ context.Context, query string) (metadata.Match, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Queries = append(p.Queries, query)
	if p.Err != nil {
		return metadata.Match{}, p.Err
	}
	return p.Match, nil
}

// CallCount returns the number of recorded BestMatch calls.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Queries)
}
