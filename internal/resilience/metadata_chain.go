package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ultraxas/musicbot/pkg/provider/metadata"
)

// ErrChainExhausted is returned when every provider in a [MetadataChain]
// failed or had an open breaker.
var ErrChainExhausted = errors.New("resilience: all metadata providers failed")

// chainEntry pairs a named metadata provider with its breaker.
type chainEntry struct {
	name     string
	provider metadata.Provider
	breaker  *Breaker
}

// MetadataChain is a [metadata.Provider] that tries an ordered list of
// providers, skipping any whose breaker is open. [metadata.ErrNoMatch] is an
// answer, not a failure: it is returned immediately without trying the next
// provider and does not count against the breaker.
type MetadataChain struct {
	entries []chainEntry
}

// NewMetadataChain creates an empty chain with the given breaker config
// applied to every provider added later.
func NewMetadataChain() *MetadataChain {
	return &MetadataChain{}
}

// Add appends a named provider with its own breaker built from cfg.
func (c *MetadataChain) Add(name string, p metadata.Provider, cfg BreakerConfig) {
	c.entries = append(c.entries, chainEntry{
		name:     name,
		provider: p,
		breaker:  NewBreaker(cfg),
	})
}

// Len returns the number of providers in the chain.
func (c *MetadataChain) Len() int { return len(c.entries) }

// BestMatch implements [metadata.Provider] over the chain.
func (c *MetadataChain) BestMatch(ctx context.Context, query string) (metadata.Match, error) {
	if len(c.entries) == 0 {
		return metadata.Match{}, metadata.ErrNoMatch
	}

	var lastErr error
	for _, e := range c.entries {
		var match metadata.Match
		err := e.breaker.Do(func() error {
			var innerErr error
			match, innerErr = e.provider.BestMatch(ctx, query)
			if errors.Is(innerErr, metadata.ErrNoMatch) {
				// A clean empty answer is provider health, not failure.
				return nil
			}
			return innerErr
		})
		if err == nil {
			if match == (metadata.Match{}) {
				return metadata.Match{}, metadata.ErrNoMatch
			}
			return match, nil
		}

		lastErr = err
		if errors.Is(err, ErrOpen) {
			slog.Debug("metadata provider skipped, circuit open", "provider", e.name)
		} else {
			slog.Warn("metadata provider failed, trying next", "provider", e.name, "err", err)
		}
	}

	return metadata.Match{}, fmt.Errorf("%w: %w", ErrChainExhausted, lastErr)
}
