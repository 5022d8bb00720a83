package search_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ultraxas/musicbot/internal/bot"
	botmock "github.com/ultraxas/musicbot/internal/bot/mock"
	"github.com/ultraxas/musicbot/internal/locale"
	"github.com/ultraxas/musicbot/internal/search"
	"github.com/ultraxas/musicbot/internal/session"
	"github.com/ultraxas/musicbot/pkg/provider/media"
	mediamock "github.com/ultraxas/musicbot/pkg/provider/media/mock"
	"github.com/ultraxas/musicbot/pkg/provider/metadata"
	metamock "github.com/ultraxas/musicbot/pkg/provider/metadata/mock"
)

func candidates(n int) []media.Candidate {
	out := make([]media.Candidate, n)
	for i := range out {
		out[i] = media.Candidate{
			ID:    fmt.Sprintf("id-%d", i),
			Title: fmt.Sprintf("Track %d", i+1),
		}
	}
	return out
}

type fixture struct {
	orch  *search.Orchestrator
	meta  *metamock.Provider
	media *mediamock.Searcher
	store *session.Store
	msgr  *botmock.Messenger
}

func newFixture(t *testing.T, meta metadata.Provider, metaMock *metamock.Provider) *fixture {
	t.Helper()
	f := &fixture{
		meta:  metaMock,
		media: &mediamock.Searcher{},
		store: session.NewStore(),
		msgr:  &botmock.Messenger{},
	}
	prefs := locale.NewPrefStore(locale.English)
	f.orch = search.New(meta, f.media, f.store, f.msgr,
		locale.NewLocalizer(prefs, locale.English), nil,
		search.Config{MaxResults: 100, PageSize: 10, RequestTimeout: time.Second}, nil)
	return f
}

func request() bot.SearchRequest {
	return bot.SearchRequest{ChatID: 5, UserID: 900, Query: "around the world"}
}

func TestSearchOpensSessionAndRendersFirstPage(t *testing.T) {
	t.Parallel()

	meta := &metamock.Provider{Match: metadata.Match{Title: "Around the World", Artist: "Daft Punk"}}
	f := newFixture(t, meta, meta)
	f.media.Candidates = candidates(23)

	if err := f.orch.Search(context.Background(), request()); err != nil {
		t.Fatalf("Search error: %v", err)
	}

	// The refined query, not the raw text, hits the media provider.
	if got := f.media.Queries[0]; got != "Around the World Daft Punk" {
		t.Errorf("media query = %q", got)
	}
	if got := f.media.Limits[0]; got != 100 {
		t.Errorf("limit = %d, want 100", got)
	}

	sess, ok := f.store.Get(5)
	if !ok || sess.Page != 0 || len(sess.Results) != 23 {
		t.Fatalf("session = %+v (present=%v)", sess, ok)
	}

	sent := f.msgr.Sent[len(f.msgr.Sent)-1]
	if sent.Text != "Select a result to download:" {
		t.Errorf("picker text = %q", sent.Text)
	}
	// 10 result rows, nav row, stop row.
	if len(sent.Keyboard) != 12 {
		t.Errorf("keyboard rows = %d, want 12", len(sent.Keyboard))
	}
}

func TestSearchKeepsRawQueryWhenRefinementFails(t *testing.T) {
	t.Parallel()

	meta := &metamock.Provider{Err: errors.New("deezer down")}
	f := newFixture(t, meta, meta)
	f.media.Candidates = candidates(1)

	if err := f.orch.Search(context.Background(), request()); err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if got := f.media.Queries[0]; got != "around the world" {
		t.Errorf("media query = %q, want the raw text", got)
	}
}

func TestSearchKeepsRawQueryOnNoMatch(t *testing.T) {
	t.Parallel()

	meta := &metamock.Provider{Err: metadata.ErrNoMatch}
	f := newFixture(t, meta, meta)
	f.media.Candidates = candidates(1)

	if err := f.orch.Search(context.Background(), request()); err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if got := f.media.Queries[0]; got != "around the world" {
		t.Errorf("media query = %q, want the raw text", got)
	}
}

func TestSearchWithoutRefinementProvider(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil, nil)
	f.media.Candidates = candidates(1)

	if err := f.orch.Search(context.Background(), request()); err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if got := f.media.Queries[0]; got != "around the world" {
		t.Errorf("media query = %q", got)
	}
}

func TestSearchEmptyResultOpensNoSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil, nil)

	if err := f.orch.Search(context.Background(), request()); err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if _, ok := f.store.Get(5); ok {
		t.Error("empty search opened a session")
	}
	sent := f.msgr.Sent[len(f.msgr.Sent)-1]
	if sent.Text != "No results found." {
		t.Errorf("reply = %q", sent.Text)
	}
	if sent.Keyboard != nil {
		t.Error("empty result carried a keyboard")
	}
}

func TestSearchProviderError(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil, nil)
	f.media.Err = errors.New("quota exceeded")

	if err := f.orch.Search(context.Background(), request()); err == nil {
		t.Fatal("Search returned nil on provider error")
	}
	if _, ok := f.store.Get(5); ok {
		t.Error("failed search opened a session")
	}
	sent := f.msgr.Sent[len(f.msgr.Sent)-1]
	if !strings.Contains(sent.Text, "Search error") || !strings.Contains(sent.Text, "quota exceeded") {
		t.Errorf("reply = %q", sent.Text)
	}
}

func TestSearchReplacesExistingSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil, nil)
	f.store.Create(5, candidates(3))
	f.store.SetPage(5, 0)
	f.media.Candidates = candidates(23)

	if err := f.orch.Search(context.Background(), request()); err != nil {
		t.Fatalf("Search error: %v", err)
	}
	sess, _ := f.store.Get(5)
	if len(sess.Results) != 23 || sess.Page != 0 {
		t.Errorf("session after replace = %d results page %d", len(sess.Results), sess.Page)
	}
}

func TestSearchSendFailureDropsSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil, nil)
	f.media.Candidates = candidates(3)
	f.msgr.SendErr = errors.New("blocked by user")

	if err := f.orch.Search(context.Background(), request()); err == nil {
		t.Fatal("Search returned nil on send failure")
	}
	if _, ok := f.store.Get(5); ok {
		t.Error("unreachable session kept after send failure")
	}
}
