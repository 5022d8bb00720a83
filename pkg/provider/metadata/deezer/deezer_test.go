package deezer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ultraxas/musicbot/pkg/provider/metadata"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		if r.URL.Query().Get("q") == "" {
			t.Error("missing q parameter")
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBestMatchPicksClosestHit(t *testing.T) {
	t.Parallel()

	// The first hit is Deezer's popularity winner but textually further from
	// the query than the second.
	srv := newServer(t, http.StatusOK, `{"data":[
		{"title":"Around the World (La La La La La)","artist":{"name":"ATC"}},
		{"title":"Around the World","artist":{"name":"Daft Punk"}},
		{"title":"Around the World in 80 Days","artist":{"name":"Orchestra"}}
	]}`)

	p := New(WithBaseURL(srv.URL))
	match, err := p.BestMatch(context.Background(), "around the world daft punk")
	if err != nil {
		t.Fatalf("BestMatch error: %v", err)
	}
	if match.Title != "Around the World" || match.Artist != "Daft Punk" {
		t.Errorf("match = %+v", match)
	}
}

func TestBestMatchEmptyDataIsNoMatch(t *testing.T) {
	t.Parallel()

	srv := newServer(t, http.StatusOK, `{"data":[]}`)
	p := New(WithBaseURL(srv.URL))

	_, err := p.BestMatch(context.Background(), "zzzzzz")
	if !errors.Is(err, metadata.ErrNoMatch) {
		t.Errorf("err = %v, want ErrNoMatch", err)
	}
}

func TestBestMatchUnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := newServer(t, http.StatusBadGateway, ``)
	p := New(WithBaseURL(srv.URL))

	_, err := p.BestMatch(context.Background(), "query")
	if err == nil || errors.Is(err, metadata.ErrNoMatch) {
		t.Errorf("err = %v, want transport error", err)
	}
}

func TestBestMatchContextCancelled(t *testing.T) {
	t.Parallel()

	srv := newServer(t, http.StatusOK, `{"data":[]}`)
	p := New(WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.BestMatch(ctx, "query"); err == nil {
		t.Error("BestMatch succeeded with cancelled context")
	}
}
