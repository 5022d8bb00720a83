package bot_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ultraxas/musicbot/internal/bot"
	"github.com/ultraxas/musicbot/internal/session"
	"github.com/ultraxas/musicbot/pkg/provider/media"
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

func TestResultKeyboardFirstPage(t *testing.T) {
	t.Parallel()

	p := session.Pager{Results: candidates(23), Page: 0, PageSize: 10}
	kb := bot.ResultKeyboard(5, p)

	// 10 result rows, one nav row (Next only), one stop row.
	if len(kb) != 12 {
		t.Fatalf("rows = %d, want 12", len(kb))
	}
	if got := kb[0][0].Text; got != "1. Track 1" {
		t.Errorf("first button text = %q", got)
	}
	if got := kb[0][0].Data; got != "download|5|0" {
		t.Errorf("first button data = %q", got)
	}
	if got := kb[9][0].Data; got != "download|5|9" {
		t.Errorf("last result data = %q", got)
	}

	nav := kb[10]
	if len(nav) != 1 || nav[0].Data != "page|5|1" {
		t.Errorf("nav row = %+v, want single Next to page 1", nav)
	}
	stop := kb[11]
	if len(stop) != 1 || stop[0].Data != "stop|5|0" {
		t.Errorf("stop row = %+v", stop)
	}
}

func TestResultKeyboardLastPage(t *testing.T) {
	t.Parallel()

	p := session.Pager{Results: candidates(23), Page: 2, PageSize: 10}
	kb := bot.ResultKeyboard(5, p)

	// 3 result rows, one nav row (Prev only), one stop row.
	if len(kb) != 5 {
		t.Fatalf("rows = %d, want 5", len(kb))
	}
	if got := kb[0][0].Text; got != "21. Track 21" {
		t.Errorf("first button text = %q, numbering must be absolute", got)
	}
	if got := kb[2][0].Data; got != "download|5|22" {
		t.Errorf("last result data = %q", got)
	}
	nav := kb[3]
	if len(nav) != 1 || nav[0].Data != "page|5|1" {
		t.Errorf("nav row = %+v, want single Prev to page 1", nav)
	}
}

func TestResultKeyboardMiddlePageHasBothNav(t *testing.T) {
	t.Parallel()

	p := session.Pager{Results: candidates(23), Page: 1, PageSize: 10}
	kb := bot.ResultKeyboard(5, p)

	nav := kb[10]
	if len(nav) != 2 {
		t.Fatalf("nav row = %+v, want Prev and Next", nav)
	}
	if nav[0].Data != "page|5|0" || nav[1].Data != "page|5|2" {
		t.Errorf("nav data = %q, %q", nav[0].Data, nav[1].Data)
	}
}

func TestResultKeyboardUntitledAndTruncation(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", 100)
	p := session.Pager{
		Results: []media.Candidate{
			{ID: "a"},
			{ID: "b", Title: long},
		},
		PageSize: 10,
	}
	kb := bot.ResultKeyboard(1, p)

	if got := kb[0][0].Text; got != "1. (untitled)" {
		t.Errorf("untitled button = %q", got)
	}
	runes := []rune(kb[1][0].Text)
	if len(runes) != 64 {
		t.Errorf("truncated button runes = %d, want 64", len(runes))
	}
	if runes[len(runes)-1] != '…' {
		t.Errorf("truncated button does not end in ellipsis: %q", kb[1][0].Text)
	}
}

func TestResultKeyboardSinglePageHasNoNav(t *testing.T) {
	t.Parallel()

	p := session.Pager{Results: candidates(4), PageSize: 10}
	kb := bot.ResultKeyboard(9, p)

	// 4 result rows plus the stop row only.
	if len(kb) != 5 {
		t.Fatalf("rows = %d, want 5", len(kb))
	}
	if kb[4][0].Data != "stop|9|0" {
		t.Errorf("final row = %+v, want stop", kb[4])
	}
}
