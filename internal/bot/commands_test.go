package bot_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ultraxas/musicbot/internal/bot"
	"github.com/ultraxas/musicbot/internal/bot/mock"
	"github.com/ultraxas/musicbot/internal/locale"
	"github.com/ultraxas/musicbot/internal/session"
)

type commandsFixture struct {
	cmds     *bot.Commands
	store    *session.Store
	prefs    *locale.PrefStore
	msgr     *mock.Messenger
	searcher *mock.Searcher
}

func newCommandsFixture(t *testing.T) *commandsFixture {
	t.Helper()
	f := &commandsFixture{
		store:    session.NewStore(),
		prefs:    locale.NewPrefStore(locale.English),
		msgr:     &mock.Messenger{},
		searcher: &mock.Searcher{},
	}
	loc := locale.NewLocalizer(f.prefs, locale.English)
	f.cmds = bot.NewCommands(f.msgr, loc, f.prefs, f.store, f.searcher, nil, nil)
	return f
}

func msg(text string) bot.MessageEvent {
	return bot.MessageEvent{ChatID: 5, SenderID: 900, Text: text}
}

func (f *commandsFixture) lastSent(t *testing.T) mock.SentMessage {
	t.Helper()
	if len(f.msgr.Sent) == 0 {
		t.Fatal("no message sent")
	}
	return f.msgr.Sent[len(f.msgr.Sent)-1]
}

func TestStartGreets(t *testing.T) {
	t.Parallel()

	f := newCommandsFixture(t)
	f.cmds.HandleStart(context.Background(), msg("/start"))

	sent := f.lastSent(t)
	if !strings.Contains(sent.Text, "Welcome") {
		t.Errorf("greeting = %q", sent.Text)
	}
	if sent.ChatID != 5 {
		t.Errorf("chat = %d, want 5", sent.ChatID)
	}
}

func TestLanguageMenuListsAllLanguages(t *testing.T) {
	t.Parallel()

	f := newCommandsFixture(t)
	f.cmds.HandleLanguage(context.Background(), msg("/language"))

	sent := f.lastSent(t)
	for _, want := range []string{"English", "Français", "Español", "Twi"} {
		if !strings.Contains(sent.Text, want) {
			t.Errorf("menu missing %q: %q", want, sent.Text)
		}
	}
}

func TestTextSelectsLanguage(t *testing.T) {
	t.Parallel()

	f := newCommandsFixture(t)
	f.cmds.HandleText(context.Background(), msg("Français"))

	if got := f.prefs.Get(900); got != locale.French {
		t.Errorf("stored language = %q, want french", got)
	}
	// The confirmation is already rendered in the new language.
	sent := f.lastSent(t)
	if sent.Text != "Langue définie sur : Français" {
		t.Errorf("confirmation = %q", sent.Text)
	}
	if len(f.searcher.Requests) != 0 {
		t.Error("language selection triggered a search")
	}
}

func TestTextStartsSearch(t *testing.T) {
	t.Parallel()

	f := newCommandsFixture(t)
	f.cmds.HandleText(context.Background(), msg("  daft punk around the world  "))

	if len(f.searcher.Requests) != 1 {
		t.Fatalf("searches = %d, want 1", len(f.searcher.Requests))
	}
	req := f.searcher.Requests[0]
	if req.Query != "daft punk around the world" {
		t.Errorf("query = %q, want trimmed text", req.Query)
	}
	if req.ChatID != 5 || req.UserID != 900 {
		t.Errorf("request = %+v", req)
	}
}

func TestTextIgnoresEmpty(t *testing.T) {
	t.Parallel()

	f := newCommandsFixture(t)
	f.cmds.HandleText(context.Background(), msg("   "))

	if len(f.searcher.Requests) != 0 || len(f.msgr.Sent) != 0 {
		t.Error("blank text caused activity")
	}
}

func TestStopClearsSession(t *testing.T) {
	t.Parallel()

	f := newCommandsFixture(t)
	f.store.Create(5, candidates(3))

	f.cmds.HandleStop(context.Background(), msg("/stop"))

	if _, ok := f.store.Get(5); ok {
		t.Error("session survived /stop")
	}
	if got := f.lastSent(t).Text; got != "Search cancelled." {
		t.Errorf("reply = %q", got)
	}
}

func TestStopWithoutSessionStillReplies(t *testing.T) {
	t.Parallel()

	f := newCommandsFixture(t)
	f.cmds.HandleStop(context.Background(), msg("/stop"))

	if got := f.lastSent(t).Text; got != "Search cancelled." {
		t.Errorf("reply = %q", got)
	}
}
