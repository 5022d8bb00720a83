package bot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ultraxas/musicbot/internal/locale"
	"github.com/ultraxas/musicbot/internal/observe"
	"github.com/ultraxas/musicbot/internal/session"
)

// Commands handles slash commands and free text. Free text is first checked
// against the language names so replying "Français" after /language switches
// the language; everything else becomes a search query.
type Commands struct {
	msgr     Messenger
	loc      *locale.Localizer
	prefs    *locale.PrefStore
	store    *session.Store
	searcher Searcher
	metrics  *observe.Metrics
	log      *slog.Logger
}

// NewCommands creates the command handler set. metrics may be nil.
func NewCommands(msgr Messenger, loc *locale.Localizer, prefs *locale.PrefStore, store *session.Store, searcher Searcher, metrics *observe.Metrics, log *slog.Logger) *Commands {
	if log == nil {
		log = slog.Default()
	}
	return &Commands{
		msgr:     msgr,
		loc:      loc,
		prefs:    prefs,
		store:    store,
		searcher: searcher,
		metrics:  metrics,
		log:      log,
	}
}

// HandleStart greets the user.
func (c *Commands) HandleStart(ctx context.Context, ev MessageEvent) {
	c.send(ctx, ev, locale.KeyGreeting, nil)
}

// HandleHelp explains the search flow and the available commands.
func (c *Commands) HandleHelp(ctx context.Context, ev MessageEvent) {
	c.send(ctx, ev, locale.KeyHelp, nil)
}

// HandleLegal shows the usage notice.
func (c *Commands) HandleLegal(ctx context.Context, ev MessageEvent) {
	c.send(ctx, ev, locale.KeyLegal, nil)
}

// HandleLanguage lists the selectable languages. The reply is matched by
// [Commands.HandleText] via [locale.ParseSelection].
func (c *Commands) HandleLanguage(ctx context.Context, ev MessageEvent) {
	var sb strings.Builder
	sb.WriteString(c.loc.Text(ev.SenderID, locale.KeySetLang, nil))
	for _, code := range locale.Codes() {
		sb.WriteString("\n• ")
		sb.WriteString(code.Title())
	}
	if _, err := c.msgr.SendText(ctx, ev.ChatID, sb.String(), nil); err != nil {
		c.log.Error("failed to send language menu", "chat", ev.ChatID, "err", err)
	}
}

// HandleStop ends the chat's search session. Stopping without a session is
// not an error; the user gets the same cancel notice either way.
func (c *Commands) HandleStop(ctx context.Context, ev MessageEvent) {
	unlock := c.store.Lock(ev.ChatID)
	if _, ok := c.store.Get(ev.ChatID); ok {
		c.store.Delete(ev.ChatID)
		c.metrics.SessionClosed(ctx)
	}
	unlock()

	c.send(ctx, ev, locale.KeyCancel, nil)
}

// HandleText routes free text: a language name sets the preference, anything
// else starts a search.
func (c *Commands) HandleText(ctx context.Context, ev MessageEvent) {
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return
	}

	if code, ok := locale.ParseSelection(text); ok {
		c.prefs.Set(ev.SenderID, code)
		c.send(ctx, ev, locale.KeyLangSet, locale.Args{"lang": code.Title()})
		return
	}

	if err := c.searcher.Search(ctx, SearchRequest{ChatID: ev.ChatID, UserID: ev.SenderID, Query: text}); err != nil {
		c.log.Error("search flow failed", "chat", ev.ChatID, "err", err)
	}
}

func (c *Commands) send(ctx context.Context, ev MessageEvent, key string, args locale.Args) {
	text := c.loc.Text(ev.SenderID, key, args)
	if _, err := c.msgr.SendText(ctx, ev.ChatID, text, nil); err != nil {
		c.log.Error("failed to send reply", "chat", ev.ChatID, "key", key, "err", err)
	}
}
