package bot

import (
	"context"
	"log/slog"

	"github.com/ultraxas/musicbot/internal/callback"
	"github.com/ultraxas/musicbot/internal/locale"
	"github.com/ultraxas/musicbot/internal/observe"
	"github.com/ultraxas/musicbot/internal/session"
)

// Callback dispatch outcomes recorded on the callbacks counter.
const (
	callbackOK       = "ok"
	callbackRejected = "rejected"
)

// Router dispatches inline-button callbacks against the session store. It is
// the only component that mutates sessions in response to button presses, and
// it serialises all handling per chat via [session.Store.Lock] so a stale
// press can never resurrect a session a concurrent press just ended.
type Router struct {
	store     *session.Store
	loc       *locale.Localizer
	msgr      Messenger
	downloads Downloader
	metrics   *observe.Metrics
	pageSize  int
	log       *slog.Logger
}

// NewRouter creates a Router. metrics may be nil.
func NewRouter(store *session.Store, loc *locale.Localizer, msgr Messenger, downloads Downloader, metrics *observe.Metrics, pageSize int, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		store:     store,
		loc:       loc,
		msgr:      msgr,
		downloads: downloads,
		metrics:   metrics,
		pageSize:  pageSize,
		log:       log,
	}
}

// HandleCallback processes one button press end to end: parse, validate
// against the originating chat, then act on the session. Every press is
// acknowledged exactly once, rejections as a modal alert.
func (r *Router) HandleCallback(ctx context.Context, ev CallbackEvent) {
	act, err := callback.Parse(ev.Data)
	if err != nil {
		r.log.Warn("rejecting malformed callback", "chat", ev.ChatID, "err", err)
		r.reject(ctx, ev, "invalid", locale.KeyInvalidSession)
		return
	}

	name := actionName(act)
	if act.Chat() != ev.ChatID {
		r.log.Warn("rejecting cross-chat callback", "chat", ev.ChatID, "payload_chat", act.Chat(), "action", name)
		r.reject(ctx, ev, name, locale.KeyInvalidSession)
		return
	}

	unlock := r.store.Lock(ev.ChatID)
	defer unlock()

	sess, ok := r.store.Get(ev.ChatID)
	if !ok {
		r.reject(ctx, ev, name, locale.KeySessionExpired)
		return
	}

	switch a := act.(type) {
	case callback.Page:
		r.handlePage(ctx, ev, sess, a)
	case callback.Stop:
		r.handleStop(ctx, ev)
	case callback.Download:
		r.handleDownload(ctx, ev, sess, a)
	}
}

// handlePage moves the result message to the target page, clamping forged or
// stale targets into the valid range instead of erroring.
func (r *Router) handlePage(ctx context.Context, ev CallbackEvent, sess session.Session, a callback.Page) {
	p := session.NewPager(sess, r.pageSize)
	target := a.Target
	if target < 0 {
		target = 0
	}
	if last := p.LastPage(); target > last {
		target = last
	}

	r.store.SetPage(ev.ChatID, target)
	p.Page = target

	text := r.loc.Text(ev.SenderID, locale.KeyPick, nil)
	if err := r.msgr.EditText(ctx, ev.ChatID, ev.MessageID, text, ResultKeyboard(ev.ChatID, p)); err != nil {
		r.log.Error("failed to render page", "chat", ev.ChatID, "page", target, "err", err)
	}
	r.ack(ctx, ev.QueryID)
	r.metrics.RecordCallback(ctx, "page", callbackOK)
}

// handleStop ends the session and replaces the result message with the
// cancel notice, dropping the keyboard.
func (r *Router) handleStop(ctx context.Context, ev CallbackEvent) {
	r.store.Delete(ev.ChatID)
	r.metrics.SessionClosed(ctx)

	text := r.loc.Text(ev.SenderID, locale.KeyCancel, nil)
	if err := r.msgr.EditText(ctx, ev.ChatID, ev.MessageID, text, nil); err != nil {
		r.log.Error("failed to render cancel notice", "chat", ev.ChatID, "err", err)
	}
	r.ack(ctx, ev.QueryID)
	r.metrics.RecordCallback(ctx, "stop", callbackOK)
}

// handleDownload validates the picked index and hands the candidate to the
// download orchestrator. The session stays alive so the user can pick more
// tracks from the same result list.
func (r *Router) handleDownload(ctx context.Context, ev CallbackEvent, sess session.Session, a callback.Download) {
	if a.Index < 0 || a.Index >= len(sess.Results) {
		r.log.Warn("rejecting out-of-range download index", "chat", ev.ChatID, "index", a.Index, "results", len(sess.Results))
		r.reject(ctx, ev, "download", locale.KeyInvalidSession)
		return
	}

	r.ack(ctx, ev.QueryID)
	r.downloads.Start(ctx, DownloadRequest{
		ChatID:    ev.ChatID,
		MessageID: ev.MessageID,
		UserID:    ev.SenderID,
		Candidate: sess.Results[a.Index],
	})
	r.metrics.RecordCallback(ctx, "download", callbackOK)
}

// reject acknowledges the press with a localized modal alert.
func (r *Router) reject(ctx context.Context, ev CallbackEvent, action, key string) {
	text := r.loc.Text(ev.SenderID, key, nil)
	if err := r.msgr.AnswerCallback(ctx, ev.QueryID, text, true); err != nil {
		r.log.Error("failed to answer callback", "chat", ev.ChatID, "err", err)
	}
	r.metrics.RecordCallback(ctx, action, callbackRejected)
}

// ack acknowledges the press silently.
func (r *Router) ack(ctx context.Context, queryID int64) {
	if err := r.msgr.AnswerCallback(ctx, queryID, "", false); err != nil {
		r.log.Error("failed to answer callback", "query", queryID, "err", err)
	}
}

func actionName(a callback.Action) string {
	switch a.(type) {
	case callback.Page:
		return "page"
	case callback.Stop:
		return "stop"
	case callback.Download:
		return "download"
	default:
		return "invalid"
	}
}
