// Package search orchestrates the free-text search flow: refine the query
// against the metadata lookup, run the media search, open a session and
// render the first result page into the chat.
package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/ultraxas/musicbot/internal/bot"
	"github.com/ultraxas/musicbot/internal/locale"
	"github.com/ultraxas/musicbot/internal/observe"
	"github.com/ultraxas/musicbot/internal/session"
	"github.com/ultraxas/musicbot/pkg/provider/media"
	"github.com/ultraxas/musicbot/pkg/provider/metadata"
)

// Config tunes one Orchestrator.
type Config struct {
	// MaxResults caps the candidate list per search.
	MaxResults int

	// PageSize is the number of candidates per rendered page.
	PageSize int

	// RequestTimeout bounds each external lookup and search call.
	RequestTimeout time.Duration
}

// Orchestrator runs the search flow. It implements [bot.Searcher].
type Orchestrator struct {
	meta    metadata.Provider
	media   media.Searcher
	store   *session.Store
	msgr    bot.Messenger
	loc     *locale.Localizer
	metrics *observe.Metrics
	cfg     Config
	log     *slog.Logger
}

// New creates an Orchestrator. meta may be nil to disable query refinement;
// metrics may be nil.
func New(meta metadata.Provider, searcher media.Searcher, store *session.Store, msgr bot.Messenger, loc *locale.Localizer, metrics *observe.Metrics, cfg Config, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		meta:    meta,
		media:   searcher,
		store:   store,
		msgr:    msgr,
		loc:     loc,
		metrics: metrics,
		cfg:     cfg,
		log:     log,
	}
}

// Search implements [bot.Searcher].
func (o *Orchestrator) Search(ctx context.Context, req bot.SearchRequest) error {
	start := time.Now()

	query := o.refine(ctx, req.Query)
	results, err := o.search(ctx, query)
	if err != nil {
		o.log.Error("media search failed", "chat", req.ChatID, "query", query, "err", err)
		o.metrics.RecordSearch(ctx, observe.StatusError, time.Since(start))
		o.reply(ctx, req, locale.KeySearchError, locale.Args{"error": err.Error()}, nil)
		return err
	}
	if len(results) == 0 {
		o.metrics.RecordSearch(ctx, observe.StatusEmpty, time.Since(start))
		o.reply(ctx, req, locale.KeyNoResults, nil, nil)
		return nil
	}

	unlock := o.store.Lock(req.ChatID)
	defer unlock()

	_, replaced := o.store.Get(req.ChatID)
	o.store.Create(req.ChatID, results)
	if !replaced {
		o.metrics.SessionOpened(ctx)
	}

	sess, _ := o.store.Get(req.ChatID)
	kb := bot.ResultKeyboard(req.ChatID, session.NewPager(sess, o.cfg.PageSize))
	if err := o.reply(ctx, req, locale.KeyPick, nil, kb); err != nil {
		// Without the picker message the session is unreachable.
		o.store.Delete(req.ChatID)
		o.metrics.SessionClosed(ctx)
		o.metrics.RecordSearch(ctx, observe.StatusError, time.Since(start))
		return err
	}

	o.log.Info("search completed", "chat", req.ChatID, "query", query, "results", len(results))
	o.metrics.RecordSearch(ctx, observe.StatusOK, time.Since(start))
	return nil
}

// refine resolves the free text to a canonical "title artist" query. Any
// failure, including no match, keeps the original text; refinement is an
// improvement step, never a gate.
func (o *Orchestrator) refine(ctx context.Context, query string) string {
	if o.meta == nil {
		return query
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.RequestTimeout)
	defer cancel()

	match, err := o.meta.BestMatch(ctx, query)
	if err != nil {
		o.log.Debug("query refinement skipped", "query", query, "err", err)
		return query
	}
	refined := match.Query()
	if refined == "" {
		return query
	}
	o.log.Debug("query refined", "query", query, "refined", refined)
	return refined
}

func (o *Orchestrator) search(ctx context.Context, query string) ([]media.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.RequestTimeout)
	defer cancel()
	return o.media.Search(ctx, query, o.cfg.MaxResults)
}

func (o *Orchestrator) reply(ctx context.Context, req bot.SearchRequest, key string, args locale.Args, kb bot.Keyboard) error {
	text := o.loc.Text(req.UserID, key, args)
	_, err := o.msgr.SendText(ctx, req.ChatID, text, kb)
	if err != nil {
		o.log.Error("failed to send search reply", "chat", req.ChatID, "key", key, "err", err)
	}
	return err
}
