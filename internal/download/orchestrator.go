// Package download orchestrates the fetch-and-deliver flow: show progress on
// the result message, fetch and transcode the picked candidate into a
// transient directory, deliver the audio, and clean the artifact up.
package download

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/ultraxas/musicbot/internal/bot"
	"github.com/ultraxas/musicbot/internal/locale"
	"github.com/ultraxas/musicbot/internal/observe"
	"github.com/ultraxas/musicbot/internal/session"
	"github.com/ultraxas/musicbot/pkg/provider/media"
)

// Config tunes one Orchestrator.
type Config struct {
	// Dir is the parent directory for transient artifacts. Empty uses the
	// system temp dir.
	Dir string

	// Codec and BitrateKbps select the transcode target.
	Codec       string
	BitrateKbps int

	// MaxConcurrent caps simultaneous fetches across all chats.
	MaxConcurrent int

	// Timeout bounds one full fetch-and-deliver cycle.
	Timeout time.Duration

	// PageSize re-renders the picker keyboard after a download completes.
	PageSize int
}

// Orchestrator runs download requests in the background, bounded by a global
// concurrency cap. It implements [bot.Downloader].
type Orchestrator struct {
	fetcher media.Fetcher
	store   *session.Store
	msgr    bot.Messenger
	loc     *locale.Localizer
	metrics *observe.Metrics
	cfg     Config
	log     *slog.Logger

	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// New creates an Orchestrator. metrics may be nil.
func New(fetcher media.Fetcher, store *session.Store, msgr bot.Messenger, loc *locale.Localizer, metrics *observe.Metrics, cfg Config, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	return &Orchestrator{
		fetcher: fetcher,
		store:   store,
		msgr:    msgr,
		loc:     loc,
		metrics: metrics,
		cfg:     cfg,
		log:     log,
		sem:     semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
	}
}

// Start implements [bot.Downloader]: it hands the request to a worker
// goroutine and returns immediately. The worker reports the outcome into the
// chat itself.
func (o *Orchestrator) Start(ctx context.Context, req bot.DownloadRequest) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.run(ctx, req)
	}()
}

// Wait blocks until all in-flight downloads have finished. Used for graceful
// shutdown.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) run(ctx context.Context, req bot.DownloadRequest) {
	if err := o.sem.Acquire(ctx, 1); err != nil {
		o.log.Warn("download cancelled before start", "chat", req.ChatID, "id", req.Candidate.ID, "err", err)
		return
	}
	defer o.sem.Release(1)

	start := time.Now()

	title := req.Candidate.Title
	if title == "" {
		title = req.Candidate.ID
	}
	o.edit(ctx, req, locale.KeyDownloading, locale.Args{"title": title}, nil)

	dl, cleanup, err := o.fetch(ctx, req.Candidate.ID)
	defer cleanup()
	if err != nil {
		o.log.Error("download failed", "chat", req.ChatID, "id", req.Candidate.ID, "err", err)
		o.metrics.RecordDownload(ctx, observe.StatusError, time.Since(start))
		o.finish(ctx, req, locale.KeyDownloadError, locale.Args{"error": err.Error()})
		return
	}

	if dl.Title == "" {
		dl.Title = title
	}
	audio := bot.Audio{
		Path:      dl.Path,
		Title:     dl.Title,
		Performer: dl.Uploader,
		Caption:   o.loc.Text(req.UserID, locale.KeySent, locale.Args{"title": dl.Title}),
	}
	if err := o.msgr.SendAudio(ctx, req.ChatID, audio); err != nil {
		o.log.Error("audio delivery failed", "chat", req.ChatID, "id", req.Candidate.ID, "err", err)
		o.metrics.RecordDownload(ctx, observe.StatusError, time.Since(start))
		o.finish(ctx, req, locale.KeyDownloadError, locale.Args{"error": err.Error()})
		return
	}

	o.log.Info("download delivered", "chat", req.ChatID, "id", req.Candidate.ID, "elapsed", time.Since(start))
	o.metrics.RecordDownload(ctx, observe.StatusOK, time.Since(start))
	o.finish(ctx, req, locale.KeyPick, nil)
}

// fetch downloads the candidate into its own fresh directory so concurrent
// fetches never collide. The returned cleanup removes the directory and is
// safe to call unconditionally.
func (o *Orchestrator) fetch(ctx context.Context, id string) (media.Download, func(), error) {
	dir, err := os.MkdirTemp(o.cfg.Dir, "musicbot-*")
	if err != nil {
		return media.Download{}, func() {}, err
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			o.log.Warn("failed to remove artifact dir", "dir", dir, "err", err)
		}
	}

	fctx := ctx
	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	dl, err := o.fetcher.Fetch(fctx, id, dir, media.FetchOptions{
		Codec:       o.cfg.Codec,
		BitrateKbps: o.cfg.BitrateKbps,
	})
	if err != nil {
		return media.Download{}, cleanup, err
	}
	return dl, cleanup, nil
}

// finish rewrites the result message with the outcome text. When the session
// is still alive the picker keyboard is restored so the user can keep picking
// from the same result list.
func (o *Orchestrator) finish(ctx context.Context, req bot.DownloadRequest, key string, args locale.Args) {
	unlock := o.store.Lock(req.ChatID)
	defer unlock()

	var kb bot.Keyboard
	if sess, ok := o.store.Get(req.ChatID); ok {
		kb = bot.ResultKeyboard(req.ChatID, session.NewPager(sess, o.cfg.PageSize))
	}
	o.edit(ctx, req, key, args, kb)
}

func (o *Orchestrator) edit(ctx context.Context, req bot.DownloadRequest, key string, args locale.Args, kb bot.Keyboard) {
	text := o.loc.Text(req.UserID, key, args)
	if err := o.msgr.EditText(ctx, req.ChatID, req.MessageID, text, kb); err != nil {
		o.log.Error("failed to update result message", "chat", req.ChatID, "key", key, "err", err)
	}
}
