// Command musicbot runs the Ultraxas Telegram music bot.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"github.com/ultraxas/musicbot/internal/bot"
	"github.com/ultraxas/musicbot/internal/config"
	"github.com/ultraxas/musicbot/internal/download"
	"github.com/ultraxas/musicbot/internal/health"
	"github.com/ultraxas/musicbot/internal/locale"
	"github.com/ultraxas/musicbot/internal/observe"
	"github.com/ultraxas/musicbot/internal/resilience"
	"github.com/ultraxas/musicbot/internal/search"
	"github.com/ultraxas/musicbot/internal/session"
	"github.com/ultraxas/musicbot/internal/telegram"
	"github.com/ultraxas/musicbot/pkg/provider/metadata"
	"github.com/ultraxas/musicbot/pkg/provider/metadata/deezer"
	"github.com/ultraxas/musicbot/pkg/provider/metadata/ytmusic"
	"github.com/ultraxas/musicbot/pkg/provider/media/ytdlp"
	"github.com/ultraxas/musicbot/pkg/provider/media/ytsearch"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "musicbot: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "musicbot: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("musicbot starting",
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Metrics ───────────────────────────────────────────────────────────────
	metricsShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{})
	if err != nil {
		slog.Error("failed to initialise metrics provider", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsShutdown(shutdownCtx); err != nil {
			slog.Warn("metrics shutdown error", "err", err)
		}
	}()

	metrics, err := observe.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		slog.Error("failed to create metric instruments", "err", err)
		return 1
	}

	// ── Telegram client ───────────────────────────────────────────────────────
	tgCfg := telegram.Config{
		AppID:    cfg.Telegram.AppID,
		AppHash:  cfg.Telegram.AppHash,
		BotToken: cfg.Telegram.BotToken,
	}
	client, err := telegram.New(tgCfg, logger)
	if err != nil {
		slog.Error("failed to create telegram client", "err", err)
		return 1
	}
	if err := client.Connect(tgCfg); err != nil {
		slog.Error("failed to connect to telegram", "err", err)
		return 1
	}
	defer client.Stop()

	// ── Health listener ───────────────────────────────────────────────────────
	if cfg.Server.ListenAddr != "" {
		srv := health.NewServer(cfg.Server.ListenAddr,
			health.Check{Name: "telegram", Probe: client.Ready},
		)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				slog.Error("health listener error", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("health listener shutdown error", "err", err)
			}
		}()
	}

	// ── Core state ────────────────────────────────────────────────────────────
	prefs := locale.NewPrefStore(cfg.Language.Default)
	loc := locale.NewLocalizer(prefs, cfg.Language.Default)
	store := session.NewStore()

	// ── Orchestrators ─────────────────────────────────────────────────────────
	searcher := search.New(
		metadataChain(cfg.Search.Metadata.Providers),
		ytsearch.New(nil),
		store, client, loc, metrics,
		search.Config{
			MaxResults:     cfg.Search.MaxResults,
			PageSize:       cfg.Search.PageSize,
			RequestTimeout: cfg.Search.RequestTimeout,
		},
		logger,
	)

	downloader := download.New(
		ytdlp.New(cfg.Download.Proxy),
		store, client, loc, metrics,
		download.Config{
			Dir:           cfg.Download.Dir,
			Codec:         cfg.Download.Codec,
			BitrateKbps:   cfg.Download.BitrateKbps,
			MaxConcurrent: cfg.Download.MaxConcurrent,
			Timeout:       cfg.Download.Timeout,
			PageSize:      cfg.Search.PageSize,
		},
		logger,
	)

	// ── Bot layer ─────────────────────────────────────────────────────────────
	router := bot.NewRouter(store, loc, client, downloader, metrics, cfg.Search.PageSize, logger)
	cmds := bot.NewCommands(client, loc, prefs, store, searcher, metrics, logger)
	client.RegisterHandlers(ctx, cmds, router)

	slog.Info("bot ready — press Ctrl+C to shut down")

	// Block until the shutdown signal arrives, then let in-flight downloads
	// drain before disconnecting.
	<-ctx.Done()
	slog.Info("shutdown signal received, stopping…")
	downloader.Wait()
	slog.Info("goodbye")
	return 0
}

// metadataChain builds the query-refinement chain from the configured
// provider names. Unknown names are rejected by config validation, so this
// only wires; an empty list yields an empty chain that always reports no
// match.
func metadataChain(names []string) metadata.Provider {
	if len(names) == 0 {
		return nil
	}
	chain := resilience.NewMetadataChain()
	for _, name := range names {
		switch name {
		case "deezer":
			chain.Add(name, deezer.New(), resilience.BreakerConfig{})
		case "ytmusic":
			chain.Add(name, ytmusic.New(), resilience.BreakerConfig{})
		}
		slog.Info("metadata provider registered", "name", name)
	}
	return chain
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
