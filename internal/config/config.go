// Package config provides the configuration schema and loader for the
// music bot.
package config

import (
	"time"

	"github.com/ultraxas/musicbot/internal/locale"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration, typically loaded from a YAML file via
// [Load] or [LoadFromReader].
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Server   ServerConfig   `yaml:"server"`
	Search   SearchConfig   `yaml:"search"`
	Download DownloadConfig `yaml:"download"`
	Language LanguageConfig `yaml:"language"`
}

// TelegramConfig holds the bot's Telegram credentials. Values support
// ${ENV_VAR} expansion so secrets can live in the environment or a .env file.
type TelegramConfig struct {
	// AppID and AppHash identify the application on the MTProto API
	// (https://my.telegram.org).
	AppID   int32  `yaml:"app_id"`
	AppHash string `yaml:"app_hash"`

	// BotToken is the @BotFather token.
	BotToken string `yaml:"bot_token"`
}

// ServerConfig holds the health/metrics listener and logging settings.
type ServerConfig struct {
	// ListenAddr is the TCP address serving /healthz, /readyz and /metrics.
	// Empty disables the listener.
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// MetadataConfig selects the query-refinement providers.
type MetadataConfig struct {
	// Providers is the ordered refinement chain. Known names: "deezer",
	// "ytmusic". Empty disables refinement entirely.
	Providers []string `yaml:"providers"`
}

// SearchConfig tunes the media search step.
type SearchConfig struct {
	// MaxResults caps the candidate list per search.
	MaxResults int `yaml:"max_results"`

	// PageSize is the number of candidates per rendered page.
	PageSize int `yaml:"page_size"`

	// RequestTimeout bounds each external search or lookup call.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	Metadata MetadataConfig `yaml:"metadata"`
}

// DownloadConfig tunes the fetch/deliver step.
type DownloadConfig struct {
	// Dir is the directory for transient audio artifacts. Empty uses the
	// system temp dir.
	Dir string `yaml:"dir"`

	// Codec is the target audio format (passed to the extractor).
	Codec string `yaml:"codec"`

	// BitrateKbps is the target audio bitrate.
	BitrateKbps int `yaml:"bitrate_kbps"`

	// MaxConcurrent caps simultaneous downloads across all chats.
	MaxConcurrent int `yaml:"max_concurrent"`

	// Timeout bounds one full fetch-and-deliver cycle.
	Timeout time.Duration `yaml:"timeout"`

	// Proxy is an optional proxy URL for the media provider.
	Proxy string `yaml:"proxy"`
}

// LanguageConfig selects the default display language.
type LanguageConfig struct {
	Default locale.Code `yaml:"default"`
}

// Defaults applied by [Validate] for zero-valued fields.
const (
	DefaultMaxResults     = 100
	DefaultPageSize       = 10
	DefaultRequestTimeout = 15 * time.Second
	DefaultCodec          = "mp3"
	DefaultBitrateKbps    = 192
	DefaultMaxConcurrent  = 3
	DefaultDownloadTimeout = 5 * time.Minute
)
