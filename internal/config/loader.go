package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ultraxas/musicbot/internal/locale"
)

// KnownMetadataProviders lists the metadata provider names understood by the
// wiring in main.
var KnownMetadataProviders = []string{"deezer", "ytmusic"}

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, expands ${ENV} references in
// credential fields, applies defaults and validates the result. Useful in
// tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	cfg.Telegram.AppHash = os.ExpandEnv(cfg.Telegram.AppHash)
	cfg.Telegram.BotToken = os.ExpandEnv(cfg.Telegram.BotToken)

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills zero-valued tunables in place.
func applyDefaults(cfg *Config) {
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = LogInfo
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = DefaultMaxResults
	}
	if cfg.Search.PageSize == 0 {
		cfg.Search.PageSize = DefaultPageSize
	}
	if cfg.Search.RequestTimeout == 0 {
		cfg.Search.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Download.Dir == "" {
		cfg.Download.Dir = os.TempDir()
	}
	if cfg.Download.Codec == "" {
		cfg.Download.Codec = DefaultCodec
	}
	if cfg.Download.BitrateKbps == 0 {
		cfg.Download.BitrateKbps = DefaultBitrateKbps
	}
	if cfg.Download.MaxConcurrent == 0 {
		cfg.Download.MaxConcurrent = DefaultMaxConcurrent
	}
	if cfg.Download.Timeout == 0 {
		cfg.Download.Timeout = DefaultDownloadTimeout
	}
	if cfg.Language.Default == "" {
		cfg.Language.Default = locale.English
	}
}

// Validate checks that cfg contains a coherent set of values. It returns a
// joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Telegram.BotToken == "" {
		errs = append(errs, errors.New("telegram.bot_token is required"))
	}
	if cfg.Telegram.AppID == 0 {
		errs = append(errs, errors.New("telegram.app_id is required"))
	}
	if cfg.Telegram.AppHash == "" {
		errs = append(errs, errors.New("telegram.app_hash is required"))
	}

	if !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.Search.MaxResults < 1 || cfg.Search.MaxResults > 1000 {
		errs = append(errs, fmt.Errorf("search.max_results %d is out of range [1, 1000]", cfg.Search.MaxResults))
	}
	if cfg.Search.PageSize < 1 || cfg.Search.PageSize > 50 {
		errs = append(errs, fmt.Errorf("search.page_size %d is out of range [1, 50]", cfg.Search.PageSize))
	}
	if cfg.Search.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("search.request_timeout %v is negative", cfg.Search.RequestTimeout))
	}
	for i, name := range cfg.Search.Metadata.Providers {
		if !slices.Contains(KnownMetadataProviders, name) {
			errs = append(errs, fmt.Errorf("search.metadata.providers[%d] %q is unknown; valid values: %v", i, name, KnownMetadataProviders))
		}
	}

	if cfg.Download.BitrateKbps < 32 || cfg.Download.BitrateKbps > 320 {
		errs = append(errs, fmt.Errorf("download.bitrate_kbps %d is out of range [32, 320]", cfg.Download.BitrateKbps))
	}
	if cfg.Download.MaxConcurrent < 1 {
		errs = append(errs, fmt.Errorf("download.max_concurrent %d must be at least 1", cfg.Download.MaxConcurrent))
	}

	if !cfg.Language.Default.IsValid() {
		errs = append(errs, fmt.Errorf("language.default %q is invalid; valid values: english, french, spanish, twi", cfg.Language.Default))
	}

	return errors.Join(errs...)
}
