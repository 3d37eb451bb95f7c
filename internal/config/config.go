// Package config handles configuration loading for feedwatch.
// It supports YAML config files with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/seenimoa/feedwatch/internal/analysis/sentiment"
)

// EnvPrefix is prepended to every environment override, e.g. FEEDWATCH_LOGGING_LEVEL.
const EnvPrefix = "FEEDWATCH"

// Config represents the complete application configuration.
type Config struct {
	Data      DataConfig      `mapstructure:"data"      yaml:"data"`
	Feeds     FeedsConfig     `mapstructure:"feeds"     yaml:"feeds"`
	HTTP      HTTPConfig      `mapstructure:"http"      yaml:"http"`
	Quotes    QuotesConfig    `mapstructure:"quotes"    yaml:"quotes"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
	Sentiment SentimentConfig `mapstructure:"sentiment" yaml:"sentiment"`
	API       APIConfig       `mapstructure:"api"       yaml:"api"`

	// File is the config file that was read, empty when running on defaults.
	File string `mapstructure:"-" yaml:"-"`

	sources map[string]Source
}

// DataConfig locates the watchlist file.
type DataConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // default: <user config dir>/feedwatch/watchlist.json
}

// FeedsConfig controls feed fetching.
type FeedsConfig struct {
	MaxArticles       int     `mapstructure:"max_articles"        yaml:"max_articles"`
	Concurrency       int     `mapstructure:"concurrency"         yaml:"concurrency"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
}

// HTTPConfig holds outbound HTTP settings.
type HTTPConfig struct {
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// QuotesConfig controls the Yahoo Finance client.
type QuotesConfig struct {
	BaseURL           string  `mapstructure:"base_url"            yaml:"base_url"`  // default: Yahoo Finance chart API
	CacheTTL          int     `mapstructure:"cache_ttl"           yaml:"cache_ttl"` // seconds
	HistoryDays       int     `mapstructure:"history_days"        yaml:"history_days"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// APIConfig holds HTTP API server settings for the serve command.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Addr returns host:port for net/http.
func (a APIConfig) Addr() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// SentimentConfig holds the keyword lists used by the classifier.
type SentimentConfig struct {
	Positive []string `mapstructure:"positive" yaml:"positive"`
	Negative []string `mapstructure:"negative" yaml:"negative"`
}

// Keywords returns the lists keyed by category, as the classifier expects them.
func (s SentimentConfig) Keywords() map[string][]string {
	return map[string][]string{
		sentiment.CategoryPositive: s.Positive,
		sentiment.CategoryNegative: s.Negative,
	}
}

// Lexicon builds the classifier keyword table.
func (s SentimentConfig) Lexicon() sentiment.Lexicon {
	return sentiment.FromCategories(s.Keywords())
}

// HTTPTimeout returns the outbound request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSec) * time.Second
}

// QuoteCacheTTL returns how long quotes are cached.
func (c *Config) QuoteCacheTTL() time.Duration {
	return time.Duration(c.Quotes.CacheTTL) * time.Second
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.feedwatch/config.yaml (home directory)
//  3. /etc/feedwatch/config.yaml (system)
//
// Environment variables override config file values.
// Format: FEEDWATCH_<SECTION>_<KEY>, e.g., FEEDWATCH_FEEDS_MAX_ARTICLES
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".feedwatch"))
	v.AddConfigPath("/etc/feedwatch")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found: defaults + env vars
	}

	return build(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func build(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.File = v.ConfigFileUsed()
	cfg.sources = detectSources(v)
	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("data.path", "")

	v.SetDefault("feeds.max_articles", 10)
	v.SetDefault("feeds.concurrency", 5)
	v.SetDefault("feeds.requests_per_second", 2.0)

	v.SetDefault("http.timeout_sec", 30)

	v.SetDefault("quotes.base_url", "")
	v.SetDefault("quotes.cache_ttl", 300) // 5 minutes
	v.SetDefault("quotes.history_days", 30)
	v.SetDefault("quotes.requests_per_second", 5.0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("api.host", "127.0.0.1")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{})

	kw := sentiment.DefaultKeywords()
	v.SetDefault("sentiment.positive", kw[sentiment.CategoryPositive])
	v.SetDefault("sentiment.negative", kw[sentiment.CategoryNegative])
}

// normalize fills derived values and expands "~" in paths.
func normalize(cfg *Config) {
	cfg.Data.Path = expandHome(strings.TrimSpace(cfg.Data.Path))
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
}

// Validate rejects settings the fetchers cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Feeds.MaxArticles <= 0:
		return fmt.Errorf("feeds.max_articles must be positive, got %d", c.Feeds.MaxArticles)
	case c.Feeds.Concurrency <= 0:
		return fmt.Errorf("feeds.concurrency must be positive, got %d", c.Feeds.Concurrency)
	case c.HTTP.TimeoutSec <= 0:
		return fmt.Errorf("http.timeout_sec must be positive, got %d", c.HTTP.TimeoutSec)
	case c.Quotes.HistoryDays <= 0:
		return fmt.Errorf("quotes.history_days must be positive, got %d", c.Quotes.HistoryDays)
	case c.API.Port <= 0 || c.API.Port > 65535:
		return fmt.Errorf("api.port out of range: %d", c.API.Port)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
