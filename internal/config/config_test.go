package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Feeds.MaxArticles != 10 {
		t.Errorf("Feeds.MaxArticles: got %d, want 10", cfg.Feeds.MaxArticles)
	}
	if cfg.Feeds.Concurrency != 5 {
		t.Errorf("Feeds.Concurrency: got %d, want 5", cfg.Feeds.Concurrency)
	}
	if cfg.Feeds.RequestsPerSecond != 2 {
		t.Errorf("Feeds.RequestsPerSecond: got %f, want 2", cfg.Feeds.RequestsPerSecond)
	}
	if cfg.HTTP.TimeoutSec != 30 {
		t.Errorf("HTTP.TimeoutSec: got %d, want 30", cfg.HTTP.TimeoutSec)
	}
	if cfg.Quotes.CacheTTL != 300 {
		t.Errorf("Quotes.CacheTTL: got %d, want 300", cfg.Quotes.CacheTTL)
	}
	if cfg.Quotes.HistoryDays != 30 {
		t.Errorf("Quotes.HistoryDays: got %d, want 30", cfg.Quotes.HistoryDays)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging: got %q/%q, want info/text", cfg.Logging.Level, cfg.Logging.Format)
	}
	if cfg.Data.Path != "" {
		t.Errorf("Data.Path: got %q, want empty", cfg.Data.Path)
	}
	if cfg.File != "" {
		t.Errorf("File: got %q, want empty", cfg.File)
	}
	if len(cfg.Sentiment.Positive) == 0 || len(cfg.Sentiment.Negative) == 0 {
		t.Error("expected default sentiment keywords")
	}
	if cfg.Source("feeds.max_articles") != SourceDefault {
		t.Errorf("Source: got %q, want default", cfg.Source("feeds.max_articles"))
	}
}

func TestDurations(t *testing.T) {
	cfg := &Config{HTTP: HTTPConfig{TimeoutSec: 7}, Quotes: QuotesConfig{CacheTTL: 60}}
	if got := cfg.HTTPTimeout().Seconds(); got != 7 {
		t.Errorf("HTTPTimeout: got %v, want 7s", got)
	}
	if got := cfg.QuoteCacheTTL().Minutes(); got != 1 {
		t.Errorf("QuoteCacheTTL: got %v, want 1m", got)
	}
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
feeds:
  max_articles: 3
  concurrency: 2
logging:
  level: DEBUG
  format: json
sentiment:
  positive: [moon, rally]
  negative: [crash]
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Feeds.MaxArticles != 3 {
		t.Errorf("Feeds.MaxArticles: got %d, want 3", cfg.Feeds.MaxArticles)
	}
	if cfg.Feeds.Concurrency != 2 {
		t.Errorf("Feeds.Concurrency: got %d, want 2", cfg.Feeds.Concurrency)
	}
	// untouched keys keep defaults
	if cfg.HTTP.TimeoutSec != 30 {
		t.Errorf("HTTP.TimeoutSec: got %d, want 30", cfg.HTTP.TimeoutSec)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want debug", cfg.Logging.Level)
	}
	if cfg.File != path {
		t.Errorf("File: got %q, want %q", cfg.File, path)
	}
	if cfg.Source("feeds.max_articles") != SourceConfig {
		t.Errorf("Source: got %q, want config", cfg.Source("feeds.max_articles"))
	}

	lex := cfg.Sentiment.Lexicon()
	if got := lex.Classify("moon rally then crash").Intensity; got != 1 {
		t.Errorf("configured lexicon intensity: got %d, want 1", got)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	path := writeConfig(t, "feeds:\n  max_articles: 0\n")
	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected validation error for max_articles 0")
	}

	path = writeConfig(t, "logging:\n  format: xml\n")
	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected validation error for unknown log format")
	}
}

// ── Env overrides ──

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "feeds:\n  max_articles: 3\n")
	t.Setenv("FEEDWATCH_FEEDS_MAX_ARTICLES", "25")
	t.Setenv("FEEDWATCH_DATA_PATH", "~/watch.json")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Feeds.MaxArticles != 25 {
		t.Errorf("Feeds.MaxArticles: got %d, want 25", cfg.Feeds.MaxArticles)
	}
	if cfg.Source("feeds.max_articles") != SourceEnv {
		t.Errorf("Source: got %q, want env", cfg.Source("feeds.max_articles"))
	}
	want := filepath.Join(homeDir(), "watch.json")
	if cfg.Data.Path != want {
		t.Errorf("Data.Path: got %q, want %q", cfg.Data.Path, want)
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("quotes.cache_ttl"); got != "FEEDWATCH_QUOTES_CACHE_TTL" {
		t.Errorf("EnvVar: got %q", got)
	}
}

func TestSettingsSorted(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "http:\n  timeout_sec: 5\n"))
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	settings := cfg.Settings()
	if len(settings) == 0 {
		t.Fatal("expected settings")
	}
	for i := 1; i < len(settings); i++ {
		if settings[i-1].Key > settings[i].Key {
			t.Fatalf("settings not sorted: %q before %q", settings[i-1].Key, settings[i].Key)
		}
	}
	found := false
	for _, s := range settings {
		if s.Key == "http.timeout_sec" {
			found = true
			if s.Source != SourceConfig {
				t.Errorf("http.timeout_sec source: got %q, want config", s.Source)
			}
			if s.EnvVar != "FEEDWATCH_HTTP_TIMEOUT_SEC" {
				t.Errorf("http.timeout_sec env: got %q", s.EnvVar)
			}
		}
	}
	if !found {
		t.Error("http.timeout_sec missing from settings")
	}
}

func TestExpandHome(t *testing.T) {
	home := homeDir()
	if got := expandHome("~"); got != home {
		t.Errorf("expandHome(~): got %q, want %q", got, home)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("expandHome(/abs/path): got %q", got)
	}
}

func TestAPIDefaultsAndAddr(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "api:\n  port: 9090\n"))
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if got := cfg.API.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("API.Addr: got %q, want 127.0.0.1:9090", got)
	}

	if _, err := LoadFromFile(writeConfig(t, "api:\n  port: 70000\n")); err == nil {
		t.Error("expected error for out of range port")
	}
}
