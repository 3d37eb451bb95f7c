// Package store persists the user's subscribed feeds and tracked tickers.
//
// The watchlist is a small JSON document:
//
//	{
//	  "feeds":   ["https://example.com/rss"],
//	  "tickers": [{"symbol": "AAPL", "company_name": "Apple"}]
//	}
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/seenimoa/feedwatch/pkg/models"
	"github.com/seenimoa/feedwatch/pkg/utils"
)

var (
	// ErrInvalidSymbol is returned when a ticker symbol is blank or not alphanumeric.
	ErrInvalidSymbol = errors.New("invalid ticker symbol")
	// ErrInvalidURL is returned for feed URLs that are not absolute http(s) URLs.
	ErrInvalidURL = errors.New("invalid feed URL")
)

// Watchlist is the persisted set of feeds and tickers.
type Watchlist struct {
	Feeds   []string               `json:"feeds"`
	Tickers []models.TrackedTicker `json:"tickers"`
}

// Store reads and writes a watchlist file.
type Store struct {
	path string
}

// New returns a store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns <user config dir>/feedwatch/watchlist.json.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "feedwatch", "watchlist.json")
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the watchlist. A missing file yields an empty watchlist.
func (s *Store) Load() (*Watchlist, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Watchlist{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read watchlist %s: %w", s.path, err)
	}

	var w Watchlist
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse watchlist %s: %w", s.path, err)
	}
	return &w, nil
}

// Save writes the watchlist, creating the parent directory if needed.
// The file is replaced atomically so a failed write never truncates it.
func (s *Store) Save(w *Watchlist) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create watchlist dir: %w", err)
	}

	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".watchlist-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write watchlist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write watchlist: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace watchlist: %w", err)
	}
	return nil
}

// AddFeed subscribes to a feed URL. It returns false if already subscribed.
func (w *Watchlist) AddFeed(rawURL string) (bool, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	for _, f := range w.Feeds {
		if f == rawURL {
			return false, nil
		}
	}
	w.Feeds = append(w.Feeds, rawURL)
	return true, nil
}

// RemoveFeed unsubscribes from a feed URL. It returns false if it was not subscribed.
func (w *Watchlist) RemoveFeed(rawURL string) bool {
	rawURL = strings.TrimSpace(rawURL)
	for i, f := range w.Feeds {
		if f == rawURL {
			w.Feeds = append(w.Feeds[:i], w.Feeds[i+1:]...)
			return true
		}
	}
	return false
}

// AddTicker starts tracking a symbol, stored uppercased. It returns false if the
// symbol is already tracked.
func (w *Watchlist) AddTicker(symbol, companyName string) (bool, error) {
	symbol = utils.NormalizeTicker(symbol)
	if !validSymbol(symbol) {
		return false, fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	if _, ok := w.Ticker(symbol); ok {
		return false, nil
	}
	w.Tickers = append(w.Tickers, models.TrackedTicker{
		Symbol:      symbol,
		CompanyName: strings.TrimSpace(companyName),
	})
	return true, nil
}

// RemoveTicker stops tracking a symbol. It returns false if it was not tracked.
func (w *Watchlist) RemoveTicker(symbol string) bool {
	symbol = utils.NormalizeTicker(symbol)
	for i, t := range w.Tickers {
		if t.Symbol == symbol {
			w.Tickers = append(w.Tickers[:i], w.Tickers[i+1:]...)
			return true
		}
	}
	return false
}

// Ticker looks up a tracked ticker by symbol (case-insensitive).
func (w *Watchlist) Ticker(symbol string) (models.TrackedTicker, bool) {
	symbol = utils.NormalizeTicker(symbol)
	for _, t := range w.Tickers {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return models.TrackedTicker{}, false
}

// validSymbol accepts letters, digits, and the separators used by share classes
// and exchange suffixes ("BRK.B", "RDS-A", "^GSPC").
func validSymbol(s string) bool {
	if s == "" || len(s) > 15 {
		return false
	}
	hasAlnum := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			hasAlnum = true
		case r == '.' || r == '-' || r == '^':
		default:
			return false
		}
	}
	return hasAlnum
}
