package api

import (
	"net/http"

	"github.com/seenimoa/feedwatch/internal/analysis/sentiment"
	"github.com/seenimoa/feedwatch/internal/config"
)

// ConfigResponse is the JSON envelope returned by GET /api/v1/config.
type ConfigResponse struct {
	ConfigFile string                 `json:"config_file"` // empty when running on defaults
	Watchlist  string                 `json:"watchlist"`
	Settings   []config.SettingStatus `json:"settings"`
	Keywords   map[string][]string    `json:"keywords"`
}

// handleGetConfig returns where each setting came from and the effective keyword lists.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	lex := s.cfg.Sentiment.Lexicon()
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: ConfigResponse{
			ConfigFile: s.cfg.File,
			Watchlist:  s.store.Path(),
			Settings:   s.cfg.Settings(),
			Keywords: map[string][]string{
				sentiment.CategoryPositive: lex.Keywords(sentiment.CategoryPositive),
				sentiment.CategoryNegative: lex.Keywords(sentiment.CategoryNegative),
			},
		},
	})
}
