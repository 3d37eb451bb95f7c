// Package matcher finds which tracked tickers an article talks about.
package matcher

import (
	"strings"

	"github.com/seenimoa/feedwatch/internal/analysis/textmatch"
	"github.com/seenimoa/feedwatch/pkg/models"
)

// FindMatches returns one Match per (article, ticker) pair whose text mentions the ticker.
//
// A ticker matches when its symbol is a standalone token of title+summary, or when its
// company name is a case-insensitive substring of it. Tickers with a blank symbol are
// skipped, and a symbol listed twice (ignoring case) keeps only its first entry.
// Output follows article order, then ticker order.
func FindMatches(articles []models.FeedArticle, tickers []models.TrackedTicker) []models.Match {
	tickers = uniqueTickers(tickers)

	var matches []models.Match
	for _, a := range articles {
		text := a.Text()
		tokens := textmatch.Tokenize(text)
		for _, t := range tickers {
			if mentions(text, tokens, t) {
				matches = append(matches, models.Match{Article: a, Ticker: t})
			}
		}
	}
	return matches
}

func uniqueTickers(tickers []models.TrackedTicker) []models.TrackedTicker {
	seen := make(map[string]bool, len(tickers))
	out := make([]models.TrackedTicker, 0, len(tickers))
	for _, t := range tickers {
		key := strings.ToUpper(strings.TrimSpace(t.Symbol))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

func mentions(text string, tokens []string, t models.TrackedTicker) bool {
	if textmatch.Index(tokens, textmatch.Tokenize(t.Symbol), 0) >= 0 {
		return true
	}
	return textmatch.ContainsFold(text, t.CompanyName)
}
