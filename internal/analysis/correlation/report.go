// Package correlation aggregates scored matches into per-ticker reports and
// lines matched articles up against daily prices.
package correlation

import (
	"strings"

	"github.com/seenimoa/feedwatch/pkg/models"
)

// ScoreFunc returns the sentiment of one match.
type ScoreFunc func(models.Match) models.SentimentScore

// BuildReports returns one report per tracked ticker, in the order given.
//
// Tickers without matches get an all-zero report so "no news" stays visible.
// Blank symbols are skipped and repeated symbols collapse into the first entry.
// Matches for symbols outside tickers are reported after, in first-seen order.
func BuildReports(tickers []models.TrackedTicker, matches []models.Match, score ScoreFunc) []models.TickerReport {
	reports := make([]models.TickerReport, 0, len(tickers))
	index := make(map[string]int, len(tickers))
	seenLinks := make(map[string]map[string]bool)

	group := func(t models.TrackedTicker) int {
		key := symbolKey(t.Symbol)
		if i, ok := index[key]; ok {
			return i
		}
		index[key] = len(reports)
		seenLinks[key] = make(map[string]bool)
		reports = append(reports, models.TickerReport{Ticker: t})
		return len(reports) - 1
	}

	for _, t := range tickers {
		if symbolKey(t.Symbol) == "" {
			continue
		}
		group(t)
	}

	for _, m := range matches {
		key := symbolKey(m.Ticker.Symbol)
		if key == "" {
			continue
		}
		i := group(m.Ticker)
		r := &reports[i]
		s := score(m)

		r.Total++
		r.NetIntensity += s.Intensity
		switch s.Label {
		case models.SentimentPositive:
			r.Positive++
		case models.SentimentNegative:
			r.Negative++
		default:
			r.Neutral++
		}

		if link := m.Article.Link; link != "" && !seenLinks[key][link] {
			seenLinks[key][link] = true
			r.Links = append(r.Links, link)
		}
	}

	return reports
}

func symbolKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
