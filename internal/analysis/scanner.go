// Package analysis runs the news scan pipeline: match articles to tracked
// tickers, classify each match, and aggregate the results per ticker.
//
// The pipeline is a pure, synchronous batch over already-fetched data.
package analysis

import (
	"github.com/seenimoa/feedwatch/internal/analysis/correlation"
	"github.com/seenimoa/feedwatch/internal/analysis/matcher"
	"github.com/seenimoa/feedwatch/internal/analysis/sentiment"
	"github.com/seenimoa/feedwatch/pkg/models"
)

// Result is the output of one scan pass.
type Result struct {
	Matches []models.Match
	Scores  []models.SentimentScore // parallel to Matches
	Reports []models.TickerReport   // one per tracked ticker, in tracked order
}

// Scanner holds the keyword table used for classification. It carries no
// per-run state, so one Scanner can be reused across scans.
type Scanner struct {
	lexicon sentiment.Lexicon
}

// NewScanner creates a scanner using the given lexicon.
func NewScanner(lexicon sentiment.Lexicon) *Scanner {
	return &Scanner{lexicon: lexicon}
}

// Lexicon returns the scanner's keyword table.
func (s *Scanner) Lexicon() sentiment.Lexicon { return s.lexicon }

// Scan matches articles against tickers, scores every match and builds reports.
func (s *Scanner) Scan(articles []models.FeedArticle, tickers []models.TrackedTicker) Result {
	matches := matcher.FindMatches(articles, tickers)

	scores := make([]models.SentimentScore, len(matches))
	for i, m := range matches {
		scores[i] = s.lexicon.ScoreMatch(m)
	}

	return Result{
		Matches: matches,
		Scores:  scores,
		Reports: correlation.BuildReports(tickers, matches, s.lexicon.ScoreMatch),
	}
}

// Correlate classifies matches for a single ticker and lines them up with daily prices.
func (s *Scanner) Correlate(matches []models.Match, prices []models.DailyPrice) []models.Correlation {
	return correlation.Correlate(matches, s.lexicon.ScoreMatch, prices)
}
