package models

import "github.com/shopspring/decimal"

// Sentiment is the label assigned to a piece of text.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Symbol returns the one-character marker used in compact listings.
func (s Sentiment) Symbol() string {
	switch s {
	case SentimentPositive:
		return "+"
	case SentimentNegative:
		return "-"
	default:
		return "~"
	}
}

// SentimentScore is the keyword-based classification of one text.
type SentimentScore struct {
	Label     Sentiment `json:"label"`
	Intensity int       `json:"intensity"` // positive hits minus negative hits
	Positive  int       `json:"positive"`
	Negative  int       `json:"negative"`
}

// Match links one article to one tracked ticker.
type Match struct {
	Article FeedArticle   `json:"article"`
	Ticker  TrackedTicker `json:"ticker"`
}

// TickerReport aggregates sentiment across all matches of one ticker in a scan.
type TickerReport struct {
	Ticker       TrackedTicker `json:"ticker"`
	Total        int           `json:"total"`
	Positive     int           `json:"positive"`
	Negative     int           `json:"negative"`
	Neutral      int           `json:"neutral"`
	NetIntensity int           `json:"net_intensity"`
	Links        []string      `json:"links,omitempty"`
}

// Label returns the overall sentiment implied by the net intensity.
func (r TickerReport) Label() Sentiment {
	switch {
	case r.NetIntensity > 0:
		return SentimentPositive
	case r.NetIntensity < 0:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Correlation pairs a matched article with the ticker's close on the publication day.
type Correlation struct {
	Date      string           `json:"date"`
	Title     string           `json:"title"`
	Sentiment Sentiment        `json:"sentiment"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	ChangePct *decimal.Decimal `json:"change_pct,omitempty"`
}
