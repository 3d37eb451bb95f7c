package models

import "time"

// FeedArticle is a single entry fetched from an RSS/Atom feed.
// It lives only for the duration of one scan pass.
type FeedArticle struct {
	Title     string     `json:"title"`
	Summary   string     `json:"summary,omitempty"`
	Link      string     `json:"link,omitempty"`
	Source    string     `json:"source,omitempty"` // feed title
	Published *time.Time `json:"published,omitempty"`
}

// Text returns the title and summary joined for matching and scoring.
func (a FeedArticle) Text() string {
	if a.Summary == "" {
		return a.Title
	}
	return a.Title + " " + a.Summary
}

// Feed is the parsed result of one subscribed feed URL.
type Feed struct {
	URL      string        `json:"url"`
	Title    string        `json:"title"`
	Articles []FeedArticle `json:"articles"`
}
