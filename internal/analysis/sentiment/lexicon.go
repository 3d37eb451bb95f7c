package sentiment

import (
	"strings"

	"github.com/seenimoa/feedwatch/internal/analysis/textmatch"
)

// Category names used in config files (sentiment.positive / sentiment.negative).
const (
	CategoryPositive = "positive"
	CategoryNegative = "negative"
)

// defaultPositive / defaultNegative are the built-in keyword lists.
// Both are whole-word lists: "loss" does not fire on "lossless".
var defaultPositive = []string{
	"gain", "gains", "surge", "surges", "surging", "rise", "rises", "rising",
	"profit", "profits", "beat", "beats", "bullish", "growth", "growing",
	"rally", "rallies", "soar", "soars", "soaring", "jump", "jumps",
	"record", "upgrade", "upgrades", "outperform", "success", "rebound",
}

var defaultNegative = []string{
	"fall", "falls", "falling", "drop", "drops", "dropping", "loss", "losses",
	"miss", "misses", "bearish", "decline", "declines", "declining", "crash",
	"crashes", "plunge", "plunges", "plunging", "sink", "sinks", "sinking",
	"downgrade", "downgrades", "weak", "fail", "fails", "lawsuit", "lawsuits",
	"cut", "cuts", "underperform",
}

// Lexicon is the keyword table the classifier scores against.
// It is plain data: extend it through configuration, not code.
type Lexicon struct {
	positive [][]string
	negative [][]string
}

// NewLexicon builds a lexicon from raw keyword lists. Keywords are trimmed and
// lowercased; blanks and duplicates within a category are dropped.
func NewLexicon(positive, negative []string) Lexicon {
	return Lexicon{
		positive: compile(positive),
		negative: compile(negative),
	}
}

// DefaultLexicon returns the built-in financial news keyword lists.
func DefaultLexicon() Lexicon {
	return NewLexicon(defaultPositive, defaultNegative)
}

// FromCategories builds a lexicon from a category → keywords mapping, as found in config.
// Missing categories fall back to the defaults.
func FromCategories(categories map[string][]string) Lexicon {
	pos, ok := categories[CategoryPositive]
	if !ok || len(pos) == 0 {
		pos = defaultPositive
	}
	neg, ok := categories[CategoryNegative]
	if !ok || len(neg) == 0 {
		neg = defaultNegative
	}
	return NewLexicon(pos, neg)
}

// DefaultKeywords returns copies of the built-in lists keyed by category.
func DefaultKeywords() map[string][]string {
	return map[string][]string{
		CategoryPositive: append([]string(nil), defaultPositive...),
		CategoryNegative: append([]string(nil), defaultNegative...),
	}
}

// Keywords returns the normalized keywords of a category.
func (l Lexicon) Keywords(category string) []string {
	var src [][]string
	switch category {
	case CategoryPositive:
		src = l.positive
	case CategoryNegative:
		src = l.negative
	}
	out := make([]string, 0, len(src))
	for _, phrase := range src {
		out = append(out, strings.Join(phrase, " "))
	}
	return out
}

func compile(words []string) [][]string {
	seen := make(map[string]bool, len(words))
	out := make([][]string, 0, len(words))
	for _, w := range words {
		tokens := textmatch.Tokenize(w)
		if len(tokens) == 0 {
			continue
		}
		key := strings.Join(tokens, " ")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tokens)
	}
	return out
}
