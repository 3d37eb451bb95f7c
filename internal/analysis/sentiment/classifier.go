// Package sentiment classifies news text by counting positive and negative keywords.
//
// Scoring is offline and deterministic: the same text and lexicon always produce
// the same SentimentScore.
package sentiment

import (
	"github.com/seenimoa/feedwatch/internal/analysis/textmatch"
	"github.com/seenimoa/feedwatch/pkg/models"
)

var defaultLexicon = DefaultLexicon()

// Classify scores text against the default lexicon.
func Classify(text string) models.SentimentScore {
	return defaultLexicon.Classify(text)
}

// Classify scores text: every whole-word occurrence of a keyword is one hit.
// More positive hits → Positive, more negative → Negative, otherwise Neutral.
func (l Lexicon) Classify(text string) models.SentimentScore {
	tokens := textmatch.Tokenize(text)
	pos := countAll(tokens, l.positive)
	neg := countAll(tokens, l.negative)

	label := models.SentimentNeutral
	switch {
	case pos > neg:
		label = models.SentimentPositive
	case neg > pos:
		label = models.SentimentNegative
	}

	return models.SentimentScore{
		Label:     label,
		Intensity: pos - neg,
		Positive:  pos,
		Negative:  neg,
	}
}

// ScoreMatch classifies the article text behind a match.
func (l Lexicon) ScoreMatch(m models.Match) models.SentimentScore {
	return l.Classify(m.Article.Text())
}

func countAll(tokens []string, phrases [][]string) int {
	n := 0
	for _, p := range phrases {
		n += textmatch.Count(tokens, p)
	}
	return n
}
