package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seenimoa/feedwatch/pkg/models"
)

func TestClassifyEmpty(t *testing.T) {
	got := Classify("")
	assert.Equal(t, models.SentimentNeutral, got.Label)
	assert.Equal(t, 0, got.Intensity)
}

func TestClassifyPositive(t *testing.T) {
	got := Classify("strong growth and profit beat")
	assert.Equal(t, models.SentimentPositive, got.Label)
	assert.Equal(t, 3, got.Intensity)
	assert.Equal(t, 3, got.Positive)
	assert.Equal(t, 0, got.Negative)
}

func TestClassifyNegative(t *testing.T) {
	got := Classify("massive loss and downgrade")
	assert.Equal(t, models.SentimentNegative, got.Label)
	assert.Equal(t, -2, got.Intensity)
}

func TestClassifyTie(t *testing.T) {
	got := Classify("growth amid loss")
	assert.Equal(t, models.SentimentNeutral, got.Label)
	assert.Equal(t, 0, got.Intensity)
	assert.Equal(t, 1, got.Positive)
	assert.Equal(t, 1, got.Negative)
}

func TestClassifyNoKeywords(t *testing.T) {
	got := Classify("Company announces new office location")
	assert.Equal(t, models.SentimentNeutral, got.Label)
	assert.Equal(t, 0, got.Intensity)
}

func TestClassifyWholeWordOnly(t *testing.T) {
	got := Classify("Lossless audio codec ships")
	assert.Equal(t, models.SentimentNeutral, got.Label)
	assert.Equal(t, 0, got.Negative)
}

func TestClassifyCountsEveryOccurrence(t *testing.T) {
	got := Classify("Profit, profit, PROFIT!")
	assert.Equal(t, 3, got.Positive)
	assert.Equal(t, 3, got.Intensity)
}

func TestClassifyDeterministic(t *testing.T) {
	text := "Shares surge after upgrade despite lawsuit"
	first := Classify(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify(text))
	}
}

func TestCustomLexicon(t *testing.T) {
	l := NewLexicon([]string{" Moon ", "moon", "", "all time high"}, []string{"rug"})
	assert.Equal(t, []string{"moon", "all time high"}, l.Keywords(CategoryPositive))

	got := l.Classify("To the moon: all-time high, no rug")
	assert.Equal(t, 2, got.Positive)
	assert.Equal(t, 1, got.Negative)
	assert.Equal(t, models.SentimentPositive, got.Label)

	// default keywords are not part of a custom lexicon
	assert.Equal(t, 0, l.Classify("profit growth").Intensity)
}

func TestFromCategoriesFallsBack(t *testing.T) {
	l := FromCategories(map[string][]string{CategoryNegative: {"recall"}})
	assert.Equal(t, models.SentimentNegative, l.Classify("Automaker issues recall").Label)
	assert.Equal(t, models.SentimentPositive, l.Classify("profit jumps").Label, "positive falls back to defaults")
	assert.Equal(t, models.SentimentNeutral, l.Classify("loss").Label, "custom negative list replaces defaults")
}

func TestDefaultKeywordsAreCopies(t *testing.T) {
	kw := DefaultKeywords()
	kw[CategoryPositive][0] = "mutated"
	assert.NotContains(t, DefaultLexicon().Keywords(CategoryPositive), "mutated")
	assert.Contains(t, DefaultLexicon().Keywords(CategoryNegative), "lawsuit")
}

func TestScoreMatch(t *testing.T) {
	m := models.Match{
		Article: models.FeedArticle{Title: "Tesla shares plunge", Summary: "Deliveries miss estimates"},
		Ticker:  models.TrackedTicker{Symbol: "TSLA"},
	}
	got := DefaultLexicon().ScoreMatch(m)
	assert.Equal(t, models.SentimentNegative, got.Label)
	assert.Equal(t, -2, got.Intensity)
}
