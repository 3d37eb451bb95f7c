package correlation

import (
	"github.com/shopspring/decimal"

	"github.com/seenimoa/feedwatch/pkg/models"
	"github.com/seenimoa/feedwatch/pkg/utils"
)

var hundred = decimal.NewFromInt(100)

// Correlate pairs every match with the close on its publication day and the
// percentage move from the previous close. prices must be in chronological order.
// Articles without a date, or published on a day with no price, get nil price fields.
func Correlate(matches []models.Match, score ScoreFunc, prices []models.DailyPrice) []models.Correlation {
	byDate := make(map[string]int, len(prices))
	for i, p := range prices {
		if _, ok := byDate[p.Date]; !ok {
			byDate[p.Date] = i
		}
	}

	out := make([]models.Correlation, 0, len(matches))
	for _, m := range matches {
		c := models.Correlation{
			Date:      utils.FormatDate(m.Article.Published),
			Title:     m.Article.Title,
			Sentiment: score(m).Label,
		}

		if i, ok := byDate[c.Date]; ok && c.Date != "" {
			price := prices[i].Close
			c.Price = &price
			if i > 0 {
				if prev := prices[i-1].Close; !prev.IsZero() {
					change := price.Sub(prev).Div(prev).Mul(hundred)
					c.ChangePct = &change
				}
			}
		}

		out = append(out, c)
	}
	return out
}
