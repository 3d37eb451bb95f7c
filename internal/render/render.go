// Package render prints feeds, scan results and quotes to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/seenimoa/feedwatch/pkg/models"
	"github.com/seenimoa/feedwatch/pkg/utils"
)

// Printer writes styled output to w.
type Printer struct {
	w  io.Writer
	st styles
}

// New returns a Printer for w. Colors are dropped when w is not a terminal.
func New(w io.Writer) *Printer {
	return &Printer{w: w, st: newStyles(lipgloss.NewRenderer(w))}
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Line prints a plain line.
func (p *Printer) Line(format string, args ...any) {
	p.printf(format+"\n", args...)
}

// Muted prints a dimmed hint line.
func (p *Printer) Muted(format string, args ...any) {
	p.printf("%s\n", p.st.muted.Render(fmt.Sprintf(format, args...)))
}

// Warn prints an error line.
func (p *Printer) Warn(format string, args ...any) {
	p.printf("%s\n", p.st.warn.Render(fmt.Sprintf(format, args...)))
}

// Title prints a section heading.
func (p *Printer) Title(title string) {
	p.printf("%s\n", p.st.title.Render(title))
}

// KeyValue prints an aligned "key: value" pair.
func (p *Printer) KeyValue(key string, value any) {
	p.printf("  %-22s %v\n", p.st.header.Render(key+":"), value)
}

// FeedList prints subscribed feed URLs, numbered from 1.
func (p *Printer) FeedList(urls []string) {
	if len(urls) == 0 {
		p.Muted("No feeds subscribed. Use 'feedwatch feed add <url>' to add a feed.")
		return
	}
	p.Title("Subscribed feeds:")
	for i, u := range urls {
		p.printf("  %d. %s\n", i+1, u)
	}
}

// TickerList prints tracked tickers, numbered from 1.
func (p *Printer) TickerList(tickers []models.TrackedTicker) {
	if len(tickers) == 0 {
		p.Muted("No investments tracked. Use 'feedwatch stock add <symbol>' to add one.")
		return
	}
	p.Title("Tracked investments:")
	for i, t := range tickers {
		p.printf("  %d. %s\n", i+1, t.Display())
	}
}

// Feed prints one fetched feed with its articles.
func (p *Printer) Feed(feed models.Feed) {
	p.printf("%s\n", p.st.title.Render("== "+feed.Title+" =="))
	if len(feed.Articles) == 0 {
		p.Muted("  No articles found.")
		return
	}
	for _, a := range feed.Articles {
		p.printf("\n  %s\n", p.st.muted.Render("["+utils.FormatDateTime(a.Published)+"]"))
		p.printf("  %s\n", a.Title)
		if a.Link != "" {
			p.printf("  %s\n", p.st.link.Render(a.Link))
		}
	}
}

// Matches prints each match with its sentiment marker. scores is parallel to matches.
func (p *Printer) Matches(matches []models.Match, scores []models.SentimentScore) {
	if len(matches) == 0 {
		p.Muted("No mentions found for tracked investments.")
		return
	}
	p.Title(fmt.Sprintf("Found %d mentions:", len(matches)))
	for i, m := range matches {
		label := models.SentimentNeutral
		if i < len(scores) {
			label = scores[i].Label
		}
		p.printf("%s %s %s %s\n",
			p.st.symbol.Render("["+m.Ticker.Symbol+"]"),
			p.sentiment(label, label.Symbol()),
			p.st.muted.Render("["+utils.FormatDateTime(m.Article.Published)+"]"),
			m.Article.Title,
		)
		if m.Article.Link != "" {
			p.printf("    %s\n", p.st.link.Render(m.Article.Link))
		}
	}
}

// Reports prints the per-ticker sentiment summary table.
func (p *Printer) Reports(reports []models.TickerReport) {
	if len(reports) == 0 {
		return
	}
	p.Title("Sentiment by ticker:")
	p.printf("%s\n", p.st.header.Render(fmt.Sprintf("  %-20s %5s %4s %4s %4s %5s  %s",
		"TICKER", "TOTAL", "POS", "NEG", "NEU", "NET", "OVERALL")))
	for _, r := range reports {
		if r.Total == 0 {
			p.printf("  %-20s %s\n", r.Ticker.Display(), p.st.muted.Render("no news"))
			continue
		}
		label := r.Label()
		p.printf("  %-20s %5d %4d %4d %4d %5s  %s\n",
			r.Ticker.Display(), r.Total, r.Positive, r.Negative, r.Neutral,
			signedInt(r.NetIntensity), p.sentiment(label, string(label)))
		for _, link := range r.Links {
			p.printf("      %s\n", p.st.link.Render(link))
		}
	}
}

// Quote prints a single price snapshot.
func (p *Printer) Quote(q *models.Quote) {
	change := fmt.Sprintf("%s, %s%%", signedDecimal(q.Change, 2), signedDecimal(q.ChangePct, 2))
	style := p.st.positive
	if q.Change.IsNegative() {
		style = p.st.negative
	}
	currency := ""
	if q.Currency != "" {
		currency = " " + q.Currency
	}
	p.printf("%s: %s%s (%s)\n", p.st.symbol.Render(q.Symbol), q.Price.StringFixed(2), currency, style.Render(change))
}

// RecentPrices prints the last n closes of a history, oldest first.
func (p *Printer) RecentPrices(prices []models.DailyPrice, n int) {
	if len(prices) == 0 {
		return
	}
	if n > 0 && len(prices) > n {
		prices = prices[len(prices)-n:]
	}
	p.Title("Recent prices:")
	for _, dp := range prices {
		p.printf("  %s: %s\n", dp.Date, dp.Close.StringFixed(2))
	}
}

// Correlations prints matched articles next to the close on their publication day.
func (p *Printer) Correlations(rows []models.Correlation) {
	p.Title("News & Price Correlation:")
	p.printf("%s\n", strings.Repeat("-", 80))
	for _, c := range rows {
		date := c.Date
		if date == "" {
			date = "No date"
		}
		p.printf("[%s] %s | %s | %s\n", date, p.sentiment(c.Sentiment, fmt.Sprintf("%-8s", c.Sentiment)), priceCell(c), c.Title)
	}
}

func (p *Printer) sentiment(label models.Sentiment, text string) string {
	switch label {
	case models.SentimentPositive:
		return p.st.positive.Render(text)
	case models.SentimentNegative:
		return p.st.negative.Render(text)
	default:
		return p.st.neutral.Render(text)
	}
}

func priceCell(c models.Correlation) string {
	switch {
	case c.Price != nil && c.ChangePct != nil:
		return fmt.Sprintf("%s (%s%%)", c.Price.StringFixed(2), signedDecimal(*c.ChangePct, 1))
	case c.Price != nil:
		return c.Price.StringFixed(2)
	default:
		return "N/A"
	}
}

func signedDecimal(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	if !d.IsNegative() {
		return "+" + s
	}
	return s
}

func signedInt(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
