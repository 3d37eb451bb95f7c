package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seenimoa/feedwatch/internal/analysis"
	"github.com/seenimoa/feedwatch/internal/datasource"
	"github.com/seenimoa/feedwatch/internal/logger"
	"github.com/seenimoa/feedwatch/pkg/models"
	"github.com/seenimoa/feedwatch/pkg/utils"
)

// recentPrices is how many closes analyze prints before the correlation table.
const recentPrices = 5

// --- Scan Command ---

func newScanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan all feeds for mentions of tracked investments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, w, err := a.watchlist()
			if err != nil {
				return err
			}
			p := printer(cmd)
			if len(w.Tickers) == 0 {
				p.TickerList(nil)
				return nil
			}
			if len(w.Feeds) == 0 {
				p.FeedList(nil)
				return nil
			}

			p.Muted("Scanning %d feeds for %d investments...", len(w.Feeds), len(w.Tickers))
			results, err := fetchArticles(cmd, a, w.Feeds)
			if err != nil {
				return err
			}
			articles := datasource.Articles(results)

			res := analysis.NewScanner(a.cfg.Sentiment.Lexicon()).Scan(articles, w.Tickers)
			logger.Debugw("scan complete", "articles", len(articles), "matches", len(res.Matches))

			p.Line("")
			p.Matches(res.Matches, res.Scores)
			p.Line("")
			p.Reports(res.Reports)
			return nil
		},
	}
}

// --- Analyze Command ---

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [symbol]",
		Short: "Correlate news sentiment for one tracked ticker with its daily closes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			if days <= 0 {
				days = a.cfg.Quotes.HistoryDays
			}

			_, w, err := a.watchlist()
			if err != nil {
				return err
			}
			symbol := utils.NormalizeTicker(args[0])
			ticker, ok := w.Ticker(symbol)
			if !ok {
				return fmt.Errorf("ticker %s is not being tracked; use 'feedwatch stock add %s' first", symbol, symbol)
			}

			p := printer(cmd)
			p.Title(fmt.Sprintf("Analyzing %s ...", ticker.Display()))

			var prices []models.DailyPrice
			history, err := a.quotes().GetHistory(cmd.Context(), symbol, days)
			if err != nil {
				// news is still worth showing without prices
				p.Warn("Error fetching price history: %v", err)
			} else {
				prices = history.Prices
				p.Muted("Got %d days of price data.", len(prices))
				p.RecentPrices(prices, recentPrices)
			}

			if len(w.Feeds) == 0 {
				p.FeedList(nil)
				return nil
			}
			results, err := fetchArticles(cmd, a, w.Feeds)
			if err != nil {
				return err
			}

			scanner := analysis.NewScanner(a.cfg.Sentiment.Lexicon())
			res := scanner.Scan(datasource.Articles(results), []models.TrackedTicker{ticker})
			if len(res.Matches) == 0 {
				p.Muted("No recent news mentions found for %s.", symbol)
				return nil
			}

			p.Line("")
			p.Muted("Found %d mentions.", len(res.Matches))
			p.Correlations(scanner.Correlate(res.Matches, prices))
			p.Line("")
			p.Reports(res.Reports)
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "days of price history to fetch (default: quotes.history_days)")
	return cmd
}
