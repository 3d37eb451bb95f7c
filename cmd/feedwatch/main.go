// feedwatch: RSS/Atom news aggregation with ticker matching and keyword sentiment.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/seenimoa/feedwatch/internal/analysis/sentiment"
	"github.com/seenimoa/feedwatch/internal/config"
	"github.com/seenimoa/feedwatch/internal/datasource"
	"github.com/seenimoa/feedwatch/internal/logger"
	"github.com/seenimoa/feedwatch/internal/render"
	"github.com/seenimoa/feedwatch/internal/store"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries state resolved once per invocation by the root command.
type app struct {
	cfg      *config.Config
	dataPath string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "feedwatch",
		Short: "feedwatch: RSS/Atom news scanner for tracked investments",
		Long: `feedwatch aggregates RSS/Atom feeds, finds articles that mention the
tickers you track, and scores each mention with keyword sentiment.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	root.PersistentFlags().String("data", "", "watchlist file path (default: <user config dir>/feedwatch/watchlist.json)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newVersionCmd(),
		newStatusCmd(a),
		newFeedCmd(a),
		newFetchCmd(a),
		newStockCmd(a),
		newScanCmd(a),
		newAnalyzeCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	var err error
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		a.cfg, err = config.LoadFromFile(configFile)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := a.cfg.Logging.Level
	if override, _ := cmd.Flags().GetString("log-level"); override != "" {
		level = override
	}
	if err := logger.Init(level, a.cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	a.dataPath, _ = cmd.Flags().GetString("data")
	if a.dataPath == "" {
		a.dataPath = a.cfg.Data.Path
	}
	if a.dataPath == "" {
		a.dataPath = store.DefaultPath()
	}
	logger.Debugw("config loaded", "file", a.cfg.File, "data", a.dataPath)
	return nil
}

// watchlist loads the persisted watchlist.
func (a *app) watchlist() (*store.Store, *store.Watchlist, error) {
	st := store.New(a.dataPath)
	w, err := st.Load()
	if err != nil {
		return nil, nil, err
	}
	return st, w, nil
}

func (a *app) feeds() *datasource.Feeds {
	return datasource.NewFeeds(datasource.FeedOptions{
		MaxArticles:       a.cfg.Feeds.MaxArticles,
		Concurrency:       a.cfg.Feeds.Concurrency,
		RequestsPerSecond: a.cfg.Feeds.RequestsPerSecond,
		Client:            datasource.NewHTTPClient(a.cfg.HTTPTimeout()),
	})
}

func (a *app) quotes() *datasource.YFinance {
	return datasource.NewYFinance(datasource.YFinanceOptions{
		BaseURL:           a.cfg.Quotes.BaseURL,
		CacheTTL:          a.cfg.QuoteCacheTTL(),
		RequestsPerSecond: a.cfg.Quotes.RequestsPerSecond,
		Client:            datasource.NewHTTPClient(a.cfg.HTTPTimeout()),
	})
}

func printer(cmd *cobra.Command) *render.Printer {
	return render.New(cmd.OutOrStdout())
}

// --- Version Command ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "feedwatch %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}

// --- Status Command ---

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and watchlist summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, w, err := a.watchlist()
			if err != nil {
				return err
			}

			p := printer(cmd)
			p.Title("feedwatch status")
			p.KeyValue("Version", fmt.Sprintf("%s (%s)", version, commit))
			configFile := a.cfg.File
			if configFile == "" {
				configFile = "(defaults)"
			}
			p.KeyValue("Config file", configFile)
			p.KeyValue("Watchlist", a.dataPath)
			p.KeyValue("Feeds", len(w.Feeds))
			p.KeyValue("Tickers", len(w.Tickers))
			p.KeyValue("Max articles/feed", a.cfg.Feeds.MaxArticles)
			p.KeyValue("Fetch concurrency", a.cfg.Feeds.Concurrency)
			p.KeyValue("Quote source", a.quotes().Name())
			p.KeyValue("Positive keywords", len(a.cfg.Sentiment.Lexicon().Keywords(sentiment.CategoryPositive)))
			p.KeyValue("Negative keywords", len(a.cfg.Sentiment.Lexicon().Keywords(sentiment.CategoryNegative)))

			p.Line("")
			p.Title("Settings:")
			for _, s := range a.cfg.Settings() {
				if s.Source == config.SourceDefault {
					continue
				}
				p.KeyValue(s.Key, fmt.Sprintf("%s (%s)", s.Source, s.EnvVar))
			}
			return nil
		},
	}
}
