package datasource

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/feedwatch/internal/logger"
	"github.com/seenimoa/feedwatch/pkg/models"
)

const (
	// DefaultMaxArticles is how many entries are kept per feed.
	DefaultMaxArticles = 10
	// DefaultConcurrency bounds parallel feed downloads.
	DefaultConcurrency = 5

	untitledFeed    = "Untitled Feed"
	untitledArticle = "Untitled"
)

// FeedOptions configures the feed source.
type FeedOptions struct {
	MaxArticles       int
	Concurrency       int
	RequestsPerSecond float64
	Client            *http.Client
}

// Feeds fetches and parses RSS/Atom feeds.
type Feeds struct {
	client      *http.Client
	limiter     *Limiter
	maxArticles int
	concurrency int
}

// FetchResult is the outcome of fetching one subscribed feed.
type FetchResult struct {
	URL  string
	Feed models.Feed
	Err  error
}

// NewFeeds creates a feed source. Zero option values fall back to defaults.
func NewFeeds(opts FeedOptions) *Feeds {
	if opts.MaxArticles <= 0 {
		opts.MaxArticles = DefaultMaxArticles
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Client == nil {
		opts.Client = NewHTTPClient(0)
	}
	return &Feeds{
		client:      opts.Client,
		limiter:     NewLimiter("feeds", opts.RequestsPerSecond),
		maxArticles: opts.MaxArticles,
		concurrency: opts.Concurrency,
	}
}

// Fetch downloads and parses a single feed.
func (f *Feeds) Fetch(ctx context.Context, url string) (models.Feed, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return models.Feed{}, err
	}

	body, err := doGet(ctx, f.client, url, map[string]string{
		"Accept": "application/rss+xml, application/atom+xml, application/xml, text/xml, */*",
	})
	if err != nil {
		return models.Feed{}, fmt.Errorf("fetch feed %s: %w", url, err)
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return models.Feed{}, fmt.Errorf("parse feed %s: %w", url, err)
	}

	return f.convert(url, parsed), nil
}

// FetchAll fetches every URL concurrently. Results keep the order of urls;
// a failing feed is reported in its FetchResult and does not stop the others.
// The returned error is non-nil only when ctx is cancelled.
func (f *Feeds) FetchAll(ctx context.Context, urls []string) ([]FetchResult, error) {
	results := make([]FetchResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			log := logger.Get().With("url", url)
			feed, err := f.Fetch(gctx, url)
			results[i] = FetchResult{URL: url, Feed: feed, Err: err}
			if err != nil {
				log.Warnw("feed fetch failed", "err", err)
				return nil // non-fatal
			}
			log.Debugw("feed fetched", "articles", len(feed.Articles))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// Articles flattens the articles of all successful results, in feed order.
func Articles(results []FetchResult) []models.FeedArticle {
	var all []models.FeedArticle
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		all = append(all, r.Feed.Articles...)
	}
	return all
}

// --- Internal helpers ---

func (f *Feeds) convert(url string, parsed *gofeed.Feed) models.Feed {
	feed := models.Feed{
		URL:   url,
		Title: strings.TrimSpace(parsed.Title),
	}
	if feed.Title == "" {
		feed.Title = untitledFeed
	}

	items := parsed.Items
	if len(items) > f.maxArticles {
		items = items[:f.maxArticles]
	}

	feed.Articles = make([]models.FeedArticle, 0, len(items))
	for _, item := range items {
		a := models.FeedArticle{
			Title:   strings.TrimSpace(item.Title),
			Summary: cleanHTML(item.Description),
			Link:    itemLink(item),
			Source:  feed.Title,
		}
		if a.Title == "" {
			a.Title = untitledArticle
		}
		if a.Summary == "" {
			a.Summary = cleanHTML(item.Content)
		}
		switch {
		case item.PublishedParsed != nil:
			a.Published = item.PublishedParsed
		case item.UpdatedParsed != nil:
			a.Published = item.UpdatedParsed
		}
		feed.Articles = append(feed.Articles, a)
	}
	return feed
}

func itemLink(item *gofeed.Item) string {
	if item.Link != "" {
		return item.Link
	}
	if len(item.Links) > 0 {
		return item.Links[0]
	}
	return ""
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
