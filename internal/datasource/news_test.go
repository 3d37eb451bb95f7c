package datasource

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/seenimoa/feedwatch/internal/logger"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Market Wire</title>
  <link>https://wire.example</link>
  <item>
    <title>AAPL beats estimates</title>
    <link>https://wire.example/aapl</link>
    <description>&lt;p&gt;Apple &lt;b&gt;profit&lt;/b&gt; jumps&lt;/p&gt;</description>
    <pubDate>Tue, 05 Mar 2024 14:30:00 GMT</pubDate>
  </item>
  <item>
    <title></title>
    <link>https://wire.example/untitled</link>
  </item>
</channel>
</rss>`

const atomFixture = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title></title>
  <entry>
    <title>TSLA recall</title>
    <link href="https://atom.example/tsla"/>
    <updated>2024-03-06T10:00:00Z</updated>
    <summary>Tesla shares drop</summary>
  </entry>
</feed>`

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rss", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFixture)
	})
	mux.HandleFunc("/atom", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, atomFixture)
	})
	mux.HandleFunc("/many", func(w http.ResponseWriter, r *http.Request) {
		var b strings.Builder
		b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>Many</title>`)
		for i := 0; i < 15; i++ {
			fmt.Fprintf(&b, "<item><title>item %d</title><link>https://many.example/%d</link></item>", i, i)
		}
		b.WriteString(`</channel></rss>`)
		fmt.Fprint(w, b.String())
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchRSS(t *testing.T) {
	srv := newFeedServer(t)
	f := NewFeeds(FeedOptions{})

	feed, err := f.Fetch(context.Background(), srv.URL+"/rss")
	require.NoError(t, err)

	assert.Equal(t, "Market Wire", feed.Title)
	require.Len(t, feed.Articles, 2)

	a := feed.Articles[0]
	assert.Equal(t, "AAPL beats estimates", a.Title)
	assert.Equal(t, "https://wire.example/aapl", a.Link)
	assert.Equal(t, "Apple profit jumps", a.Summary, "HTML is stripped from summaries")
	assert.Equal(t, "Market Wire", a.Source)
	require.NotNil(t, a.Published)
	assert.Equal(t, "2024-03-05", a.Published.UTC().Format("2006-01-02"))

	assert.Equal(t, "Untitled", feed.Articles[1].Title)
	assert.Nil(t, feed.Articles[1].Published)
}

func TestFetchAtomFallbacks(t *testing.T) {
	srv := newFeedServer(t)
	feed, err := NewFeeds(FeedOptions{}).Fetch(context.Background(), srv.URL+"/atom")
	require.NoError(t, err)

	assert.Equal(t, "Untitled Feed", feed.Title)
	require.Len(t, feed.Articles, 1)
	a := feed.Articles[0]
	assert.Equal(t, "https://atom.example/tsla", a.Link)
	assert.Equal(t, "Tesla shares drop", a.Summary)
	require.NotNil(t, a.Published, "updated is used when published is missing")
	assert.Equal(t, 6, a.Published.Day())
}

func TestFetchLimitsArticles(t *testing.T) {
	srv := newFeedServer(t)

	feed, err := NewFeeds(FeedOptions{}).Fetch(context.Background(), srv.URL+"/many")
	require.NoError(t, err)
	assert.Len(t, feed.Articles, DefaultMaxArticles)
	assert.Equal(t, "item 0", feed.Articles[0].Title)

	feed, err = NewFeeds(FeedOptions{MaxArticles: 3}).Fetch(context.Background(), srv.URL+"/many")
	require.NoError(t, err)
	assert.Len(t, feed.Articles, 3)
}

func TestFetchHTTPError(t *testing.T) {
	srv := newFeedServer(t)
	_, err := NewFeeds(FeedOptions{}).Fetch(context.Background(), srv.URL+"/broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "410")
}

func TestFetchAllKeepsOrderAndSkipsFailures(t *testing.T) {
	srv := newFeedServer(t)
	urls := []string{srv.URL + "/atom", srv.URL + "/broken", srv.URL + "/rss"}

	results, err := NewFeeds(FeedOptions{Concurrency: 2}).FetchAll(context.Background(), urls)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, urls[i], r.URL)
	}
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)

	articles := Articles(results)
	require.Len(t, articles, 3)
	assert.Equal(t, "TSLA recall", articles[0].Title)
	assert.Equal(t, "AAPL beats estimates", articles[1].Title)
}

func TestFetchAllLogsFailedURL(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(zap.NewNop()) })

	srv := newFeedServer(t)
	bad := srv.URL + "/broken"
	_, err := NewFeeds(FeedOptions{}).FetchAll(context.Background(), []string{srv.URL + "/rss", bad})
	require.NoError(t, err)

	failed := logs.FilterMessage("feed fetch failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, bad, failed[0].ContextMap()["url"])
	assert.NotEmpty(t, failed[0].ContextMap()["err"])
}

func TestFetchAllCancelled(t *testing.T) {
	srv := newFeedServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFeeds(FeedOptions{}).FetchAll(ctx, []string{srv.URL + "/rss"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCleanHTML(t *testing.T) {
	assert.Equal(t, "", cleanHTML(""))
	assert.Equal(t, "Hello world", cleanHTML("<div>Hello\n  <i>world</i></div>"))
	assert.Equal(t, "plain text", cleanHTML("plain text"))
}
