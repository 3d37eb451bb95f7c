package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seenimoa/feedwatch/internal/datasource"
)

// --- Feed Commands ---

func newFeedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Manage subscribed RSS/Atom feeds",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [url]",
		Short: "Subscribe to a feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, w, err := a.watchlist()
			if err != nil {
				return err
			}
			added, err := w.AddFeed(args[0])
			if err != nil {
				return err
			}
			p := printer(cmd)
			if !added {
				p.Muted("Feed already exists: %s", args[0])
				return nil
			}
			if err := st.Save(w); err != nil {
				return err
			}
			p.Line("Added feed: %s", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "remove [url]",
		Aliases: []string{"rm"},
		Short:   "Unsubscribe from a feed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, w, err := a.watchlist()
			if err != nil {
				return err
			}
			p := printer(cmd)
			if !w.RemoveFeed(args[0]) {
				p.Muted("Feed not found: %s", args[0])
				return nil
			}
			if err := st.Save(w); err != nil {
				return err
			}
			p.Line("Removed feed: %s", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List subscribed feeds",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, w, err := a.watchlist()
			if err != nil {
				return err
			}
			printer(cmd).FeedList(w.Feeds)
			return nil
		},
	})

	return cmd
}

// --- Fetch Command ---

func newFetchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [url]",
		Short: "Fetch and print articles from one feed, or from all subscribed feeds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			urls := args
			if len(urls) == 0 {
				_, w, err := a.watchlist()
				if err != nil {
					return err
				}
				urls = w.Feeds
			}

			p := printer(cmd)
			if len(urls) == 0 {
				p.FeedList(nil)
				return nil
			}

			results, err := a.feeds().FetchAll(cmd.Context(), urls)
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				p.Line("")
				if r.Err != nil {
					failed++
					p.Warn("Error fetching %s: %v", r.URL, r.Err)
					continue
				}
				p.Feed(r.Feed)
			}
			if failed == len(results) {
				return fmt.Errorf("all %d feeds failed", failed)
			}
			return nil
		},
	}
}

// fetchArticles downloads all subscribed feeds and reports per-feed failures.
func fetchArticles(cmd *cobra.Command, a *app, urls []string) ([]datasource.FetchResult, error) {
	results, err := a.feeds().FetchAll(cmd.Context(), urls)
	if err != nil {
		return nil, err
	}
	p := printer(cmd)
	for _, r := range results {
		if r.Err != nil {
			p.Warn("Error fetching %s: %v", r.URL, r.Err)
		}
	}
	return results, nil
}
