package main

import (
	"github.com/spf13/cobra"

	"github.com/seenimoa/feedwatch/pkg/utils"
)

// --- Stock Commands ---

func newStockCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Manage tracked investments",
	}

	add := &cobra.Command{
		Use:   "add [symbol]",
		Short: "Track a ticker symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			st, w, err := a.watchlist()
			if err != nil {
				return err
			}
			added, err := w.AddTicker(args[0], name)
			if err != nil {
				return err
			}
			p := printer(cmd)
			t, _ := w.Ticker(args[0])
			if !added {
				p.Muted("Investment already tracked: %s", t.Symbol)
				return nil
			}
			if err := st.Save(w); err != nil {
				return err
			}
			p.Line("Added investment: %s", t.Display())
			return nil
		},
	}
	add.Flags().StringP("name", "n", "", "company name matched as a case-insensitive substring")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:     "remove [symbol]",
		Aliases: []string{"rm"},
		Short:   "Stop tracking a ticker symbol",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, w, err := a.watchlist()
			if err != nil {
				return err
			}
			symbol := utils.NormalizeTicker(args[0])
			p := printer(cmd)
			if !w.RemoveTicker(symbol) {
				p.Muted("Investment not found: %s", symbol)
				return nil
			}
			if err := st.Save(w); err != nil {
				return err
			}
			p.Line("Removed investment: %s", symbol)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tracked investments",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, w, err := a.watchlist()
			if err != nil {
				return err
			}
			printer(cmd).TickerList(w.Tickers)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "quote [symbol]",
		Short: "Fetch the latest quote for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := utils.NormalizeTicker(args[0])
			p := printer(cmd)
			p.Muted("Fetching quote for %s...", symbol)

			q, err := a.quotes().GetQuote(cmd.Context(), symbol)
			if err != nil {
				return err
			}
			p.Quote(q)
			return nil
		},
	})

	return cmd
}
