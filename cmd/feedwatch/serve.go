package main

import (
	"github.com/spf13/cobra"

	"github.com/seenimoa/feedwatch/api"
	"github.com/seenimoa/feedwatch/internal/logger"
	"github.com/seenimoa/feedwatch/internal/store"
)

// --- Serve Command ---

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the watchlist, scans and quotes as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = a.cfg.API.Addr()
			}

			srv := api.NewServer(api.Options{
				Config:  a.cfg,
				Store:   store.New(a.dataPath),
				Feeds:   a.feeds(),
				Quotes:  a.quotes(),
				Version: version,
			})
			printer(cmd).Muted("Listening on http://%s (Ctrl+C to stop)", addr)
			if err := srv.ListenAndServe(cmd.Context(), addr); err != nil {
				logger.Errorw("api server stopped", "addr", addr, "err", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "listen address (default: api.host:api.port)")
	return cmd
}
