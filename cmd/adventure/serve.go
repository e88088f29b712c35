package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"adventure/internal/logger"
	"adventure/internal/web"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the adventure to a browser",
		Long:  `Starts an HTTP server; every browser session gets its own transcript.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				opts.cfg.Web.Addr = addr
			}
			ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ttl, err := opts.cfg.Web.SessionIdle()
			if err != nil {
				return reportErr(cmd, err)
			}
			srv := web.NewServer(web.Options{
				Addr:        opts.cfg.Web.Addr,
				Logger:      logger.Named("web"),
				SessionTTL:  ttl,
				MaxSessions: opts.cfg.Web.MaxSessions,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Serving the adventure on http://%s\n", opts.cfg.Web.Addr)
			if err := srv.Run(ctx); err != nil {
				return reportErr(cmd, fmt.Errorf("serve: %w", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides web.addr)")
	return cmd
}
