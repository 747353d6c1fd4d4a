package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gogpu/piechart/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve charts over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		renderer, err := newRenderer(cfg.Chart)
		if err != nil {
			return err
		}
		srv, err := server.New(server.Options{
			Parser:    newParser(cfg.Chart),
			Encoder:   renderer,
			CacheSize: cfg.Cache.Size,
			Logger:    logger,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, cfg.Server)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
}
