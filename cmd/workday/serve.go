package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emilianohg/workday/internal/db"
	"github.com/emilianohg/workday/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	Run: func(cmd *cobra.Command, args []string) {
		svc, cfg := mustOpen()
		defer db.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.ListenAddr
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := server.New(svc, logger).ListenAndServe(ctx, addr); err != nil {
			fail("serve", err)
		}
		logger.Info("stopped")
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default: listen_addr from config)")
}
