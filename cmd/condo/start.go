package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/condobot/internal/config"
	"github.com/sandevgo/condobot/pkg/log"
	"github.com/sandevgo/condobot/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Answer questions over Telegram and/or the terminal",
	Long: `Loads the persisted document index (building it when missing or stale),
then serves the enabled chat channels until interrupted. With CONDO_WATCH_DOCS
the documents folder is watched and the index follows its changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stopSignals := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stopSignals()

		ctx, flushLog := setupLogger(ctx)
		defer flushLog()

		// Leaving the terminal chat cancels ctx as well.
		ctx, stop := context.WithCancel(ctx)
		defer stop()

		logger := log.FromCtx(ctx)
		logger.Info().Str("runtime", config.GetRuntimePath()).Msg("starting condobot")

		services := NewServices(ctx, stop)
		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)

		logger.Info().Msg("condobot stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
