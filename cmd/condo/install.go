package main

import (
	"errors"
	"fmt"

	"github.com/sandevgo/condobot/internal/config"
	"github.com/sandevgo/condobot/internal/service/installer"
	"github.com/sandevgo/condobot/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:          "install",
	Short:        "Configure CondoBot and create its runtime directory",
	Long:         `Asks for the LLM and embedding providers, the documents folder and the chat channel, then writes .env and SYSTEM.md to the runtime directory.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		runtimePath := config.GetRuntimePath()
		if _, err := installer.RunWizard(); err != nil {
			if errors.Is(err, installer.ErrInterrupted) {
				logger.Warn().Msg("installation cancelled, nothing was written")
				return nil
			}
			return fmt.Errorf("install: %w", err)
		}

		// Pick up what the wizard just wrote.
		if err := initEnv(ctx, runtimePath); err != nil {
			return err
		}
		appCfg, err := config.LoadAppConfig()
		if err != nil {
			return err
		}

		logger.Info().Str("runtime", runtimePath).Msg("runtime directory initialized")
		logger.Info().Msgf("put the condominium PDFs in %s", appCfg.GetDocsPath())
		logger.Info().Msg("installation complete, run 'condo index' and then 'condo start'")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
