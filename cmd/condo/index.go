package main

import (
	"fmt"

	"github.com/sandevgo/condobot/internal/config"
	"github.com/sandevgo/condobot/pkg/log"
	"github.com/spf13/cobra"
)

var forceIndex bool

var indexCmd = &cobra.Command{
	Use:          "index",
	Short:        "Build the document index",
	Long:         `Extracts and embeds every document in the docs directory and saves the index. Without --force a compatible saved index is reused.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		appCfg := config.NewAppConfig(ctx)
		k := newKnowledge(ctx, appCfg)

		if err := k.index.Reload(ctx, forceIndex); err != nil {
			return fmt.Errorf("failed to build index: %w", err)
		}

		st := k.index.Stats()
		logStats(ctx, st)
		log.FromCtx(ctx).Info().Str("path", appCfg.GetIndexPath()).Msg("index saved")
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVarP(&forceIndex, "force", "f", false, "rebuild even if a saved index exists")
	rootCmd.AddCommand(indexCmd)
}
