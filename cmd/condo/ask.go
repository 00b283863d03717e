package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/internal/service/agent"
	"github.com/sandevgo/condobot/pkg/log"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:          "ask <question>",
	Short:        "Answer a single question and exit",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a := newApp(ctx)
		if err := a.knowledge.index.LoadOrBuild(ctx); err != nil {
			return fmt.Errorf("failed to initialize index: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), answerOnce(ctx, a.agent, strings.Join(args, " ")))
		return nil
	},
}

// answerOnce never shows provider details to the user; they go to the log.
func answerOnce(ctx context.Context, answerer core.Answerer, question string) string {
	answer, err := answerer.Answer(ctx, "cli-ask", question)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to answer")
		return agent.FailureText
	}
	return answer
}

func init() {
	rootCmd.AddCommand(askCmd)
}
