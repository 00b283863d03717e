package main

import (
	"fmt"
	"strings"

	cenv "github.com/caarlos0/env/v11"
	"github.com/sandevgo/condobot/internal/config"
	"github.com/sandevgo/condobot/pkg/env"
	"github.com/spf13/cobra"
)

var showSecrets bool

var configCmd = &cobra.Command{
	Use:          "config",
	Short:        "Print the effective configuration as .env lines",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCfg, err := config.LoadAppConfig()
		if err != nil {
			return err
		}

		cfgs := []any{appCfg, &config.LLMConfig{}, &config.RAGConfig{}}
		if appCfg.IsTelegramSelected() {
			cfgs = append(cfgs, &config.TelegramConfig{})
		}
		for _, c := range cfgs[1:] {
			if err := cenv.Parse(c); err != nil {
				return fmt.Errorf("failed to parse config: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		for _, c := range cfgs {
			s, err := env.MarshalEnvAll(c)
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			if !showSecrets {
				s = redact(s)
			}
			fmt.Fprintln(out, s)
		}
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print API keys and tokens")
	rootCmd.AddCommand(configCmd)
}

// redact masks the value of every *_API_KEY and *_TOKEN line.
func redact(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		key, val, ok := strings.Cut(l, "=")
		if !ok || val == "" || val == `""` {
			continue
		}
		if strings.HasSuffix(key, "_API_KEY") || strings.HasSuffix(key, "_TOKEN") {
			lines[i] = key + "=****"
		}
	}
	return strings.Join(lines, "\n")
}
