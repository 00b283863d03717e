package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/pkg/log"
)

// NewProvider creates the appropriate AIProvider based on configuration.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Float64("temperature", cfg.GetTemperature()).
		Msg("starting llm provider")

	model, temp := cfg.GetModel(), cfg.GetTemperature()

	switch cfg.GetProvider() {
	case "gemini":
		if cfg.GetGeminiAPIKey() == "" {
			return nil, missingKey("gemini", "CONDO_GEMINI_API_KEY")
		}
		return NewGemini(cfg.GetBaseURL(), cfg.GetGeminiAPIKey(), model, temp), nil
	case "openai":
		if cfg.GetOpenAIAPIKey() == "" {
			return nil, missingKey("openai", "CONDO_OPENAI_API_KEY")
		}
		return NewOpenAI(cfg.GetOpenAIAPIKey(), model, temp), nil
	case "anthropic":
		if cfg.GetAnthropicAPIKey() == "" {
			return nil, missingKey("anthropic", "CONDO_ANTHROPIC_API_KEY")
		}
		return NewAnthropic(cfg.GetAnthropicAPIKey(), model, temp), nil
	case "openrouter":
		if cfg.GetOpenRouterAPIKey() == "" {
			return nil, missingKey("openrouter", "CONDO_OPENROUTER_API_KEY")
		}
		return NewOpenRouter(cfg.GetOpenRouterAPIKey(), model, temp), nil
	case "ollama":
		return NewOllama(cfg.GetOllamaBaseURL(), model, temp), nil
	case "custom":
		if cfg.GetBaseURL() == "" {
			return nil, fmt.Errorf("%w: custom provider requires CONDO_LLM_BASE_URL", core.ErrConfiguration)
		}
		return NewCustomOpenAI(cfg.GetBaseURL(), cfg.GetOpenAIAPIKey(), model, temp), nil
	default:
		return nil, fmt.Errorf("%w: unknown llm provider: %s", core.ErrConfiguration, cfg.GetProvider())
	}
}

func missingKey(provider, envVar string) error {
	return fmt.Errorf("%w: %s provider requires %s", core.ErrConfiguration, provider, envVar)
}
