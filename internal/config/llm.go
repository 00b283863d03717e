package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/condobot/pkg/log"
)

type LLMConfig struct {
	Provider    string  `env:"CONDO_LLM_PROVIDER" envDefault:"gemini"`
	Model       string  `env:"CONDO_LLM_MODEL" envDefault:"gemini-2.0-flash"`
	Temperature float64 `env:"CONDO_LLM_TEMPERATURE" envDefault:"0.5"`
	// BaseURL overrides the endpoint of OpenAI-compatible providers.
	BaseURL string `env:"CONDO_LLM_BASE_URL"`

	GeminiAPIKey     string `env:"CONDO_GEMINI_API_KEY"`
	AnthropicAPIKey  string `env:"CONDO_ANTHROPIC_API_KEY"`
	OpenAIAPIKey     string `env:"CONDO_OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"CONDO_OPENROUTER_API_KEY"`
	OllamaBaseURL    string `env:"CONDO_OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}

func (c LLMConfig) GetProvider() string         { return c.Provider }
func (c LLMConfig) GetModel() string            { return c.Model }
func (c LLMConfig) GetTemperature() float64     { return c.Temperature }
func (c LLMConfig) GetBaseURL() string          { return c.BaseURL }
func (c LLMConfig) GetGeminiAPIKey() string     { return c.GeminiAPIKey }
func (c LLMConfig) GetAnthropicAPIKey() string  { return c.AnthropicAPIKey }
func (c LLMConfig) GetOpenAIAPIKey() string     { return c.OpenAIAPIKey }
func (c LLMConfig) GetOpenRouterAPIKey() string { return c.OpenRouterAPIKey }
func (c LLMConfig) GetOllamaBaseURL() string    { return c.OllamaBaseURL }
