package llm

import "github.com/sandevgo/condobot/internal/core"

type OpenRouter struct {
	*OpenAICompatible
}

func NewOpenRouter(apiKey, model string, temperature float64) *OpenRouter {
	return &OpenRouter{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:     "https://openrouter.ai/api",
			APIKey:      apiKey,
			Model:       model,
			Temperature: temperature,
			AuthHeader:  "Authorization",
			AuthPrefix:  "Bearer ",
			ExtraHeaders: map[string]string{
				"HTTP-Referer": core.CondoRepository,
				"X-Title":      core.CondoName,
			},
		}),
	}
}
