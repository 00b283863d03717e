package llm

// OpenAI provider is implemented using OpenAICompatible.
type OpenAI struct {
	*OpenAICompatible
}

// NewOpenAI creates a new OpenAI provider.
func NewOpenAI(apiKey, model string, temperature float64) *OpenAI {
	return &OpenAI{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:     "https://api.openai.com",
			APIKey:      apiKey,
			Model:       model,
			Temperature: temperature,
			AuthHeader:  "Authorization",
			AuthPrefix:  "Bearer ",
		}),
	}
}
