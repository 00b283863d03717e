package llm

type Ollama struct {
	*OpenAICompatible
}

// NewOllama uses the OpenAI-compatible endpoint Ollama serves under /v1.
func NewOllama(baseURL, model string, temperature float64) *Ollama {
	return &Ollama{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:     baseURL,
			Model:       model,
			Temperature: temperature,
		}),
	}
}
