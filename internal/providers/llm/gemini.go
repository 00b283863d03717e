package llm

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// Gemini talks to the OpenAI-compatible surface of the Generative Language API.
type Gemini struct {
	*OpenAICompatible
}

func NewGemini(baseURL, apiKey, model string, temperature float64) *Gemini {
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	return &Gemini{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:     baseURL,
			ChatPath:    "/chat/completions",
			APIKey:      apiKey,
			Model:       model,
			Temperature: temperature,
			AuthHeader:  "Authorization",
			AuthPrefix:  "Bearer ",
		}),
	}
}
