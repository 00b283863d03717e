package core

import "time"

type PromptConfig interface {
	GetSystemPath() string
}

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	GetTemperature() float64
	GetBaseURL() string
	GetGeminiAPIKey() string
	GetAnthropicAPIKey() string
	GetOpenAIAPIKey() string
	GetOpenRouterAPIKey() string
	GetOllamaBaseURL() string
}

type EmbeddingConfig interface {
	GetEmbeddingProvider() string
	GetEmbeddingModel() string
	GetEmbeddingBaseURL() string
	GetEmbeddingAPIKey() string
	GetEmbeddingDimensions() int
	GetEmbeddingBatchSize() int
	GetEmbeddingTimeout() time.Duration
}
