package rag

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderHash   = "hash"

	defaultOllamaURL = "http://localhost:11434"
)

func NewEmbedder(cfg core.EmbeddingConfig) (*Embedder, error) {
	provider := strings.ToLower(cfg.GetEmbeddingProvider())
	model := cfg.GetEmbeddingModel()

	var (
		impl embeddings.Embedder
		name string
		err  error
	)

	switch provider {
	case ProviderOllama:
		impl, err = newOllamaEmbedder(cfg)
		name = "ollama:" + model
	case ProviderOpenAI:
		impl, err = newOpenAIEmbedder(cfg)
		name = "openai:" + model
	case ProviderHash:
		h := NewHashEmbedder(cfg.GetEmbeddingDimensions())
		impl = h
		name = fmt.Sprintf("hash:%d", h.Dims())
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", core.ErrConfiguration, cfg.GetEmbeddingProvider())
	}
	if err != nil {
		return nil, err
	}

	e := newEmbedder(impl, name, cfg.GetEmbeddingTimeout())
	if provider != ProviderHash && isE5(model) {
		e.queryPrefix = "query: "
		e.passagePrefix = "passage: "
	}
	return e, nil
}

func newEmbedder(impl embeddings.Embedder, name string, timeout time.Duration) *Embedder {
	return &Embedder{impl: impl, name: name, timeout: timeout}
}

func newOllamaEmbedder(cfg core.EmbeddingConfig) (embeddings.Embedder, error) {
	baseURL := cfg.GetEmbeddingBaseURL()
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	llm, err := ollama.New(ollama.WithModel(cfg.GetEmbeddingModel()), ollama.WithServerURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ollama embeddings client: %w", err)
	}

	emb, err := embeddings.NewEmbedder(llm, embeddings.WithBatchSize(batchSize(cfg)))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama embedder: %w", err)
	}
	return emb, nil
}

func newOpenAIEmbedder(cfg core.EmbeddingConfig) (embeddings.Embedder, error) {
	if cfg.GetEmbeddingAPIKey() == "" {
		return nil, fmt.Errorf("%w: CONDO_EMBEDDING_API_KEY is required for the openai embedding provider", core.ErrConfiguration)
	}

	opts := []openai.Option{
		openai.WithToken(cfg.GetEmbeddingAPIKey()),
		openai.WithEmbeddingModel(cfg.GetEmbeddingModel()),
	}
	if baseURL := cfg.GetEmbeddingBaseURL(); baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize openai embeddings client: %w", err)
	}

	emb, err := embeddings.NewEmbedder(llm, embeddings.WithBatchSize(batchSize(cfg)))
	if err != nil {
		return nil, fmt.Errorf("failed to create openai embedder: %w", err)
	}
	return emb, nil
}

func batchSize(cfg core.EmbeddingConfig) int {
	if n := cfg.GetEmbeddingBatchSize(); n > 0 {
		return n
	}
	return 32
}
