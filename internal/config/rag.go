package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/condobot/pkg/log"
)

type RAGConfig struct {
	Provider   string        `env:"CONDO_EMBEDDING_PROVIDER" envDefault:"ollama"`
	ModelName  string        `env:"CONDO_EMBEDDING_MODEL" envDefault:"nomic-embed-text"`
	BaseURL    string        `env:"CONDO_EMBEDDING_BASE_URL"`
	APIKey     string        `env:"CONDO_EMBEDDING_API_KEY"`
	Dimensions int           `env:"CONDO_EMBEDDING_DIMENSIONS" envDefault:"384"`
	BatchSize  int           `env:"CONDO_EMBEDDING_BATCH_SIZE" envDefault:"32"`
	Timeout    time.Duration `env:"CONDO_EMBEDDING_TIMEOUT" envDefault:"2m"`
}

func NewRAGConfig(ctx context.Context) *RAGConfig {
	cfg := &RAGConfig{}
	if err := env.Parse(cfg); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse RAG config")
	}
	return cfg
}

func (c RAGConfig) GetEmbeddingProvider() string { return c.Provider }
func (c RAGConfig) GetEmbeddingModel() string    { return c.ModelName }
func (c RAGConfig) GetEmbeddingBaseURL() string  { return c.BaseURL }
func (c RAGConfig) GetEmbeddingAPIKey() string   { return c.APIKey }
func (c RAGConfig) GetEmbeddingDimensions() int  { return c.Dimensions }
func (c RAGConfig) GetEmbeddingBatchSize() int   { return c.BatchSize }

func (c RAGConfig) GetEmbeddingTimeout() time.Duration { return c.Timeout }
