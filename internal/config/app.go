package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"CONDO_RUNTIME_PATH" envDefault:".condobot"`
	DocsPath    string `env:"CONDO_DOCS_PATH" envDefault:"docs"`
	IndexPath   string `env:"CONDO_INDEX_PATH" envDefault:"index"`

	// Chunking and retrieval
	ChunkSize    int `env:"CONDO_CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap int `env:"CONDO_CHUNK_OVERLAP" envDefault:"200"`
	RetrievalK   int `env:"CONDO_RETRIEVAL_K" envDefault:"6"`

	// Conversation memory
	HistorySize          int  `env:"CONDO_HISTORY_SIZE" envDefault:"5"`
	ClearHistoryOnReload bool `env:"CONDO_CLEAR_HISTORY_ON_RELOAD" envDefault:"false"`

	WatchDocs bool `env:"CONDO_WATCH_DOCS" envDefault:"false"`

	// Transport Flags
	EnableTelegram bool `env:"CONDO_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"CONDO_ENABLE_CLI" envDefault:"true"`

	LogFormat string `env:"CONDO_LOG_FORMAT" envDefault:"console"`
}

// LoadAppConfig parses the environment and validates the result.
func LoadAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := LoadAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to load App config")
	}
	return c
}

func (c AppConfig) Validate() error {
	switch {
	case c.ChunkSize <= 0:
		return fmt.Errorf("%w: chunk size must be positive, got %d", core.ErrConfiguration, c.ChunkSize)
	case c.ChunkOverlap < 0:
		return fmt.Errorf("%w: chunk overlap must not be negative, got %d", core.ErrConfiguration, c.ChunkOverlap)
	case c.ChunkOverlap >= c.ChunkSize:
		return fmt.Errorf("%w: chunk overlap (%d) must be smaller than chunk size (%d)",
			core.ErrConfiguration, c.ChunkOverlap, c.ChunkSize)
	case c.RetrievalK <= 0:
		return fmt.Errorf("%w: retrieval k must be positive, got %d", core.ErrConfiguration, c.RetrievalK)
	case c.HistorySize <= 0:
		return fmt.Errorf("%w: history size must be positive, got %d", core.ErrConfiguration, c.HistorySize)
	}
	return nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetSystemPath() string {
	return filepath.Join(c.RuntimePath, "SYSTEM.md")
}

// GetDocsPath resolves the documents directory against the runtime path.
func (c AppConfig) GetDocsPath() string {
	return c.underRuntime(c.DocsPath)
}

func (c AppConfig) GetIndexPath() string {
	return c.underRuntime(c.IndexPath)
}

func (c AppConfig) GetHistoryFilePath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) underRuntime(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.RuntimePath, p)
}
