package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/condobot/internal/config"
	"github.com/sandevgo/condobot/internal/providers/extract"
	"github.com/sandevgo/condobot/internal/providers/llm"
	"github.com/sandevgo/condobot/internal/providers/rag"
	"github.com/sandevgo/condobot/internal/service/agent"
	"github.com/sandevgo/condobot/internal/service/command"
	"github.com/sandevgo/condobot/internal/service/documents"
	"github.com/sandevgo/condobot/internal/service/index"
	"github.com/sandevgo/condobot/internal/service/memory"
	"github.com/sandevgo/condobot/internal/service/watcher"
	"github.com/sandevgo/condobot/internal/storage/sqlite"
	"github.com/sandevgo/condobot/internal/transport/cli"
	"github.com/sandevgo/condobot/internal/transport/telegram"
	"github.com/sandevgo/condobot/pkg/log"
	"github.com/sandevgo/condobot/pkg/srv"
)

// knowledge is the document side of the bot: library plus vector index.
type knowledge struct {
	library *documents.Library
	index   *index.VectorIndex
}

// app is everything a question needs to be answered.
type app struct {
	cfg       *config.AppConfig
	knowledge *knowledge
	memory    *memory.Memory
	agent     *agent.Agent
	router    *command.Router
}

func NewServices(ctx context.Context, stop context.CancelFunc) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	a := newApp(ctx)

	// Load the persisted index or build it from the documents before
	// accepting questions.
	if err := a.knowledge.index.LoadOrBuild(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize index")
	}
	logStats(ctx, a.knowledge.index.Stats())

	if a.cfg.WatchDocs {
		w, err := watcher.NewWatcher(a.cfg.GetDocsPath(), a.knowledge.index, a.knowledge.library, watcher.DefaultDebounce)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize document watcher")
		}
		services = append(services, w)
	}

	transports, err := initTransports(ctx, a, stop)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Fatal().Msg("no transport enabled: set CONDO_ENABLE_TELEGRAM or CONDO_ENABLE_CLI")
	}
	services = append(services, transports...)

	return services
}

func newApp(ctx context.Context) *app {
	logger := log.FromCtx(ctx)

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)

	// 2. Documents and index
	k := newKnowledge(ctx, appCfg)

	// 3. AI Provider
	aiProvider, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Conversation memory
	mem := memory.NewMemory(appCfg.HistorySize)

	// 5. Agent Service
	ag := agent.NewAgent(
		k.index,
		aiProvider,
		mem,
		agent.NewSysPrompt(appCfg),
		appCfg.RetrievalK,
	)

	// 6. Commands
	router := command.New(command.NewCommands(command.Deps{
		Index:                k.index,
		Memory:               mem,
		ClearHistoryOnReload: appCfg.ClearHistoryOnReload,
	}))

	return &app{
		cfg:       appCfg,
		knowledge: k,
		memory:    mem,
		agent:     ag,
		router:    router,
	}
}

func newKnowledge(ctx context.Context, appCfg *config.AppConfig) *knowledge {
	logger := log.FromCtx(ctx)
	ragCfg := config.NewRAGConfig(ctx)

	embedder, err := rag.NewEmbedder(ragCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize RAG embedder")
	}

	chunker, err := rag.NewChunker(appCfg.ChunkSize, appCfg.ChunkOverlap)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize chunker")
	}

	if err := extract.CheckAvailable(); err != nil {
		logger.Warn().Err(err).Msg(extract.InstallInstructions())
	}

	library := documents.NewLibrary(appCfg.GetDocsPath(), extract.NewRegistry(), chunker)
	store := sqlite.NewIndexStore(appCfg.GetIndexPath())

	return &knowledge{
		library: library,
		index:   index.NewVectorIndex(embedder, store, library, appCfg.RetrievalK),
	}
}

func initTransports(ctx context.Context, a *app, stop context.CancelFunc) ([]srv.Service, error) {
	var services []srv.Service

	// Telegram Bot
	if a.cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, a.router, a.agent)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	// Terminal chat; leaving it stops the process unless Telegram keeps running.
	if a.cfg.EnableCLI {
		onExit := stop
		if a.cfg.IsTelegramSelected() {
			onExit = nil
		}
		rl, err := cli.NewReadLine(a.router, a.agent, a.cfg.GetHistoryFilePath(), onExit)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize readline: %w", err)
		}
		services = append(services, rl)
	}

	return services, nil
}

func logStats(ctx context.Context, st index.Stats) {
	log.FromCtx(ctx).Info().
		Str("state", st.State.String()).
		Int("chunks", st.Chunks).
		Strs("sources", st.Sources).
		Str("model", st.Model).
		Int("dims", st.Dims).
		Msg("index ready")
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
