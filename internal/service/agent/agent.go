package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/pkg/log"
)

const (
	// NoResultsText is returned when retrieval finds nothing; generation is skipped.
	NoResultsText = "Não encontrei informações relevantes sobre essa consulta nos documentos disponíveis."
	// FailureText is what users see when an answer could not be produced.
	FailureText = "❌ Ocorreu um erro ao processar sua solicitação. Por favor, tente novamente."
)

type SessionMemory interface {
	Append(sessionID string, role core.Role, content string)
	RenderForPrompt(sessionID string) string
}

// Agent answers questions from retrieved document chunks and the recent
// conversation of the session.
type Agent struct {
	retriever core.Retriever
	ai        core.AIProvider
	memory    SessionMemory
	prompter  *SysPrompt
	k         int
}

func NewAgent(
	retriever core.Retriever,
	ai core.AIProvider,
	memory SessionMemory,
	prompter *SysPrompt,
	k int,
) *Agent {
	return &Agent{
		retriever: retriever,
		ai:        ai,
		memory:    memory,
		prompter:  prompter,
		k:         k,
	}
}

var _ core.Answerer = (*Agent)(nil)

func (a *Agent) Answer(ctx context.Context, sessionID, query string) (string, error) {
	logger := log.FromCtx(ctx).With().Str("session", sessionID).Logger()
	start := time.Now()

	chunks, err := a.retriever.Search(ctx, query, a.k)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve context: %w", err)
	}
	if len(chunks) == 0 {
		logger.Info().Msg("no relevant chunks, answering with fallback")
		return NoResultsText, nil
	}

	system, err := a.prompter.Build()
	if err != nil {
		return "", err
	}

	// History as it was before this question; the question goes in its own section.
	history := a.memory.RenderForPrompt(sessionID)
	a.memory.Append(sessionID, core.RoleUser, query)

	messages := []core.Message{
		system,
		{Role: core.RoleUser, Content: buildUserPrompt(formatContext(chunks), history, query)},
	}

	logger.Debug().
		Int("chunks", len(chunks)).
		Bool("history", history != "").
		Msg("prompt assembled")

	resp, err := a.ai.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrGeneration, err)
	}

	a.memory.Append(sessionID, core.RoleAssistant, resp.Content)

	logger.Info().
		Int("chunks", len(chunks)).
		Dur("took", time.Since(start)).
		Msg("question answered")
	return resp.Content, nil
}
