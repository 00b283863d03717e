package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/internal/providers/rag"
	"github.com/sandevgo/condobot/internal/service/index"
	"github.com/sandevgo/condobot/internal/service/memory"
	"github.com/sandevgo/condobot/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRetriever struct {
	chunks []core.Chunk
	err    error
	k      int
}

func (r *fakeRetriever) Search(ctx context.Context, query string, k int) ([]core.Chunk, error) {
	r.k = k
	return r.chunks, r.err
}

// echoAI answers with the user prompt it received.
type echoAI struct {
	calls [][]core.Message
	err   error
}

func (e *echoAI) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	e.calls = append(e.calls, history)
	if e.err != nil {
		return core.Message{}, e.err
	}
	return core.Message{Role: core.RoleAssistant, Content: history[len(history)-1].Content}, nil
}

type promptPath string

func (p promptPath) GetSystemPath() string { return string(p) }

func silenceRule() []core.Chunk {
	return []core.Chunk{{Content: "Regra 1: silêncio após 22h.", Source: "regimento.pdf", Locator: "/docs/regimento.pdf"}}
}

func TestAnswerEmptyRetrievalShortCircuits(t *testing.T) {
	ai := &echoAI{}
	mem := memory.NewMemory(5)
	a := NewAgent(&fakeRetriever{}, ai, mem, NewSysPrompt(nil), 6)

	got, err := a.Answer(context.Background(), "s1", "qual o horário de silêncio?")
	require.NoError(t, err)

	assert.Equal(t, NoResultsText, got)
	assert.Empty(t, ai.calls, "generation must not run")
	assert.Empty(t, mem.History("s1"), "history must not change")
}

func TestAnswerAssemblesPrompt(t *testing.T) {
	ai := &echoAI{}
	mem := memory.NewMemory(5)
	retriever := &fakeRetriever{chunks: append(silenceRule(), core.Chunk{Content: "Índice vazio."})}
	a := NewAgent(retriever, ai, mem, NewSysPrompt(nil), 4)

	_, err := a.Answer(context.Background(), "s1", "qual o horário de silêncio?")
	require.NoError(t, err)
	require.Len(t, ai.calls, 1)
	assert.Equal(t, 4, retriever.k)

	msgs := ai.calls[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, core.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Não encontrei esta informação nos documentos disponíveis.")

	user := msgs[1].Content
	assert.True(t, strings.HasPrefix(user, "Contextos:\n"))
	assert.Contains(t, user, "Documento 1 (Fonte: regimento.pdf):\nRegra 1: silêncio após 22h.")
	assert.Contains(t, user, "Documento 2:\nÍndice vazio.")
	assert.NotContains(t, user, "Histórico da conversa:", "first question has no history")
	assert.True(t, strings.HasSuffix(user, "Pergunta atual: qual o horário de silêncio?"))

	history := mem.History("s1")
	require.Len(t, history, 2)
	assert.Equal(t, core.RoleUser, history[0].Role)
	assert.Equal(t, "qual o horário de silêncio?", history[0].Content)
	assert.Equal(t, core.RoleAssistant, history[1].Role)
	assert.Equal(t, user, history[1].Content)
}

func TestAnswerRendersPriorHistoryOnly(t *testing.T) {
	ai := &echoAI{}
	mem := memory.NewMemory(5)
	a := NewAgent(&fakeRetriever{chunks: silenceRule()}, ai, mem, NewSysPrompt(nil), 6)

	mem.Append("s1", core.RoleUser, "Posso fazer festa?")
	mem.Append("s1", core.RoleAssistant, "Sim, até as 22h.")

	_, err := a.Answer(context.Background(), "s1", "E no domingo?")
	require.NoError(t, err)

	user := ai.calls[0][1].Content
	_, historySection, found := strings.Cut(user, "Histórico da conversa:\n")
	require.True(t, found)
	historySection, _, _ = strings.Cut(historySection, "\n\nPergunta atual:")

	assert.Equal(t, "Usuário: Posso fazer festa?\nAssistente: Sim, até as 22h.", historySection)
	assert.True(t, strings.HasSuffix(user, "Pergunta atual: E no domingo?"))
}

func TestAnswerGenerationFailure(t *testing.T) {
	cause := errors.New("503 service unavailable")
	mem := memory.NewMemory(5)
	a := NewAgent(&fakeRetriever{chunks: silenceRule()}, &echoAI{err: cause}, mem, NewSysPrompt(nil), 6)

	_, err := a.Answer(context.Background(), "s1", "qual o horário de silêncio?")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrGeneration)
	assert.ErrorIs(t, err, cause)

	history := mem.History("s1")
	require.Len(t, history, 1)
	assert.Equal(t, core.RoleUser, history[0].Role)
}

func TestAnswerRetrievalFailure(t *testing.T) {
	mem := memory.NewMemory(5)
	ai := &echoAI{}
	a := NewAgent(&fakeRetriever{err: errors.New("embedding down")}, ai, mem, NewSysPrompt(nil), 6)

	_, err := a.Answer(context.Background(), "s1", "oi")
	assert.ErrorContains(t, err, "embedding down")
	assert.Empty(t, ai.calls)
	assert.Empty(t, mem.History("s1"))
}

func TestSysPromptOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SYSTEM.md")

	msg, err := NewSysPrompt(promptPath(path)).Build()
	require.NoError(t, err)
	assert.Contains(t, msg.Content, "Regimento Interno", "missing file falls back to the default")

	require.NoError(t, os.WriteFile(path, []byte("Responda sempre em inglês."), 0644))
	msg, err = NewSysPrompt(promptPath(path)).Build()
	require.NoError(t, err)
	assert.Equal(t, core.RoleSystem, msg.Role)
	assert.Equal(t, "Responda sempre em inglês.", msg.Content)
}

type hashEmbedder struct{ *rag.HashEmbedder }

func (hashEmbedder) Name() string { return "hash:256" }

type chunkedSource struct {
	chunker *rag.Chunker
	docs    map[string]string
}

func (s chunkedSource) LoadAll(ctx context.Context) ([]core.Chunk, error) {
	var out []core.Chunk
	for name, text := range s.docs {
		out = append(out, s.chunker.Chunk(text, name, "/docs/"+name)...)
	}
	return out, nil
}

func TestAnswerEndToEnd(t *testing.T) {
	ctx := context.Background()
	chunker, err := rag.NewChunker(1000, 200)
	require.NoError(t, err)

	source := chunkedSource{chunker: chunker, docs: map[string]string{
		"regimento.pdf": "Regra 1: silêncio após 22h.",
	}}
	idx := index.NewVectorIndex(hashEmbedder{rag.NewHashEmbedder(256)}, sqlite.NewIndexStore(t.TempDir()), source, 6)
	require.NoError(t, idx.LoadOrBuild(ctx))

	chunks, err := idx.Search(ctx, "qual o horário de silêncio?", 6)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	assert.Contains(t, chunks[0].Content, "Regra 1: silêncio após 22h.")

	mem := memory.NewMemory(5)
	a := NewAgent(idx, &echoAI{}, mem, NewSysPrompt(nil), 6)

	answer, err := a.Answer(ctx, "telegram-1", "qual o horário de silêncio?")
	require.NoError(t, err)
	assert.Contains(t, answer, "Regra 1: silêncio após 22h.")
	assert.Contains(t, answer, "regimento.pdf")
	assert.Len(t, mem.History("telegram-1"), 2)
}
