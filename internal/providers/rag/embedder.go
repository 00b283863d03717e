package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/pkg/log"
	"github.com/tmc/langchaingo/embeddings"
)

// Embedder adapts a langchaingo embedder to core.Embedder: it bounds every
// call with a timeout, applies model-specific prefixes and checks that the
// backend returned one non-empty vector per input.
type Embedder struct {
	impl          embeddings.Embedder
	name          string
	timeout       time.Duration
	queryPrefix   string
	passagePrefix string
}

var _ core.Embedder = (*Embedder)(nil)

func (e *Embedder) Name() string {
	return e.name
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	vec, err := e.impl.EmbedQuery(ctx, e.queryPrefix+text)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("failed to encode query: empty embedding from %s", e.name)
	}
	return vec, nil
}

func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	inputs := texts
	if e.passagePrefix != "" {
		inputs = make([]string, len(texts))
		for i, t := range texts {
			inputs[i] = e.passagePrefix + t
		}
	}

	start := time.Now()
	vecs, err := e.impl.EmbedDocuments(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode passages: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("failed to encode passages: got %d vectors for %d texts", len(vecs), len(texts))
	}
	for i, v := range vecs {
		if len(v) == 0 {
			return nil, fmt.Errorf("failed to encode passages: empty embedding for text %d", i)
		}
	}

	log.FromCtx(ctx).Debug().
		Str("model", e.name).
		Int("texts", len(texts)).
		Dur("took", time.Since(start)).
		Msg("passages embedded")
	return vecs, nil
}

func (e *Embedder) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

// isE5 reports whether the model expects "query: "/"passage: " prefixes.
func isE5(model string) bool {
	return strings.Contains(strings.ToLower(model), "e5")
}
