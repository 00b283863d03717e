package documents

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/internal/providers/rag"
	"github.com/sandevgo/condobot/pkg/log"
)

type Extractor interface {
	Supports(path string) bool
	Extract(ctx context.Context, path string) (string, error)
}

// Library is the document folder the index is built from.
type Library struct {
	dir       string
	extractor Extractor
	chunker   *rag.Chunker
}

func NewLibrary(dir string, extractor Extractor, chunker *rag.Chunker) *Library {
	return &Library{
		dir:       dir,
		extractor: extractor,
		chunker:   chunker,
	}
}

func (l *Library) Dir() string {
	return l.dir
}

func (l *Library) Supports(path string) bool {
	return l.extractor.Supports(path)
}

// List returns supported files in the library directory sorted by name,
// creating the directory when it does not exist.
func (l *Library) List() ([]string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create docs dir: %w", err)
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read docs dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !l.extractor.Supports(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(l.dir, e.Name()))
	}
	sort.Strings(files)

	return files, nil
}

// LoadAll extracts and chunks every document. Documents that fail to
// extract are logged and skipped.
func (l *Library) LoadAll(ctx context.Context) ([]core.Chunk, error) {
	logger := log.FromCtx(ctx)

	files, err := l.List()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Warn().Str("dir", l.dir).Msg("no documents found")
		return nil, nil
	}

	var (
		all    []core.Chunk
		tokens int
	)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chunks, n, err := l.load(ctx, path)
		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("skipping document")
			continue
		}
		all = append(all, chunks...)
		tokens += n
	}

	logger.Info().
		Int("documents", len(files)).
		Int("chunks", len(all)).
		Int("tokens", tokens).
		Msg("documents loaded")

	return all, nil
}

// LoadFile extracts and chunks a single document.
func (l *Library) LoadFile(ctx context.Context, path string) ([]core.Chunk, error) {
	chunks, _, err := l.load(ctx, path)
	return chunks, err
}

func (l *Library) load(ctx context.Context, path string) ([]core.Chunk, int, error) {
	text, err := l.extractor.Extract(ctx, path)
	if err != nil {
		return nil, 0, err
	}

	chunks := l.chunker.Chunk(text, filepath.Base(path), path)
	tokens := rag.CountTokens(text)

	log.FromCtx(ctx).Debug().
		Str("source", filepath.Base(path)).
		Int("chunks", len(chunks)).
		Int("tokens", tokens).
		Msg("document chunked")

	return chunks, tokens, nil
}
