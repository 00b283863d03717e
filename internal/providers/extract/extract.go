// Package extract turns document files into plain text for chunking.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sandevgo/condobot/internal/core"
)

type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Registry dispatches on the lower-cased file extension.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry wires the default extractors: PDF through pdftotext, plain
// text and Markdown as-is, HTML through html2text.
func NewRegistry() *Registry {
	return NewRegistryWith(map[string]Extractor{
		".pdf":  NewPDF(),
		".txt":  NewText(),
		".md":   NewText(),
		".html": NewHTML(),
		".htm":  NewHTML(),
	})
}

func NewRegistryWith(byExt map[string]Extractor) *Registry {
	m := make(map[string]Extractor, len(byExt))
	for ext, e := range byExt {
		m[strings.ToLower(ext)] = e
	}
	return &Registry{byExt: m}
}

func (r *Registry) Supports(path string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	e, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("%w: unsupported file type %q", core.ErrExtraction, filepath.Ext(path))
	}

	text, err := e.Extract(ctx, path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", core.ErrExtraction, path, err)
	}
	return text, nil
}
