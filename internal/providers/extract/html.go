package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/inbucket/html2text"
)

type HTML struct{}

func NewHTML() *HTML {
	return &HTML{}
}

func (h *HTML) Extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	text, err := html2text.FromReader(f, html2text.Options{
		OmitLinks:    true,
		PrettyTables: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to convert html: %w", err)
	}
	return strings.TrimSpace(text), nil
}
