package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

type Text struct{}

func NewText() *Text {
	return &Text{}
}

func (t *Text) Extract(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8")
	}
	return strings.TrimSpace(string(data)), nil
}
