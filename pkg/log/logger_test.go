package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewContextWithLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	ctx, cleanup := newContextWithLogger(context.Background(), &buf, false, true)

	FromCtx(ctx).Info().Str("source", "regimento.pdf").Msg("indexed")
	FromCtx(ctx).Debug().Msg("hidden")
	cleanup()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if entry["message"] != "indexed" || entry["source"] != "regimento.pdf" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNewContextWithLogger_DebugConsole(t *testing.T) {
	var buf bytes.Buffer
	ctx, cleanup := newContextWithLogger(context.Background(), &buf, true, false)

	FromCtx(ctx).Debug().Msg("visible")
	cleanup()

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug message missing: %q", buf.String())
	}
}
