package agent

import (
	"fmt"
	"os"
	"strings"

	"github.com/sandevgo/condobot/configs"
	"github.com/sandevgo/condobot/internal/core"
)

// SysPrompt resolves the system instruction: SYSTEM.md in the runtime
// directory when present, the embedded default otherwise.
type SysPrompt struct {
	cfg core.PromptConfig
}

func NewSysPrompt(cfg core.PromptConfig) *SysPrompt {
	return &SysPrompt{
		cfg: cfg,
	}
}

func (p *SysPrompt) Build() (core.Message, error) {
	if p.cfg != nil {
		if content, err := os.ReadFile(p.cfg.GetSystemPath()); err == nil && strings.TrimSpace(string(content)) != "" {
			return core.Message{Role: core.RoleSystem, Content: string(content)}, nil
		}
	}

	content, err := configs.FS.ReadFile("SYSTEM.md")
	if err != nil {
		return core.Message{}, fmt.Errorf("failed to read default system prompt: %w", err)
	}
	return core.Message{Role: core.RoleSystem, Content: string(content)}, nil
}

// formatContext renders retrieved chunks with their source so the model can cite them.
func formatContext(chunks []core.Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		if c.Source != "" {
			parts[i] = fmt.Sprintf("Documento %d (Fonte: %s):\n%s", i+1, c.Source, c.Content)
		} else {
			parts[i] = fmt.Sprintf("Documento %d:\n%s", i+1, c.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

func buildUserPrompt(contexts, history, question string) string {
	var sb strings.Builder
	sb.WriteString("Contextos:\n")
	sb.WriteString(contexts)
	if history != "" {
		sb.WriteString("\n\nHistórico da conversa:\n")
		sb.WriteString(history)
	}
	sb.WriteString("\n\nPergunta atual: ")
	sb.WriteString(question)
	return sb.String()
}
