package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/condobot/internal/service/ui"
)

type choice struct {
	value string
	label string
}

// ChoiceStep stores the selected value under envKey.
type ChoiceStep struct {
	title   string
	envKey  string
	choices []choice
	cursor  int
}

func NewChoiceStep(title, envKey string, choices []choice) Step {
	return &ChoiceStep{
		title:   title,
		envKey:  envKey,
		choices: choices,
	}
}

func NewProviderStep() Step {
	return NewChoiceStep("Select the AI provider that writes the answers:", "CONDO_LLM_PROVIDER", []choice{
		{"gemini", "Google Gemini"},
		{"openai", "OpenAI"},
		{"anthropic", "Anthropic"},
		{"openrouter", "OpenRouter"},
		{"ollama", "Ollama (local)"},
	})
}

func NewEmbeddingProviderStep() Step {
	return NewChoiceStep("Select the embedding provider used to index documents:", "CONDO_EMBEDDING_PROVIDER", []choice{
		{"ollama", "Ollama (local)"},
		{"openai", "OpenAI"},
		{"hash", "Built-in hashing (offline, lower quality)"},
	})
}

func NewChannelStep() Step {
	return NewChoiceStep("Select your Chat Channel:", keyChannel, []choice{
		{"telegram", "Telegram"},
		{"terminal", "Terminal only"},
	})
}

func (s *ChoiceStep) Init() tea.Cmd {
	return nil
}

func (s *ChoiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.EnvVars[s.envKey] = s.choices[s.cursor].value
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(ui.SelectedStyle.Render(fmt.Sprintf("❯ %s", c.label)) + "\n")
		} else {
			b.WriteString(ui.ItemStyle.Render(fmt.Sprintf("  %s", c.label)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
