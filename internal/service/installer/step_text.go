package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/condobot/internal/service/ui"
)

// TextStep collects a free-form value. An empty answer keeps the
// placeholder when useDefault is set, and stores nothing otherwise.
type TextStep struct {
	title      string
	envKey     string
	useDefault bool
	validate   func(string) error
	when       func(*InstallState) bool

	input textinput.Model
	err   error
}

func newTextStep(title, envKey, placeholder string) *TextStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 50
	ti.Placeholder = placeholder

	return &TextStep{
		title:  title,
		envKey: envKey,
		input:  ti,
	}
}

func NewOllamaURLStep() Step {
	s := newTextStep("Enter Ollama Base URL:", "CONDO_OLLAMA_BASE_URL", "http://localhost:11434")
	s.useDefault = true
	s.when = func(st *InstallState) bool {
		return st.Is("CONDO_LLM_PROVIDER", "ollama") || st.Is("CONDO_EMBEDDING_PROVIDER", "ollama")
	}
	return s
}

func NewDocsPathStep() Step {
	s := newTextStep("Where are the condominium documents (PDFs)?", "CONDO_DOCS_PATH", "docs")
	s.useDefault = true
	return s
}

func (s *TextStep) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return nextMsg{} })
}

func (s *TextStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.when != nil && !s.when(state) {
		return nil, nil
	}
	if _, done := state.EnvVars[s.envKey]; done {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" && s.useDefault {
			val = s.input.Placeholder
		}
		if s.validate != nil {
			if err := s.validate(val); err != nil {
				s.err = err
				return s, cmd
			}
		}
		if val != "" {
			state.EnvVars[s.envKey] = val
		}
		return nil, nil
	}
	return s, cmd
}

func (s *TextStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n" + s.input.View() + "\n\n")
	if s.err != nil {
		b.WriteString(ui.ErrorStyle.Render(s.err.Error()) + "\n\n")
	}
	b.WriteString("(press enter to confirm)\n")
	return b.String()
}
