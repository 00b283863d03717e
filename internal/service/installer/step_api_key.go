package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type keySpec struct {
	envKey      string
	title       string
	placeholder string
}

// APIKeyStep asks for the key of whatever provider was chosen under
// providerKey. Providers without an entry are skipped.
type APIKeyStep struct {
	providerKey string
	specs       map[string]keySpec

	input  textinput.Model
	spec   keySpec
	active bool
}

func NewAPIKeyStep() Step {
	return &APIKeyStep{
		providerKey: "CONDO_LLM_PROVIDER",
		specs: map[string]keySpec{
			"gemini":     {"CONDO_GEMINI_API_KEY", "Gemini API Key", "AIza..."},
			"openai":     {"CONDO_OPENAI_API_KEY", "OpenAI API Key", "sk-..."},
			"anthropic":  {"CONDO_ANTHROPIC_API_KEY", "Anthropic API Key", "sk-ant-..."},
			"openrouter": {"CONDO_OPENROUTER_API_KEY", "OpenRouter API Key", "sk-or-v1-..."},
		},
	}
}

func NewEmbeddingKeyStep() Step {
	return &APIKeyStep{
		providerKey: "CONDO_EMBEDDING_PROVIDER",
		specs: map[string]keySpec{
			"openai": {"CONDO_EMBEDDING_API_KEY", "OpenAI API Key for embeddings", "sk-..."},
		},
	}
}

// Init fires a nextMsg so a skipped step advances without user input.
func (s *APIKeyStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *APIKeyStep) activate(state *InstallState) bool {
	spec, ok := s.specs[state.EnvVars[s.providerKey]]
	if !ok {
		return false
	}

	// Reuse a key entered earlier for the same variable.
	if _, done := state.EnvVars[spec.envKey]; done {
		return false
	}

	s.spec = spec
	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 40
	s.input.Placeholder = spec.placeholder
	s.input.EchoMode = textinput.EchoPassword
	s.input.EchoCharacter = '•'
	s.active = true
	return true
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.active {
		if !s.activate(state) {
			return nil, nil
		}
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && s.input.Value() != "" {
		state.EnvVars[s.spec.envKey] = s.input.Value()
		return nil, nil
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	if !s.active {
		return "Loading...\n"
	}
	return fmt.Sprintf("Enter your %s:\n\n%s\n\n(press enter to confirm)\n", s.spec.title, s.input.View())
}
