package installer

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/condobot/internal/service/ui"
)

// ErrInterrupted is returned by RunWizard when the user quits with ctrl+c.
var ErrInterrupted = errors.New("condobot installation interrupted")

// Step is one screen of the installer. Update returns nil once the step
// has stored its answer in the state, which advances the wizard.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

func getSteps() []Step {
	return []Step{
		NewProviderStep(),
		NewAPIKeyStep(),
		NewEmbeddingProviderStep(),
		NewEmbeddingKeyStep(),
		NewOllamaURLStep(),
		NewDocsPathStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewAllowedChatsStep(),
		NewFinalizationStep(),
		NewSaveEnvStep(),
		NewInitializeFilesStep(),
	}
}

type errMsg error

// nextMsg lets a step that has nothing to ask finish without a key press.
type nextMsg struct{}

type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	err         error
	width       int
	height      int
}

func initialModel() model {
	return newModel(getSteps())
}

func newModel(steps []Step) model {
	return model{steps: steps, state: NewInstallState()}
}

func (m model) done() bool {
	return m.currentStep >= len(m.steps)
}

func (m model) Init() tea.Cmd {
	if m.done() {
		return nil
	}
	return m.steps[0].Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting || m.done() {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case errMsg:
		m.err = msg
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
	}

	next, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)
	if next != nil {
		m.steps[m.currentStep] = next
		return m, cmd
	}

	m.currentStep++
	if m.done() {
		return m, tea.Quit
	}
	return m, m.steps[m.currentStep].Init()
}

func (m model) View() string {
	switch {
	case m.quitting:
		return "Installation cancelled.\n"
	case m.err != nil:
		return ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(press ctrl+c to quit)\n"
	case m.done():
		return "Configuration complete!\n"
	}

	header := ui.HeaderStyle.Render("Installing CondoBot 🏢")
	progress := ui.DescStyle.Render(fmt.Sprintf("step %d of %d", m.currentStep+1, len(m.steps)))
	return header + "  " + progress + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard runs the installer in the alternate screen and returns the
// collected answers. The .env file is written by the wizard itself.
func RunWizard() (*InstallState, error) {
	res, err := tea.NewProgram(initialModel(), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}

	final := res.(model)
	switch {
	case final.quitting:
		return nil, ErrInterrupted
	case final.err != nil:
		return nil, final.err
	}
	return final.state, nil
}
