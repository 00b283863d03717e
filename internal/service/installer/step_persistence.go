package installer

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	fs "github.com/sandevgo/condobot/configs"
	"github.com/sandevgo/condobot/internal/config"
	"github.com/sandevgo/condobot/internal/service/ui"
)

// actionStep runs one side effect without asking anything. A failure stays
// on screen until the user quits.
type actionStep struct {
	pending string
	run     func(state *InstallState) error
	err     error
}

func (s *actionStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *actionStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.err != nil {
		return s, nil
	}
	if s.err = s.run(state); s.err != nil {
		return s, nil
	}
	return nil, nil
}

func (s *actionStep) View(state *InstallState) string {
	if s.err != nil {
		return ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	return s.pending + "\n"
}

// NewSaveEnvStep writes the collected answers to <runtime>/.env.
func NewSaveEnvStep() Step {
	runtimePath := config.GetRuntimePath()
	return &actionStep{
		pending: "Saving configuration...",
		run: func(state *InstallState) error {
			return saveEnv(runtimePath, state.EnvVars)
		},
	}
}

// NewInitializeFilesStep writes the default system prompt and creates the
// documents directory.
func NewInitializeFilesStep() Step {
	runtimePath := config.GetRuntimePath()
	return &actionStep{
		pending: "Initializing runtime files...",
		run: func(state *InstallState) error {
			return initFiles(runtimePath, state.EnvVars["CONDO_DOCS_PATH"])
		},
	}
}

func saveEnv(runtimePath string, vars map[string]string) error {
	if err := os.MkdirAll(runtimePath, 0o755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(runtimePath, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := godotenv.Marshal(vars)
	if err != nil {
		return fmt.Errorf("failed to render .env: %w", err)
	}

	if err := os.WriteFile(envPath, []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write .env: %w", err)
	}
	return nil
}

func initFiles(runtimePath, docsPath string) error {
	if docsPath == "" {
		docsPath = "docs"
	}
	if !filepath.IsAbs(docsPath) {
		docsPath = filepath.Join(runtimePath, docsPath)
	}
	if err := os.MkdirAll(docsPath, 0o755); err != nil {
		return fmt.Errorf("failed to create docs directory: %w", err)
	}

	dst := filepath.Join(runtimePath, "SYSTEM.md")
	if _, err := os.Stat(dst); err == nil {
		// Keep a prompt the operator already edited.
		return nil
	}

	data, err := fs.FS.ReadFile("SYSTEM.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded SYSTEM.md: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}
