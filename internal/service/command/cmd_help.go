package command

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type HelpCommand struct {
	// commands is filled in by NewCommands once the full set exists.
	commands []describer
}

type describer interface {
	Name() string
	Description() string
}

func NewHelpCommand() *HelpCommand {
	return &HelpCommand{}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "Mostra esta mensagem de ajuda"
}

func (c *HelpCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	cmds := make([]describer, len(c.commands))
	copy(cmds, c.commands)
	sort.SliceStable(cmds, func(i, j int) bool {
		return order(cmds[i].Name()) < order(cmds[j].Name())
	})

	var sb strings.Builder
	sb.WriteString("📚 Comandos disponíveis:\n\n")
	for _, cmd := range cmds {
		sb.WriteString(fmt.Sprintf("/%s - %s\n", cmd.Name(), cmd.Description()))
	}
	sb.WriteString("\n🔍 Como usar:\n")
	sb.WriteString("1. Faça perguntas sobre o seu condomínio\n")
	sb.WriteString("2. Receba respostas baseadas nos documentos do condomínio")

	return sb.String(), nil
}

// order keeps start and help first, the rest alphabetical.
func order(name string) string {
	switch name {
	case "start":
		return "0"
	case "help":
		return "1"
	default:
		return "2" + name
	}
}
