package command

import (
	"context"

	"github.com/sandevgo/condobot/internal/core"
)

type SessionClearer interface {
	Clear(sessionID string)
}

type ClearCommand struct {
	memory SessionClearer
}

func NewClearCommand(memory SessionClearer) core.Command {
	return &ClearCommand{memory: memory}
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Apaga o histórico da sua conversa"
}

func (c *ClearCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	c.memory.Clear(sessionID)
	return "🧹 Histórico da conversa apagado.", nil
}
