package command

import (
	"context"

	"github.com/sandevgo/condobot/internal/core"
)

const welcomeText = "👋 Olá! Eu sou o assistente virtual do seu condomínio.\n\n" +
	"Você pode me fazer perguntas sobre o Regimento Interno ou " +
	"sobre a Convenção Condominial.\n\n" +
	"Use /help para ver todos os comandos disponíveis."

type StartCommand struct{}

func NewStartCommand() core.Command {
	return &StartCommand{}
}

func (c *StartCommand) Name() string {
	return "start"
}

func (c *StartCommand) Description() string {
	return "Inicia o bot"
}

func (c *StartCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	return welcomeText, nil
}
