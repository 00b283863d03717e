// Package transport holds what the chat front-ends share.
package transport

import (
	"context"
	"strings"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/internal/service/agent"
	"github.com/sandevgo/condobot/pkg/log"
)

// Dispatcher routes slash commands to the command router and everything
// else to the answerer. It never returns internal errors to the user.
type Dispatcher struct {
	router   core.CmdRouter
	answerer core.Answerer
}

func NewDispatcher(router core.CmdRouter, answerer core.Answerer) *Dispatcher {
	return &Dispatcher{router: router, answerer: answerer}
}

func (d *Dispatcher) IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

func (d *Dispatcher) Handle(ctx context.Context, sessionID, input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if reply, ok := d.router.Execute(ctx, sessionID, input); ok {
		return reply
	}

	reply, err := d.answerer.Answer(ctx, sessionID, input)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("session", sessionID).Msg("failed to answer")
		return agent.FailureText
	}
	return reply
}
