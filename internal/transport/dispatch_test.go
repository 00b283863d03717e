package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/internal/service/agent"
	"github.com/stretchr/testify/assert"
)

type stubRouter struct{}

func (stubRouter) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	if input == "/ping" {
		return "pong", true
	}
	return "", false
}

func (stubRouter) ListCommands() []core.Command { return nil }

type stubAnswerer struct {
	reply string
	err   error
	calls int
}

func (s *stubAnswerer) Answer(ctx context.Context, sessionID, query string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestDispatcher(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		answerer  *stubAnswerer
		want      string
		wantCalls int
	}{
		{"command", "/ping", &stubAnswerer{}, "pong", 0},
		{"question", "Posso ter cachorro?", &stubAnswerer{reply: "Sim."}, "Sim.", 1},
		{"blank", "   ", &stubAnswerer{}, "", 0},
		{"failure hides detail", "pergunta", &stubAnswerer{err: errors.New("http 500: secret")}, agent.FailureText, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(stubRouter{}, tt.answerer)
			assert.Equal(t, tt.want, d.Handle(context.Background(), "s", tt.input))
			assert.Equal(t, tt.wantCalls, tt.answerer.calls)
		})
	}
}

func TestDispatcher_IsCommand(t *testing.T) {
	d := NewDispatcher(stubRouter{}, &stubAnswerer{})
	assert.True(t, d.IsCommand(" /help"))
	assert.False(t, d.IsCommand("help"))
}
