package core

import "context"

type CmdRouter interface {
	Execute(ctx context.Context, sessionID, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}

// Answerer is what transports talk to for free-form questions.
type Answerer interface {
	Answer(ctx context.Context, sessionID, query string) (string, error)
}
