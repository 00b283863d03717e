// Package cli is the terminal chat front-end.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/internal/transport"
	"github.com/sandevgo/condobot/pkg/log"
)

// All terminal questions share one conversation.
const sessionID = "cli-local"

var exitWords = map[string]bool{"exit": true, "quit": true, "sair": true}

type ReadLine struct {
	dispatcher *transport.Dispatcher
	rl         *readline.Instance
	// onExit is called when the user leaves the chat so the process can stop.
	onExit func()
}

func NewReadLine(router core.CmdRouter, answerer core.Answerer, historyFile string, onExit func()) (*ReadLine, error) {
	if err := os.MkdirAll(filepath.Dir(historyFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "🏢 > ",
		HistoryFile:     historyFile,
		AutoComplete:    commandCompleter(router.ListCommands()),
		InterruptPrompt: "^C",
		EOFPrompt:       "sair",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}

	return &ReadLine{
		dispatcher: transport.NewDispatcher(router, answerer),
		rl:         rl,
		onExit:     onExit,
	}, nil
}

// commandCompleter completes "/name" at the start of the line.
func commandCompleter(cmds []core.Command) readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(cmds))
	for _, c := range cmds {
		items = append(items, readline.PcItem("/"+c.Name()))
	}
	return readline.NewPrefixCompleter(items...)
}

func (r *ReadLine) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("terminal chat started, type 'sair' or press ctrl+d to quit")

	defer func() {
		if r.onExit != nil {
			r.onExit()
		}
	}()

	return r.loop(ctx, r.rl.Stdout())
}

func (r *ReadLine) loop(ctx context.Context, out io.Writer) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := r.rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			// ctrl+c on an empty line leaves, otherwise it only clears the line.
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		line = strings.TrimSpace(line)
		if exitWords[strings.ToLower(line)] {
			return nil
		}

		if reply := r.dispatcher.Handle(ctx, sessionID, line); reply != "" {
			fmt.Fprintf(out, "\n%s\n\n", reply)
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
