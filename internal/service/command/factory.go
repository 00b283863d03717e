package command

import (
	"github.com/sandevgo/condobot/internal/core"
)

type Deps struct {
	Index                Index
	Memory               Memory
	ClearHistoryOnReload bool
}

type Index interface {
	Reloader
	StatsProvider
}

type Memory interface {
	SessionClearer
	HistoryResetter
}

func NewCommands(deps Deps) []core.Command {
	help := NewHelpCommand()
	cmds := []core.Command{
		NewStartCommand(),
		help,
		NewReloadCommand(deps.Index, deps.Memory, deps.ClearHistoryOnReload),
		NewClearCommand(deps.Memory),
		NewStatusCommand(deps.Index),
	}

	for _, c := range cmds {
		help.commands = append(help.commands, c)
	}
	return cmds
}
