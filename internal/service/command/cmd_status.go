package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/internal/service/index"
)

type StatsProvider interface {
	Stats() index.Stats
}

type StatusCommand struct {
	index     StatsProvider
	formatter *ResponseFormatter
}

func NewStatusCommand(idx StatsProvider) core.Command {
	return &StatusCommand{
		index:     idx,
		formatter: NewResponseFormatter(),
	}
}

func (c *StatusCommand) Name() string {
	return "status"
}

func (c *StatusCommand) Description() string {
	return "Mostra o estado da base de conhecimento"
}

func (c *StatusCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	st := c.index.Stats()

	sections := []string{
		c.formatter.Info("Base de conhecimento"),
		c.formatter.Label("Estado", st.State.String()) +
			c.formatter.Label("Trechos", fmt.Sprintf("%d", st.Chunks)) +
			c.formatter.Label("Modelo", st.Model) +
			c.formatter.Label("Dimensões", fmt.Sprintf("%d", st.Dims)),
	}

	if len(st.Sources) == 0 {
		sections = append(sections, c.formatter.Tip("Nenhum documento carregado. Adicione PDFs e use /reload"))
	} else {
		names := make([]string, len(st.Sources))
		for i, s := range st.Sources {
			names[i] = strings.ReplaceAll(s, "_", "\\_")
		}
		sections = append(sections, c.formatter.Section("📄", "Documentos", c.formatter.List(names)))
	}

	return c.formatter.Combine(sections...), nil
}
