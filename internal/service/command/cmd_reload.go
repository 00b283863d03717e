package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/pkg/log"
)

type Reloader interface {
	Reload(ctx context.Context, force bool) error
}

type HistoryResetter interface {
	ClearAll()
}

// ReloadCommand forces a rebuild from the documents directory. Conversation
// history is kept unless clearHistory is set.
type ReloadCommand struct {
	index        Reloader
	history      HistoryResetter
	clearHistory bool
}

func NewReloadCommand(index Reloader, history HistoryResetter, clearHistory bool) core.Command {
	return &ReloadCommand{
		index:        index,
		history:      history,
		clearHistory: clearHistory,
	}
}

func (c *ReloadCommand) Name() string {
	return "reload"
}

func (c *ReloadCommand) Description() string {
	return "Recarrega a base de conhecimento"
}

func (c *ReloadCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	log.FromCtx(ctx).Info().Str("session", sessionID).Msg("reloading index")

	if err := c.index.Reload(ctx, true); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("reload failed")
		return fmt.Sprintf("❌ Erro ao recarregar a base de dados: %v", err), nil
	}

	if c.clearHistory {
		c.history.ClearAll()
	}

	return "✅ Base de dados recarregada com sucesso!", nil
}
