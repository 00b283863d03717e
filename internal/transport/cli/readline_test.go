package cli

import (
	"context"
	"testing"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/stretchr/testify/assert"
)

type namedCommand string

func (c namedCommand) Name() string        { return string(c) }
func (c namedCommand) Description() string { return "" }
func (c namedCommand) Execute(context.Context, string, []string) (string, error) {
	return "", nil
}

func TestCommandCompleter(t *testing.T) {
	c := commandCompleter([]core.Command{namedCommand("reload"), namedCommand("status"), namedCommand("start")})

	got, offset := c.Do([]rune("/re"), 3)
	assert.Equal(t, 3, offset)
	assert.Equal(t, [][]rune{[]rune("load ")}, got)

	got, _ = c.Do([]rune("/st"), 3)
	assert.Len(t, got, 2)

	got, _ = c.Do([]rune("quanto é a multa"), 16)
	assert.Empty(t, got)
}
