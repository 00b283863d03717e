package documents

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sandevgo/condobot/internal/providers/extract"
	"github.com/sandevgo/condobot/internal/providers/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary(t *testing.T, dir string) *Library {
	t.Helper()
	chunker, err := rag.NewChunker(1000, 200)
	require.NoError(t, err)

	reg := extract.NewRegistryWith(map[string]extract.Extractor{
		".txt": extract.NewText(),
		".md":  extract.NewText(),
	})
	return NewLibrary(dir, reg, chunker)
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLibrary_ListCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	lib := newTestLibrary(t, dir)

	files, err := lib.List()
	require.NoError(t, err)
	assert.Empty(t, files)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLibrary_ListSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "regimento.txt", "a")
	write(t, dir, "convencao.md", "b")
	write(t, dir, "foto.jpg", "c")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	files, err := newTestLibrary(t, dir).List()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "convencao.md"),
		filepath.Join(dir, "regimento.txt"),
	}, files)
}

func TestLibrary_LoadAll(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "regimento.txt", "Regra 1: silêncio após 22h.")
	write(t, dir, "convencao.md", "Art. 1 A taxa condominial vence no dia 10.")
	write(t, dir, "vazio.txt", "   ")
	write(t, dir, "binario.txt", string([]byte{0xff, 0xfe}))

	chunks, err := newTestLibrary(t, dir).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "convencao.md", chunks[0].Source)
	assert.Equal(t, filepath.Join(dir, "convencao.md"), chunks[0].Locator)
	assert.Equal(t, "regimento.txt", chunks[1].Source)
	assert.Equal(t, "Regra 1: silêncio após 22h.", chunks[1].Content)
	assert.Equal(t, 0, chunks[1].Position)
}

func TestLibrary_LoadAllEmpty(t *testing.T) {
	chunks, err := newTestLibrary(t, t.TempDir()).LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestLibrary_LoadFile(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "aviso.txt", "Piscina fechada.")
	lib := newTestLibrary(t, dir)

	chunks, err := lib.LoadFile(context.Background(), filepath.Join(dir, "aviso.txt"))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "aviso.txt", chunks[0].Source)

	_, err = lib.LoadFile(context.Background(), filepath.Join(dir, "nope.txt"))
	assert.Error(t, err)
}
