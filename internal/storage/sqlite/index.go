package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/pkg/log"
	"github.com/sandevgo/condobot/pkg/sqlite"
)

const (
	// FormatVersion changes whenever the on-disk layout stops being readable
	// by older code.
	FormatVersion = 1

	indexFileName = "index.db"

	metaFormatVersion = "format_version"
	metaModel         = "embedding_model"
	metaDimensions    = "dimensions"
	metaCreatedAt     = "created_at"
)

// IndexStore persists vector index snapshots as a single SQLite file.
// Saves go to a temporary file in the same directory that is renamed over
// the live one, so readers see either the old or the new snapshot.
type IndexStore struct {
	dir string
}

func NewIndexStore(dir string) *IndexStore {
	return &IndexStore{dir: dir}
}

func (s *IndexStore) Path() string {
	return filepath.Join(s.dir, indexFileName)
}

func (s *IndexStore) Save(ctx context.Context, snap *core.IndexSnapshot) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, indexFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary index file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	// Harmless after a successful rename.
	defer os.Remove(tmpPath)

	db, err := NewDB(ctx, tmpPath)
	if err != nil {
		return err
	}

	if err := writeSnapshot(ctx, db, snap); err != nil {
		db.Close()
		return err
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close index database: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path()); err != nil {
		return fmt.Errorf("failed to replace index file: %w", err)
	}

	log.FromCtx(ctx).Debug().
		Str("path", s.Path()).
		Int("chunks", len(snap.Entries)).
		Msg("index snapshot saved")
	return nil
}

func writeSnapshot(ctx context.Context, db *sql.DB, snap *core.IndexSnapshot) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := snap.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	meta := map[string]string{
		metaFormatVersion: strconv.Itoa(FormatVersion),
		metaModel:         snap.Model,
		metaDimensions:    strconv.Itoa(snap.Dimensions),
		metaCreatedAt:     createdAt.UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO index_meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("failed to write index metadata: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (source, locator, position, content, embedding) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range snap.Entries {
		_, err := stmt.ExecContext(ctx,
			e.Chunk.Source, e.Chunk.Locator, e.Chunk.Position, e.Chunk.Content, sqlite.EncodeVector(e.Vector))
		if err != nil {
			return fmt.Errorf("failed to insert chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index snapshot: %w", err)
	}
	return nil
}

// Load reads the persisted snapshot. It returns core.ErrNoState when nothing
// was saved yet and core.ErrIncompatibleState when the file cannot be used.
func (s *IndexStore) Load(ctx context.Context) (*core.IndexSnapshot, error) {
	path := s.Path()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, core.ErrNoState
		}
		return nil, fmt.Errorf("failed to stat index file: %w", err)
	}

	db, err := openReadOnly(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrIncompatibleState, err)
	}
	defer db.Close()

	snap, err := readSnapshot(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrIncompatibleState, err)
	}
	return snap, nil
}

func readSnapshot(ctx context.Context, db *sql.DB) (*core.IndexSnapshot, error) {
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM index_meta`)
	if err != nil {
		return nil, fmt.Errorf("failed to read index metadata: %w", err)
	}
	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan index metadata: %w", err)
		}
		meta[k] = v
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read index metadata: %w", err)
	}

	version, err := strconv.Atoi(meta[metaFormatVersion])
	if err != nil {
		return nil, fmt.Errorf("invalid format version %q", meta[metaFormatVersion])
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("unsupported format version %d (want %d)", version, FormatVersion)
	}

	dims, err := strconv.Atoi(meta[metaDimensions])
	if err != nil {
		return nil, fmt.Errorf("invalid dimensions %q", meta[metaDimensions])
	}

	snap := &core.IndexSnapshot{
		FormatVersion: version,
		Model:         meta[metaModel],
		Dimensions:    dims,
	}
	if ts, err := time.Parse(time.RFC3339, meta[metaCreatedAt]); err == nil {
		snap.CreatedAt = ts
	}

	rows, err = db.QueryContext(ctx,
		`SELECT source, locator, position, content, embedding FROM chunks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e    core.IndexEntry
			blob []byte
		)
		if err := rows.Scan(&e.Chunk.Source, &e.Chunk.Locator, &e.Chunk.Position, &e.Chunk.Content, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		if e.Vector, err = sqlite.DecodeVector(blob); err != nil {
			return nil, err
		}
		if len(e.Vector) != dims {
			return nil, fmt.Errorf("chunk vector has %d dimensions, index declares %d", len(e.Vector), dims)
		}
		snap.Entries = append(snap.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chunks: %w", err)
	}

	return snap, nil
}
