package watcher

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/pkg/log"
)

const DefaultDebounce = 2 * time.Second

type Index interface {
	Add(ctx context.Context, chunks []core.Chunk) error
	Build(ctx context.Context) error
	HasLocator(path string) bool
}

type Loader interface {
	Supports(path string) bool
	LoadFile(ctx context.Context, path string) ([]core.Chunk, error)
}

// Watcher keeps the index in step with the documents directory. New files
// are added incrementally; a changed or removed file forces a full rebuild
// so stale chunks never linger.
type Watcher struct {
	dir      string
	index    Index
	loader   Loader
	debounce time.Duration

	fsw      *fsnotify.Watcher
	stop     chan struct{}
	stopOnce sync.Once
}

func NewWatcher(dir string, index Index, loader Loader, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher: %w", err)
	}

	return &Watcher{
		dir:      dir,
		index:    index,
		loader:   loader,
		debounce: debounce,
		fsw:      fsw,
		stop:     make(chan struct{}),
	}, nil
}

func (w *Watcher) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create docs dir: %w", err)
	}
	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	logger.Info().Str("dir", w.dir).Msg("watching documents")

	pending := make(map[string]fsnotify.Op)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.stop:
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.loader.Supports(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			pending[ev.Name] |= ev.Op
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("fs watcher error")
		case <-timer.C:
			w.sync(ctx, pending)
			pending = make(map[string]fsnotify.Op)
		}
	}
}

func (w *Watcher) Shutdown(ctx context.Context) error {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
	return w.fsw.Close()
}

func (w *Watcher) sync(ctx context.Context, pending map[string]fsnotify.Op) {
	logger := log.FromCtx(ctx)

	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var (
		rebuild bool
		added   []core.Chunk
	)
	for _, path := range paths {
		op := pending[path]
		known := w.index.HasLocator(path)

		if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
			if known {
				rebuild = true
			}
			continue
		}
		if known {
			rebuild = true
			continue
		}

		chunks, err := w.loader.LoadFile(ctx, path)
		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("failed to load new document")
			continue
		}
		added = append(added, chunks...)
	}

	switch {
	case rebuild:
		logger.Info().Int("changed", len(paths)).Msg("documents changed, rebuilding index")
		if err := w.index.Build(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to rebuild index")
		}
	case len(added) > 0:
		logger.Info().Int("chunks", len(added)).Msg("adding new documents to index")
		if err := w.index.Add(ctx, added); err != nil {
			logger.Error().Err(err).Msg("failed to add documents")
		}
	}
}
