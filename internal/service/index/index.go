package index

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/pkg/log"
)

// SentinelText is indexed when there are no documents, so searches always
// have something to return.
const SentinelText = "Índice vazio. Nenhum PDF carregado."

const DefaultK = 6

type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "uninitialized"
}

type Stats struct {
	State   State
	Chunks  int
	Sources []string
	Model   string
	Dims    int
}

// VectorIndex keeps every chunk with its embedding in memory and answers
// nearest-neighbour queries by brute force. Mutations are persisted through
// the store before they become visible to searches.
type VectorIndex struct {
	mu sync.RWMutex

	state   State
	entries []core.IndexEntry
	dims    int

	embedder core.Embedder
	store    core.IndexStore
	source   core.DocumentSource
	k        int
}

func NewVectorIndex(embedder core.Embedder, store core.IndexStore, source core.DocumentSource, k int) *VectorIndex {
	if k <= 0 {
		k = DefaultK
	}
	return &VectorIndex{
		embedder: embedder,
		store:    store,
		source:   source,
		k:        k,
	}
}

func (x *VectorIndex) State() State {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.state
}

// Build embeds every document chunk from scratch and replaces the index.
func (x *VectorIndex) Build(ctx context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.build(ctx)
}

// LoadOrBuild makes the index ready, preferring the persisted snapshot.
// It does nothing when the index is already ready.
func (x *VectorIndex) LoadOrBuild(ctx context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.loadOrBuild(ctx)
}

// Reload rebuilds the index when force is set, otherwise behaves like LoadOrBuild.
func (x *VectorIndex) Reload(ctx context.Context, force bool) error {
	if force {
		return x.Build(ctx)
	}
	return x.LoadOrBuild(ctx)
}

// Add embeds chunks and appends them to the index.
func (x *VectorIndex) Add(ctx context.Context, chunks []core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.loadOrBuild(ctx); err != nil {
		return err
	}

	added, err := x.embed(ctx, chunks)
	if err != nil {
		return err
	}
	if x.dims != 0 && len(added[0].Vector) != x.dims {
		return fmt.Errorf("embedding dimension changed from %d to %d, rebuild the index", x.dims, len(added[0].Vector))
	}

	entries := make([]core.IndexEntry, 0, len(x.entries)+len(added))
	entries = append(entries, x.withoutSentinel()...)
	entries = append(entries, added...)

	if err := x.commit(ctx, entries); err != nil {
		return err
	}

	log.FromCtx(ctx).Info().
		Int("added", len(added)).
		Int("total", len(x.entries)).
		Msg("chunks added to index")
	return nil
}

// Search returns up to k chunks nearest to query, closest first.
func (x *VectorIndex) Search(ctx context.Context, query string, k int) ([]core.Chunk, error) {
	if k <= 0 {
		k = x.k
	}

	if err := x.ensureReady(ctx); err != nil {
		return nil, err
	}

	qv, err := x.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	if len(x.entries) == 0 {
		return nil, nil
	}
	if len(qv) != x.dims {
		return nil, fmt.Errorf("query embedding has %d dimensions, index has %d", len(qv), x.dims)
	}

	type hit struct {
		idx  int
		dist float32
	}
	hits := make([]hit, len(x.entries))
	for i, e := range x.entries {
		hits[i] = hit{idx: i, dist: squaredL2(qv, e.Vector)}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].dist < hits[b].dist })

	if k > len(hits) {
		k = len(hits)
	}
	out := make([]core.Chunk, k)
	for i := 0; i < k; i++ {
		out[i] = x.entries[hits[i].idx].Chunk
	}
	return out, nil
}

func (x *VectorIndex) Stats() Stats {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var sources []string
	for _, e := range x.entries {
		if e.Chunk.Source != "" && !slices.Contains(sources, e.Chunk.Source) {
			sources = append(sources, e.Chunk.Source)
		}
	}
	sort.Strings(sources)

	return Stats{
		State:   x.state,
		Chunks:  len(x.entries),
		Sources: sources,
		Model:   x.embedder.Name(),
		Dims:    x.dims,
	}
}

// HasLocator reports whether chunks from the document at path are indexed.
func (x *VectorIndex) HasLocator(path string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()

	for _, e := range x.entries {
		if e.Chunk.Locator == path {
			return true
		}
	}
	return false
}

func (x *VectorIndex) ensureReady(ctx context.Context) error {
	x.mu.RLock()
	ready := x.state == StateReady
	x.mu.RUnlock()
	if ready {
		return nil
	}
	return x.LoadOrBuild(ctx)
}

// loadOrBuild requires the write lock.
func (x *VectorIndex) loadOrBuild(ctx context.Context) error {
	if x.state == StateReady {
		return nil
	}

	logger := log.FromCtx(ctx)
	snap, err := x.store.Load(ctx)
	switch {
	case errors.Is(err, core.ErrNoState):
		logger.Info().Msg("no persisted index found, building")
		return x.build(ctx)
	case err != nil:
		logger.Warn().Err(err).Msg("persisted index unreadable, rebuilding")
		return x.build(ctx)
	}

	if err := x.compatible(snap); err != nil {
		logger.Warn().Err(err).Msg("persisted index incompatible, rebuilding")
		return x.build(ctx)
	}

	x.entries = snap.Entries
	x.dims = snap.Dimensions
	x.state = StateReady

	logger.Info().
		Int("chunks", len(x.entries)).
		Str("model", snap.Model).
		Msg("index loaded from disk")
	return nil
}

func (x *VectorIndex) compatible(snap *core.IndexSnapshot) error {
	if snap.Model != x.embedder.Name() {
		return fmt.Errorf("%w: built with %q, configured %q", core.ErrIncompatibleState, snap.Model, x.embedder.Name())
	}
	if len(snap.Entries) == 0 {
		return fmt.Errorf("%w: snapshot has no chunks", core.ErrIncompatibleState)
	}
	return nil
}

// build requires the write lock.
func (x *VectorIndex) build(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	start := time.Now()

	chunks, err := x.source.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}
	if len(chunks) == 0 {
		logger.Warn().Msg("no documents found, indexing placeholder")
		chunks = []core.Chunk{{Content: SentinelText}}
	}

	entries, err := x.embed(ctx, chunks)
	if err != nil {
		return err
	}

	if err := x.commit(ctx, entries); err != nil {
		return err
	}

	logger.Info().
		Int("chunks", len(entries)).
		Dur("took", time.Since(start)).
		Msg("index built")
	return nil
}

func (x *VectorIndex) embed(ctx context.Context, chunks []core.Chunk) ([]core.IndexEntry, error) {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vecs, err := x.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vecs) != len(chunks) {
		return nil, fmt.Errorf("failed to embed chunks: got %d vectors for %d chunks", len(vecs), len(chunks))
	}

	dims := len(vecs[0])
	entries := make([]core.IndexEntry, len(chunks))
	for i := range chunks {
		if len(vecs[i]) != dims {
			return nil, fmt.Errorf("failed to embed chunks: inconsistent dimensions %d and %d", dims, len(vecs[i]))
		}
		entries[i] = core.IndexEntry{Chunk: chunks[i], Vector: vecs[i]}
	}
	return entries, nil
}

// commit persists entries and then makes them visible. Requires the write lock.
func (x *VectorIndex) commit(ctx context.Context, entries []core.IndexEntry) error {
	dims := len(entries[0].Vector)
	snap := &core.IndexSnapshot{
		Model:      x.embedder.Name(),
		Dimensions: dims,
		CreatedAt:  time.Now(),
		Entries:    entries,
	}
	if err := x.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("%w: %w", core.ErrPersistence, err)
	}

	x.entries = entries
	x.dims = dims
	x.state = StateReady
	return nil
}

// withoutSentinel drops the placeholder once real chunks arrive.
func (x *VectorIndex) withoutSentinel() []core.IndexEntry {
	if len(x.entries) == 1 && x.entries[0].Chunk.Source == "" && x.entries[0].Chunk.Content == SentinelText {
		return nil
	}
	return x.entries
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
