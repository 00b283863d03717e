package core

import "context"

type AIProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
}

type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	// Name identifies the embedding configuration. Persisted indexes built
	// under a different name are not reused.
	Name() string
}

type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]Chunk, error)
}

type IndexStore interface {
	Load(ctx context.Context) (*IndexSnapshot, error)
	Save(ctx context.Context, snap *IndexSnapshot) error
}

type DocumentSource interface {
	LoadAll(ctx context.Context) ([]Chunk, error)
}
