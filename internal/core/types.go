package core

import "time"

const (
	CondoName       = "CondoBot"
	CondoUserAgent  = "CondoBot/0.1"
	CondoVersion    = "0.1.0"
	CondoRepository = "https://github.com/sandevgo/condobot"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label returns the role name used when rendering transcripts for the model.
func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "Usuário"
	case RoleAssistant:
		return "Assistente"
	default:
		return "Sistema"
	}
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Chunk is a bounded segment of document text with its provenance.
type Chunk struct {
	Content  string `json:"content"`
	Source   string `json:"source"`
	Locator  string `json:"locator"`
	Position int    `json:"position"`
}

// Turn is one recorded message of a session.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// IndexEntry pairs a chunk with its embedding.
type IndexEntry struct {
	Chunk  Chunk
	Vector []float32
}

// IndexSnapshot is the persisted form of a vector index.
type IndexSnapshot struct {
	FormatVersion int
	Model         string
	Dimensions    int
	CreatedAt     time.Time
	Entries       []IndexEntry
}
