package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/condobot/internal/core"
)

const DefaultCapacity = 5

type session struct {
	mu    sync.Mutex
	turns []core.Turn
}

// Memory holds the most recent turns of every session in process memory.
// The session map has its own lock; each session is updated under its own
// mutex so concurrent conversations do not contend.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]*session
	capacity int
	now      func() time.Time
}

func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{
		sessions: make(map[string]*session),
		capacity: capacity,
		now:      time.Now,
	}
}

func (m *Memory) Capacity() int {
	return m.capacity
}

// Append records a turn and evicts the oldest ones beyond capacity. An
// Append racing a Clear of the same session may land in the dropped session
// and vanish, which is the same outcome as appending first and clearing after.
func (m *Memory) Append(sessionID string, role core.Role, content string) {
	s := m.session(sessionID, true)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, core.Turn{Role: role, Content: content, Timestamp: m.now()})
	if over := len(s.turns) - m.capacity; over > 0 {
		// Copy so the backing array does not keep growing.
		s.turns = append([]core.Turn(nil), s.turns[over:]...)
	}
}

// History returns a copy of the session's turns, oldest first.
func (m *Memory) History(sessionID string) []core.Turn {
	s := m.session(sessionID, false)
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Turn(nil), s.turns...)
}

// Clear forgets a session. Unknown sessions are ignored. Appends already in
// flight may write to the forgotten session, never to the next one.
func (m *Memory) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// ClearAll forgets every session, with the same in-flight rule as Clear.
func (m *Memory) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[string]*session)
}

// RenderForPrompt formats the history as labelled lines, or "" when empty.
func (m *Memory) RenderForPrompt(sessionID string) string {
	turns := m.History(sessionID)
	if len(turns) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(t.Role.Label())
		sb.WriteString(": ")
		sb.WriteString(t.Content)
	}
	return sb.String()
}

func (m *Memory) Sessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Memory) session(id string, create bool) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok && create {
		s = &session{}
		m.sessions[id] = s
	}
	return s
}
