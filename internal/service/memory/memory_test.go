package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/sandevgo/condobot/internal/core"
)

func TestAppendEvictsOldestFirst(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		appends  int
		want     []string
	}{
		{"below capacity", 5, 3, []string{"m0", "m1", "m2"}},
		{"at capacity", 5, 5, []string{"m0", "m1", "m2", "m3", "m4"}},
		{"over capacity", 5, 8, []string{"m3", "m4", "m5", "m6", "m7"}},
		{"capacity one", 1, 4, []string{"m3"}},
		{"default capacity", 0, 7, []string{"m2", "m3", "m4", "m5", "m6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemory(tt.capacity)
			for i := 0; i < tt.appends; i++ {
				m.Append("s1", core.RoleUser, fmt.Sprintf("m%d", i))
				if got := len(m.History("s1")); got > m.Capacity() {
					t.Fatalf("history length %d exceeds capacity %d", got, m.Capacity())
				}
			}

			history := m.History("s1")
			if len(history) != len(tt.want) {
				t.Fatalf("got %d turns, want %d", len(history), len(tt.want))
			}
			for i, turn := range history {
				if turn.Content != tt.want[i] {
					t.Errorf("turn %d = %q, want %q", i, turn.Content, tt.want[i])
				}
				if turn.Timestamp.IsZero() {
					t.Errorf("turn %d has no timestamp", i)
				}
			}
		})
	}
}

func TestHistoryUnknownSession(t *testing.T) {
	m := NewMemory(5)
	if h := m.History("nobody"); len(h) != 0 {
		t.Errorf("expected empty history, got %v", h)
	}
	if m.Sessions() != 0 {
		t.Error("reading history must not create a session")
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	m := NewMemory(5)
	m.Append("s1", core.RoleUser, "original")

	h := m.History("s1")
	h[0].Content = "mutated"

	if got := m.History("s1")[0].Content; got != "original" {
		t.Errorf("stored history was mutated: %q", got)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewMemory(5)
	m.Append("a", core.RoleUser, "from a")
	m.Append("b", core.RoleUser, "from b")

	if h := m.History("a"); len(h) != 1 || h[0].Content != "from a" {
		t.Errorf("session a history = %v", h)
	}
	m.Clear("a")
	if h := m.History("b"); len(h) != 1 {
		t.Errorf("clearing a affected b: %v", h)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	m := NewMemory(5)
	m.Append("s1", core.RoleUser, "oi")
	m.Append("s1", core.RoleAssistant, "olá")

	m.Clear("s1")
	if h := m.History("s1"); len(h) != 0 {
		t.Fatalf("expected empty history after clear, got %v", h)
	}
	m.Clear("s1")
	m.Clear("never-seen")
	if h := m.History("s1"); len(h) != 0 {
		t.Fatalf("expected empty history after second clear, got %v", h)
	}
}

func TestClearAll(t *testing.T) {
	m := NewMemory(5)
	m.Append("a", core.RoleUser, "x")
	m.Append("b", core.RoleUser, "y")

	m.ClearAll()

	if m.Sessions() != 0 || len(m.History("a")) != 0 || len(m.History("b")) != 0 {
		t.Error("ClearAll left history behind")
	}
}

func TestRenderForPrompt(t *testing.T) {
	m := NewMemory(5)
	if got := m.RenderForPrompt("s1"); got != "" {
		t.Errorf("expected empty render for new session, got %q", got)
	}

	m.Append("s1", core.RoleUser, "Posso ter cachorro?")
	m.Append("s1", core.RoleAssistant, "Sim, desde que não perturbe os vizinhos.")

	want := "Usuário: Posso ter cachorro?\nAssistente: Sim, desde que não perturbe os vizinhos."
	if got := m.RenderForPrompt("s1"); got != want {
		t.Errorf("RenderForPrompt() =\n%q\nwant\n%q", got, want)
	}
}

func TestConcurrentAppendSameSession(t *testing.T) {
	const (
		capacity = 5
		writers  = 100
	)
	m := NewMemory(capacity)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Append("shared", core.RoleUser, fmt.Sprintf("msg-%d", i))
		}(i)
	}
	wg.Wait()

	history := m.History("shared")
	if len(history) != capacity {
		t.Fatalf("got %d turns, want %d", len(history), capacity)
	}

	seen := make(map[string]bool)
	for _, turn := range history {
		if seen[turn.Content] {
			t.Errorf("duplicated turn %q", turn.Content)
		}
		seen[turn.Content] = true
	}
}

func TestConcurrentSessions(t *testing.T) {
	m := NewMemory(3)

	var wg sync.WaitGroup
	for s := 0; s < 10; s++ {
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func(s, i int) {
				defer wg.Done()
				m.Append(fmt.Sprintf("s%d", s), core.RoleUser, fmt.Sprintf("%d", i))
			}(s, i)
			go func(s int) {
				defer wg.Done()
				_ = m.RenderForPrompt(fmt.Sprintf("s%d", s))
			}(s)
		}
	}
	wg.Wait()

	for s := 0; s < 10; s++ {
		if got := len(m.History(fmt.Sprintf("s%d", s))); got != 3 {
			t.Errorf("session s%d has %d turns, want 3", s, got)
		}
	}
}

func TestAppendRacingClear(t *testing.T) {
	m := NewMemory(50)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			m.Append("shared", core.RoleUser, fmt.Sprintf("msg-%d", i))
		}(i)
		go func() {
			defer wg.Done()
			m.Clear("shared")
		}()
	}
	wg.Wait()

	// Some appends are lost to the clears; whatever survived is intact.
	seen := make(map[string]bool)
	for _, turn := range m.History("shared") {
		if seen[turn.Content] {
			t.Errorf("duplicated turn %q", turn.Content)
		}
		seen[turn.Content] = true
	}

	m.Clear("shared")
	m.Append("shared", core.RoleUser, "depois")
	if h := m.History("shared"); len(h) != 1 || h[0].Content != "depois" {
		t.Errorf("append after clear not recorded: %+v", h)
	}
}
