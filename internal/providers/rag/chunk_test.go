package rag

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sandevgo/condobot/internal/core"
)

func TestNewChunkerValidation(t *testing.T) {
	tests := []struct {
		name          string
		size, overlap int
		wantErr       bool
	}{
		{"defaults", 1000, 200, false},
		{"no overlap", 10, 0, false},
		{"overlap equals size", 10, 10, true},
		{"overlap above size", 10, 20, true},
		{"negative overlap", 10, -1, true},
		{"zero size", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChunker(tt.size, tt.overlap)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewChunker(%d, %d) error = %v, wantErr %v", tt.size, tt.overlap, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, core.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestChunkerSplit(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		size, overlap int
		want          []string
	}{
		{
			name: "empty input",
			text: "",
			size: 10,
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \n\t   ",
			size: 10,
			want: nil,
		},
		{
			name: "fits in one chunk",
			text: "Regra 1: silêncio após 22h.",
			size: 100,
			want: []string{"Regra 1: silêncio após 22h."},
		},
		{
			name: "paragraph boundaries",
			text: "Regra 1: silêncio após 22h.\n\nRegra 2: proibido fumar.",
			size: 30,
			want: []string{"Regra 1: silêncio após 22h.", "Regra 2: proibido fumar."},
		},
		{
			name: "windows packed up to the size",
			text: "Regra 1.\n\nRegra 2.\n\nRegra 3.",
			size: 20,
			want: []string{"Regra 1.\n\nRegra 2.", "Regra 3."},
		},
		{
			name:    "word boundaries with overlap",
			text:    "aaa bbb ccc ddd eee",
			size:    10,
			overlap: 4,
			want:    []string{"aaa bbb", "bbb ccc", "ccc ddd", "ddd eee"},
		},
		{
			name:    "hard cut with overlap",
			text:    "abcdefghij",
			size:    4,
			overlap: 2,
			want:    []string{"abcd", "cdef", "efgh", "ghij"},
		},
		{
			name: "sizes counted in characters",
			text: "ação ação",
			size: 4,
			want: []string{"ação", "ação"},
		},
		{
			name:    "article headings stay with their text",
			text:    "Art. 12. É proibido fumar nas áreas comuns. Art. 13. O silêncio deve ser respeitado após 22h; multas se aplicam.",
			size:    70,
			overlap: 15,
			want: []string{
				"Art. 12. É proibido fumar nas áreas comuns.",
				"Art. 13. O silêncio deve ser respeitado após 22h; multas se aplicam.",
			},
		},
		{
			name: "punctuation kept at word boundaries",
			text: "multa; advertência. suspensão!",
			size: 12,
			want: []string{"multa;", "advertência.", "suspensão!"},
		},
		{
			name: "windows line endings",
			text: "linha um\r\nlinha dois",
			size: 10,
			want: []string{"linha um", "linha dois"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewChunker(tt.size, tt.overlap)
			if err != nil {
				t.Fatalf("NewChunker: %v", err)
			}
			got := c.Split(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChunkerRespectsSize(t *testing.T) {
	text := strings.Repeat("O condômino deve respeitar o horário de silêncio. ", 40) +
		"\n\n" + strings.Repeat("x", 250) + "\n" +
		strings.Repeat("Art. 5º É proibido manter animais que perturbem o sossego; ", 30)

	c, err := NewChunker(100, 20)
	if err != nil {
		t.Fatal(err)
	}

	chunks := c.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if n := utf8.RuneCountInString(chunk); n > 100 {
			t.Errorf("chunk %d has %d characters, limit is 100", i, n)
		}
		if strings.TrimSpace(chunk) != chunk || chunk == "" {
			t.Errorf("chunk %d is not trimmed: %q", i, chunk)
		}
	}

	// Deterministic.
	if again := c.Split(text); !reflect.DeepEqual(chunks, again) {
		t.Error("Split is not deterministic")
	}
}

func TestChunkerOverlap(t *testing.T) {
	words := make([]string, 200)
	for i := range words {
		words[i] = "palavra"
	}
	text := strings.Join(words, " ")

	c, err := NewChunker(50, 15)
	if err != nil {
		t.Fatal(err)
	}

	chunks := c.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		// "palavra palavra" is the largest word-aligned overlap within 15 characters.
		if !strings.HasSuffix(prev, "palavra palavra") || !strings.HasPrefix(cur, "palavra palavra") {
			t.Errorf("chunks %d and %d do not share the expected overlap: %q / %q", i-1, i, prev, cur)
		}
	}
}

func TestChunkProvenance(t *testing.T) {
	c, err := NewChunker(30, 0)
	if err != nil {
		t.Fatal(err)
	}

	chunks := c.Chunk("Regra 1: silêncio após 22h.\n\nRegra 2: proibido fumar.", "regimento.pdf", "/docs/regimento.pdf")
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if ch.Source != "regimento.pdf" || ch.Locator != "/docs/regimento.pdf" || ch.Position != i {
			t.Errorf("chunk %d has wrong provenance: %+v", i, ch)
		}
	}

	if got := c.Chunk("  ", "a.pdf", "a.pdf"); got != nil {
		t.Errorf("expected nil for blank text, got %v", got)
	}
}

func TestChunkerChunksAreSubstrings(t *testing.T) {
	texts := []string{
		"Art. 12. É proibido fumar nas áreas comuns. Art. 13. O silêncio deve ser respeitado após 22h; multas se aplicam.",
		"CAPÍTULO I\r\nDas áreas comuns\r\n\r\nArt. 1º O salão de festas; a piscina! e a garagem? Ver Art. 7.",
		strings.Repeat("Art. 5º É proibido manter animais que perturbem o sossego; ", 12),
		"Parágrafo único. " + strings.Repeat("abcdefghij", 30),
		"Art. 3   Taxa  condominial\n\n\n  vence  no dia 10.",
	}
	sizes := []struct{ size, overlap int }{{10, 0}, {25, 5}, {40, 15}, {70, 15}, {200, 50}}

	for _, text := range texts {
		normalized := strings.ReplaceAll(text, "\r\n", "\n")
		for _, sz := range sizes {
			c, err := NewChunker(sz.size, sz.overlap)
			if err != nil {
				t.Fatal(err)
			}
			for i, chunk := range c.Split(text) {
				if !strings.Contains(normalized, chunk) {
					t.Errorf("size %d: chunk %d %q is not part of the input", sz.size, i, chunk)
				}
				if n := utf8.RuneCountInString(chunk); n > sz.size {
					t.Errorf("size %d: chunk %d has %d characters", sz.size, i, n)
				}
				if chunk == "Art." || chunk == "Art. 13" {
					t.Errorf("size %d: heading split from its article: %q", sz.size, chunk)
				}
			}
		}
	}
}
