package rag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/condobot/internal/core"
)

// separator is a split point. Whitespace separators are dropped at chunk
// boundaries and restored inside a chunk. Kept separators stay at the start
// of the piece that follows them, so an article heading opens the chunk that
// holds its text whenever the article fits in one chunk.
type separator struct {
	text string
	keep bool
}

// defaultSeparators are tried in order: paragraph, line, article heading,
// word and finally a hard cut between characters.
var defaultSeparators = []separator{
	{text: "\n\n"},
	{text: "\n"},
	{text: "Art. ", keep: true},
	{text: " "},
	{text: ""},
}

// Chunker splits text into windows of at most Size characters, carrying up
// to Overlap characters of the previous window into the next one.
type Chunker struct {
	size       int
	overlap    int
	separators []separator
}

func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", core.ErrConfiguration, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: chunk overlap must be in [0, %d), got %d", core.ErrConfiguration, size, overlap)
	}
	return &Chunker{size: size, overlap: overlap, separators: defaultSeparators}, nil
}

func (c *Chunker) Size() int    { return c.size }
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits text and tags every piece with its provenance.
func (c *Chunker) Chunk(text, source, locator string) []core.Chunk {
	parts := c.Split(text)
	if len(parts) == 0 {
		return nil
	}

	chunks := make([]core.Chunk, len(parts))
	for i, p := range parts {
		chunks[i] = core.Chunk{
			Content:  p,
			Source:   source,
			Locator:  locator,
			Position: i,
		}
	}
	return chunks
}

// Split returns the chunk texts. Whitespace-only input yields nil.
func (c *Chunker) Split(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return c.split(text, c.separators)
}

func (c *Chunker) split(text string, separators []separator) []string {
	// Pick the first separator present in the text.
	var (
		sep   separator
		finer []separator
	)
	for i, s := range separators {
		if s.text == "" || strings.Contains(text, s.text) {
			sep = s
			finer = separators[i+1:]
			break
		}
	}

	pieces, join := splitOn(text, sep)

	var out, fitting []string
	for _, p := range pieces {
		if runeLen(p) <= c.size {
			fitting = append(fitting, p)
			continue
		}

		// Oversized piece: flush what we have and recurse with finer separators.
		if len(fitting) > 0 {
			out = append(out, c.merge(fitting, join)...)
			fitting = nil
		}
		if len(finer) == 0 {
			out = append(out, p)
		} else {
			out = append(out, c.split(p, finer)...)
		}
	}
	if len(fitting) > 0 {
		out = append(out, c.merge(fitting, join)...)
	}
	return out
}

// splitOn cuts text at sep and returns non-empty pieces with the string that
// glues consecutive pieces back into the original text.
func splitOn(text string, sep separator) ([]string, string) {
	if sep.text == "" {
		return strings.Split(text, ""), ""
	}

	raw := strings.Split(text, sep.text)
	pieces := make([]string, 0, len(raw))
	if sep.keep {
		for i, p := range raw {
			if i > 0 {
				p = sep.text + p
			}
			if p != "" {
				pieces = append(pieces, p)
			}
		}
		return pieces, ""
	}

	// Runs of a separator stay in front of the next piece, so joining
	// the pieces with one separator gives the text back.
	var prefix string
	for _, p := range raw {
		if p == "" {
			prefix += sep.text
			continue
		}
		pieces = append(pieces, prefix+p)
		prefix = ""
	}
	return pieces, sep.text
}

// merge packs pieces into windows joined by sep. When a window is full, the
// oldest pieces are dropped until at most overlap characters remain and the
// next piece fits.
func (c *Chunker) merge(pieces []string, sep string) []string {
	sepLen := runeLen(sep)

	var (
		docs   []string
		window []string
		total  int
	)
	joined := func(n int) int {
		if n > 0 {
			return sepLen
		}
		return 0
	}

	for _, p := range pieces {
		n := runeLen(p)

		if len(window) > 0 && total+joined(len(window))+n > c.size {
			if doc := strings.TrimSpace(strings.Join(window, sep)); doc != "" {
				docs = append(docs, doc)
			}
			for len(window) > 0 && (total > c.overlap || total+joined(len(window))+n > c.size) {
				total -= runeLen(window[0])
				if len(window) > 1 {
					total -= sepLen
				}
				window = window[1:]
			}
		}

		total += joined(len(window)) + n
		window = append(window, p)
	}

	if doc := strings.TrimSpace(strings.Join(window, sep)); doc != "" {
		docs = append(docs, doc)
	}
	return docs
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
