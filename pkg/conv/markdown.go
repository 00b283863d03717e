// Package conv turns the Markdown produced by the LLM into what each chat
// channel can display.
package conv

import (
	stdhtml "html"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank

	// Tags allowed by Telegram: https://core.telegram.org/bots/api#html-style
	tgPolicy    = newTelegramPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

func newTelegramPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("class").OnElements("code")
	return p
}

// render converts Markdown to unsanitized HTML. Parsers are single use.
func render(md []byte) []byte {
	p := parser.NewWithExtensions(extensions)
	r := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	return markdown.Render(p.Parse(md), r)
}

// MarkdownToTelegramHTML renders md and keeps only the tags Telegram's HTML
// parse mode accepts.
func MarkdownToTelegramHTML(md []byte) string {
	return string(tgPolicy.SanitizeBytes(render(md)))
}

// PlainText renders Markdown and strips every tag, for channels where HTML
// parse mode was rejected.
func PlainText(md []byte) string {
	stripped := plainPolicy.SanitizeBytes(render(md))
	return strings.TrimSpace(stdhtml.UnescapeString(string(stripped)))
}
