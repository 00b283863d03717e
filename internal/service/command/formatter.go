package command

import (
	"fmt"
	"strings"
)

// ResponseFormatter builds command replies in the markdown subset the
// transports understand. Telegram converts it to HTML, the terminal prints
// it as is.
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Info(title string) string {
	return "ℹ️ **" + title + "**\n\n"
}

func (f *ResponseFormatter) Error(operation string, err error) string {
	return fmt.Sprintf("❌ **Erro ao executar /%s**\n\n%s\n", operation, err.Error())
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("**%s**: `%s`\n", label, value)
}

func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("• " + item + "\n")
	}
	return sb.String()
}

func (f *ResponseFormatter) Tip(text string) string {
	return "💡 " + text + "\n"
}

func (f *ResponseFormatter) Section(emoji, title, content string) string {
	return fmt.Sprintf("%s **%s**\n%s", emoji, title, content)
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}
