package telegram

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/condobot/pkg/conv"
	"github.com/sandevgo/condobot/pkg/log"
	"github.com/sandevgo/condobot/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

var apiCodeRe = regexp.MustCompile(`\((\d{3})\)$`)

type messageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type sender struct {
	bot     messageSender
	retrier *retry.Retrier
}

func newSender(bot messageSender) *sender {
	cfg := retry.NewDefaultConfig()
	cfg.Retryable = isTransient
	return newSenderWithRetry(bot, cfg)
}

func newSenderWithRetry(bot messageSender, cfg *retry.Config) *sender {
	return &sender{bot: bot, retrier: retry.NewRetrier(cfg)}
}

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks if
// needed. When Telegram rejects the HTML the reply is resent as plain text.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string) error {
	logger := log.FromCtx(ctx)

	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if html == "" {
		return s.sendPlain(ctx, to, md)
	}

	chunks := splitHTML(html, maxTelegramMsgLen)
	for i, chunk := range chunks {
		err := s.send(ctx, to, chunk, tele.ModeHTML)
		if err == nil {
			continue
		}

		logger.Warn().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("html send failed, falling back to plain text")
		if i == 0 {
			return s.sendPlain(ctx, to, md)
		}
		// Chunks before i were delivered; resend the remainder only.
		return s.sendPlain(ctx, to, strings.Join(chunks[i:], "\n"))
	}
	return nil
}

func (s *sender) sendPlain(ctx context.Context, to tele.Recipient, text string) error {
	plain := conv.PlainText([]byte(text))
	if plain == "" {
		plain = strings.TrimSpace(text)
	}
	if plain == "" {
		return nil
	}

	for i, chunk := range splitHTML(plain, maxTelegramMsgLen) {
		if err := s.send(ctx, to, chunk); err != nil {
			log.FromCtx(ctx).Error().Err(err).Int("chunk", i).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

func (s *sender) send(ctx context.Context, to tele.Recipient, text string, opts ...interface{}) error {
	return s.retrier.Do(ctx, func() error {
		_, err := s.bot.Send(to, text, opts...)
		return err
	})
}

// isTransient reports whether a send error is worth retrying: flood
// control, server-side failures and network errors. Bad requests are final.
func isTransient(err error) bool {
	var flood tele.FloodError
	if errors.As(err, &flood) {
		return true
	}

	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 500
	}

	if m := apiCodeRe.FindStringSubmatch(err.Error()); m != nil {
		code, _ := strconv.Atoi(m[1])
		return code >= 500
	}
	return true
}

// splitHTML splits text into chunks respecting Telegram's limit.
// It tries to split at newlines to preserve formatting.
func splitHTML(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		// Try to find a good break point (newline) in the second half of the chunk
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		} else {
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}
