package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/condobot/internal/config"
	"github.com/sandevgo/condobot/internal/core"
	"github.com/sandevgo/condobot/internal/transport"
	"github.com/sandevgo/condobot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot        *tele.Bot
	cfg        *config.TelegramConfig
	dispatcher *transport.Dispatcher
	router     core.CmdRouter
	sender     *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	router core.CmdRouter,
	answerer core.Answerer,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			log.FromCtx(ctx).Error().Err(err).Msg("telegram handler error")
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:        b,
		cfg:        cfg,
		dispatcher: transport.NewDispatcher(router, answerer),
		router:     router,
		sender:     newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: only allowed chats
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Chat() == nil || !cfg.IsChatAllowed(c.Chat().ID) {
				log.FromCtx(ctx).Debug().Msg("ignoring message from chat outside allow-list")
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	if err := b.bot.SetCommands(b.menu()); err != nil {
		logger.Warn().Err(err).Msg("failed to register bot commands")
	}

	logger.Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) menu() []tele.Command {
	cmds := b.router.ListCommands()
	menu := make([]tele.Command, 0, len(cmds))
	for _, c := range cmds {
		menu = append(menu, tele.Command{Text: c.Name(), Description: c.Description()})
	}
	return menu
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	sessionID := fmt.Sprintf("telegram-%d", c.Chat().ID)

	if !b.dispatcher.IsCommand(c.Text()) {
		// Notify user we are working
		_ = c.Notify(tele.Typing)
	}

	reply := b.dispatcher.Handle(ctx, sessionID, c.Text())
	if reply == "" {
		return nil
	}

	if err := b.sender.sendMarkdown(ctx, c.Chat(), reply); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("session", sessionID).Msg("failed to send telegram reply")
	}
	return nil
}
