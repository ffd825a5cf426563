// Package telegram adapts the conversation engine to the Telegram Bot
// API: long polling for updates in, text messages and reply keyboards
// out.
package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abitbot/abit-advisor-go/internal/bot"
	"github.com/abitbot/abit-advisor-go/internal/ctxutil"
	"github.com/abitbot/abit-advisor-go/internal/logger"
)

// pollTimeout is the long-poll wait passed to getUpdates, in seconds.
const pollTimeout = 30

// conversation is the engine surface the transport drives.
type conversation interface {
	HandleStart(ctx context.Context, chatID int64) []bot.Reply
	HandleCancel(ctx context.Context, chatID int64) []bot.Reply
	HandleText(ctx context.Context, chatID int64, text string) []bot.Reply
}

// sender is the outbound half of the Telegram API.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Transport runs the bot against Telegram long polling.
type Transport struct {
	api           *tgbotapi.BotAPI
	sender        sender
	engine        conversation
	logger        *logger.Logger
	updateTimeout time.Duration
}

// New connects to the Telegram Bot API and wires the engine.
func New(token string, engine *bot.Engine, log *logger.Logger, updateTimeout time.Duration) (*Transport, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}

	return &Transport{
		api:           api,
		sender:        api,
		engine:        engine,
		logger:        log.WithModule("telegram"),
		updateTimeout: updateTimeout,
	}, nil
}

// Username returns the bot account's username.
func (t *Transport) Username() string {
	return t.api.Self.UserName
}

// Run polls for updates until the context is done.
func (t *Transport) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeout
	updates := t.api.GetUpdatesChan(cfg)

	t.logger.InfoContext(ctx, "Polling for updates", "username", t.Username())

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate routes one inbound update through the engine and sends
// the replies. Each update gets a bounded processing window.
func (t *Transport) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	ctx = ctxutil.WithChatID(ctx, chatID)
	ctx, cancel := context.WithTimeout(ctx, t.updateTimeout)
	defer cancel()

	var replies []bot.Reply
	switch update.Message.Command() {
	case "start":
		replies = t.engine.HandleStart(ctx, chatID)
	case "cancel":
		replies = t.engine.HandleCancel(ctx, chatID)
	case "":
		replies = t.engine.HandleText(ctx, chatID, update.Message.Text)
	default:
		// Unknown commands are ignored, same as unrecognized menu input.
		return
	}

	t.send(ctx, chatID, replies)
}

func (t *Transport) send(ctx context.Context, chatID int64, replies []bot.Reply) {
	for _, reply := range replies {
		msg := tgbotapi.NewMessage(chatID, reply.Text)
		switch {
		case reply.ShowMenu:
			msg.ReplyMarkup = menuKeyboard()
		case reply.RemoveKeyboard:
			msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
		}

		if _, err := t.sender.Send(msg); err != nil {
			t.logger.WithError(err).ErrorContext(ctx, "Failed to send message")
		}
	}
}

// menuKeyboard is the two-intent choice menu shown in the choosing
// state: one button per row, one-time, resized to content.
func menuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewOneTimeReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(bot.IntentRecommend)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(bot.IntentAsk)),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}
