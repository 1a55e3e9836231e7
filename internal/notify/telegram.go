package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/Alias1177/scalper/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Telegram delivers messages through the Telegram Bot API
type Telegram struct {
	bot    *tgbotapi.BotAPI
	logger zerolog.Logger
}

// Ensure Telegram implements the MessageSender interface.
var _ models.MessageSender = (*Telegram)(nil)

// NewTelegram authorizes the bot with the provided token
func NewTelegram(token string, logger zerolog.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("initializing telegram bot: %w", err)
	}

	t := &Telegram{
		bot:    bot,
		logger: logger.With().Str("component", "telegram").Logger(),
	}
	t.logger.Info().Str("username", bot.Self.UserName).Msg("Authorized on Telegram")

	return t, nil
}

// Send delivers a Markdown text message to the chat
func (t *Telegram) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("sending message to chat %d: %w", chatID, err)
	}

	return nil
}

// HandleCommands answers bot commands until the context is cancelled
func (t *Telegram) HandleCommands(ctx context.Context, intervalMinutes int) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := t.bot.GetUpdatesChan(updateConfig)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			reply, handled := CommandReply(update.Message.Command(), intervalMinutes)
			if !handled {
				continue
			}

			if _, err := t.bot.Send(tgbotapi.NewMessage(update.Message.Chat.ID, reply)); err != nil {
				t.logger.Error().Err(err).Int64("chat_id", update.Message.Chat.ID).Msg("Failed to answer command")
			}
		}
	}
}

// CommandReply returns the reply text for a bot command
func CommandReply(command string, intervalMinutes int) (string, bool) {
	switch strings.ToLower(command) {
	case "start":
		return fmt.Sprintf("Crypto scalping bot active! Signals are sent every %s.", describeInterval(intervalMinutes)), true
	default:
		return "", false
	}
}

func describeInterval(minutes int) string {
	switch {
	case minutes == 60:
		return "hour"
	case minutes%60 == 0:
		return fmt.Sprintf("%d hours", minutes/60)
	case minutes == 1:
		return "minute"
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
