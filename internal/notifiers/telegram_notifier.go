package notifiers

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
)

// TelegramNotifier sends notifications via per-account Telegram bots.
// Messages are HTML-formatted with a bold subject line and link previews
// disabled.
type TelegramNotifier struct {
	bots   []telegramBot
	logger zerolog.Logger
}

type telegramBot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a new instance of TelegramNotifier. Every
// account's bot token is validated against the API up front.
func NewTelegramNotifier(accounts []config.TelegramAccount, logger *zerolog.Logger) (*TelegramNotifier, error) {
	return newTelegramNotifier(accounts, tgbotapi.APIEndpoint, logger)
}

func newTelegramNotifier(accounts []config.TelegramAccount, endpoint string, logger *zerolog.Logger) (*TelegramNotifier, error) {
	bots := make([]telegramBot, 0, len(accounts))
	for _, account := range accounts {
		bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(account.APIKey, endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create telegram bot api: %w", err)
		}
		bots = append(bots, telegramBot{api: bot, chatID: account.UserID})
	}

	return &TelegramNotifier{
		bots:   bots,
		logger: logger.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// Send implements the Notifier interface for Telegram.
func (n *TelegramNotifier) Send(_ context.Context, notification *model.Notification) error {
	fullMessage := ""
	if notification.Subject != "" {
		fullMessage = "<strong>" + notification.Subject + "</strong>"
	}
	if notification.Message != "" {
		fullMessage += "\n" + notification.Message
	}
	if notification.URL != "" {
		fullMessage += "\n\n" + notification.URL
	}

	var errs []error
	for _, bot := range n.bots {
		msg := tgbotapi.NewMessage(bot.chatID, fullMessage)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = true

		if _, err := bot.api.Send(msg); err != nil {
			n.logger.Error().Err(err).Int64("chat_id", bot.chatID).Msg("failed to send telegram message")
			errs = append(errs, err)
			continue
		}
		n.logger.Info().Int64("chat_id", bot.chatID).Msg("telegram message sent successfully")
	}

	return errors.Join(errs...)
}
