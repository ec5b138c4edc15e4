package notifiers

import (
	"context"

	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
)

// LogNotifier is a mock notifier that implements the Notifier interface.
// It simply logs the notification details to the console instead of sending
// them through a real channel. This is extremely useful for development.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new instance of LogNotifier.
func NewLogNotifier(logger *zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With().Str("component", "log_notifier").Logger(),
	}
}

// Send implements the Notifier interface.
func (n *LogNotifier) Send(_ context.Context, notification *model.Notification) error {
	n.logger.Info().
		Str("subject", notification.Subject).
		Str("url", notification.URL).
		Str("priority", notification.Priority).
		Int("message_len", len(notification.Message)).
		Msg(">>> MOCK SEND: Notification dispatched")

	return nil
}
