package notifiers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
)

// Dispatcher fans a normalized notification out to every enabled channel.
// Channels are attempted in their configured order; an error from one
// channel never prevents the remaining channels from being attempted.
type Dispatcher struct {
	order     []model.Channel
	notifiers map[model.Channel]Notifier
	logger    zerolog.Logger
}

// NewDispatcher creates a new Dispatcher and initializes channel-specific
// notifiers from the application's configuration.
func NewDispatcher(cfg *config.Config, logger *zerolog.Logger) (*Dispatcher, error) {
	log := logger.With().Str("component", "dispatcher").Logger()
	log.Info().Str("mode", cfg.Notifiers.Mode).Str("current_outputs", cfg.Application.CurrentOutputs).Msg("initializing notifiers")

	order := cfg.Application.Channels()
	notifiersMap := make(map[model.Channel]Notifier)

	if cfg.Notifiers.Mode == "development" {
		// Replace every channel with the LogNotifier so a dev box never
		// reaches real notification services.
		logNotifier := NewLogNotifier(logger)
		for _, channel := range order {
			notifiersMap[channel] = logNotifier
		}
		return &Dispatcher{order: order, notifiers: notifiersMap, logger: log}, nil
	}

	client := &http.Client{Timeout: 10 * time.Second}

	notifiersMap[model.ChannelDiscord] = NewDiscordNotifier(cfg.Outputs.Discord, client, logger)
	notifiersMap[model.ChannelEmail] = NewEmailNotifier(cfg.Outputs.Email, logger)
	notifiersMap[model.ChannelGotify] = NewGotifyNotifier(cfg.Outputs.Gotify, client, logger)
	notifiersMap[model.ChannelMatrix] = NewMatrixNotifier(cfg.Outputs.Matrix, client, logger)
	notifiersMap[model.ChannelNtfySh] = NewNtfyShNotifier(cfg.Outputs.NtfySh, client, logger)
	notifiersMap[model.ChannelPushbullet] = NewPushbulletNotifier(cfg.Outputs.Pushbullet, client, logger)
	notifiersMap[model.ChannelPushover] = NewPushoverNotifier(cfg.Outputs.Pushover, client, logger)
	notifiersMap[model.ChannelWebhook] = NewWebhookNotifier(cfg.Outputs.Webhook, client, logger)

	// The Telegram client validates each bot token against the API at
	// construction time, so a bad token fails the startup instead of
	// every subsequent dispatch.
	tgNotifier, err := NewTelegramNotifier(cfg.Outputs.Telegram, logger)
	if err != nil {
		return nil, err
	}
	notifiersMap[model.ChannelTelegram] = tgNotifier

	return &Dispatcher{
		order:     order,
		notifiers: notifiersMap,
		logger:    log,
	}, nil
}

// Dispatch sends the notification through every enabled channel in order.
// It returns the aggregated error of the channels that failed; the caller
// only learns that something failed, not which channel.
func (d *Dispatcher) Dispatch(ctx context.Context, n *model.Notification) error {
	var errs []error

	for _, channel := range d.order {
		notifier, ok := d.notifiers[channel]
		if !ok {
			d.logger.Debug().Str("channel", string(channel)).Msg("no notifier registered for channel, skipping")
			continue
		}

		if err := notifier.Send(ctx, n); err != nil {
			d.logger.Error().Err(err).Str("channel", string(channel)).Msg("channel delivery failed")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
