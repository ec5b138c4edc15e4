package notifiers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
)

// DiscordNotifier posts notifications to per-account Discord webhook URLs.
type DiscordNotifier struct {
	accounts []config.DiscordAccount
	client   *http.Client
	logger   zerolog.Logger
}

// NewDiscordNotifier creates a new instance of DiscordNotifier.
func NewDiscordNotifier(accounts []config.DiscordAccount, client *http.Client, logger *zerolog.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		accounts: accounts,
		client:   client,
		logger:   logger.With().Str("component", "discord_notifier").Logger(),
	}
}

// Send implements the Notifier interface for Discord.
func (n *DiscordNotifier) Send(ctx context.Context, notification *model.Notification) error {
	fullMessage := ""
	if notification.Subject != "" {
		fullMessage += notification.Subject
	}
	if notification.Message != "" {
		fullMessage += "\n" + notification.Message
	}
	if notification.URL != "" {
		fullMessage += "\n\n" + notification.URL
	}

	var errs []error
	for _, account := range n.accounts {
		body, err := json.Marshal(map[string]string{
			"username": account.Username,
			"content":  fullMessage,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("discord: marshal payload: %w", err))
			continue
		}

		if err := n.post(ctx, account.URL, body); err != nil {
			n.logger.Error().Err(err).Str("username", account.Username).Msg("failed to send discord message")
			errs = append(errs, err)
			continue
		}
		n.logger.Info().Str("username", account.Username).Msg("discord message sent successfully")
	}

	return errors.Join(errs...)
}

func (n *DiscordNotifier) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("discord: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("discord: send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord: unexpected status %d", resp.StatusCode)
	}
	return nil
}
