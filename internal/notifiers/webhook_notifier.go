package notifiers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
)

// WebhookNotifier forwards the original inbound request body, byte for
// byte, to every configured webhook URL. No reformatting happens here.
type WebhookNotifier struct {
	accounts []config.WebhookAccount
	client   *http.Client
	logger   zerolog.Logger
}

// NewWebhookNotifier creates a new instance of WebhookNotifier.
func NewWebhookNotifier(accounts []config.WebhookAccount, client *http.Client, logger *zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		accounts: accounts,
		client:   client,
		logger:   logger.With().Str("component", "webhook_notifier").Logger(),
	}
}

// Send implements the Notifier interface for the generic webhook channel.
func (n *WebhookNotifier) Send(ctx context.Context, notification *model.Notification) error {
	var errs []error

	for _, account := range n.accounts {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, account.URL, bytes.NewReader(notification.Raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("webhook: create request: %w", err))
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		if err := n.do(req, account.URL); err != nil {
			errs = append(errs, err)
			continue
		}
		n.logger.Info().Str("url", account.URL).Msg("webhook forwarded successfully")
	}

	return errors.Join(errs...)
}

func (n *WebhookNotifier) do(req *http.Request, accountURL string) error {
	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error().Err(err).Str("url", accountURL).Msg("failed to forward webhook")
		return fmt.Errorf("webhook: send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Error().Int("status", resp.StatusCode).Str("url", accountURL).Msg("webhook endpoint rejected request")
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode)
	}
	return nil
}
