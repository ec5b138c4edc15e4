package notifiers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
)

const defaultNtfyServer = "https://ntfy.sh"

// NtfyShNotifier publishes notifications to ntfy.sh topics. The message
// travels as a plain-text body; subject, URL and priority ride in the
// Title, Click and Priority headers when present.
type NtfyShNotifier struct {
	accounts []config.NtfyShAccount
	client   *http.Client
	server   string
	logger   zerolog.Logger
}

// NewNtfyShNotifier creates a new instance of NtfyShNotifier.
func NewNtfyShNotifier(accounts []config.NtfyShAccount, client *http.Client, logger *zerolog.Logger) *NtfyShNotifier {
	return &NtfyShNotifier{
		accounts: accounts,
		client:   client,
		server:   defaultNtfyServer,
		logger:   logger.With().Str("component", "ntfysh_notifier").Logger(),
	}
}

// Send implements the Notifier interface for ntfy.sh.
func (n *NtfyShNotifier) Send(ctx context.Context, notification *model.Notification) error {
	var errs []error

	for _, account := range n.accounts {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			n.server+"/"+account.Topic, strings.NewReader(notification.Message))
		if err != nil {
			errs = append(errs, fmt.Errorf("ntfysh: create request: %w", err))
			continue
		}

		if notification.Subject != "" {
			req.Header.Set("Title", notification.Subject)
		}
		if notification.URL != "" {
			req.Header.Set("Click", notification.URL)
		}
		if notification.Priority != "" {
			req.Header.Set("Priority", notification.Priority)
		}

		if err := n.do(req, account.Topic); err != nil {
			errs = append(errs, err)
			continue
		}
		n.logger.Info().Str("topic", account.Topic).Msg("ntfy.sh message sent successfully")
	}

	return errors.Join(errs...)
}

func (n *NtfyShNotifier) do(req *http.Request, topic string) error {
	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error().Err(err).Str("topic", topic).Msg("failed to send ntfy.sh message")
		return fmt.Errorf("ntfysh: send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Error().Int("status", resp.StatusCode).Str("topic", topic).Msg("ntfy.sh rejected message")
		return fmt.Errorf("ntfysh: unexpected status %d", resp.StatusCode)
	}
	return nil
}
