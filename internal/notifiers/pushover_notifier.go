package notifiers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
)

const defaultPushoverEndpoint = "https://api.pushover.net/1/messages.json"

// PushoverNotifier sends notifications through the Pushover message API
// with a per-account app-token and user-token pair.
type PushoverNotifier struct {
	accounts []config.PushoverAccount
	client   *http.Client
	endpoint string
	logger   zerolog.Logger
}

// NewPushoverNotifier creates a new instance of PushoverNotifier.
func NewPushoverNotifier(accounts []config.PushoverAccount, client *http.Client, logger *zerolog.Logger) *PushoverNotifier {
	return &PushoverNotifier{
		accounts: accounts,
		client:   client,
		endpoint: defaultPushoverEndpoint,
		logger:   logger.With().Str("component", "pushover_notifier").Logger(),
	}
}

// Send implements the Notifier interface for Pushover.
func (n *PushoverNotifier) Send(ctx context.Context, notification *model.Notification) error {
	var errs []error

	for _, account := range n.accounts {
		form := url.Values{
			"message":  {notification.Message},
			"priority": {notification.Priority},
			"title":    {notification.Subject},
			"token":    {account.APIToken},
			"url":      {notification.URL},
			"user":     {account.APIUser},
		}

		if err := n.postForm(ctx, form); err != nil {
			n.logger.Error().Err(err).Msg("failed to send pushover message")
			errs = append(errs, err)
			continue
		}
		n.logger.Info().Msg("pushover message sent successfully")
	}

	return errors.Join(errs...)
}

func (n *PushoverNotifier) postForm(ctx context.Context, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("pushover: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("pushover: send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("pushover: unexpected status %d", resp.StatusCode)
	}
	return nil
}
