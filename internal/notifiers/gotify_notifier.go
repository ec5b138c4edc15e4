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

// GotifyNotifier posts notifications to per-account Gotify servers as
// form data, with the app token passed as a query parameter.
type GotifyNotifier struct {
	accounts []config.GotifyAccount
	client   *http.Client
	logger   zerolog.Logger
}

// NewGotifyNotifier creates a new instance of GotifyNotifier.
func NewGotifyNotifier(accounts []config.GotifyAccount, client *http.Client, logger *zerolog.Logger) *GotifyNotifier {
	return &GotifyNotifier{
		accounts: accounts,
		client:   client,
		logger:   logger.With().Str("component", "gotify_notifier").Logger(),
	}
}

// Send implements the Notifier interface for Gotify.
func (n *GotifyNotifier) Send(ctx context.Context, notification *model.Notification) error {
	fullMessage := notification.Message
	if notification.URL != "" {
		fullMessage += "\n\n" + notification.URL
	}

	form := url.Values{
		"title":    {notification.Subject},
		"message":  {fullMessage},
		"priority": {notification.Priority},
	}

	var errs []error
	for _, account := range n.accounts {
		fullURL := account.URL + "/message?token=" + url.QueryEscape(account.Token)

		if err := n.postForm(ctx, fullURL, form); err != nil {
			n.logger.Error().Err(err).Str("server", account.URL).Msg("failed to send gotify message")
			errs = append(errs, err)
			continue
		}
		n.logger.Info().Str("server", account.URL).Msg("gotify message sent successfully")
	}

	return errors.Join(errs...)
}

func (n *GotifyNotifier) postForm(ctx context.Context, fullURL string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("gotify: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("gotify: send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gotify: unexpected status %d", resp.StatusCode)
	}
	return nil
}
