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

const defaultPushbulletEndpoint = "https://api.pushbullet.com/v2/pushes"

// PushbulletNotifier pushes "note" type messages through the Pushbullet
// API, authenticating each account with its Access-Token header.
type PushbulletNotifier struct {
	accounts []config.PushbulletAccount
	client   *http.Client
	endpoint string
	logger   zerolog.Logger
}

// NewPushbulletNotifier creates a new instance of PushbulletNotifier.
func NewPushbulletNotifier(accounts []config.PushbulletAccount, client *http.Client, logger *zerolog.Logger) *PushbulletNotifier {
	return &PushbulletNotifier{
		accounts: accounts,
		client:   client,
		endpoint: defaultPushbulletEndpoint,
		logger:   logger.With().Str("component", "pushbullet_notifier").Logger(),
	}
}

// Send implements the Notifier interface for Pushbullet.
func (n *PushbulletNotifier) Send(ctx context.Context, notification *model.Notification) error {
	body, err := json.Marshal(map[string]string{
		"body":  notification.Message,
		"title": notification.Subject,
		"type":  "note",
		"url":   notification.URL,
	})
	if err != nil {
		return fmt.Errorf("pushbullet: marshal payload: %w", err)
	}

	var errs []error
	for _, account := range n.accounts {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
		if err != nil {
			errs = append(errs, fmt.Errorf("pushbullet: create request: %w", err))
			continue
		}
		req.Header.Set("Access-Token", account.APIKey)
		req.Header.Set("Content-Type", "application/json")

		if err := n.do(req); err != nil {
			n.logger.Error().Err(err).Msg("failed to send pushbullet message")
			errs = append(errs, err)
			continue
		}
		n.logger.Info().Msg("pushbullet message sent successfully")
	}

	return errors.Join(errs...)
}

func (n *PushbulletNotifier) do(req *http.Request) error {
	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("pushbullet: send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("pushbullet: unexpected status %d", resp.StatusCode)
	}
	return nil
}
