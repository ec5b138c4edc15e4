package notifiers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
)

// MatrixNotifier sends notifications into Matrix rooms via the client API.
// Every call uses a freshly generated transaction ID, as the room message
// endpoint deduplicates on it.
type MatrixNotifier struct {
	accounts []config.MatrixAccount
	client   *http.Client
	logger   zerolog.Logger
}

// NewMatrixNotifier creates a new instance of MatrixNotifier.
func NewMatrixNotifier(accounts []config.MatrixAccount, client *http.Client, logger *zerolog.Logger) *MatrixNotifier {
	return &MatrixNotifier{
		accounts: accounts,
		client:   client,
		logger:   logger.With().Str("component", "matrix_notifier").Logger(),
	}
}

// Send implements the Notifier interface for Matrix. Only the message
// text is sent; subject and URL are not composed into the room message.
func (n *MatrixNotifier) Send(ctx context.Context, notification *model.Notification) error {
	body, err := json.Marshal(map[string]string{
		"msgtype": "m.text",
		"body":    "\n" + notification.Message,
	})
	if err != nil {
		return fmt.Errorf("matrix: marshal payload: %w", err)
	}

	var errs []error
	for _, account := range n.accounts {
		txnID := uuid.New().String()
		fullURL := account.URL + "/_matrix/client/r0/rooms/" + url.PathEscape(account.Room) +
			"/send/m.room.message/" + txnID + "?access_token=" + url.QueryEscape(account.Token)

		if err := n.put(ctx, fullURL, body); err != nil {
			n.logger.Error().Err(err).Str("room", account.Room).Msg("failed to send matrix message")
			errs = append(errs, err)
			continue
		}
		n.logger.Info().Str("room", account.Room).Str("txn_id", txnID).Msg("matrix message sent successfully")
	}

	return errors.Join(errs...)
}

func (n *MatrixNotifier) put(ctx context.Context, fullURL string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, fullURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("matrix: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("matrix: send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("matrix: unexpected status %d", resp.StatusCode)
	}
	return nil
}
