package notifiers

import (
	"context"
	"errors"

	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// EmailNotifier sends notifications via SMTP, one submission per account.
// Only accounts with the "tls" protocol are sent; gomail upgrades the
// connection with STARTTLS before authenticating.
type EmailNotifier struct {
	accounts []config.EmailAccount
	logger   zerolog.Logger
}

// NewEmailNotifier creates a new instance of EmailNotifier.
func NewEmailNotifier(accounts []config.EmailAccount, logger *zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		accounts: accounts,
		logger:   logger.With().Str("component", "email_notifier").Logger(),
	}
}

// Send implements the Notifier interface for email.
func (n *EmailNotifier) Send(_ context.Context, notification *model.Notification) error {
	var errs []error

	for _, account := range n.accounts {
		if account.Protocol != "tls" {
			n.logger.Debug().Str("server", account.Server).Str("protocol", account.Protocol).Msg("skipping email account with unsupported protocol")
			continue
		}

		m := buildEmailMessage(account, notification)
		d := gomail.NewDialer(account.Server, account.Port, account.Username, account.Password)

		// DialAndSend opens a connection, sends the email, and closes it.
		if err := d.DialAndSend(m); err != nil {
			n.logger.Error().Err(err).Str("recipient", account.Receiver).Msg("failed to send email")
			errs = append(errs, err)
			continue
		}
		n.logger.Info().Str("recipient", account.Receiver).Msg("email sent successfully")
	}

	return errors.Join(errs...)
}

// buildEmailMessage assembles the standard header block plus the message
// body with an optional trailing URL line.
func buildEmailMessage(account config.EmailAccount, notification *model.Notification) *gomail.Message {
	body := notification.Message
	if notification.URL != "" {
		body += "\n\n" + notification.URL
	}

	m := gomail.NewMessage()
	m.SetHeader("From", account.Sender)
	m.SetHeader("To", account.Receiver)
	m.SetHeader("Subject", notification.Subject)
	m.SetBody("text/plain", body)
	return m
}
