package notifiers

import (
	"context"
	"testing"

	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmailMessage_HeadersAndTrailingURL(t *testing.T) {
	account := config.EmailAccount{Sender: "relay@example.com", Receiver: "you@example.com"}
	notification := model.NewNotification("Subject", "Body", "https://example.com", "0", nil)

	m := buildEmailMessage(account, notification)

	assert.Equal(t, []string{"relay@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"you@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Subject"}, m.GetHeader("Subject"))
}

func TestBuildEmailMessage_NoURLLine(t *testing.T) {
	account := config.EmailAccount{Sender: "relay@example.com", Receiver: "you@example.com"}

	m := buildEmailMessage(account, model.NewNotification("S", "Body", "", "0", nil))

	require.NotNil(t, m)
	assert.Equal(t, []string{"S"}, m.GetHeader("Subject"))
}

func TestEmailSend_SkipsNonTLSAccounts(t *testing.T) {
	log := zerolog.Nop()
	n := NewEmailNotifier([]config.EmailAccount{
		{Sender: "a@example.com", Receiver: "b@example.com", Server: "smtp.example.com", Port: 25, Protocol: "plain"},
	}, &log)

	// The only account uses an unsupported protocol, so no submission is
	// attempted and the send succeeds without touching the network.
	err := n.Send(context.Background(), model.NewNotification("s", "m", "", "0", nil))
	require.NoError(t, err)
}
