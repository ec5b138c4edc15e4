package model

import "encoding/json"

// Channel represents an outbound notification channel (e.g., email, discord).
type Channel string

const (
	ChannelDiscord    Channel = "discord"
	ChannelEmail      Channel = "email"
	ChannelGotify     Channel = "gotify"
	ChannelMatrix     Channel = "matrix"
	ChannelNtfySh     Channel = "ntfysh"
	ChannelPushbullet Channel = "pushbullet"
	ChannelPushover   Channel = "pushover"
	ChannelTelegram   Channel = "telegram"
	ChannelWebhook    Channel = "webhook"
)

// AllChannels lists every known channel in its fixed dispatch order.
// The "all" sentinel in the configuration expands to this list.
var AllChannels = []Channel{
	ChannelDiscord,
	ChannelEmail,
	ChannelGotify,
	ChannelMatrix,
	ChannelNtfySh,
	ChannelPushbullet,
	ChannelPushover,
	ChannelTelegram,
	ChannelWebhook,
}

// Notification is the core business entity of the application: the common
// tuple every inbound payload is normalized into before dispatch.
// It is constructed once per inbound request (or once per sub-event for
// batched payloads) and is not mutated after construction.
type Notification struct {
	Subject  string // The subject or title of the notification.
	Message  string // The main content/body of the notification.
	URL      string // Optional link; channels decide how to render it.
	Priority string // Free-form priority; semantics are channel-defined.

	// Raw carries the inbound request body verbatim. The generic webhook
	// channel re-emits it unmodified; all other channels ignore it.
	Raw json.RawMessage
}

// NewNotification is a factory function to create a new normalized notification.
func NewNotification(subject, message, url, priority string, raw json.RawMessage) *Notification {
	return &Notification{
		Subject:  subject,
		Message:  message,
		URL:      url,
		Priority: priority,
		Raw:      raw,
	}
}
