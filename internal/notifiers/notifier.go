package notifiers

import (
	"context"

	"github.com/ilindan-dev/notify-relay/internal/domain/model"
)

// Notifier defines the interface for any notification sending channel.
// Implementations fan a single notification out to every account they
// are configured with; a failed account must not stop the remaining
// accounts from being attempted.
type Notifier interface {
	// Send dispatches the notification to every configured account and
	// returns the aggregated error of the accounts that failed.
	Send(ctx context.Context, n *model.Notification) error
}
