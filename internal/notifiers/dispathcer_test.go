package notifiers

import (
	"context"
	"errors"
	"testing"

	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	calls int
	err   error
}

func (s *stubNotifier) Send(_ context.Context, _ *model.Notification) error {
	s.calls++
	return s.err
}

func TestDispatch_FailureDoesNotBlockOtherChannels(t *testing.T) {
	log := zerolog.Nop()
	failing := &stubNotifier{err: errors.New("discord down")}
	healthy := &stubNotifier{}

	d := &Dispatcher{
		order: []model.Channel{model.ChannelDiscord, model.ChannelGotify},
		notifiers: map[model.Channel]Notifier{
			model.ChannelDiscord: failing,
			model.ChannelGotify:  healthy,
		},
		logger: log,
	}

	err := d.Dispatch(context.Background(), model.NewNotification("s", "m", "", "0", nil))

	require.Error(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, healthy.calls)
}

func TestDispatch_OnlyEnabledChannelsInvoked(t *testing.T) {
	log := zerolog.Nop()
	enabled := &stubNotifier{}
	disabled := &stubNotifier{}

	d := &Dispatcher{
		order: []model.Channel{model.ChannelEmail},
		notifiers: map[model.Channel]Notifier{
			model.ChannelEmail:   enabled,
			model.ChannelDiscord: disabled,
		},
		logger: log,
	}

	err := d.Dispatch(context.Background(), model.NewNotification("s", "m", "", "0", nil))

	require.NoError(t, err)
	assert.Equal(t, 1, enabled.calls)
	assert.Equal(t, 0, disabled.calls)
}

func TestDispatch_UnregisteredChannelIsSkipped(t *testing.T) {
	log := zerolog.Nop()
	healthy := &stubNotifier{}

	d := &Dispatcher{
		order: []model.Channel{model.Channel("nosuch"), model.ChannelWebhook},
		notifiers: map[model.Channel]Notifier{
			model.ChannelWebhook: healthy,
		},
		logger: log,
	}

	err := d.Dispatch(context.Background(), model.NewNotification("s", "m", "", "0", nil))

	require.NoError(t, err)
	assert.Equal(t, 1, healthy.calls)
}

func TestNewDispatcher_DevelopmentModeUsesLogNotifier(t *testing.T) {
	log := zerolog.Nop()
	cfg := &config.Config{
		Application: config.ApplicationConfig{CurrentOutputs: "discord,email"},
		Notifiers:   config.NotifiersConfig{Mode: "development"},
	}

	d, err := NewDispatcher(cfg, &log)
	require.NoError(t, err)

	err = d.Dispatch(context.Background(), model.NewNotification("s", "m", "", "0", nil))
	require.NoError(t, err)
}

func TestNewDispatcher_ProductionWithoutAccountsIsNoOp(t *testing.T) {
	log := zerolog.Nop()
	cfg := &config.Config{
		Application: config.ApplicationConfig{CurrentOutputs: "all"},
		Notifiers:   config.NotifiersConfig{Mode: "production"},
	}

	d, err := NewDispatcher(cfg, &log)
	require.NoError(t, err)

	// Every channel is registered but has zero accounts, so a dispatch
	// performs no outbound calls and succeeds.
	err = d.Dispatch(context.Background(), model.NewNotification("s", "m", "", "0", nil))
	require.NoError(t, err)
}
