package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
)

func TestChannels_AllSentinel(t *testing.T) {
	app := config.ApplicationConfig{CurrentOutputs: "all"}
	assert.Equal(t, model.AllChannels, app.Channels())
}

func TestChannels_CommaSeparatedList(t *testing.T) {
	app := config.ApplicationConfig{CurrentOutputs: "discord, email ,telegram"}
	assert.Equal(t, []model.Channel{
		model.ChannelDiscord,
		model.ChannelEmail,
		model.ChannelTelegram,
	}, app.Channels())
}

func TestChannels_SingleName(t *testing.T) {
	app := config.ApplicationConfig{CurrentOutputs: "gotify"}
	assert.Equal(t, []model.Channel{model.ChannelGotify}, app.Channels())
}

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)
}

func TestNewConfig_ParsesOutputsAndDefaults(t *testing.T) {
	writeConfig(t, `
application:
  api_key: topsecret
outputs:
  discord:
    - username: relay
      url: https://discord.example.com/hook
  email:
    - email_sender: a@example.com
      email_receiver: b@example.com
      server: smtp.example.com
      port: 587
      protocol: tls
  telegram:
    - api_key: "1:token"
      user_id: 42
`)

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "topsecret", cfg.Application.APIKey)
	assert.Equal(t, "Notify Relay", cfg.Application.APIName)
	assert.Equal(t, "all", cfg.Application.CurrentOutputs)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, ":8080", cfg.HTTP.Port)

	require.Len(t, cfg.Outputs.Discord, 1)
	assert.Equal(t, "relay", cfg.Outputs.Discord[0].Username)

	require.Len(t, cfg.Outputs.Email, 1)
	assert.Equal(t, 587, cfg.Outputs.Email[0].Port)
	assert.Equal(t, "tls", cfg.Outputs.Email[0].Protocol)

	require.Len(t, cfg.Outputs.Telegram, 1)
	assert.Equal(t, int64(42), cfg.Outputs.Telegram[0].UserID)
}

func TestNewConfig_MissingAPIKeyFails(t *testing.T) {
	writeConfig(t, `
application:
  api_name: Relay
`)

	_, err := config.NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}
