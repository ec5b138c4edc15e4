package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/spf13/viper"
)

// Config is the main struct that holds all configuration for the application.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	Logger      LoggerConfig      `mapstructure:"logger"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Application ApplicationConfig `mapstructure:"application"`
	Notifiers   NotifiersConfig   `mapstructure:"notifiers"`
	Outputs     OutputsConfig     `mapstructure:"outputs"`
}

// LoggerConfig holds logging-specific settings.
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// HTTPConfig holds HTTP server-specific settings.
type HTTPConfig struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

// ApplicationConfig holds the relay's own identity and access settings.
type ApplicationConfig struct {
	APIName string `mapstructure:"api_name"`
	APIKey  string `mapstructure:"api_key"`
	// CurrentOutputs selects the enabled channels: a single name, a
	// comma-separated list, or the sentinel "all".
	CurrentOutputs string `mapstructure:"current_outputs"`
}

// NotifiersConfig holds cross-channel notifier settings.
type NotifiersConfig struct {
	// Mode can be "development" or "production".
	// In "development" mode, all notifiers will be replaced by the LogNotifier.
	Mode string `mapstructure:"mode"`
}

// OutputsConfig maps every channel to its configured accounts. A channel
// enabled via CurrentOutputs but listed here with zero accounts is a
// silent no-op destination.
type OutputsConfig struct {
	Discord    []DiscordAccount    `mapstructure:"discord"`
	Email      []EmailAccount      `mapstructure:"email"`
	Gotify     []GotifyAccount     `mapstructure:"gotify"`
	Matrix     []MatrixAccount     `mapstructure:"matrix"`
	NtfySh     []NtfyShAccount     `mapstructure:"ntfysh"`
	Pushbullet []PushbulletAccount `mapstructure:"pushbullet"`
	Pushover   []PushoverAccount   `mapstructure:"pushover"`
	Telegram   []TelegramAccount   `mapstructure:"telegram"`
	Webhook    []WebhookAccount    `mapstructure:"webhook"`
}

// DiscordAccount is one Discord webhook destination.
type DiscordAccount struct {
	Username string `mapstructure:"username"`
	URL      string `mapstructure:"url"`
}

// EmailAccount is one SMTP submission destination.
type EmailAccount struct {
	Sender   string `mapstructure:"email_sender"`
	Receiver string `mapstructure:"email_receiver"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Server   string `mapstructure:"server"`
	Port     int    `mapstructure:"port"`
	// Protocol selects the transport security; only "tls" accounts are sent.
	Protocol string `mapstructure:"protocol"`
}

// GotifyAccount is one Gotify server destination.
type GotifyAccount struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

// MatrixAccount is one Matrix room destination.
type MatrixAccount struct {
	URL   string `mapstructure:"url"`
	Room  string `mapstructure:"room"`
	Token string `mapstructure:"token"`
}

// NtfyShAccount is one ntfy.sh topic destination.
type NtfyShAccount struct {
	Topic string `mapstructure:"topic"`
}

// PushbulletAccount is one Pushbullet destination.
type PushbulletAccount struct {
	APIKey string `mapstructure:"api_key"`
}

// PushoverAccount is one Pushover app/user token pair.
type PushoverAccount struct {
	APIToken string `mapstructure:"api_token"`
	APIUser  string `mapstructure:"api_user"`
}

// TelegramAccount is one Telegram bot/chat destination.
type TelegramAccount struct {
	APIKey string `mapstructure:"api_key"`
	UserID int64  `mapstructure:"user_id"`
}

// WebhookAccount is one generic webhook destination.
type WebhookAccount struct {
	URL string `mapstructure:"url"`
}

// Channels resolves CurrentOutputs into the ordered set of enabled
// channels. Unknown names are kept as-is; the dispatcher skips anything
// it has no notifier for.
func (a ApplicationConfig) Channels() []model.Channel {
	value := strings.TrimSpace(a.CurrentOutputs)

	if value == "all" || value == "" {
		channels := make([]model.Channel, len(model.AllChannels))
		copy(channels, model.AllChannels)
		return channels
	}

	parts := strings.Split(value, ",")
	channels := make([]model.Channel, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		channels = append(channels, model.Channel(part))
	}
	return channels
}

// NewConfig parses the YAML file and environment variables to return a configuration struct.
func NewConfig() (*Config, error) {
	v := viper.New()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "configs/config.yaml"
	}
	v.SetConfigFile(path)

	v.SetDefault("logger.level", "info")
	v.SetDefault("http.port", ":8080")
	v.SetDefault("http.gin_mode", "release")
	v.SetDefault("application.api_name", "Notify Relay")
	v.SetDefault("application.current_outputs", "all")
	v.SetDefault("notifiers.mode", "production")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Application.APIKey == "" {
		return nil, fmt.Errorf("application.api_key must be set")
	}

	return &cfg, nil
}
