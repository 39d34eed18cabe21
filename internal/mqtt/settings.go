package mqtt

import (
	"net"
	"net/url"
	"strconv"

	"github.com/bornholm/relais/internal/settings"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

// Settings configures the connection to the MQTT broker.
type Settings struct {
	Enabled        bool   `json:"enabled"`
	Host           string `json:"host"`
	Port           int    `json:"port"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	ClientID       string `json:"client_id"`
	KeepAlive      int    `json:"keep_alive"`
	CleanSession   bool   `json:"clean_session"`
	MaxTopicLength int    `json:"max_topic_length"`
}

const (
	DefaultHost           = "test.mosquitto.org"
	DefaultPort           = 1883
	DefaultKeepAlive      = 16
	DefaultMaxTopicLength = 128
)

func DefaultSettings() Settings {
	return Settings{
		Enabled:        false,
		Host:           DefaultHost,
		Port:           DefaultPort,
		ClientID:       "relais-" + xid.New().String(),
		KeepAlive:      DefaultKeepAlive,
		CleanSession:   true,
		MaxTopicLength: DefaultMaxTopicLength,
	}
}

// Validate returns an error wrapping settings.ErrInvalid when s cannot be
// used to connect to a broker.
func (s Settings) Validate() error {
	if s.Enabled && s.Host == "" {
		return errors.Wrap(settings.ErrInvalid, "host is required when enabled")
	}

	if s.Port < 1 || s.Port > 65535 {
		return errors.Wrapf(settings.ErrInvalid, "port must be between 1 and 65535, got %d", s.Port)
	}

	if s.KeepAlive < 1 || s.KeepAlive > 3600 {
		return errors.Wrapf(settings.ErrInvalid, "keep alive must be between 1 and 3600 seconds, got %d", s.KeepAlive)
	}

	if s.MaxTopicLength < 16 || s.MaxTopicLength > 1024 {
		return errors.Wrapf(settings.ErrInvalid, "max topic length must be between 16 and 1024, got %d", s.MaxTopicLength)
	}

	return nil
}

// BrokerURL returns the broker address as an mqtt:// URL carrying the
// credentials.
func (s Settings) BrokerURL() string {
	u := url.URL{
		Scheme: "mqtt",
		Host:   net.JoinHostPort(s.Host, strconv.Itoa(s.Port)),
	}

	if s.Username != "" {
		u.User = url.UserPassword(s.Username, s.Password)
	}

	return u.String()
}

type SettingsService = settings.Service[Settings]

func NewSettingsService() *SettingsService {
	return settings.NewService(DefaultSettings())
}
