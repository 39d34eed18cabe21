package setup

import (
	"context"
	"path/filepath"

	"github.com/bornholm/relais/internal/config"
	"github.com/bornholm/relais/internal/mqtt"
	"github.com/bornholm/relais/internal/settings"
)

const mqttSettingsFile = "mqttSettings.json"

var NewMQTTSettingsFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*mqtt.SettingsService, error) {
	service := mqtt.NewSettingsService()

	persistence := settings.NewPersistence(service, filepath.Join(string(conf.Settings.Dir), mqttSettingsFile), mqtt.DefaultSettings)
	persistence.ReadFromFS(ctx)

	return service, nil
})
