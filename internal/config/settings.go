package config

import "github.com/goccy/go-yaml"

type Settings struct {
	Dir InterpolatedString `yaml:"dir"`
}

func NewDefaultSettingsConfig() Settings {
	return Settings{
		Dir: "${RELAIS_SETTINGS_DIR:-./config}",
	}
}

func NewSettingsConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":     []*yaml.Comment{yaml.HeadComment(" Settings persistence")},
		".dir": []*yaml.Comment{yaml.HeadComment(" Directory holding the JSON settings files (mqttSettings.json)")},
	}
}
