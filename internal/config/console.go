package config

import "github.com/goccy/go-yaml"

type Console struct {
	ProjectPath   InterpolatedString `yaml:"projectPath"`
	EnforceGuards InterpolatedBool   `yaml:"enforceGuards"`
	Guards        Guards             `yaml:"guards"`
	Demo          Demo               `yaml:"demo"`
}

type Guards struct {
	MQTTSettings InterpolatedString `yaml:"mqttSettings"`
}

type Demo struct {
	RestEndpoint   InterpolatedString `yaml:"restEndpoint"`
	SocketEndpoint InterpolatedString `yaml:"socketEndpoint"`
	BrokerEndpoint InterpolatedString `yaml:"brokerEndpoint"`
}

func NewDefaultConsoleConfig() Console {
	return Console{
		ProjectPath:   "${RELAIS_PROJECT_PATH:-project}",
		EnforceGuards: false,
		Guards: Guards{
			MQTTSettings: "me.admin",
		},
		Demo: Demo{
			RestEndpoint:   "/rest/lightState",
			SocketEndpoint: "/ws/lightState",
			BrokerEndpoint: "/rest/brokerSettings",
		},
	}
}

func NewConsoleConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                     []*yaml.Comment{yaml.HeadComment(" Console screens configuration")},
		".projectPath":         []*yaml.Comment{yaml.HeadComment(" Path segment of the demo project screen (/{projectPath}/demo/...)")},
		".enforceGuards":       []*yaml.Comment{yaml.HeadComment(" Deny guarded tabs at the route level instead of only disabling them")},
		".guards.mqttSettings": []*yaml.Comment{yaml.HeadComment(" Rule enabling the MQTT settings tab", " See https://expr-lang.org/docs/language-definition")},
		".demo":                []*yaml.Comment{yaml.HeadComment(" Endpoints of the external demo controllers")},
	}
}
