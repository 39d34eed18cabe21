package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type HTTP struct {
	Address         InterpolatedString    `yaml:"address"`
	BaseURL         InterpolatedString    `yaml:"baseUrl"`
	ShutdownTimeout *InterpolatedDuration `yaml:"shutdownTimeout"`
	Session         Session               `yaml:"session"`
	RateLimit       RateLimit             `yaml:"rateLimit"`
}

type Session struct {
	Keys   InterpolatedStringSlice `yaml:"keys"`
	Cookie Cookie                  `yaml:"cookie"`
}

type Cookie struct {
	Path     InterpolatedString    `yaml:"path"`
	HTTPOnly InterpolatedBool      `yaml:"httpOnly"`
	Secure   InterpolatedBool      `yaml:"secure"`
	MaxAge   *InterpolatedDuration `yaml:"maxAge"`
}

type RateLimit struct {
	// Requests per second
	Rate  InterpolatedInt `yaml:"rate"`
	Burst InterpolatedInt `yaml:"burst"`
}

func NewDefaultHTTPConfig() HTTP {
	return HTTP{
		Address:         "${RELAIS_HTTP_ADDRESS:-:8080}",
		BaseURL:         "${RELAIS_HTTP_BASE_URL:-http://localhost:8080}",
		ShutdownTimeout: NewInterpolatedDuration(10 * time.Second),
		Session: Session{
			Keys: InterpolatedStringSlice{},
			Cookie: Cookie{
				Path:     "/",
				HTTPOnly: true,
				Secure:   false,
				MaxAge:   NewInterpolatedDuration(24 * time.Hour),
			},
		},
		RateLimit: RateLimit{
			Rate:  10,
			Burst: 20,
		},
	}
}

func NewHTTPConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                       []*yaml.Comment{yaml.HeadComment(" Webserver configuration")},
		".address":               []*yaml.Comment{yaml.HeadComment(" Webserver's listening address")},
		".baseUrl":               []*yaml.Comment{yaml.HeadComment(" Public URL of the console, used for OAuth2 callbacks")},
		".shutdownTimeout":       []*yaml.Comment{yaml.HeadComment(" Maximum time allowed to drain in-flight requests on shutdown")},
		".session.keys":          []*yaml.Comment{yaml.HeadComment(" Session cookie signing keys", " A random key is generated on startup if empty")},
		".session.cookie.maxAge": []*yaml.Comment{yaml.HeadComment(" Session lifetime")},
		".rateLimit":             []*yaml.Comment{yaml.HeadComment(" Per-user rate limit applied to REST and websocket endpoints")},
		".rateLimit.rate":        []*yaml.Comment{yaml.HeadComment(" Sustained requests per second")},
		".rateLimit.burst":       []*yaml.Comment{yaml.HeadComment(" Maximum burst size")},
	}
}
