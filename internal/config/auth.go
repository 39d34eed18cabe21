package config

import "github.com/goccy/go-yaml"

type Auth struct {
	Providers AuthProviders `yaml:"providers"`
	Admins    []Admin       `yaml:"admins"`
	Users     []BasicUser   `yaml:"users"`
}

// Admin identifies a user granted admin privileges on login.
type Admin struct {
	Email    InterpolatedString `yaml:"email"`
	Provider InterpolatedString `yaml:"provider"`
}

// BasicUser is a local account authenticated with HTTP basic auth.
type BasicUser struct {
	Name     InterpolatedString `yaml:"name"`
	Password InterpolatedString `yaml:"password"`
	Admin    InterpolatedBool   `yaml:"admin"`
}

type AuthProviders struct {
	Google OAuth2Provider `yaml:"google"`
	Github OAuth2Provider `yaml:"github"`
	Gitea  GiteaProvider  `yaml:"gitea"`
	OIDC   OIDCProvider   `yaml:"oidc"`
}

type OAuth2Provider struct {
	Key    InterpolatedString      `yaml:"key"`
	Secret InterpolatedString      `yaml:"secret"`
	Scopes InterpolatedStringSlice `yaml:"scopes"`
}

type OIDCProvider struct {
	OAuth2Provider `yaml:",inline"`
	DiscoveryURL   InterpolatedString `yaml:"discoveryUrl"`
	Icon           InterpolatedString `yaml:"icon"`
	Label          InterpolatedString `yaml:"label"`
}

type GiteaProvider struct {
	OAuth2Provider `yaml:",inline"`
	TokenURL       InterpolatedString `yaml:"tokenUrl"`
	AuthURL        InterpolatedString `yaml:"authUrl"`
	ProfileURL     InterpolatedString `yaml:"profileUrl"`
	Label          InterpolatedString `yaml:"label"`
}

func (p AuthProviders) Empty() bool {
	return !p.Google.Configured() && !p.Github.Configured() && !p.Gitea.Configured() && !p.OIDC.Configured()
}

func (p OAuth2Provider) Configured() bool {
	return p.Key != "" && p.Secret != ""
}

func NewDefaultAuthConfig() Auth {
	return Auth{
		Providers: AuthProviders{
			Google: OAuth2Provider{
				Key:    "${RELAIS_AUTH_GOOGLE_KEY}",
				Secret: "${RELAIS_AUTH_GOOGLE_SECRET}",
				Scopes: InterpolatedStringSlice{"profile", "email"},
			},
		},
		Admins: []Admin{
			{
				Email:    "${RELAIS_AUTH_ADMIN_EMAIL}",
				Provider: "google",
			},
		},
		Users: []BasicUser{
			{
				Name:     "${RELAIS_AUTH_ADMIN_USERNAME:-admin}",
				Password: "${RELAIS_AUTH_ADMIN_PASSWORD}",
				Admin:    true,
			},
		},
	}
}

func NewAuthConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                    []*yaml.Comment{yaml.HeadComment(" Auth configuration")},
		".providers":          []*yaml.Comment{yaml.HeadComment(" OAuth2 identity providers", " Basic authentication is used when none is configured")},
		".admins":             []*yaml.Comment{yaml.HeadComment(" List of OAuth2 users with admin privileges")},
		".admins[0].email":    []*yaml.Comment{yaml.HeadComment(" Admin's email address")},
		".admins[0].provider": []*yaml.Comment{yaml.HeadComment(" Admin's identity provider (see 'providers' section)")},
		".users":              []*yaml.Comment{yaml.HeadComment(" Local users authenticated with HTTP basic auth", " Users with an empty password are ignored")},
	}
}
