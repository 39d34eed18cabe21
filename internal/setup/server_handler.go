package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/relais/internal/admin"
	"github.com/bornholm/relais/internal/authn"
	"github.com/bornholm/relais/internal/authn/basic"
	"github.com/bornholm/relais/internal/authz/expr"
	"github.com/bornholm/relais/internal/config"
	"github.com/bornholm/relais/internal/demo"
	"github.com/bornholm/relais/internal/mqtt"
	"github.com/bornholm/relais/internal/ratelimit"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	sloghttp "github.com/samber/slog-http"
)

func NewHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	mux := &http.ServeMux{}

	slogMiddleware := sloghttp.New(slog.Default())

	oauth2Handler, err := NewOAuth2HandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mux.Handle("/auth/", slogMiddleware(oauth2Handler))

	store, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	onAuthenticated, err := NewOnAuthenticatedFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mqttSettings, err := NewMQTTSettingsFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	settingsGuard := expr.NewRule(string(conf.Console.Guards.MQTTSettings))
	if err := settingsGuard.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid mqtt settings guard")
	}

	hasProviders := !conf.Auth.Providers.Empty()

	uiAuthenticators := []authn.Authenticator{
		basic.NewAuthenticator(store, !hasProviders),
	}

	if hasProviders {
		uiAuthenticators = append(uiAuthenticators, oauth2Handler.Authenticator(true))
	}

	uiAuth := authn.Chain(
		authn.WithAuthenticators(uiAuthenticators...),
		authn.WithOnAuthenticated(onAuthenticated),
	)

	apiAuth := authn.Chain(
		authn.WithAuthenticators(
			basic.NewAuthenticator(store, false),
			oauth2Handler.Authenticator(false),
		),
		authn.WithOnAuthenticated(onAuthenticated),
	)

	rateLimiter := ratelimit.New(rate.Limit(conf.HTTP.RateLimit.Rate), int(conf.HTTP.RateLimit.Burst))
	rateLimiterMiddleware := rateLimiter.Middleware(func(r *http.Request) (string, error) {
		user, err := authn.ContextUser(r.Context())
		if err != nil {
			return "", errors.WithStack(err)
		}

		return user.UserProvider() + "-" + user.UserSubject(), nil
	})

	projectPath := string(conf.Console.ProjectPath)
	navbar := newNavbar(demo.InformationPath(projectPath))

	demoHandler := demo.NewHandler(
		projectPath,
		demo.WithEndpoints(
			string(conf.Console.Demo.RestEndpoint),
			string(conf.Console.Demo.SocketEndpoint),
			string(conf.Console.Demo.BrokerEndpoint),
		),
		demo.WithNavbar(navbar),
	)

	mqttHandler := mqtt.NewHandler(
		mqttSettings,
		mqtt.WithSettingsGuard(settingsGuard),
		mqtt.WithEnforcedGuards(bool(conf.Console.EnforceGuards)),
		mqtt.WithNavbar(navbar),
	)

	registerCloser(func() error {
		mqttHandler.Close()
		return nil
	})

	mux.Handle("/mqtt", uiAuth(slogMiddleware(mqttHandler)))
	mux.Handle("/mqtt/", uiAuth(slogMiddleware(mqttHandler)))

	mux.Handle(demoHandler.Prefix(), uiAuth(slogMiddleware(demoHandler)))
	mux.Handle(demoHandler.Prefix()+"/", uiAuth(slogMiddleware(demoHandler)))

	mux.Handle("/rest/", apiAuth(slogMiddleware(rateLimiterMiddleware(mqttHandler))))
	mux.Handle("/ws/", apiAuth(slogMiddleware(rateLimiterMiddleware(mqttHandler))))

	adminHandler := admin.NewHandler("/admin", store, navbar)
	mux.Handle("/admin/", uiAuth(slogMiddleware(adminHandler)))

	mux.Handle("GET /{$}", http.RedirectHandler(demoHandler.InformationPath(), http.StatusFound))

	return mux, nil
}
