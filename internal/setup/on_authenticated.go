package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/relais/internal/authn"
	"github.com/bornholm/relais/internal/authn/oauth2"
	"github.com/bornholm/relais/internal/authz"
	"github.com/bornholm/relais/internal/config"
	"github.com/bornholm/relais/internal/store"
	"github.com/bornholm/relais/pkg/log"
	"github.com/pkg/errors"
)

// NewOnAuthenticatedFromConfig resolves the authenticated user against the
// store and exposes it to the console as an authz.Me.
func NewOnAuthenticatedFromConfig(ctx context.Context, conf *config.Config) (authn.OnAuthenticatedFunc, error) {
	st, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return newOnAuthenticated(st, conf.Auth.Admins), nil
}

func newOnAuthenticated(st *store.Store, admins []config.Admin) authn.OnAuthenticatedFunc {
	return func(r *http.Request, user authn.User) (*http.Request, error) {
		ctx := r.Context()

		var storeUser *store.User

		switch u := user.(type) {
		case *store.User:
			// Basic users are read from the store by the authenticator
			storeUser = u

		case *oauth2.User:
			found, err := st.FindOrCreateUser(ctx, u.UserSubject(), u.UserProvider())
			if err != nil {
				return nil, errors.WithStack(err)
			}

			storeUser = found
			storeUser.Email = u.Email
			storeUser.Nickname = u.Nickname
			storeUser.IsAdmin = isConfiguredAdmin(admins, storeUser)

			if err := st.UpdateProfile(ctx, storeUser); err != nil {
				return nil, errors.WithStack(err)
			}

		default:
			return nil, errors.Errorf("unexpected user type '%T'", user)
		}

		me := storeUser.Me()

		ctx = authz.WithContextMe(ctx, me)
		ctx = log.WithAttrs(ctx, slog.Bool("admin", me.Admin))

		return r.WithContext(ctx), nil
	}
}

func isConfiguredAdmin(admins []config.Admin, user *store.User) bool {
	if user.Email == "" {
		return false
	}

	for _, a := range admins {
		if string(a.Email) == user.Email && string(a.Provider) == user.Provider {
			return true
		}
	}

	return false
}
