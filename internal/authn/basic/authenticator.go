package basic

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/relais/internal/authn"
	"github.com/bornholm/relais/pkg/log"
	"github.com/pkg/errors"
)

type UserProvider interface {
	Authenticate(ctx context.Context, username, password string) (authn.User, error)
}

type UserProviderFunc func(ctx context.Context, username, password string) (authn.User, error)

func (fn UserProviderFunc) Authenticate(ctx context.Context, username, password string) (authn.User, error) {
	return fn(ctx, username, password)
}

// NewAuthenticator returns an authenticator validating HTTP basic credentials
// against userProvider. When challenge is true, a missing or invalid
// credential ends the chain with a 401 challenge, otherwise the next
// authenticator is tried.
func NewAuthenticator(userProvider UserProvider, challenge bool) authn.Authenticator {
	return authn.AuthenticateFunc(func(w http.ResponseWriter, r *http.Request) (authn.User, error) {
		ctx := r.Context()

		username, password, ok := r.BasicAuth()
		if ok {
			user, err := userProvider.Authenticate(ctx, username, password)
			if err != nil && !errors.Is(err, authn.ErrUnauthenticated) {
				slog.ErrorContext(ctx, "could not authenticate user", log.Error(errors.WithStack(err)))
			}

			if user != nil {
				return user, nil
			}
		}

		if !challenge {
			return nil, nil
		}

		w.Header().Set("WWW-Authenticate", `Basic realm="relais", charset="UTF-8"`)
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)

		return nil, errors.WithStack(authn.ErrCancel)
	})
}
