package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/relais/internal/config"
	"github.com/bornholm/relais/internal/store"
	"github.com/pkg/errors"
)

// CreateUsersFromConfig creates or updates the basic users of the
// configuration. Users without a name or a password are skipped.
func CreateUsersFromConfig(ctx context.Context, conf *config.Config, st *store.Store) ([]*store.User, error) {
	users := make([]*store.User, 0, len(conf.Auth.Users))

	for _, u := range conf.Auth.Users {
		if u.Name == "" || u.Password == "" {
			slog.DebugContext(ctx, "ignoring basic user without credentials", slog.String("name", string(u.Name)))
			continue
		}

		user, err := st.UpsertBasicUser(ctx, string(u.Name), string(u.Password), bool(u.Admin))
		if err != nil {
			return nil, errors.Wrapf(err, "could not create user '%s'", u.Name)
		}

		users = append(users, user)
	}

	return users, nil
}
