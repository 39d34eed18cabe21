package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/relais/internal/config"
	"github.com/bornholm/relais/internal/store"
	"github.com/pkg/errors"
)

var NewStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*store.Store, error) {
	store := store.NewStore(string(conf.Store.Path))

	registerCloser(store.Close)

	if err := store.HealthCheck(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	users, err := CreateUsersFromConfig(ctx, conf, store)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "basic users created", slog.Int("count", len(users)))

	return store, nil
})
