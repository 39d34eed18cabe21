package setup

import (
	"context"
	"sync"

	"github.com/bornholm/relais/internal/config"
)

type fromConfigFunc[T any] func(ctx context.Context, conf *config.Config) (T, error)

// createFromConfigOnce memoizes the first result of factory, so that every
// component shares the same instance.
func createFromConfigOnce[T any](factory fromConfigFunc[T]) fromConfigFunc[T] {
	var (
		once  sync.Once
		value T
		err   error
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		once.Do(func() {
			value, err = factory(ctx, conf)
		})

		return value, err
	}
}
