package setup

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bornholm/relais/pkg/log"
	"github.com/pkg/errors"
)

var closers struct {
	mutex sync.Mutex
	funcs []func() error
}

func registerCloser(fn func() error) {
	closers.mutex.Lock()
	defer closers.mutex.Unlock()

	closers.funcs = append(closers.funcs, fn)
}

// Close releases the components created from config, most recent first. Every
// closer runs, the first error is returned.
func Close(ctx context.Context) error {
	closers.mutex.Lock()
	funcs := closers.funcs
	closers.funcs = nil
	closers.mutex.Unlock()

	var first error

	for i := len(funcs) - 1; i >= 0; i-- {
		if err := funcs[i](); err != nil {
			err = errors.WithStack(err)
			slog.ErrorContext(ctx, "could not close component", log.Error(err))

			if first == nil {
				first = err
			}
		}
	}

	return first
}
