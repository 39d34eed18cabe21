package setup

import (
	"context"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestClose(t *testing.T) {
	ctx := context.Background()

	if err := Close(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	var calls []string
	errFailed := errors.New("failed")

	registerCloser(func() error {
		calls = append(calls, "store")
		return nil
	})

	registerCloser(func() error {
		calls = append(calls, "socket")
		return errFailed
	})

	registerCloser(func() error {
		calls = append(calls, "handler")
		return nil
	})

	err := Close(ctx)
	if !errors.Is(err, errFailed) {
		t.Errorf("err: expected '%v', got '%v'", errFailed, err)
	}

	if e, g := []string{"handler", "socket", "store"}, calls; !reflect.DeepEqual(e, g) {
		t.Errorf("calls: expected '%v', got '%v'", e, g)
	}

	calls = nil

	if err := Close(ctx); err != nil {
		t.Errorf("%+v", errors.WithStack(err))
	}

	if e, g := 0, len(calls); e != g {
		t.Errorf("len(calls): expected '%v', got '%v'", e, g)
	}
}
