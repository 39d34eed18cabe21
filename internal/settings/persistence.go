package settings

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/bornholm/relais/pkg/log"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// MaxFileSize is the largest settings file ReadFromFS accepts.
const MaxFileSize = 1024

// Persistence loads and saves the value of a Service as a JSON document.
type Persistence[T any] struct {
	service  *Service[T]
	path     string
	defaults func() T

	mutex     sync.Mutex
	handlerID HandlerID
}

// ReadFromFS loads the settings file into the service without calling its
// update handlers. The defaults are applied when the file is missing, too
// large or not a JSON object. Fields absent from the file keep their default.
func (p *Persistence[T]) ReadFromFS(ctx context.Context) {
	value, err := p.load()
	if err != nil {
		slog.WarnContext(ctx, "could not load settings, applying defaults", log.Error(err), slog.String("path", p.path))
		value = p.defaults()
	}

	p.service.replace(value)
}

func (p *Persistence[T]) load() (T, error) {
	value := p.defaults()

	file, err := os.Open(p.path)
	if err != nil {
		return value, errors.WithStack(err)
	}

	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return value, errors.WithStack(err)
	}

	if len(data) > MaxFileSize {
		return value, errors.Errorf("file exceeds %d bytes", MaxFileSize)
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil || object == nil {
		return value, errors.Wrap(ErrInvalid, "document is not a json object")
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return p.defaults(), errors.Wrap(ErrInvalid, err.Error())
	}

	return value, nil
}

// WriteToFS saves the current value of the service.
func (p *Persistence[T]) WriteToFS() error {
	data, err := json.MarshalIndent(p.service.Value(), "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return errors.WithStack(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), filepath.Base(p.path)+".*")
	if err != nil {
		return errors.WithStack(err)
	}

	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		return errors.WithStack(err)
	}

	if err := tmp.Close(); err != nil {
		return errors.WithStack(err)
	}

	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// EnableAutomatic writes the settings file after every update of the service.
func (p *Persistence[T]) EnableAutomatic() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.handlerID != 0 {
		return
	}

	p.handlerID = p.service.AddUpdateHandler(func(originID string) {
		if err := p.WriteToFS(); err != nil {
			slog.Error("could not write settings", log.Error(err), slog.String("path", p.path), slog.String("origin", originID))
		}
	})
}

func (p *Persistence[T]) DisableAutomatic() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.handlerID == 0 {
		return
	}

	p.service.RemoveUpdateHandler(p.handlerID)
	p.handlerID = 0
}

// NewPersistence binds service to the file at path. Automatic writes are
// enabled.
func NewPersistence[T any](service *Service[T], path string, defaults func() T) *Persistence[T] {
	p := &Persistence[T]{
		service:  service,
		path:     path,
		defaults: defaults,
	}

	p.EnableAutomatic()

	return p
}
