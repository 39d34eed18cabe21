package settings

import (
	"sync"
	"sync/atomic"

	"github.com/bornholm/relais/internal/syncx"
	"github.com/pkg/errors"
)

var ErrInvalid = errors.New("invalid settings")

// HandlerID identifies a registered update handler. The zero value never
// identifies a handler.
type HandlerID uint64

// UpdateHandler is called after every successful update with the id of the
// origin of the change.
type UpdateHandler func(originID string)

// Service holds a settings value of type T shared by readers and updaters.
type Service[T any] struct {
	mutex    sync.RWMutex
	value    T
	handlers syncx.Map[HandlerID, UpdateHandler]
	nextID   atomic.Uint64
}

// Read calls fn with a copy of the current value.
func (s *Service[T]) Read(fn func(value T)) {
	s.mutex.RLock()
	value := s.value
	s.mutex.RUnlock()

	fn(value)
}

// Value returns a copy of the current value.
func (s *Service[T]) Value() T {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.value
}

// Update applies fn to a copy of the current value and stores the result if
// fn succeeds. Handlers are then called with originID, outside the lock.
func (s *Service[T]) Update(fn func(value *T) error, originID string) error {
	s.mutex.Lock()

	next := s.value
	if err := fn(&next); err != nil {
		s.mutex.Unlock()
		return errors.WithStack(err)
	}

	s.value = next
	s.mutex.Unlock()

	s.handlers.Range(func(_ HandlerID, handler UpdateHandler) bool {
		handler(originID)
		return true
	})

	return nil
}

// replace sets the value without calling the update handlers.
func (s *Service[T]) replace(value T) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.value = value
}

func (s *Service[T]) AddUpdateHandler(handler UpdateHandler) HandlerID {
	id := HandlerID(s.nextID.Add(1))
	s.handlers.Store(id, handler)
	return id
}

func (s *Service[T]) RemoveUpdateHandler(id HandlerID) {
	s.handlers.Delete(id)
}

func NewService[T any](value T) *Service[T] {
	return &Service[T]{
		value: value,
	}
}
