package state

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Event is a one-shot signal: each emission is delivered at most once, to a
// single attached observer. Emitting again before delivery replaces the value.
type Event[T any] struct {
	Name   string
	Logger *logrus.Logger

	dispatcher Dispatcher
	pending    atomic.Bool

	mu        sync.Mutex
	value     T
	observers map[uint64]func(T)
	nextID    uint64
}

func NewEvent[T any](name string, d Dispatcher, logger *logrus.Logger) *Event[T] {
	if d == nil {
		d = Immediate
	}
	return &Event[T]{Name: name, Logger: logger, dispatcher: d, observers: map[uint64]func(T){}}
}

func (e *Event[T]) Emit(v T) {
	e.mu.Lock()
	e.value = v
	e.pending.Store(true)
	ids := make([]uint64, 0, len(e.observers))
	for id := range e.observers {
		ids = append(ids, id)
	}
	e.mu.Unlock()

	for _, id := range ids {
		e.post(id)
	}
}

// Observe attaches fn. A value emitted while nobody was attached is posted to
// fn right away. Only one observer is expected; extra ones race for delivery.
func (e *Event[T]) Observe(fn func(T)) (detach func()) {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.observers[id] = fn
	n := len(e.observers)
	e.mu.Unlock()

	if n > 1 && e.Logger != nil {
		e.Logger.WithField("event", e.Name).WithField("observers", n).
			Warn("multiple observers attached to a one-shot event; only one will receive each value")
	}
	if e.pending.Load() {
		e.post(id)
	}
	return func() {
		e.mu.Lock()
		delete(e.observers, id)
		e.mu.Unlock()
	}
}

// Pending reports whether an emitted value is still waiting for delivery.
func (e *Event[T]) Pending() bool { return e.pending.Load() }

func (e *Event[T]) post(id uint64) {
	e.dispatcher.Post(func() { e.deliver(id) })
}

func (e *Event[T]) deliver(id uint64) {
	e.mu.Lock()
	fn, ok := e.observers[id]
	if !ok || !e.pending.CompareAndSwap(true, false) {
		e.mu.Unlock()
		return
	}
	v := e.value
	var zero T
	e.value = zero
	e.mu.Unlock()

	fn(v)
}
