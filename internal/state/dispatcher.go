package state

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Dispatcher schedules callbacks onto the context that owns UI state.
// Post reports false when the task was rejected and will never run.
type Dispatcher interface {
	Post(task func()) bool
}

type immediate struct{}

func (immediate) Post(task func()) bool {
	task()
	return true
}

// Immediate runs every task inline on the posting goroutine.
var Immediate Dispatcher = immediate{}

// Loop is a single goroutine executing posted tasks in FIFO order. State
// notifications and event deliveries posted to the same Loop never overlap.
type Loop struct {
	Logger *logrus.Logger

	mu     sync.Mutex
	queue  []func()
	closed bool
	wake   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func NewLoop(logger *logrus.Logger) *Loop {
	return &Loop{
		Logger: logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (l *Loop) Post(task func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run executes tasks until ctx is cancelled or Close is called. After Close
// the tasks already queued are drained before Run returns nil.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		tasks := l.queue
		l.queue = nil
		closed := l.closed
		l.mu.Unlock()

		for _, t := range tasks {
			l.exec(t)
		}
		if len(tasks) > 0 {
			continue
		}
		if closed {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		case <-l.done:
		}
	}
}

// Close stops accepting tasks. It is safe to call more than once.
func (l *Loop) Close() {
	l.once.Do(func() {
		l.mu.Lock()
		l.closed = true
		l.mu.Unlock()
		close(l.done)
	})
}

func (l *Loop) exec(task func()) {
	defer func() {
		if r := recover(); r != nil && l.Logger != nil {
			l.Logger.WithField("panic", r).Error("loop task panicked")
		}
	}()
	task()
}
