// Package viewmodel holds the screen logic of the client: each view model owns
// a state.Store of its UI state plus one-shot navigation events, runs use cases
// on worker goroutines and applies their results through a state.Dispatcher.
package viewmodel

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/state"
)

// Nav is the payload of navigation events.
type Nav struct{}

type scope struct {
	dispatcher state.Dispatcher
	logger     *logrus.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// newScope derives the task context from parent, so cancelling parent
// cancels every in-flight task as Close would.
func newScope(parent context.Context, d state.Dispatcher, logger *logrus.Logger) *scope {
	if d == nil {
		d = state.Immediate
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &scope{dispatcher: d, logger: logger, ctx: ctx, cancel: cancel}
}

// launch runs work on its own goroutine. The func work returns, if any, is
// posted to the dispatcher. Nothing is launched after shutdown.
func (s *scope) launch(name string, work func(ctx context.Context) func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		var then func()
		defer func() {
			if r := recover(); r != nil {
				then = nil
				if s.logger != nil {
					s.logger.WithField("task", name).WithField("panic", r).Error("view model task panicked")
				}
			}
			if then == nil || !s.dispatcher.Post(func() { defer s.wg.Done(); then() }) {
				s.wg.Done()
			}
		}()
		then = work(s.ctx)
	}()
}

// Wait blocks until every launched task, including the part posted to the
// dispatcher, has finished. It must not be called from the dispatcher's own
// goroutine.
func (s *scope) Wait() { s.wg.Wait() }

func (s *scope) shutdown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}

func (s *scope) warn(err error, msg string) {
	if s.logger != nil {
		s.logger.WithError(err).Warn(msg)
	}
}
