package viewmodel

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/domain/service"
	"github.com/oksasatya/yatter-client/internal/state"
)

// MainViewModel decides the first screen.
type MainViewModel struct {
	*scope
	NavigateToLogin          *state.Event[Nav]
	NavigateToPublicTimeline *state.Event[Nav]

	checkLogin service.CheckLoginService
}

func NewMainViewModel(ctx context.Context, checkLogin service.CheckLoginService, d state.Dispatcher, logger *logrus.Logger) *MainViewModel {
	return &MainViewModel{
		scope:                    newScope(ctx, d, logger),
		NavigateToLogin:          state.NewEvent[Nav]("navigate_to_login", d, logger),
		NavigateToPublicTimeline: state.NewEvent[Nav]("navigate_to_public_timeline", d, logger),
		checkLogin:               checkLogin,
	}
}

// OnCreate routes to the timeline when a session exists, to login otherwise.
// A failing session check counts as logged out.
func (vm *MainViewModel) OnCreate() {
	vm.launch("check_login", func(ctx context.Context) func() {
		loggedIn, err := vm.checkLogin.Execute(ctx)
		if err != nil {
			vm.warn(err, "check login failed")
		}
		return func() {
			if loggedIn && err == nil {
				vm.NavigateToPublicTimeline.Emit(Nav{})
			} else {
				vm.NavigateToLogin.Emit(Nav{})
			}
		}
	})
}

// Close cancels in-flight tasks and waits for them, including their results
// posted to the dispatcher. Like Wait, it must not be called from the
// dispatcher's goroutine, and an open Loop must keep running until Close
// returns, or Close blocks forever.
func (vm *MainViewModel) Close() { vm.shutdown() }
