package viewmodel

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/application"
	"github.com/oksasatya/yatter-client/internal/domain/entity"
	"github.com/oksasatya/yatter-client/internal/state"
)

type LoginUseCase interface {
	Execute(ctx context.Context, username entity.Username, password entity.Password) application.LoginResult
}

type LoginBindingModel struct {
	Username string
	Password string
}

type LoginUiState struct {
	BindingModel  LoginBindingModel
	ValidUsername bool
	ValidPassword bool
	IsLoading     bool
	ErrorMessage  string
}

func (s LoginUiState) IsEnableLogin() bool { return s.ValidUsername && s.ValidPassword }

type LoginViewModel struct {
	*scope
	UiState                  *state.Store[LoginUiState]
	NavigateToPublicTimeline *state.Event[Nav]
	NavigateToRegister       *state.Event[Nav]

	login LoginUseCase
}

func NewLoginViewModel(ctx context.Context, login LoginUseCase, d state.Dispatcher, logger *logrus.Logger) *LoginViewModel {
	return &LoginViewModel{
		scope:                    newScope(ctx, d, logger),
		UiState:                  state.NewStore(LoginUiState{}, d),
		NavigateToPublicTimeline: state.NewEvent[Nav]("navigate_to_public_timeline", d, logger),
		NavigateToRegister:       state.NewEvent[Nav]("navigate_to_register", d, logger),
		login:                    login,
	}
}

func (vm *LoginViewModel) OnChangedUsername(username string) {
	vm.UiState.Update(func(s LoginUiState) LoginUiState {
		s.BindingModel.Username = username
		s.ValidUsername = entity.NewUsername(username).Validate()
		return s
	})
}

func (vm *LoginViewModel) OnChangedPassword(password string) {
	vm.UiState.Update(func(s LoginUiState) LoginUiState {
		s.BindingModel.Password = password
		s.ValidPassword = entity.NewPassword(password).Validate()
		return s
	})
}

// OnClickLogin runs the login use case with the current input. Success
// navigates to the public timeline; a failure is reported in ErrorMessage.
func (vm *LoginViewModel) OnClickLogin() {
	var input LoginBindingModel
	vm.UiState.Update(func(s LoginUiState) LoginUiState {
		input = s.BindingModel
		s.IsLoading = true
		s.ErrorMessage = ""
		return s
	})

	vm.launch("login", func(ctx context.Context) func() {
		res := vm.login.Execute(ctx, entity.NewUsername(input.Username), entity.NewPassword(input.Password))
		return func() {
			if res.Succeeded() {
				vm.NavigateToPublicTimeline.Emit(Nav{})
			}
			vm.UiState.Update(func(s LoginUiState) LoginUiState {
				s.IsLoading = false
				s.ErrorMessage = loginMessage(res)
				return s
			})
		}
	})
}

func (vm *LoginViewModel) OnClickRegister() { vm.NavigateToRegister.Emit(Nav{}) }

// Close cancels in-flight tasks and waits for them, including their results
// posted to the dispatcher. Like Wait, it must not be called from the
// dispatcher's goroutine, and an open Loop must keep running until Close
// returns, or Close blocks forever.
func (vm *LoginViewModel) Close() {
	vm.shutdown()
	vm.UiState.Close()
}
