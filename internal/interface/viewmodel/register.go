package viewmodel

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/application"
	"github.com/oksasatya/yatter-client/internal/domain/entity"
	"github.com/oksasatya/yatter-client/internal/state"
)

type RegisterAccountUseCase interface {
	Execute(ctx context.Context, username entity.Username, password entity.Password) application.RegisterAccountResult
}

type RegisterAccountBindingModel struct {
	Username string
	Password string
}

type RegisterAccountUiState struct {
	BindingModel  RegisterAccountBindingModel
	ValidUsername bool
	ValidPassword bool
	IsLoading     bool
	ErrorMessage  string
}

func (s RegisterAccountUiState) IsEnableRegister() bool { return s.ValidUsername && s.ValidPassword }

type RegisterAccountViewModel struct {
	*scope
	UiState                  *state.Store[RegisterAccountUiState]
	NavigateToPublicTimeline *state.Event[Nav]
	NavigateToLogin          *state.Event[Nav]

	register RegisterAccountUseCase
}

func NewRegisterAccountViewModel(ctx context.Context, register RegisterAccountUseCase, d state.Dispatcher, logger *logrus.Logger) *RegisterAccountViewModel {
	return &RegisterAccountViewModel{
		scope:                    newScope(ctx, d, logger),
		UiState:                  state.NewStore(RegisterAccountUiState{}, d),
		NavigateToPublicTimeline: state.NewEvent[Nav]("navigate_to_public_timeline", d, logger),
		NavigateToLogin:          state.NewEvent[Nav]("navigate_to_login", d, logger),
		register:                 register,
	}
}

func (vm *RegisterAccountViewModel) OnChangedUsername(username string) {
	vm.UiState.Update(func(s RegisterAccountUiState) RegisterAccountUiState {
		s.BindingModel.Username = username
		s.ValidUsername = entity.NewUsername(username).Validate()
		return s
	})
}

func (vm *RegisterAccountViewModel) OnChangedPassword(password string) {
	vm.UiState.Update(func(s RegisterAccountUiState) RegisterAccountUiState {
		s.BindingModel.Password = password
		s.ValidPassword = entity.NewPassword(password).Validate()
		return s
	})
}

// OnClickRegister creates the account; the new account is logged in and the
// public timeline is shown.
func (vm *RegisterAccountViewModel) OnClickRegister() {
	var input RegisterAccountBindingModel
	vm.UiState.Update(func(s RegisterAccountUiState) RegisterAccountUiState {
		input = s.BindingModel
		s.IsLoading = true
		s.ErrorMessage = ""
		return s
	})

	vm.launch("register_account", func(ctx context.Context) func() {
		res := vm.register.Execute(ctx, entity.NewUsername(input.Username), entity.NewPassword(input.Password))
		return func() {
			if res.Succeeded() {
				vm.NavigateToPublicTimeline.Emit(Nav{})
			}
			vm.UiState.Update(func(s RegisterAccountUiState) RegisterAccountUiState {
				s.IsLoading = false
				s.ErrorMessage = registerMessage(res)
				return s
			})
		}
	})
}

func (vm *RegisterAccountViewModel) OnClickLogin() { vm.NavigateToLogin.Emit(Nav{}) }

// Close cancels in-flight tasks and waits for them, including their results
// posted to the dispatcher. Like Wait, it must not be called from the
// dispatcher's goroutine, and an open Loop must keep running until Close
// returns, or Close blocks forever.
func (vm *RegisterAccountViewModel) Close() {
	vm.shutdown()
	vm.UiState.Close()
}
