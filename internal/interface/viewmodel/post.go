package viewmodel

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/application"
	"github.com/oksasatya/yatter-client/internal/domain/service"
	"github.com/oksasatya/yatter-client/internal/state"
)

type PostStatusUseCase interface {
	Execute(ctx context.Context, content string, attachments []string) application.PostStatusResult
}

type PostBindingModel struct {
	AvatarURL   string
	StatusText  string
	Attachments []string
}

type PostUiState struct {
	BindingModel PostBindingModel
	IsLoading    bool
	ErrorMessage string
}

// CanPost reports whether there is text or media to send.
func (s PostUiState) CanPost() bool {
	return strings.TrimSpace(s.BindingModel.StatusText) != "" || len(s.BindingModel.Attachments) > 0
}

type PostViewModel struct {
	*scope
	UiState         *state.Store[PostUiState]
	GoBack          *state.Event[Nav]
	NavigateToLogin *state.Event[Nav]

	postStatus PostStatusUseCase
	getMe      service.GetMeService
}

func NewPostViewModel(ctx context.Context, postStatus PostStatusUseCase, getMe service.GetMeService, d state.Dispatcher, logger *logrus.Logger) *PostViewModel {
	return &PostViewModel{
		scope:           newScope(ctx, d, logger),
		UiState:         state.NewStore(PostUiState{}, d),
		GoBack:          state.NewEvent[Nav]("go_back", d, logger),
		NavigateToLogin: state.NewEvent[Nav]("navigate_to_login", d, logger),
		postStatus:      postStatus,
		getMe:           getMe,
	}
}

// OnCreate loads the session owner's avatar.
func (vm *PostViewModel) OnCreate() {
	vm.UiState.Update(func(s PostUiState) PostUiState {
		s.IsLoading = true
		return s
	})

	vm.launch("load_me", func(ctx context.Context) func() {
		me, err := vm.getMe.Execute(ctx)
		if err != nil {
			vm.warn(err, "load me failed")
		}
		return func() {
			vm.UiState.Update(func(s PostUiState) PostUiState {
				s.IsLoading = false
				if err != nil {
					s.ErrorMessage = "could not load account: " + err.Error()
				}
				if me != nil && me.Avatar != nil {
					s.BindingModel.AvatarURL = me.Avatar.String()
				}
				return s
			})
		}
	})
}

func (vm *PostViewModel) OnChangedStatusText(text string) {
	vm.UiState.Update(func(s PostUiState) PostUiState {
		s.BindingModel.StatusText = text
		return s
	})
}

// OnChangedAttachments replaces the local file paths to upload with the status.
func (vm *PostViewModel) OnChangedAttachments(paths []string) {
	cp := append([]string(nil), paths...)
	vm.UiState.Update(func(s PostUiState) PostUiState {
		s.BindingModel.Attachments = cp
		return s
	})
}

// OnClickPost sends the status. Success goes back; a missing session asks for
// login.
func (vm *PostViewModel) OnClickPost() {
	var input PostBindingModel
	vm.UiState.Update(func(s PostUiState) PostUiState {
		input = s.BindingModel
		s.IsLoading = true
		s.ErrorMessage = ""
		return s
	})

	vm.launch("post_status", func(ctx context.Context) func() {
		res := vm.postStatus.Execute(ctx, input.StatusText, input.Attachments)
		return func() {
			switch res.Failure {
			case "":
				vm.GoBack.Emit(Nav{})
			case application.PostStatusNotLoggedIn:
				vm.NavigateToLogin.Emit(Nav{})
			}
			vm.UiState.Update(func(s PostUiState) PostUiState {
				s.IsLoading = false
				s.ErrorMessage = postMessage(res)
				return s
			})
		}
	})
}

func (vm *PostViewModel) OnClickNavIcon() { vm.GoBack.Emit(Nav{}) }

// Close cancels in-flight tasks and waits for them, including their results
// posted to the dispatcher. Like Wait, it must not be called from the
// dispatcher's goroutine, and an open Loop must keep running until Close
// returns, or Close blocks forever.
func (vm *PostViewModel) Close() {
	vm.shutdown()
	vm.UiState.Close()
}
