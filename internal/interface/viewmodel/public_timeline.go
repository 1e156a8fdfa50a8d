package viewmodel

import (
	"context"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
	"github.com/oksasatya/yatter-client/internal/state"
)

type PublicTimelineUiState struct {
	StatusList   []StatusBindingModel
	IsLoading    bool
	IsRefreshing bool
	ErrorMessage string
}

type PublicTimelineViewModel struct {
	*scope
	UiState        *state.Store[PublicTimelineUiState]
	NavigateToPost *state.Event[Nav]

	// Query filters every fetch; the zero value is the newest page.
	Query repo.TimelineQuery

	statuses repo.StatusRepository
}

func NewPublicTimelineViewModel(ctx context.Context, statuses repo.StatusRepository, d state.Dispatcher, logger *logrus.Logger) *PublicTimelineViewModel {
	return &PublicTimelineViewModel{
		scope:          newScope(ctx, d, logger),
		UiState:        state.NewStore(PublicTimelineUiState{}, d),
		NavigateToPost: state.NewEvent[Nav]("navigate_to_post", d, logger),
		statuses:       statuses,
	}
}

func (vm *PublicTimelineViewModel) OnResume() {
	vm.UiState.Update(func(s PublicTimelineUiState) PublicTimelineUiState {
		s.IsLoading = true
		return s
	})
	vm.fetch(func(s *PublicTimelineUiState) { s.IsLoading = false })
}

func (vm *PublicTimelineViewModel) OnRefresh() {
	vm.UiState.Update(func(s PublicTimelineUiState) PublicTimelineUiState {
		s.IsRefreshing = true
		return s
	})
	vm.fetch(func(s *PublicTimelineUiState) { s.IsRefreshing = false })
}

func (vm *PublicTimelineViewModel) OnClickPost() { vm.NavigateToPost.Emit(Nav{}) }

// fetch loads the public timeline; done clears the matching progress flag.
// On failure the previous list is kept.
func (vm *PublicTimelineViewModel) fetch(done func(*PublicTimelineUiState)) {
	q := vm.Query
	vm.launch("load_public_timeline", func(ctx context.Context) func() {
		statuses, err := vm.statuses.FindAllPublic(ctx, q)
		if err != nil {
			vm.warn(err, "load public timeline failed")
		}
		list := ConvertStatuses(statuses)
		return func() {
			vm.UiState.Update(func(s PublicTimelineUiState) PublicTimelineUiState {
				done(&s)
				if err != nil {
					s.ErrorMessage = "could not load timeline: " + err.Error()
					return s
				}
				s.ErrorMessage = ""
				s.StatusList = list
				return s
			})
		}
	})
}

// Close cancels in-flight tasks and waits for them, including their results
// posted to the dispatcher. Like Wait, it must not be called from the
// dispatcher's goroutine, and an open Loop must keep running until Close
// returns, or Close blocks forever.
func (vm *PublicTimelineViewModel) Close() {
	vm.shutdown()
	vm.UiState.Close()
}
