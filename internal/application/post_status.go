package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/domain"
	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
)

type PostStatus struct {
	Statuses repo.StatusRepository
	Logger   *logrus.Logger
}

func NewPostStatus(statuses repo.StatusRepository, logger *logrus.Logger) *PostStatus {
	return &PostStatus{Statuses: statuses, Logger: logger}
}

// Execute posts content with attachments (local file paths). A missing
// session surfaces as NotLoggedIn.
func (uc *PostStatus) Execute(ctx context.Context, content string, attachments []string) PostStatusResult {
	if content == "" && len(attachments) == 0 {
		return fail(PostStatusEmptyContent, nil)
	}

	err := attempt(func() error {
		_, err := uc.Statuses.Create(ctx, content, attachments)
		return err
	})
	switch {
	case err == nil:
		return PostStatusResult{}
	case errors.Is(err, domain.ErrAuthentication):
		return fail(PostStatusNotLoggedIn, err)
	default:
		logFailure(uc.Logger, "post_status", err)
		return fail(PostStatusOtherError, err)
	}
}
