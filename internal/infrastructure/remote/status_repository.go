package remote

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/auth"
	"github.com/oksasatya/yatter-client/internal/domain"
	"github.com/oksasatya/yatter-client/internal/domain/entity"
	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
)

var _ repo.StatusRepository = (*StatusRepository)(nil)

type StatusRepository struct {
	API       *Client
	Converter Converter
	Tokens    auth.Provider
	Logger    *logrus.Logger
}

func NewStatusRepository(api *Client, tokens auth.Provider, logger *logrus.Logger) *StatusRepository {
	return &StatusRepository{API: api, Converter: NewConverter(api.BaseURL), Tokens: tokens, Logger: logger}
}

// FindByID scans the public timeline; there is no single-status endpoint.
func (r *StatusRepository) FindByID(ctx context.Context, id entity.StatusID) (*entity.Status, error) {
	statuses, err := r.FindAllPublic(ctx, repo.TimelineQuery{})
	if err != nil {
		return nil, err
	}
	for i := range statuses {
		if statuses[i].ID == id {
			return &statuses[i], nil
		}
	}
	return nil, nil
}

func (r *StatusRepository) FindAllPublic(ctx context.Context, q repo.TimelineQuery) ([]entity.Status, error) {
	js, err := r.API.GetPublicTimeline(ctx, q)
	if err != nil {
		return nil, err
	}
	return r.convert("get public timeline", js)
}

func (r *StatusRepository) FindAllHome(ctx context.Context, q repo.TimelineQuery) ([]entity.Status, error) {
	token, err := r.Tokens.Provide(ctx)
	if err != nil {
		return nil, err
	}
	js, err := r.API.GetHomeTimeline(ctx, token, q)
	if err != nil {
		return nil, err
	}
	return r.convert("get home timeline", js)
}

// Create uploads each attachment, then posts the status referencing them.
func (r *StatusRepository) Create(ctx context.Context, content string, attachments []string) (entity.Status, error) {
	token, err := r.Tokens.Provide(ctx)
	if err != nil {
		return entity.Status{}, err
	}
	mediaIDs := make([]int, 0, len(attachments))
	for _, path := range attachments {
		m, err := r.API.UploadMedia(ctx, token, path, "")
		if err != nil {
			return entity.Status{}, err
		}
		id, err := m.ID.Int()
		if err != nil {
			return entity.Status{}, &domain.RemoteError{Op: "upload media", Message: "non numeric media id " + string(m.ID), Err: err}
		}
		if r.Logger != nil {
			r.Logger.WithField("media_id", id).WithField("path", path).Debug("attachment uploaded")
		}
		mediaIDs = append(mediaIDs, id)
	}

	j, err := r.API.PostStatus(ctx, token, PostStatusJSON{Status: content, MediaIDs: mediaIDs})
	if err != nil {
		return entity.Status{}, err
	}
	s, err := r.Converter.Status(j)
	if err != nil {
		return entity.Status{}, &domain.RemoteError{Op: "post status", Err: err}
	}
	return s, nil
}

func (r *StatusRepository) Delete(ctx context.Context, status entity.Status) error {
	token, err := r.Tokens.Provide(ctx)
	if err != nil {
		return err
	}
	return r.API.DeleteStatus(ctx, token, status.ID.Value())
}

func (r *StatusRepository) convert(op string, js []StatusJSON) ([]entity.Status, error) {
	out, err := r.Converter.Statuses(js)
	if err != nil {
		return nil, &domain.RemoteError{Op: op, Err: err}
	}
	return out, nil
}
