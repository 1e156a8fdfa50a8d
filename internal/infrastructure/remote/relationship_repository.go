package remote

import (
	"context"

	"github.com/oksasatya/yatter-client/internal/auth"
	"github.com/oksasatya/yatter-client/internal/domain"
	"github.com/oksasatya/yatter-client/internal/domain/entity"
	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
)

var _ repo.RelationshipRepository = (*RelationshipRepository)(nil)

type RelationshipRepository struct {
	API       *Client
	Converter Converter
	Tokens    auth.Provider
}

func NewRelationshipRepository(api *Client, tokens auth.Provider) *RelationshipRepository {
	return &RelationshipRepository{API: api, Converter: NewConverter(api.BaseURL), Tokens: tokens}
}

func (r *RelationshipRepository) Follow(ctx context.Context, target entity.Username) (entity.Relationship, error) {
	token, err := r.Tokens.Provide(ctx)
	if err != nil {
		return entity.Relationship{}, err
	}
	j, err := r.API.Follow(ctx, token, target.Value())
	if err != nil {
		return entity.Relationship{}, err
	}
	return Relationship(target, j), nil
}

func (r *RelationshipRepository) Unfollow(ctx context.Context, target entity.Username) (entity.Relationship, error) {
	token, err := r.Tokens.Provide(ctx)
	if err != nil {
		return entity.Relationship{}, err
	}
	j, err := r.API.Unfollow(ctx, token, target.Value())
	if err != nil {
		return entity.Relationship{}, err
	}
	return Relationship(target, j), nil
}

func (r *RelationshipRepository) Followings(ctx context.Context, of entity.Username) ([]entity.Account, error) {
	js, err := r.API.Following(ctx, of.Value())
	if err != nil {
		return nil, err
	}
	return r.accounts("get following", js)
}

func (r *RelationshipRepository) Followers(ctx context.Context, of entity.Username) ([]entity.Account, error) {
	js, err := r.API.Followers(ctx, of.Value())
	if err != nil {
		return nil, err
	}
	return r.accounts("get followers", js)
}

// Relationships answers in the order of targets; unknown targets come back
// as all-false relationships.
func (r *RelationshipRepository) Relationships(ctx context.Context, targets []entity.Username) ([]entity.Relationship, error) {
	token, err := r.Tokens.Provide(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Value())
	}
	js, err := r.API.Relationships(ctx, token, names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]RelationshipJSON, len(js))
	for _, j := range js {
		byName[j.Username] = j
	}
	out := make([]entity.Relationship, 0, len(targets))
	for _, t := range targets {
		out = append(out, Relationship(t, byName[t.Value()]))
	}
	return out, nil
}

func (r *RelationshipRepository) accounts(op string, js []AccountJSON) ([]entity.Account, error) {
	out, err := r.Converter.Accounts(js)
	if err != nil {
		return nil, &domain.RemoteError{Op: op, Err: err}
	}
	return out, nil
}
