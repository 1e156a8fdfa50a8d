package repository

import (
	"context"

	"github.com/oksasatya/yatter-client/internal/domain/entity"
)

type RelationshipRepository interface {
	Follow(ctx context.Context, target entity.Username) (entity.Relationship, error)
	Unfollow(ctx context.Context, target entity.Username) (entity.Relationship, error)
	Followings(ctx context.Context, of entity.Username) ([]entity.Account, error)
	Followers(ctx context.Context, of entity.Username) ([]entity.Account, error)
	Relationships(ctx context.Context, targets []entity.Username) ([]entity.Relationship, error)
}
