package service

import (
	"context"

	"github.com/oksasatya/yatter-client/internal/domain/entity"
)

// LoginService records username as the session identity.
type LoginService interface {
	Execute(ctx context.Context, username entity.Username, password entity.Password) error
}

// GetMeService returns the session owner, or nil when nobody is logged in.
type GetMeService interface {
	Execute(ctx context.Context) (*entity.Me, error)
}

type CheckLoginService interface {
	Execute(ctx context.Context) (bool, error)
}

type LogoutService interface {
	Execute(ctx context.Context) error
}

// RelationshipService acts on behalf of the session owner.
type RelationshipService interface {
	Follow(ctx context.Context, me entity.Me, target entity.Username) (entity.Relationship, error)
	Unfollow(ctx context.Context, me entity.Me, target entity.Username) (entity.Relationship, error)
	Check(ctx context.Context, me entity.Me, targets []entity.Username) ([]entity.Relationship, error)
}
