package repository

import (
	"context"

	"github.com/oksasatya/yatter-client/internal/domain/entity"
)

// AccountRepository reads and writes accounts on the remote API.
type AccountRepository interface {
	// FindMe returns nil without error when no username is stored for the session.
	FindMe(ctx context.Context) (*entity.Me, error)
	FindByUsername(ctx context.Context, username entity.Username) (entity.Account, error)
	Create(ctx context.Context, username entity.Username, password entity.Password) (entity.Me, error)
	Update(ctx context.Context, me entity.Me, in UpdateAccountInput) (entity.Me, error)
}

// UpdateAccountInput lists the profile fields to change; nil leaves a field as is.
type UpdateAccountInput struct {
	DisplayName *string
	Note        *string
	Avatar      *string
	Header      *string
}
