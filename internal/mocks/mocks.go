// Package mocks holds testify mocks of the domain contracts for use in tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/yatter-client/internal/domain/entity"
	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
	"github.com/oksasatya/yatter-client/internal/domain/service"
)

var (
	_ repo.AccountRepository      = (*AccountRepository)(nil)
	_ repo.StatusRepository       = (*StatusRepository)(nil)
	_ repo.RelationshipRepository = (*RelationshipRepository)(nil)
	_ repo.SessionStore           = (*SessionStore)(nil)
	_ service.LoginService        = (*LoginService)(nil)
	_ service.GetMeService        = (*GetMeService)(nil)
	_ service.CheckLoginService   = (*CheckLoginService)(nil)
	_ service.LogoutService       = (*LogoutService)(nil)
	_ service.RelationshipService = (*RelationshipService)(nil)
)

type AccountRepository struct{ mock.Mock }

func (m *AccountRepository) FindMe(ctx context.Context) (*entity.Me, error) {
	args := m.Called(ctx)
	me, _ := args.Get(0).(*entity.Me)
	return me, args.Error(1)
}

func (m *AccountRepository) FindByUsername(ctx context.Context, username entity.Username) (entity.Account, error) {
	args := m.Called(ctx, username)
	a, _ := args.Get(0).(entity.Account)
	return a, args.Error(1)
}

func (m *AccountRepository) Create(ctx context.Context, username entity.Username, password entity.Password) (entity.Me, error) {
	args := m.Called(ctx, username, password)
	me, _ := args.Get(0).(entity.Me)
	return me, args.Error(1)
}

func (m *AccountRepository) Update(ctx context.Context, me entity.Me, in repo.UpdateAccountInput) (entity.Me, error) {
	args := m.Called(ctx, me, in)
	out, _ := args.Get(0).(entity.Me)
	return out, args.Error(1)
}

type StatusRepository struct{ mock.Mock }

func (m *StatusRepository) FindByID(ctx context.Context, id entity.StatusID) (*entity.Status, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*entity.Status)
	return s, args.Error(1)
}

func (m *StatusRepository) FindAllPublic(ctx context.Context, q repo.TimelineQuery) ([]entity.Status, error) {
	args := m.Called(ctx, q)
	s, _ := args.Get(0).([]entity.Status)
	return s, args.Error(1)
}

func (m *StatusRepository) FindAllHome(ctx context.Context, q repo.TimelineQuery) ([]entity.Status, error) {
	args := m.Called(ctx, q)
	s, _ := args.Get(0).([]entity.Status)
	return s, args.Error(1)
}

func (m *StatusRepository) Create(ctx context.Context, content string, attachments []string) (entity.Status, error) {
	args := m.Called(ctx, content, attachments)
	s, _ := args.Get(0).(entity.Status)
	return s, args.Error(1)
}

func (m *StatusRepository) Delete(ctx context.Context, status entity.Status) error {
	return m.Called(ctx, status).Error(0)
}

type RelationshipRepository struct{ mock.Mock }

func (m *RelationshipRepository) Follow(ctx context.Context, target entity.Username) (entity.Relationship, error) {
	args := m.Called(ctx, target)
	r, _ := args.Get(0).(entity.Relationship)
	return r, args.Error(1)
}

func (m *RelationshipRepository) Unfollow(ctx context.Context, target entity.Username) (entity.Relationship, error) {
	args := m.Called(ctx, target)
	r, _ := args.Get(0).(entity.Relationship)
	return r, args.Error(1)
}

func (m *RelationshipRepository) Followings(ctx context.Context, of entity.Username) ([]entity.Account, error) {
	args := m.Called(ctx, of)
	a, _ := args.Get(0).([]entity.Account)
	return a, args.Error(1)
}

func (m *RelationshipRepository) Followers(ctx context.Context, of entity.Username) ([]entity.Account, error) {
	args := m.Called(ctx, of)
	a, _ := args.Get(0).([]entity.Account)
	return a, args.Error(1)
}

func (m *RelationshipRepository) Relationships(ctx context.Context, targets []entity.Username) ([]entity.Relationship, error) {
	args := m.Called(ctx, targets)
	r, _ := args.Get(0).([]entity.Relationship)
	return r, args.Error(1)
}

type SessionStore struct{ mock.Mock }

func (m *SessionStore) GetUsername(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *SessionStore) PutUsername(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *SessionStore) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type LoginService struct{ mock.Mock }

func (m *LoginService) Execute(ctx context.Context, username entity.Username, password entity.Password) error {
	return m.Called(ctx, username, password).Error(0)
}

type GetMeService struct{ mock.Mock }

func (m *GetMeService) Execute(ctx context.Context) (*entity.Me, error) {
	args := m.Called(ctx)
	me, _ := args.Get(0).(*entity.Me)
	return me, args.Error(1)
}

type CheckLoginService struct{ mock.Mock }

func (m *CheckLoginService) Execute(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type LogoutService struct{ mock.Mock }

func (m *LogoutService) Execute(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type RelationshipService struct{ mock.Mock }

func (m *RelationshipService) Follow(ctx context.Context, me entity.Me, target entity.Username) (entity.Relationship, error) {
	args := m.Called(ctx, me, target)
	r, _ := args.Get(0).(entity.Relationship)
	return r, args.Error(1)
}

func (m *RelationshipService) Unfollow(ctx context.Context, me entity.Me, target entity.Username) (entity.Relationship, error) {
	args := m.Called(ctx, me, target)
	r, _ := args.Get(0).(entity.Relationship)
	return r, args.Error(1)
}

func (m *RelationshipService) Check(ctx context.Context, me entity.Me, targets []entity.Username) ([]entity.Relationship, error) {
	args := m.Called(ctx, me, targets)
	r, _ := args.Get(0).([]entity.Relationship)
	return r, args.Error(1)
}
