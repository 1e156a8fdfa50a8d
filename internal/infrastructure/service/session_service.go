package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/domain/entity"
	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
	domainsvc "github.com/oksasatya/yatter-client/internal/domain/service"
)

var (
	_ domainsvc.LoginService      = (*LoginService)(nil)
	_ domainsvc.GetMeService      = (*GetMeService)(nil)
	_ domainsvc.CheckLoginService = (*CheckLoginService)(nil)
	_ domainsvc.LogoutService     = (*LogoutService)(nil)
)

// LoginService stores the username; the remote API has no password check.
type LoginService struct {
	Session repo.SessionStore
	Logger  *logrus.Logger
}

func NewLoginService(session repo.SessionStore, logger *logrus.Logger) *LoginService {
	return &LoginService{Session: session, Logger: logger}
}

func (s *LoginService) Execute(ctx context.Context, username entity.Username, _ entity.Password) error {
	if err := s.Session.PutUsername(ctx, username.Value()); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if s.Logger != nil {
		s.Logger.WithField("username", username.Value()).Debug("session stored")
	}
	return nil
}

type GetMeService struct {
	Accounts repo.AccountRepository
}

func NewGetMeService(accounts repo.AccountRepository) *GetMeService {
	return &GetMeService{Accounts: accounts}
}

func (s *GetMeService) Execute(ctx context.Context) (*entity.Me, error) {
	return s.Accounts.FindMe(ctx)
}

type CheckLoginService struct {
	Session repo.SessionStore
}

func NewCheckLoginService(session repo.SessionStore) *CheckLoginService {
	return &CheckLoginService{Session: session}
}

// Execute reports true when a non-empty username is stored.
func (s *CheckLoginService) Execute(ctx context.Context) (bool, error) {
	username, ok, err := s.Session.GetUsername(ctx)
	if err != nil {
		return false, err
	}
	return ok && username != "", nil
}

type LogoutService struct {
	Session repo.SessionStore
	Logger  *logrus.Logger
}

func NewLogoutService(session repo.SessionStore, logger *logrus.Logger) *LogoutService {
	return &LogoutService{Session: session, Logger: logger}
}

func (s *LogoutService) Execute(ctx context.Context) error {
	if err := s.Session.Clear(ctx); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("clear session failed")
		}
		return err
	}
	return nil
}
