package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/domain/entity"
	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
)

type RegisterAccount struct {
	Accounts repo.AccountRepository
	Session  repo.SessionStore
	Logger   *logrus.Logger
}

func NewRegisterAccount(accounts repo.AccountRepository, session repo.SessionStore, logger *logrus.Logger) *RegisterAccount {
	return &RegisterAccount{Accounts: accounts, Session: session, Logger: logger}
}

// Execute creates the account remotely and logs it in by storing its
// username.
func (uc *RegisterAccount) Execute(ctx context.Context, username entity.Username, password entity.Password) RegisterAccountResult {
	if username.Value() == "" {
		return fail(RegisterEmptyUsername, nil)
	}
	if password.Value() == "" {
		return fail(RegisterEmptyPassword, nil)
	}
	if !password.Validate() {
		return fail(RegisterInvalidPassword, nil)
	}

	err := attempt(func() error {
		me, err := uc.Accounts.Create(ctx, username, password)
		if err != nil {
			return err
		}
		if err := uc.Session.PutUsername(ctx, me.Username.Value()); err != nil {
			return fmt.Errorf("store session: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure(uc.Logger, "register_account", err)
		return fail(RegisterOtherError, err)
	}
	if uc.Logger != nil {
		uc.Logger.WithField("username", username.Value()).Info("account registered")
	}
	return RegisterAccountResult{}
}
