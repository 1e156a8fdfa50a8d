package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/domain/entity"
	"github.com/oksasatya/yatter-client/internal/domain/service"
)

type Login struct {
	Service service.LoginService
	Logger  *logrus.Logger
}

func NewLogin(svc service.LoginService, logger *logrus.Logger) *Login {
	return &Login{Service: svc, Logger: logger}
}

// Execute checks the credentials locally and, when they pass, hands them to
// the login service which persists the session.
func (uc *Login) Execute(ctx context.Context, username entity.Username, password entity.Password) LoginResult {
	if !username.Validate() {
		return fail(LoginEmptyUsername, nil)
	}
	if password.IsBlank() {
		return fail(LoginEmptyPassword, nil)
	}
	if !password.Validate() {
		return fail(LoginInvalidPassword, nil)
	}

	if err := attempt(func() error { return uc.Service.Execute(ctx, username, password) }); err != nil {
		logFailure(uc.Logger, "login", err)
		return fail(LoginOtherError, err)
	}
	return LoginResult{}
}
