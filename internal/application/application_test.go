package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/yatter-client/internal/domain"
	"github.com/oksasatya/yatter-client/internal/domain/entity"
	"github.com/oksasatya/yatter-client/internal/mocks"
)

const validPassword = "Password1%"

func TestLogin_LocalValidation(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
		want     LoginFailure
	}{
		{"empty username", "", validPassword, LoginEmptyUsername},
		{"blank username", "  \t", validPassword, LoginEmptyUsername},
		{"empty password", "u", "", LoginEmptyPassword},
		{"blank password", "u", "   ", LoginEmptyPassword},
		{"weak password", "u", "weak", LoginInvalidPassword},
		{"no symbol", "u", "Password1", LoginInvalidPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mocks.LoginService)
			res := NewLogin(svc, nil).Execute(context.Background(), entity.NewUsername(tc.username), entity.NewPassword(tc.password))

			assert.Equal(t, tc.want, res.Failure)
			assert.False(t, res.Succeeded())
			svc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	svc := new(mocks.LoginService)
	u, p := entity.NewUsername("u"), entity.NewPassword(validPassword)
	svc.On("Execute", mock.Anything, u, p).Return(nil).Once()

	res := NewLogin(svc, nil).Execute(context.Background(), u, p)

	assert.True(t, res.Succeeded())
	assert.Equal(t, "success", res.String())
	svc.AssertExpectations(t)
}

func TestLogin_ServiceFailureIsOtherError(t *testing.T) {
	boom := errors.New("disk full")
	svc := new(mocks.LoginService)
	svc.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(boom)

	res := NewLogin(svc, nil).Execute(context.Background(), entity.NewUsername("u"), entity.NewPassword(validPassword))

	assert.Equal(t, LoginOtherError, res.Failure)
	assert.ErrorIs(t, res.Cause, boom)
}

func TestLogin_PanicIsOtherError(t *testing.T) {
	svc := new(mocks.LoginService)
	svc.On("Execute", mock.Anything, mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("unexpected")
	})

	res := NewLogin(svc, nil).Execute(context.Background(), entity.NewUsername("u"), entity.NewPassword(validPassword))

	assert.Equal(t, LoginOtherError, res.Failure)
	assert.ErrorContains(t, res.Cause, "unexpected")
}

func TestPostStatus_EmptyContent(t *testing.T) {
	statuses := new(mocks.StatusRepository)

	res := NewPostStatus(statuses, nil).Execute(context.Background(), "", nil)

	assert.Equal(t, PostStatusEmptyContent, res.Failure)
	statuses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostStatus_AttachmentOnly(t *testing.T) {
	statuses := new(mocks.StatusRepository)
	statuses.On("Create", mock.Anything, "", []string{"/tmp/a.png"}).Return(entity.Status{}, nil)

	res := NewPostStatus(statuses, nil).Execute(context.Background(), "", []string{"/tmp/a.png"})

	assert.True(t, res.Succeeded())
	statuses.AssertExpectations(t)
}

func TestPostStatus_NotLoggedIn(t *testing.T) {
	statuses := new(mocks.StatusRepository)
	statuses.On("Create", mock.Anything, "hi", []string(nil)).
		Return(entity.Status{}, &domain.RemoteError{Op: "post status", StatusCode: 401})

	res := NewPostStatus(statuses, nil).Execute(context.Background(), "hi", nil)

	assert.Equal(t, PostStatusNotLoggedIn, res.Failure)
}

func TestPostStatus_TokenFailureIsNotLoggedIn(t *testing.T) {
	statuses := new(mocks.StatusRepository)
	statuses.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(entity.Status{}, domain.ErrAuthentication)

	res := NewPostStatus(statuses, nil).Execute(context.Background(), "hi", []string{})

	assert.Equal(t, PostStatusNotLoggedIn, res.Failure)
}

func TestPostStatus_OtherError(t *testing.T) {
	statuses := new(mocks.StatusRepository)
	statuses.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(entity.Status{}, &domain.RemoteError{Op: "post status", StatusCode: 500})

	res := NewPostStatus(statuses, nil).Execute(context.Background(), "hi", nil)

	assert.Equal(t, PostStatusOtherError, res.Failure)
	assert.Contains(t, res.String(), "status 500")
}

func TestRegisterAccount_LocalValidation(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
		want     RegisterAccountFailure
	}{
		{"empty username", "", validPassword, RegisterEmptyUsername},
		{"empty password", "u", "", RegisterEmptyPassword},
		{"weak password", "u", "newPassword", RegisterInvalidPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			accounts := new(mocks.AccountRepository)
			session := new(mocks.SessionStore)

			res := NewRegisterAccount(accounts, session, nil).
				Execute(context.Background(), entity.NewUsername(tc.username), entity.NewPassword(tc.password))

			assert.Equal(t, tc.want, res.Failure)
			accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			session.AssertNotCalled(t, "PutUsername", mock.Anything, mock.Anything)
		})
	}
}

func TestRegisterAccount_CreatesThenStoresSession(t *testing.T) {
	u, p := entity.NewUsername("alice"), entity.NewPassword(validPassword)
	me := entity.NewMe(entity.Account{ID: entity.NewAccountID("1"), Username: u})

	accounts := new(mocks.AccountRepository)
	session := new(mocks.SessionStore)
	create := accounts.On("Create", mock.Anything, u, p).Return(me, nil).Once()
	session.On("PutUsername", mock.Anything, "alice").Return(nil).Once().NotBefore(create)

	res := NewRegisterAccount(accounts, session, nil).Execute(context.Background(), u, p)

	assert.True(t, res.Succeeded())
	accounts.AssertExpectations(t)
	session.AssertExpectations(t)
}

func TestRegisterAccount_RemoteFailure(t *testing.T) {
	conflict := &domain.RemoteError{Op: "create account", StatusCode: 409, Message: "account already exists"}
	accounts := new(mocks.AccountRepository)
	session := new(mocks.SessionStore)
	accounts.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(entity.Me{}, conflict)

	res := NewRegisterAccount(accounts, session, nil).
		Execute(context.Background(), entity.NewUsername("alice"), entity.NewPassword(validPassword))

	assert.Equal(t, RegisterOtherError, res.Failure)
	assert.ErrorIs(t, res.Cause, conflict)
	session.AssertNotCalled(t, "PutUsername", mock.Anything, mock.Anything)
}

func TestRegisterAccount_SessionFailure(t *testing.T) {
	accounts := new(mocks.AccountRepository)
	session := new(mocks.SessionStore)
	accounts.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(entity.NewMe(entity.Account{Username: entity.NewUsername("alice")}), nil)
	session.On("PutUsername", mock.Anything, "alice").Return(errors.New("read-only fs"))

	res := NewRegisterAccount(accounts, session, nil).
		Execute(context.Background(), entity.NewUsername("alice"), entity.NewPassword(validPassword))

	assert.Equal(t, RegisterOtherError, res.Failure)
	assert.ErrorContains(t, res.Cause, "store session")
}
