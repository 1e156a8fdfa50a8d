package viewmodel

import (
	"strconv"

	"github.com/oksasatya/yatter-client/internal/application"
	"github.com/oksasatya/yatter-client/internal/domain/entity"
)

var invalidPasswordMessage = "password needs " + strconv.Itoa(entity.PasswordMinLength) +
	"+ characters with upper and lower case letters and one of " + entity.PasswordSymbols

func loginMessage(r application.LoginResult) string {
	switch r.Failure {
	case "":
		return ""
	case application.LoginEmptyUsername:
		return "username is required"
	case application.LoginEmptyPassword:
		return "password is required"
	case application.LoginInvalidPassword:
		return invalidPasswordMessage
	default:
		return "login failed: " + causeText(r.Cause)
	}
}

func registerMessage(r application.RegisterAccountResult) string {
	switch r.Failure {
	case "":
		return ""
	case application.RegisterEmptyUsername:
		return "username is required"
	case application.RegisterEmptyPassword:
		return "password is required"
	case application.RegisterInvalidPassword:
		return invalidPasswordMessage
	default:
		return "registration failed: " + causeText(r.Cause)
	}
}

func postMessage(r application.PostStatusResult) string {
	switch r.Failure {
	case "":
		return ""
	case application.PostStatusEmptyContent:
		return "write something or attach media"
	case application.PostStatusNotLoggedIn:
		return "you are not logged in"
	default:
		return "post failed: " + causeText(r.Cause)
	}
}

func causeText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
