package application

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Result is the tagged outcome of a use case. The zero Failure means success;
// Cause carries the underlying error for OtherError style failures.
type Result[F ~string] struct {
	Failure F
	Cause   error
}

func (r Result[F]) Succeeded() bool { return r.Failure == "" }

func (r Result[F]) String() string {
	switch {
	case r.Succeeded():
		return "success"
	case r.Cause != nil:
		return fmt.Sprintf("%s: %v", r.Failure, r.Cause)
	default:
		return string(r.Failure)
	}
}

func fail[F ~string](f F, cause error) Result[F] {
	return Result[F]{Failure: f, Cause: cause}
}

type LoginFailure string

const (
	LoginEmptyUsername   LoginFailure = "empty_username"
	LoginEmptyPassword   LoginFailure = "empty_password"
	LoginInvalidPassword LoginFailure = "invalid_password"
	LoginOtherError      LoginFailure = "other_error"
)

type LoginResult = Result[LoginFailure]

type PostStatusFailure string

const (
	PostStatusEmptyContent PostStatusFailure = "empty_content"
	PostStatusNotLoggedIn  PostStatusFailure = "not_logged_in"
	PostStatusOtherError   PostStatusFailure = "other_error"
)

type PostStatusResult = Result[PostStatusFailure]

type RegisterAccountFailure string

const (
	RegisterEmptyUsername   RegisterAccountFailure = "empty_username"
	RegisterEmptyPassword   RegisterAccountFailure = "empty_password"
	RegisterInvalidPassword RegisterAccountFailure = "invalid_password"
	RegisterOtherError      RegisterAccountFailure = "other_error"
)

type RegisterAccountResult = Result[RegisterAccountFailure]

// attempt runs fn and turns a panic into an error, so a use case can report
// every failure of its side effect as a Result.
func attempt(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func logFailure(logger *logrus.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.WithError(err).WithField("use_case", op).Warn("use case failed")
}
